// Package list implements the rules command.
package list

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/report"
	"github.com/broady/typeormlint/rules"
)

// Cmd lists the available rules.
type Cmd struct{}

// Run executes the rules command.
func (c *Cmd) Run() error {
	return Print(os.Stdout, rules.Default(), report.ColorEnabled(os.Stdout))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Print writes a table of reg's rules with their default severity.
func Print(w io.Writer, reg *typeormlint.Registry, color bool) error {
	preset := reg.Recommended()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RULE", "DEFAULT", "TYPE", "FIX", "OPTIONS", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && color {
				return headerStyle
			}
			return cellStyle
		})
	for _, rule := range reg.Rules() {
		meta := rule.Meta()
		t.Row(
			meta.Name,
			preset[meta.Name].Severity.String(),
			string(meta.Type),
			fixKind(meta),
			strings.Join(meta.Options, ", "),
			meta.Description,
		)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func fixKind(meta typeormlint.Meta) string {
	switch {
	case meta.Fixable && meta.HasSuggestions:
		return "fix, suggest"
	case meta.Fixable:
		return "fix"
	case meta.HasSuggestions:
		return "suggest"
	default:
		return ""
	}
}
