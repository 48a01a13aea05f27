package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/broady/typeormlint"
)

var styles = struct {
	File    lipgloss.Style
	Pos     lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Rule    lipgloss.Style
	Summary lipgloss.Style
}{
	File:    lipgloss.NewStyle().Bold(true).Underline(true),
	Pos:     lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F")),
	Rule:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
	Summary: lipgloss.NewStyle().Bold(true),
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Text writes diagnostics grouped by file, one per line:
//
//	src/user.ts
//	  4:3  error  Type of name in User is not matching ...  enforce-column-types
type Text struct {
	Color bool
}

func (t *Text) style(s lipgloss.Style, text string) string {
	if !t.Color {
		return text
	}
	return s.Render(text)
}

func (t *Text) Report(w io.Writer, diags []typeormlint.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	file := ""
	for _, d := range diags {
		if d.File != file {
			if file != "" {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			file = d.File
			if _, err := fmt.Fprintln(w, t.style(styles.File, file)); err != nil {
				return err
			}
		}
		sev := t.style(styles.Error, "error")
		if d.Severity == typeormlint.SeverityWarn {
			sev = t.style(styles.Warning, "warn ")
		}
		_, err := fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			t.style(styles.Pos, fmt.Sprintf("%-7s", d.Pos)),
			sev, d.Message, t.style(styles.Rule, d.Rule))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", t.style(styles.Summary, Summarize(diags).String()))
	return err
}
