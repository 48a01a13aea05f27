// Package report renders diagnostics and applies their fixes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/broady/typeormlint"
)

// Format selects a Reporter.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", typeormlint.Errorf(typeormlint.CodeConfigInvalid, "unknown format %q", s).
		WithDetail("format", s)
}

// Reporter writes a set of diagnostics.
type Reporter interface {
	Report(w io.Writer, diags []typeormlint.Diagnostic) error
}

// New returns the reporter for f. color only affects text output.
func New(f Format, color bool) (Reporter, error) {
	switch f {
	case FormatText, "":
		return &Text{Color: color}, nil
	case FormatJSON:
		return &JSON{Indent: "  "}, nil
	}
	return nil, fmt.Errorf("report: unsupported format %q", f)
}

// Summary counts diagnostics by severity.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixable  int `json:"fixable"`
}

// Summarize counts diags.
func Summarize(diags []typeormlint.Diagnostic) Summary {
	var s Summary
	files := make(map[string]bool)
	for _, d := range diags {
		files[d.File] = true
		switch d.Severity {
		case typeormlint.SeverityError:
			s.Errors++
		case typeormlint.SeverityWarn:
			s.Warnings++
		}
		if len(d.Fix) > 0 || len(d.Suggestions) > 0 {
			s.Fixable++
		}
	}
	s.Files = len(files)
	return s
}

// Problems is the total number of diagnostics.
func (s Summary) Problems() int { return s.Errors + s.Warnings }

func (s Summary) String() string {
	return fmt.Sprintf("%d %s (%d %s, %d %s)",
		s.Problems(), plural(s.Problems(), "problem"),
		s.Errors, plural(s.Errors, "error"),
		s.Warnings, plural(s.Warnings, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
