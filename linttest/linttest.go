// Package linttest provides helpers for testing typeormlint rules.
//
// A rule is run against valid sources, which must produce no
// diagnostics, and invalid sources, whose diagnostics, suggestions and
// fix output are compared against expectations:
//
//	linttest.Run(t, rules.ColumnTypes{}, typeormlint.Options{}, linttest.Cases{
//		Valid: []linttest.Valid{{Code: src}},
//		Invalid: []linttest.Invalid{{
//			Code:   bad,
//			Errors: []linttest.Error{{MessageID: typeormlint.MsgColumnMismatch}},
//		}},
//	})
//
// Cases can also be loaded from txtar archives with LoadArchive.
package linttest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/frontend"
	"github.com/broady/typeormlint/report"
	"github.com/broady/typeormlint/tsast"
)

// FileName is the path test sources are parsed under.
const FileName = "entity.ts"

// Valid is a source the rule must accept.
type Valid struct {
	Name    string
	Code    string
	Options typeormlint.Options
}

// Invalid is a source the rule must report.
type Invalid struct {
	Name    string
	Code    string
	Options typeormlint.Options
	Errors  []Error
	// Output is the source after applying every direct fix. Empty means
	// no fix is expected.
	Output string
}

// Error is one expected diagnostic.
type Error struct {
	MessageID typeormlint.MessageID
	// Line is checked when non-zero.
	Line int
	// Suggestions are the sources after applying each suggestion in
	// turn. They are checked when non-nil.
	Suggestions []string
}

// Cases groups the valid and invalid sources for one rule.
type Cases struct {
	Valid   []Valid
	Invalid []Invalid
}

// Run lints every case with rule configured at error severity. opts
// applies to every case; a case's own options override it.
func Run(t *testing.T, rule typeormlint.Rule, opts typeormlint.Options, cases Cases) {
	t.Helper()
	for i, tc := range cases.Valid {
		t.Run(caseName("valid", i, tc.Name), func(t *testing.T) {
			diags := Lint(t, rule, opts.Merge(tc.Options), tc.Code)
			if len(diags) != 0 {
				t.Errorf("expected no diagnostics, got %d:\n%s", len(diags), describe(diags))
			}
		})
	}
	for i, tc := range cases.Invalid {
		t.Run(caseName("invalid", i, tc.Name), func(t *testing.T) {
			checkInvalid(t, rule, opts.Merge(tc.Options), tc)
		})
	}
}

func caseName(kind string, i int, name string) string {
	if name != "" {
		return kind + "/" + name
	}
	return fmt.Sprintf("%s/%d", kind, i)
}

// Lint parses code and runs rule over it.
func Lint(t *testing.T, rule typeormlint.Rule, opts typeormlint.Options, code string) []typeormlint.Diagnostic {
	t.Helper()
	file := Parse(t, code)
	name := rule.Meta().Name
	l := typeormlint.NewLinter(typeormlint.NewRegistry().MustRegister(rule)).
		WithChecker(frontend.NewSymbolTable(file))
	if err := l.Configure(name, typeormlint.RuleConfig{Severity: typeormlint.SeverityError, Options: opts}); err != nil {
		t.Fatalf("configure %s: %v", name, err)
	}
	diags, err := l.Lint(context.Background(), file)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	return diags
}

// Parse parses code as FileName and fails the test on syntax errors.
func Parse(t *testing.T, code string) *tsast.File {
	t.Helper()
	file, err := frontend.ParseSource(context.Background(), FileName, []byte(code))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if file.SyntaxErrors {
		t.Fatalf("source has syntax errors:\n%s", code)
	}
	return file
}

func checkInvalid(t *testing.T, rule typeormlint.Rule, opts typeormlint.Options, tc Invalid) {
	t.Helper()
	diags := Lint(t, rule, opts, tc.Code)
	if len(diags) != len(tc.Errors) {
		t.Fatalf("expected %d diagnostics, got %d:\n%s", len(tc.Errors), len(diags), describe(diags))
	}
	for i, want := range tc.Errors {
		got := diags[i]
		if got.MessageID != want.MessageID {
			t.Errorf("diagnostic %d: expected message %s, got %s (%s)", i, want.MessageID, got.MessageID, got.Message)
		}
		if want.Line != 0 && got.Pos.Line != want.Line {
			t.Errorf("diagnostic %d: expected line %d, got %d", i, want.Line, got.Pos.Line)
		}
		if strings.Contains(got.Message, "{{") {
			t.Errorf("diagnostic %d: message has unfilled placeholders: %q", i, got.Message)
		}
		if want.Suggestions == nil {
			continue
		}
		if len(got.Suggestions) != len(want.Suggestions) {
			t.Errorf("diagnostic %d: expected %d suggestions, got %d", i, len(want.Suggestions), len(got.Suggestions))
			continue
		}
		for j, s := range got.Suggestions {
			out := apply(t, tc.Code, s.Edits)
			if out != want.Suggestions[j] {
				t.Errorf("diagnostic %d suggestion %d (%s):\n got: %q\nwant: %q", i, j, s.Message, out, want.Suggestions[j])
			}
		}
	}

	output := tc.Code
	if set := report.SelectFixes(diags, -1)[FileName]; set != nil {
		output = apply(t, tc.Code, set.Edits)
	}
	want := tc.Output
	if want == "" {
		want = tc.Code
	}
	if output != want {
		t.Errorf("fix output:\n got: %q\nwant: %q", output, want)
	}
}

// apply splices edits into code and checks the result still parses.
func apply(t *testing.T, code string, edits []typeormlint.Edit) string {
	t.Helper()
	out, err := report.Apply([]byte(code), edits)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	Parse(t, string(out))
	return string(out)
}

func describe(diags []typeormlint.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "  %s %s: %s\n", d.Pos, d.MessageID, d.Message)
	}
	return b.String()
}
