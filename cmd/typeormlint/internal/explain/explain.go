// Package explain implements the explain command, which shows how a
// single decorator and annotation pair is normalized and compared.
package explain

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/canon"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/equiv"
	"github.com/broady/typeormlint/frontend"
	"github.com/broady/typeormlint/internal/typeexpr"
	"github.com/broady/typeormlint/persist"
	"github.com/broady/typeormlint/report"
	"github.com/broady/typeormlint/tsast"
)

// Cmd explains one comparison.
type Cmd struct {
	Column           string `help:"Decorator call, e.g. \"@Column({ type: 'int', nullable: true })\"." required:""`
	Type             string `help:"Type annotation, e.g. \"number | null\"." required:"" name:"type"`
	Driver           string `help:"Database driver (postgres, mysql, sqlite)." default:"postgres" enum:"postgres,mysql,sqlite"`
	SpecifyUndefined bool   `help:"Keep undefined in suggestions." name:"specify-undefined"`
	JSON             bool   `help:"Print JSON." name:"json"`
}

// Run executes the explain command.
func (c *Cmd) Run() error {
	opts := typeormlint.Options{Driver: c.Driver}
	if c.SpecifyUndefined {
		opts.SpecifyUndefined = "always"
	}
	e, err := Explain(context.Background(), c.Column, c.Type, opts)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}
	return e.Print(os.Stdout, report.ColorEnabled(os.Stdout))
}

// Explanation is the outcome of comparing one decorator with one
// annotation.
type Explanation struct {
	Decorator   string `json:"decorator"`
	Persistence string `json:"persistence"`
	Static      string `json:"static"`
	Verdict     string `json:"verdict"`
	Suggestion  string `json:"suggestion,omitempty"`
	// Node is the parsed annotation; it is only part of the JSON form.
	Node tsast.TypeNode `json:"node"`
}

var labelStyle = lipgloss.NewStyle().Bold(true)

// Print writes the explanation as aligned lines.
func (e *Explanation) Print(w io.Writer, color bool) error {
	rows := [][2]string{
		{"decorator", e.Decorator},
		{"persistence", e.Persistence},
		{"annotation", e.Static},
		{"verdict", e.Verdict},
	}
	if e.Suggestion != "" {
		rows = append(rows, [2]string{"suggestion", e.Suggestion})
	}
	for _, r := range rows {
		label := fmt.Sprintf("%-12s", r[0]+":")
		if color {
			label = labelStyle.Render(label)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", label, r[1]); err != nil {
			return err
		}
	}
	return nil
}

// Explain normalizes the decorator call and annotation and compares
// them the way the column and relation rules do.
func Explain(ctx context.Context, call, annotation string, opts typeormlint.Options) (*Explanation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	typ, err := typeexpr.Parse(annotation)
	if err != nil {
		return nil, typeormlint.Errorf(typeormlint.CodeParseFailed, "invalid type %q: %v", annotation, err)
	}

	call = strings.TrimSpace(call)
	if !strings.HasPrefix(call, "@") {
		call = "@" + call
	}
	src := fmt.Sprintf("class Explained {\n  %s\n  value: %s;\n}\n", call, annotation)
	f, err := frontend.ParseSource(ctx, "explain.ts", []byte(src))
	if err != nil {
		return nil, err
	}
	if f.SyntaxErrors || len(f.Classes) != 1 || len(f.Classes[0].Properties) != 1 {
		return nil, typeormlint.Errorf(typeormlint.CodeParseFailed, "invalid decorator %q", call)
	}
	prop := f.Classes[0].Properties[0]

	kinds := append(append([]decorator.Kind{}, decorator.ColumnKinds...), decorator.RelationKinds...)
	b, ok := decorator.Find(prop.Decorators, nil, kinds...)
	if !ok {
		return nil, typeormlint.Errorf(typeormlint.CodeParseFailed, "%q is not a column or relation decorator", call)
	}

	r := equiv.Render{SpecifyUndefined: opts.UndefinedAlways()}
	static := canon.Normalizer{}.Static(typ)
	e := &Explanation{Decorator: b.Kind.String(), Static: static.String(), Node: typ}

	if b.Kind.IsColumn() {
		column := persist.Column(b.Kind, b.Args, opts.DriverName())
		e.Persistence = column.String()
		e.Verdict = equiv.None.String()
		if !equiv.ColumnsEqual(column, static) {
			e.Verdict = equiv.Mismatch.String()
			e.Suggestion, _ = equiv.ColumnSuggestion(column, static, r)
		}
		return e, nil
	}

	target, err := decorator.RelationTarget(b)
	if err != nil {
		return nil, typeormlint.NewError(typeormlint.CodeParseFailed, err.Error())
	}
	rel := persist.Relation(b.Kind, target, b.Args)
	e.Persistence = rel.String()
	e.Verdict = equiv.DiagnoseRelation(rel, static).String()
	if e.Verdict != equiv.None.String() {
		e.Suggestion, _ = equiv.RelationSuggestion(rel, static, r)
	}
	return e, nil
}
