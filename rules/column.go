package rules

import (
	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/equiv"
	"github.com/broady/typeormlint/persist"
	"github.com/broady/typeormlint/tsast"
)

// ColumnTypes reports column properties whose annotation disagrees with
// the column's database type.
type ColumnTypes struct{}

func (ColumnTypes) Meta() typeormlint.Meta {
	return typeormlint.Meta{
		Name:           ColumnTypesName,
		Description:    "TypeORM and TypeScript types should be the same on columns.",
		Type:           typeormlint.RuleProblem,
		Recommended:    true,
		HasSuggestions: true,
		Options:        []string{typeormlint.OptionDriver, typeormlint.OptionSpecifyUndefined},
		Messages:       []typeormlint.MessageID{typeormlint.MsgColumnMismatch, typeormlint.MsgColumnSuggestion},
	}
}

func (ColumnTypes) CheckProperty(pass *typeormlint.Pass, prop *tsast.Property) {
	b, ok := decorator.Find(prop.Decorators, pass.Aliases, decorator.ColumnKinds...)
	if !ok || prop.Type == nil {
		return
	}
	column := persist.Column(b.Kind, b.Args, pass.Options.DriverName())
	static := pass.Normalizer().Static(prop.Type)
	if equiv.ColumnsEqual(column, static) {
		return
	}

	name := typeormlint.PropertyName(prop)
	text, ok := equiv.ColumnSuggestion(column, static, render(pass))
	d := typeormlint.Diagnostic{
		MessageID: typeormlint.MsgColumnMismatch,
		Data: map[string]string{
			"propertyName":  name,
			"className":     typeormlint.ClassSuffix(prop),
			"expectedValue": typeormlint.ExpectedSuffix(text),
		},
		Span: prop.Span,
	}
	if ok {
		d.Suggestions = append(d.Suggestions, replaceType(typeormlint.MsgColumnSuggestion, prop, name, text))
	}
	pass.Report(d)
}

func render(pass *typeormlint.Pass) equiv.Render {
	return equiv.Render{SpecifyUndefined: pass.Options.UndefinedAlways(), Wrappers: pass.Aliases}
}

// replaceType suggests replacing prop's annotation with text.
func replaceType(id typeormlint.MessageID, prop *tsast.Property, name, text string) typeormlint.Suggestion {
	return typeormlint.Suggestion{
		MessageID: id,
		Data:      map[string]string{"propertyName": name, "expectedValue": text},
		Edits:     []typeormlint.Edit{tsast.Replace(prop.Type.Span(), text)},
	}
}
