package rules

import (
	"strconv"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/nullability"
	"github.com/broady/typeormlint/tsast"
)

// ConsistentNullability enforces when the nullable option is written.
// It is inactive unless specifyNullable is set.
type ConsistentNullability struct{}

func (ConsistentNullability) Meta() typeormlint.Meta {
	return typeormlint.Meta{
		Name:           ConsistentNullabilityName,
		Description:    "TypeORM nullability should be consistent.",
		Type:           typeormlint.RuleProblem,
		Recommended:    true,
		HasSuggestions: true,
		Options:        []string{typeormlint.OptionSpecifyNullable},
		Messages: []typeormlint.MessageID{
			typeormlint.MsgMissingNullability,
			typeormlint.MsgSuperfluousNullability,
			typeormlint.MsgSetNullable,
			typeormlint.MsgRemoveNullable,
		},
	}
}

func (ConsistentNullability) CheckProperty(pass *typeormlint.Pass, prop *tsast.Property) {
	policy := pass.Options.NullabilityPolicy()
	if policy == nullability.Disabled {
		return
	}
	b, ok := decorator.Find(prop.Decorators, pass.Aliases, decorator.NullabilityKinds...)
	if !ok || prop.Type == nil {
		return
	}

	name := typeormlint.PropertyName(prop)
	def := nullability.DefaultNullable(b.Kind)
	value := strconv.FormatBool(def)

	switch nullability.Check(policy, b.Kind, b.Args) {
	case nullability.Missing:
		span := b.Decorator.Span
		if b.Args.Options != nil {
			span = b.Args.Options.Span()
		}
		d := typeormlint.Diagnostic{
			MessageID: typeormlint.MsgMissingNullability,
			Data: map[string]string{
				"propertyName":  name,
				"className":     typeormlint.ClassSuffix(prop),
				"expectedValue": " ({ nullable: " + value + " })",
			},
			Span: span,
		}
		if edits := nullability.Set(b.Decorator, b.Args, def); len(edits) > 0 {
			d.Suggestions = append(d.Suggestions, typeormlint.Suggestion{
				MessageID: typeormlint.MsgSetNullable,
				Data:      map[string]string{"propertyName": name, "value": value},
				Edits:     edits,
			})
		}
		pass.Report(d)
	case nullability.Superfluous:
		d := typeormlint.Diagnostic{
			MessageID: typeormlint.MsgSuperfluousNullability,
			Data: map[string]string{
				"propertyName": name,
				"className":    typeormlint.ClassSuffix(prop),
				"value":        value,
			},
			Span: b.Args.NullableProp.Span,
		}
		if edits := nullability.Remove(b.Decorator, b.Args); len(edits) > 0 {
			d.Suggestions = append(d.Suggestions, typeormlint.Suggestion{
				MessageID: typeormlint.MsgRemoveNullable,
				Data:      map[string]string{"propertyName": name},
				Edits:     edits,
			})
		}
		pass.Report(d)
	}
}
