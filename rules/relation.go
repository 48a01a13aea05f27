package rules

import (
	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/canon"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/equiv"
	"github.com/broady/typeormlint/nullability"
	"github.com/broady/typeormlint/persist"
	"github.com/broady/typeormlint/tsast"
)

// RelationTypes reports relation properties whose annotation disagrees
// with the related entity, cardinality or nullability of the relation.
type RelationTypes struct{}

func (RelationTypes) Meta() typeormlint.Meta {
	return typeormlint.Meta{
		Name:           RelationTypesName,
		Description:    "TypeScript types should be consistent with the relations.",
		Type:           typeormlint.RuleProblem,
		Recommended:    true,
		HasSuggestions: true,
		Options:        []string{typeormlint.OptionSpecifyRelation, typeormlint.OptionSpecifyUndefined},
		Messages: []typeormlint.MessageID{
			typeormlint.MsgRelationMissing,
			typeormlint.MsgRelationMismatch,
			typeormlint.MsgRelationArrayToMany,
			typeormlint.MsgRelationSuggestion,
			typeormlint.MsgRelationNullableByDefault,
			typeormlint.MsgRelationNullableByDefaultSuggest,
			typeormlint.MsgRelationSpecifyRelationAlways,
			typeormlint.MsgRelationSpecifyUndefinedAlways,
		},
	}
}

func (RelationTypes) CheckProperty(pass *typeormlint.Pass, prop *tsast.Property) {
	b, ok := decorator.Find(prop.Decorators, pass.Aliases, decorator.RelationKinds...)
	if !ok {
		return
	}
	name := typeormlint.PropertyName(prop)
	relation := b.Kind.String()

	target, err := decorator.RelationTarget(b)
	if err != nil {
		pass.Report(typeormlint.Diagnostic{
			MessageID: typeormlint.MsgRelationMissing,
			Data: map[string]string{
				"relation":     relation,
				"propertyName": name,
				"className":    typeormlint.ClassSuffix(prop),
			},
			Span: prop.Span,
		})
		return
	}
	if prop.Type == nil {
		return
	}

	rel := persist.Relation(b.Kind, target, b.Args)
	static := pass.Normalizer().Static(prop.Type)
	static.OptionalUndefined = static.OptionalUndefined || prop.Optional
	r := render(pass)

	if !equiv.RelationsEqual(rel, static) {
		text, ok := equiv.RelationSuggestion(rel, static, r)
		d := typeormlint.Diagnostic{
			MessageID: typeormlint.MsgRelationMismatch,
			Data: map[string]string{
				"relation":      relation,
				"propertyName":  name,
				"className":     typeormlint.ClassSuffix(prop),
				"expectedValue": typeormlint.ExpectedSuffix(text),
			},
			Span: prop.Span,
		}
		if ok {
			d.Suggestions = append(d.Suggestions, replaceType(typeormlint.MsgRelationSuggestion, prop, name, text))
		}
		switch equiv.DiagnoseRelation(rel, static) {
		case equiv.MissingArray:
			d.MessageID = typeormlint.MsgRelationArrayToMany
		case equiv.MissingNullable:
			d.MessageID = typeormlint.MsgRelationNullableByDefault
			if edits := nullability.Set(b.Decorator, b.Args, false); len(edits) > 0 {
				d.Suggestions = append(d.Suggestions, typeormlint.Suggestion{
					MessageID: typeormlint.MsgRelationNullableByDefaultSuggest,
					Data:      map[string]string{"relation": relation},
					Edits:     edits,
				})
			}
		}
		pass.Report(d)
	}

	if pass.Options.RelationAlways() && equiv.NeedsWrapper(static) {
		wrapped := static
		wrapped.Wrapped = true
		pass.Report(expectShape(typeormlint.MsgRelationSpecifyRelationAlways, prop, name, rel, wrapped, r))
	}

	if pass.Options.UndefinedAlways() && equiv.NeedsUndefined(rel, static) {
		fixed := static
		fixed.OptionalUndefined = !rel.Eager
		pass.Report(expectShape(typeormlint.MsgRelationSpecifyUndefinedAlways, prop, name, rel, fixed, r))
	}
}

// expectShape reports id with a suggestion to rewrite the annotation
// into want.
func expectShape(id typeormlint.MessageID, prop *tsast.Property, name string, rel canon.RelationType, want canon.StaticType, r equiv.Render) typeormlint.Diagnostic {
	text, ok := equiv.RelationSuggestion(rel, want, r)
	d := typeormlint.Diagnostic{
		MessageID: id,
		Data: map[string]string{
			"propertyName":  name,
			"expectedValue": typeormlint.ExpectedSuffix(text),
		},
		Span: prop.Span,
	}
	if ok {
		d.Suggestions = append(d.Suggestions, replaceType(typeormlint.MsgRelationSuggestion, prop, name, text))
	}
	return d
}
