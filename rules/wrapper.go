package rules

import (
	"strings"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/internal/typeexpr"
	"github.com/broady/typeormlint/tsast"
)

// RelationWrapper asks for relation annotations to go through the
// Relation<...> wrapper, and for the wrapper to be imported alongside
// relation decorators.
type RelationWrapper struct{}

func (RelationWrapper) Meta() typeormlint.Meta {
	return typeormlint.Meta{
		Name:           RelationWrapperName,
		Description:    "Avoid statically typed relations and prefer the Relation<...>-wrapper.",
		Type:           typeormlint.RuleSuggestion,
		Fixable:        true,
		HasSuggestions: true,
		Messages:       []typeormlint.MessageID{typeormlint.MsgPreferRelation, typeormlint.MsgExpectedRelation},
	}
}

func (RelationWrapper) CheckFile(pass *typeormlint.Pass) {
	for _, imp := range pass.File.ImportsFrom(decorator.ORMModule) {
		named := imp.Named()
		if imp.TypeOnly || len(named) == 0 {
			continue
		}
		needsWrapper, hasWrapper := false, false
		for _, s := range named {
			if k, ok := decorator.ParseKind(s.Imported); ok && k.IsRelation() {
				needsWrapper = true
			}
			if s.Imported == decorator.RelationWrapper {
				hasWrapper = true
			}
		}
		if needsWrapper && !hasWrapper {
			last := named[len(named)-1]
			pass.Report(typeormlint.Diagnostic{
				MessageID: typeormlint.MsgExpectedRelation,
				Span:      imp.Span,
				Fix:       []typeormlint.Edit{tsast.Insert(last.Span.End, ", "+decorator.RelationWrapper)},
			})
		}
	}
}

func (RelationWrapper) CheckProperty(pass *typeormlint.Pass, prop *tsast.Property) {
	if prop.Type == nil {
		return
	}
	if _, ok := decorator.Find(prop.Decorators, pass.Aliases, decorator.RelationKinds...); !ok {
		return
	}

	var wrapped, unwrapped []tsast.TypeNode
	if !splitWrapping(pass.Aliases, prop.Type, &wrapped, &unwrapped) {
		return
	}
	parts := make([]string, len(wrapped))
	for i, n := range wrapped {
		parts[i] = pass.Text(n.Span())
	}
	replacement := []string{pass.Aliases.RelationName() + "<" + strings.Join(parts, " | ") + ">"}
	for _, n := range unwrapped {
		replacement = append(replacement, pass.Text(n.Span()))
	}
	text := strings.Join(replacement, " | ")

	d := typeormlint.Diagnostic{
		MessageID: typeormlint.MsgPreferRelation,
		Span:      prop.Type.Span(),
	}
	if _, err := typeexpr.Parse(text); err == nil {
		d.Fix = []typeormlint.Edit{tsast.Replace(prop.Type.Span(), text)}
	}
	pass.Report(d)
}

// splitWrapping sorts the union members of n into type references that
// should move into the wrapper and everything else. Members already
// inside the wrapper are walked but never require a fix. It reports
// whether any reference sits outside the wrapper.
func splitWrapping(aliases *decorator.Aliases, n tsast.TypeNode, wrapped, unwrapped *[]tsast.TypeNode) bool {
	switch t := tsast.Unparen(n).(type) {
	case *tsast.Union:
		fix := false
		for _, m := range t.Members {
			fix = splitWrapping(aliases, m, wrapped, unwrapped) || fix
		}
		return fix
	case *tsast.Reference:
		if aliases.Wrapper(t.Name) == decorator.WrapperRelation && len(t.TypeArgs) == 1 {
			splitWrapping(aliases, t.TypeArgs[0], wrapped, unwrapped)
			return false
		}
		*wrapped = append(*wrapped, t)
		return true
	default:
		*unwrapped = append(*unwrapped, n)
		return false
	}
}
