package decorator

import (
	"errors"
	"strings"

	"github.com/broady/typeormlint/tsast"
)

// ErrMissingRelationType is returned by RelationTarget when a relation
// decorator has no arrow function naming the related entity.
var ErrMissingRelationType = errors.New("relation has no arrow function returning the entity type")

// Binding is the decorator that applies to a property.
type Binding struct {
	Kind Kind
	// Name is the callee as written in the source.
	Name      string
	Decorator *tsast.Decorator
	Args      Args
}

// Find returns the first decorator, in source order, whose callee
// resolves to one of kinds. Decorators are resolved through aliases.
func Find(decorators []*tsast.Decorator, aliases *Aliases, kinds ...Kind) (Binding, bool) {
	for _, d := range decorators {
		if !d.Call {
			continue
		}
		k, ok := aliases.Kind(d.Name)
		if !ok {
			continue
		}
		for _, want := range kinds {
			if k == want {
				return Binding{Kind: k, Name: d.Name, Decorator: d, Args: ParseArgs(d.Args)}, true
			}
		}
	}
	return Binding{}, false
}

// RelationTarget returns the entity name returned by the relation's
// first argument, which must be an arrow function whose body is a bare
// identifier.
func RelationTarget(b Binding) (string, error) {
	if b.Decorator == nil || len(b.Decorator.Args) == 0 {
		return "", ErrMissingRelationType
	}
	fn, ok := b.Decorator.Args[0].(*tsast.ArrowFunc)
	if !ok {
		return "", ErrMissingRelationType
	}
	id, ok := fn.Body.(*tsast.Ident)
	if !ok || id.Name == "" {
		return "", ErrMissingRelationType
	}
	return id.Name, nil
}

// ORMModule is the module specifier the decorators are imported from.
const ORMModule = "typeorm"

// Wrapper identifies a single-argument generic with special meaning.
type Wrapper int

const (
	WrapperNone     Wrapper = iota
	WrapperLazy             // Promise<T>: lazily loaded relation
	WrapperRelation         // Relation<T>: breaks circular imports
)

// RelationWrapper is the name the ORM exports its wrapper type under.
const RelationWrapper = "Relation"

// Aliases resolves local names to the ORM exports they refer to.
// It is built once per file from its import declarations and is read
// only afterwards.
type Aliases struct {
	kinds      map[string]Kind
	shadowed   map[string]bool
	namespaces map[string]bool
	relation   []string
	imported   map[string]*tsast.ImportSpecifier
}

// CollectAliases scans imports for bindings from the ORM module.
// Names not bound by any import resolve to themselves.
func CollectAliases(imports []*tsast.Import) *Aliases {
	a := &Aliases{
		kinds:      make(map[string]Kind),
		shadowed:   make(map[string]bool),
		namespaces: make(map[string]bool),
		imported:   make(map[string]*tsast.ImportSpecifier),
	}
	for _, imp := range imports {
		for _, s := range imp.Specifiers {
			if imp.Module != ORMModule {
				a.shadowed[s.Local] = true
				continue
			}
			switch s.Imported {
			case tsast.NamespaceImport:
				a.namespaces[s.Local] = true
				continue
			case tsast.DefaultImport:
				continue
			}
			a.imported[s.Imported] = s
			if k, ok := ParseKind(s.Imported); ok {
				a.kinds[s.Local] = k
			}
			if s.Imported == RelationWrapper {
				a.relation = append(a.relation, s.Local)
			}
		}
	}
	return a
}

// Kind resolves a decorator callee name.
func (a *Aliases) Kind(name string) (Kind, bool) {
	if a == nil {
		return ParseKind(name)
	}
	if k, ok := a.kinds[name]; ok {
		return k, true
	}
	if ns, member, ok := strings.Cut(name, "."); ok && a.namespaces[ns] {
		return ParseKind(member)
	}
	if a.shadowed[name] {
		return KindUnknown, false
	}
	return ParseKind(name)
}

// Wrapper resolves a generic type name.
func (a *Aliases) Wrapper(name string) Wrapper {
	if name == "Promise" {
		return WrapperLazy
	}
	if a == nil {
		if name == RelationWrapper {
			return WrapperRelation
		}
		return WrapperNone
	}
	for _, local := range a.relation {
		if name == local {
			return WrapperRelation
		}
	}
	if ns, member, ok := strings.Cut(name, "."); ok && a.namespaces[ns] && member == RelationWrapper {
		return WrapperRelation
	}
	if name == RelationWrapper && !a.shadowed[name] {
		return WrapperRelation
	}
	return WrapperNone
}

// RelationName is the local name to write the relation wrapper under.
func (a *Aliases) RelationName() string {
	if a != nil && len(a.relation) > 0 {
		return a.relation[0]
	}
	return RelationWrapper
}

// Imported returns the specifier importing name from the ORM module.
func (a *Aliases) Imported(name string) (*tsast.ImportSpecifier, bool) {
	if a == nil {
		return nil, false
	}
	s, ok := a.imported[name]
	return s, ok
}
