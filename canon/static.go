package canon

import (
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/tsast"
)

// maxDepth bounds recursion through type aliases resolved by a Checker.
const maxDepth = 32

// WrapperResolver maps a generic type name to its wrapper meaning.
// *decorator.Aliases implements it.
type WrapperResolver interface {
	Wrapper(name string) decorator.Wrapper
}

// Normalizer reduces type annotations to StaticType.
// The zero value recognizes unaliased wrapper names and works
// syntactically.
type Normalizer struct {
	Wrappers WrapperResolver
	// Checker refines references when available.
	Checker tsast.Checker
}

// Static normalizes a type annotation. A nil node is unknown.
func (n Normalizer) Static(node tsast.TypeNode) StaticType {
	return n.static(node, 0)
}

func (n Normalizer) wrapper(name string) decorator.Wrapper {
	if n.Wrappers == nil {
		var a *decorator.Aliases
		return a.Wrapper(name)
	}
	return n.Wrappers.Wrapper(name)
}

func (n Normalizer) static(node tsast.TypeNode, depth int) StaticType {
	if depth > maxDepth {
		return Zero
	}
	switch node := node.(type) {
	case *tsast.Keyword:
		return keyword(node.Name)
	case *tsast.Reference:
		return n.reference(node, depth)
	case *tsast.Array:
		s := n.static(node.Element, depth+1)
		s.Array = true
		return s
	case *tsast.Union:
		acc := Zero
		for _, m := range node.Members {
			acc = Combine(acc, n.static(m, depth+1))
		}
		return acc
	case *tsast.Parenthesized:
		return n.static(node.Inner, depth+1)
	case *tsast.Literal:
		switch node.LitKind {
		case tsast.LiteralString:
			return StaticType{Category: String, Literal: true}
		case tsast.LiteralNumber, tsast.LiteralBigInt:
			return StaticType{Category: Number, Literal: true}
		case tsast.LiteralBoolean:
			return StaticType{Category: Boolean, Literal: true}
		default:
			return StaticType{Literal: true}
		}
	case *tsast.TemplateLiteral:
		return StaticType{Category: String, Literal: true}
	default:
		return Zero
	}
}

func keyword(name string) StaticType {
	switch name {
	case tsast.KeywordString:
		return StaticType{Category: String}
	case tsast.KeywordNumber, tsast.KeywordBigInt:
		return StaticType{Category: Number}
	case tsast.KeywordBoolean:
		return StaticType{Category: Boolean}
	case tsast.KeywordNull:
		return StaticType{Nullable: true}
	case tsast.KeywordUndefined:
		return StaticType{OptionalUndefined: true}
	default:
		return Zero
	}
}

func (n Normalizer) reference(ref *tsast.Reference, depth int) StaticType {
	if len(ref.TypeArgs) == 1 {
		switch n.wrapper(ref.Name) {
		case decorator.WrapperLazy:
			s := n.static(ref.TypeArgs[0], depth+1)
			s.Lazy = true
			return s
		case decorator.WrapperRelation:
			s := n.static(ref.TypeArgs[0], depth+1)
			s.Wrapped = true
			return s
		}
		if ref.Name == "Array" || ref.Name == "ReadonlyArray" {
			s := n.static(ref.TypeArgs[0], depth+1)
			s.Array = true
			return s
		}
	}
	name := ref.Name
	if n.Checker != nil {
		if sym, ok := n.Checker.ResolveReference(ref); ok {
			if sym.Type != nil {
				return n.static(sym.Type, depth+1)
			}
			name = sym.Name
		}
	}
	if name == "Date" {
		return StaticType{Category: Temporal}
	}
	return StaticType{Category: Reference, RefName: name}
}
