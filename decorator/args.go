package decorator

import "github.com/broady/typeormlint/tsast"

// Args is the flattened configuration of a decorator call.
// Pointer fields are nil when the key is absent, which is distinct
// from an explicit false.
type Args struct {
	// Type is the column type name; empty when not given.
	Type        string
	Nullable    *bool
	Array       *bool
	Eager       *bool
	Transformer bool

	// Options is the object literal the keys above were read from.
	Options *tsast.ObjectLit
	// NullableProp is the property that set Nullable, and NullableIn the
	// object literal holding it.
	NullableProp *tsast.Prop
	NullableIn   *tsast.ObjectLit
}

// HasNullable reports whether nullable was given explicitly.
func (a Args) HasNullable() bool { return a.Nullable != nil }

// ParseArgs flattens a decorator argument list.
//
// A positional string names the type and wins over a type key in the
// object literal. Object keys are read from every object literal
// argument in order; later ones override earlier ones. Keys whose value
// is not a literal are ignored, except transformer, which only needs to
// be present.
func ParseArgs(args []tsast.Expr) Args {
	var out Args
	positional := ""
	for _, arg := range args {
		switch arg := arg.(type) {
		case *tsast.StringLit:
			if positional == "" {
				positional = arg.Value
			}
		case *tsast.ObjectLit:
			out.Options = arg
			parseObject(arg, &out)
		}
	}
	if positional != "" {
		out.Type = positional
	}
	return out
}

func parseObject(obj *tsast.ObjectLit, out *Args) {
	for _, p := range obj.Props {
		switch p.Key {
		case "type":
			if s, ok := p.Value.(*tsast.StringLit); ok {
				out.Type = s.Value
			}
		case "nullable":
			if b, ok := boolValue(p.Value); ok {
				out.Nullable = &b
				out.NullableProp = p
				out.NullableIn = obj
			}
		case "array":
			if b, ok := boolValue(p.Value); ok {
				out.Array = &b
			}
		case "eager":
			if b, ok := boolValue(p.Value); ok {
				out.Eager = &b
			}
		case "transformer":
			switch p.Value.(type) {
			case nil, *tsast.NullLit:
			default:
				if id, ok := p.Value.(*tsast.Ident); ok && id.Name == "undefined" {
					continue
				}
				out.Transformer = true
			}
		}
	}
}

func boolValue(e tsast.Expr) (bool, bool) {
	if b, ok := e.(*tsast.BoolLit); ok {
		return b.Value, true
	}
	return false, false
}

// ObjectArg returns the first object literal among args.
func ObjectArg(args []tsast.Expr) (*tsast.ObjectLit, int, bool) {
	for i, arg := range args {
		if obj, ok := arg.(*tsast.ObjectLit); ok {
			return obj, i, true
		}
	}
	return nil, -1, false
}
