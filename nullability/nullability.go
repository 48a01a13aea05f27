// Package nullability checks whether decorators state their nullable
// option as a policy requires and edits the option in place.
package nullability

import (
	"strconv"

	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/tsast"
)

// Policy selects when nullable must be written out.
type Policy string

const (
	Disabled     Policy = ""
	Always       Policy = "always"
	NonDefault   Policy = "non-default"
	OnlyNullable Policy = "only-nullable" // synonym of NonDefault
)

// Violation is the outcome of Check.
type Violation int

const (
	OK Violation = iota
	// Missing means the policy requires nullable but it is absent.
	Missing
	// Superfluous means nullable restates the decorator's default.
	Superfluous
)

// String returns the string representation of the violation.
func (v Violation) String() string {
	switch v {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Superfluous:
		return "superfluous"
	default:
		return "unknown"
	}
}

// DefaultNullable is the nullability k implies when nullable is absent.
// Only the to-one relations default to nullable.
func DefaultNullable(k decorator.Kind) bool {
	return k == decorator.OneToOne || k == decorator.ManyToOne
}

// Check evaluates policy against a decorator's raw arguments.
func Check(policy Policy, k decorator.Kind, args decorator.Args) Violation {
	switch policy {
	case Always:
		if args.Nullable == nil {
			return Missing
		}
	case NonDefault, OnlyNullable:
		if args.Nullable != nil && *args.Nullable == DefaultNullable(k) {
			return Superfluous
		}
	}
	return OK
}

// Set returns the edits that make the call state nullable: value.
// An existing nullable is rewritten, an existing options object gets a
// new property, and otherwise an options object is appended.
func Set(d *tsast.Decorator, args decorator.Args, value bool) []tsast.Edit {
	if d == nil || !d.Call {
		return nil
	}
	lit := strconv.FormatBool(value)
	if args.NullableProp != nil {
		return []tsast.Edit{tsast.Replace(args.NullableProp.Value.Span(), lit)}
	}
	if obj := args.Options; obj != nil {
		if len(obj.Props) == 0 {
			return []tsast.Edit{tsast.Replace(obj.Span(), "{ nullable: "+lit+" }")}
		}
		last := obj.Props[len(obj.Props)-1]
		return []tsast.Edit{tsast.Insert(last.Span.End, ", nullable: "+lit)}
	}
	if len(d.Args) == 0 {
		return []tsast.Edit{tsast.Insert(d.ArgsSpan.Start+1, "{ nullable: "+lit+" }")}
	}
	last := d.Args[len(d.Args)-1]
	return []tsast.Edit{tsast.Insert(last.Span().End, ", { nullable: "+lit+" }")}
}

// Remove returns the edits that delete the nullable property. When it is
// the only property the whole options argument goes with it.
func Remove(d *tsast.Decorator, args decorator.Args) []tsast.Edit {
	prop, obj := args.NullableProp, args.NullableIn
	if d == nil || prop == nil || obj == nil {
		return nil
	}
	i := obj.Index(prop)
	if i < 0 {
		return nil
	}
	if len(obj.Props) > 1 {
		if i < len(obj.Props)-1 {
			return []tsast.Edit{tsast.Remove(tsast.Span{Start: prop.Span.Start, End: obj.Props[i+1].Span.Start})}
		}
		return []tsast.Edit{tsast.Remove(tsast.Span{Start: obj.Props[i-1].Span.End, End: prop.Span.End})}
	}
	return removeArg(d, obj)
}

func removeArg(d *tsast.Decorator, arg tsast.Expr) []tsast.Edit {
	j := -1
	for i, a := range d.Args {
		if a == arg {
			j = i
			break
		}
	}
	switch {
	case j < 0:
		return nil
	case len(d.Args) == 1:
		return []tsast.Edit{tsast.Remove(tsast.Span{Start: d.ArgsSpan.Start + 1, End: d.ArgsSpan.End - 1})}
	case j > 0:
		return []tsast.Edit{tsast.Remove(tsast.Span{Start: d.Args[j-1].Span().End, End: arg.Span().End})}
	default:
		return []tsast.Edit{tsast.Remove(tsast.Span{Start: arg.Span().Start, End: d.Args[1].Span().Start})}
	}
}
