// Package equiv decides whether a persistence type and a static type
// agree, classifies disagreements and synthesizes replacement
// annotations.
package equiv

import (
	"github.com/broady/typeormlint/canon"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/internal/typeexpr"
)

// Diagnosis classifies a disagreement between the two sides.
type Diagnosis int

const (
	None Diagnosis = iota
	Mismatch
	MissingArray
	MissingNullable
	MissingWrapper
	MissingUndefined
)

// String returns the string representation of the diagnosis.
func (d Diagnosis) String() string {
	switch d {
	case None:
		return "none"
	case Mismatch:
		return "mismatch"
	case MissingArray:
		return "missing-array"
	case MissingNullable:
		return "missing-nullable"
	case MissingWrapper:
		return "missing-wrapper"
	case MissingUndefined:
		return "missing-undefined"
	default:
		return "unknown"
	}
}

// Render controls how replacement annotations are written.
type Render struct {
	// SpecifyUndefined appends "| undefined" when the annotation had it.
	SpecifyUndefined bool
	// Wrappers resolves wrapper names when re-reading a suggestion and
	// names the relation wrapper when writing one.
	Wrappers *decorator.Aliases
}

func (r Render) normalizer() canon.Normalizer {
	return canon.Normalizer{Wrappers: r.Wrappers}
}

// ColumnsEqual reports whether a column and its annotation agree.
//
// When either category is unknown only nullability is compared.
// A temporal column matches a string annotation. Otherwise category,
// nullability and array-ness must all match.
func ColumnsEqual(p canon.ColumnType, s canon.StaticType) bool {
	sc := s.Category.Column()
	if p.Category == canon.Unknown || sc == canon.Unknown {
		return p.Nullable == s.Nullable
	}
	if p.Category == canon.Temporal && sc == canon.String &&
		p.Nullable == s.Nullable && p.Array == s.Array {
		return true
	}
	return p.Category == sc && p.Nullable == s.Nullable && p.Array == s.Array
}

// ColumnSuggestion returns the annotation a column implies. The
// category comes from the column, or from the annotation when the
// column's is unknown. Nothing is suggested for unknown categories or
// literal annotations.
func ColumnSuggestion(p canon.ColumnType, s canon.StaticType, r Render) (string, bool) {
	cat := p.Category
	if cat == canon.Unknown {
		cat = s.Category.Column()
	}
	if cat == canon.Unknown || s.Literal {
		return "", false
	}
	text := cat.TypeScript()
	if p.Array {
		text += "[]"
	}
	if p.Nullable {
		text += " | null"
	}
	if r.SpecifyUndefined && s.OptionalUndefined {
		text += " | undefined"
	}
	want := canon.StaticType{Category: cat, Nullable: p.Nullable, Array: p.Array}
	if !roundTrips(text, want, r) {
		return "", false
	}
	return text, true
}

// relationName returns the entity an annotation names. It is false when
// the annotation says nothing a relation could be compared with.
func relationName(s canon.StaticType) (string, bool) {
	switch s.Category {
	case canon.Reference:
		return s.RefName, true
	case canon.Unknown:
		return "", s.Nullable || s.Array
	default:
		return s.Category.TypeScript(), true
	}
}

// RelationsEqual reports whether a relation and its annotation agree.
// Undeterminable annotations are treated as equal.
func RelationsEqual(p canon.RelationType, s canon.StaticType) bool {
	name, ok := relationName(s)
	if !ok || p.Name == "" {
		return true
	}
	return p.Name == name && p.Nullable == s.Nullable && p.Array == s.Array
}

// DiagnoseRelation classifies a relation disagreement. It returns None
// when the sides agree. A nullable relation with a non-nullable
// annotation of the same entity is MissingNullable, which takes
// priority over MissingArray.
func DiagnoseRelation(p canon.RelationType, s canon.StaticType) Diagnosis {
	if RelationsEqual(p, s) {
		return None
	}
	name, _ := relationName(s)
	if p.Name == name {
		if p.Nullable && !s.Nullable {
			return MissingNullable
		}
		if p.Array && !s.Array {
			return MissingArray
		}
	}
	return Mismatch
}

// NeedsWrapper reports whether an annotation lacks the relation wrapper.
func NeedsWrapper(s canon.StaticType) bool { return !s.Wrapped }

// NeedsUndefined reports whether an annotation's undefined-ness is
// wrong for the relation: non-eager relations are undefined until
// loaded, eager ones never are. Lazy relations are exempt.
func NeedsUndefined(p canon.RelationType, s canon.StaticType) bool {
	return s.OptionalUndefined == p.Eager && !s.Lazy
}

// RelationSuggestion returns the annotation a relation implies, keeping
// the wrapper and lazy forms of s.
func RelationSuggestion(p canon.RelationType, s canon.StaticType, r Render) (string, bool) {
	if p.Name == "" {
		return "", false
	}
	text := p.Name
	if p.Array {
		text += "[]"
	}
	if s.Wrapped {
		text = r.Wrappers.RelationName() + "<" + text + ">"
	}
	if p.Nullable {
		text += " | null"
	}
	if s.Lazy {
		text = "Promise<" + text + ">"
	}
	if r.SpecifyUndefined && s.OptionalUndefined {
		text += " | undefined"
	}
	want := canon.StaticType{
		Category: canon.Reference, RefName: p.Name,
		Nullable: p.Nullable, Array: p.Array, Lazy: s.Lazy, Wrapped: s.Wrapped,
	}
	if !roundTrips(text, want, r) {
		return "", false
	}
	return text, true
}

// roundTrips re-reads a suggestion and checks that it normalizes back
// to the shape it was written from.
func roundTrips(text string, want canon.StaticType, r Render) bool {
	node, err := typeexpr.Parse(text)
	if err != nil {
		return false
	}
	got := r.normalizer().Static(node)
	got.OptionalUndefined = false
	return got == want
}
