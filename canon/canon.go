// Package canon defines the canonical shapes that persistence metadata
// and static type annotations are reduced to before comparison.
package canon

import (
	"fmt"
	"strings"
)

// Category is the coarse value type of a column or annotation.
type Category int

const (
	Unknown Category = iota
	String
	Number
	Boolean
	Temporal
	// Reference is a named type other than the temporal built-in.
	// It only appears on the static side.
	Reference
)

// String returns the lower-case name of the category.
func (c Category) String() string {
	switch c {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Temporal:
		return "temporal"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// TypeScript returns the type keyword that represents c, or "" for
// categories without one.
func (c Category) TypeScript() string {
	switch c {
	case String, Number, Boolean:
		return c.String()
	case Temporal:
		return "Date"
	default:
		return ""
	}
}

// Column returns c as seen by column comparison, where references
// carry no category.
func (c Category) Column() Category {
	if c == Reference {
		return Unknown
	}
	return c
}

// ColumnType is the normalized persistence type of a column.
type ColumnType struct {
	Category Category
	Nullable bool
	Array    bool
	// WeirdNumeric marks storage types whose runtime representation
	// depends on the database driver.
	WeirdNumeric bool
}

func (c ColumnType) String() string {
	return fmt.Sprintf("column{%s%s}", c.Category, flags(
		flag{"nullable", c.Nullable}, flag{"array", c.Array}, flag{"weird", c.WeirdNumeric}))
}

// RelationType is the normalized persistence type of a relation.
type RelationType struct {
	// Name is the related entity.
	Name     string
	Array    bool
	Nullable bool
	Eager    bool
}

func (r RelationType) String() string {
	return fmt.Sprintf("relation{%s%s}", r.Name, flags(
		flag{"nullable", r.Nullable}, flag{"array", r.Array}, flag{"eager", r.Eager}))
}

// StaticType is the normalized form of a type annotation.
type StaticType struct {
	Category Category
	// RefName is the referenced type name when Category is Reference.
	RefName           string
	Nullable          bool
	OptionalUndefined bool
	Array             bool
	Literal           bool
	Lazy              bool
	Wrapped           bool
}

func (s StaticType) String() string {
	name := s.Category.String()
	if s.Category == Reference {
		name = s.RefName
	}
	return fmt.Sprintf("static{%s%s}", name, flags(
		flag{"nullable", s.Nullable}, flag{"undefined", s.OptionalUndefined}, flag{"array", s.Array},
		flag{"literal", s.Literal}, flag{"lazy", s.Lazy}, flag{"wrapped", s.Wrapped}))
}

// Zero is the identity of Combine: unknown with every flag cleared.
var Zero StaticType

// Combine merges two union members. Flags are OR-ed and the category
// is taken from a unless a is unknown. Combine is associative with
// Zero as identity, so a union folds left to right regardless of how
// its members are grouped.
func Combine(a, b StaticType) StaticType {
	out := a
	if a.Category == Unknown {
		out.Category = b.Category
		out.RefName = b.RefName
	}
	out.Nullable = a.Nullable || b.Nullable
	out.OptionalUndefined = a.OptionalUndefined || b.OptionalUndefined
	out.Array = a.Array || b.Array
	out.Literal = a.Literal || b.Literal
	out.Lazy = a.Lazy || b.Lazy
	out.Wrapped = a.Wrapped || b.Wrapped
	return out
}

// CombineAll folds members with Combine, starting from Zero.
func CombineAll(members ...StaticType) StaticType {
	acc := Zero
	for _, m := range members {
		acc = Combine(acc, m)
	}
	return acc
}

type flag struct {
	name string
	set  bool
}

func flags(fs ...flag) string {
	var sb strings.Builder
	for _, f := range fs {
		if f.set {
			sb.WriteByte(' ')
			sb.WriteString(f.name)
		}
	}
	return sb.String()
}
