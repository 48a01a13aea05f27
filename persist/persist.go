// Package persist derives canonical persistence types from ORM decorator
// arguments.
package persist

import (
	"github.com/broady/typeormlint/canon"
	"github.com/broady/typeormlint/decorator"
)

// Defaults are the implicit type name and nullability of a decorator.
type Defaults struct {
	Type     string
	Nullable bool
}

// DefaultsFor returns the implicit settings of k. Plain and primary
// columns have none.
func DefaultsFor(k decorator.Kind) Defaults {
	switch k {
	case decorator.PrimaryGeneratedColumn, decorator.VersionColumn:
		return Defaults{Type: "integer"}
	case decorator.CreateDateColumn, decorator.UpdateDateColumn:
		return Defaults{Type: "datetime"}
	case decorator.DeleteDateColumn:
		return Defaults{Type: "datetime", Nullable: true}
	case decorator.Column, decorator.PrimaryColumn:
		return Defaults{}
	case decorator.OneToOne, decorator.ManyToOne:
		return Defaults{Nullable: true}
	case decorator.OneToMany, decorator.ManyToMany, decorator.KindUnknown:
		return Defaults{}
	}
	return Defaults{}
}

// Column normalizes a column decorator. A transformer makes the stored
// type opaque, so the category is unknown whenever one is present.
func Column(k decorator.Kind, args decorator.Args, driver string) canon.ColumnType {
	def := DefaultsFor(k)
	name := def.Type
	if args.Type != "" {
		name = args.Type
	}
	out := canon.ColumnType{
		Nullable:     def.Nullable,
		WeirdNumeric: IsWeirdNumeric(name),
	}
	if args.Nullable != nil {
		out.Nullable = *args.Nullable
	}
	if args.Array != nil {
		out.Array = *args.Array
	}
	if name != "" && !args.Transformer {
		out.Category = Lookup(name, driver)
	}
	return out
}

// Relation normalizes a relation decorator targeting entity.
// To-many relations are non-null arrays; to-one relations are nullable
// unless nullable is set explicitly.
func Relation(k decorator.Kind, entity string, args decorator.Args) canon.RelationType {
	out := canon.RelationType{Name: entity}
	if args.Eager != nil {
		out.Eager = *args.Eager
	}
	if k.IsToMany() {
		out.Array = true
		return out
	}
	out.Nullable = DefaultsFor(k).Nullable
	if args.Nullable != nil {
		out.Nullable = *args.Nullable
	}
	return out
}
