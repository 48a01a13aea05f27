// Package rules contains the built-in typeormlint rules.
package rules

import "github.com/broady/typeormlint"

// Rule names.
const (
	ColumnTypesName           = "enforce-column-types"
	RelationTypesName         = "enforce-relation-types"
	ConsistentNullabilityName = "enforce-consistent-nullability"
	RelationWrapperName       = "enforce-relation-wrapper"
)

// All returns every built-in rule.
func All() []typeormlint.Rule {
	return []typeormlint.Rule{
		ColumnTypes{},
		RelationTypes{},
		ConsistentNullability{},
		RelationWrapper{},
	}
}

// Default returns a registry holding All.
func Default() *typeormlint.Registry {
	return typeormlint.NewRegistry().MustRegister(All()...)
}
