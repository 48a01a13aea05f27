package canon

import (
	"testing"

	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/internal/typeexpr"
	"github.com/broady/typeormlint/tsast"
)

func TestCategory_TypeScript(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{String, "string"},
		{Number, "number"},
		{Boolean, "boolean"},
		{Temporal, "Date"},
		{Reference, ""},
		{Unknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			if got := tt.c.TypeScript(); got != tt.want {
				t.Errorf("TypeScript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func sampleStatics() []StaticType {
	return []StaticType{
		Zero,
		{Category: String},
		{Category: Number, Literal: true},
		{Nullable: true},
		{OptionalUndefined: true},
		{Category: Reference, RefName: "Other", Array: true},
		{Category: Temporal, Lazy: true, Wrapped: true},
	}
}

func TestCombine_Monoid(t *testing.T) {
	values := sampleStatics()
	for _, a := range values {
		if got := Combine(Zero, a); got != a {
			t.Errorf("Combine(Zero, %v) = %v", a, got)
		}
		if got := Combine(a, Zero); got != a {
			t.Errorf("Combine(%v, Zero) = %v", a, got)
		}
		for _, b := range values {
			for _, c := range values {
				left := Combine(Combine(a, b), c)
				right := Combine(a, Combine(b, c))
				if left != right {
					t.Errorf("not associative for %v, %v, %v: %v != %v", a, b, c, left, right)
				}
			}
		}
	}
}

func TestCombine_FirstKnownCategory(t *testing.T) {
	got := CombineAll(
		StaticType{Nullable: true},
		StaticType{Category: Number},
		StaticType{Category: String, Literal: true},
	)
	want := StaticType{Category: Number, Nullable: true, Literal: true}
	if got != want {
		t.Errorf("CombineAll() = %v, want %v", got, want)
	}
}

func TestNormalizer_Static(t *testing.T) {
	tests := []struct {
		src  string
		want StaticType
	}{
		{"string", StaticType{Category: String}},
		{"number", StaticType{Category: Number}},
		{"bigint", StaticType{Category: Number}},
		{"boolean", StaticType{Category: Boolean}},
		{"Date", StaticType{Category: Temporal}},
		{"Other", StaticType{Category: Reference, RefName: "Other"}},
		{"string | null", StaticType{Category: String, Nullable: true}},
		{"null | string", StaticType{Category: String, Nullable: true}},
		{"string | undefined", StaticType{Category: String, OptionalUndefined: true}},
		{"Date[] | null", StaticType{Category: Temporal, Array: true, Nullable: true}},
		{"(number | null)[]", StaticType{Category: Number, Array: true, Nullable: true}},
		{"Array<string>", StaticType{Category: String, Array: true}},
		{"'one' | 'two'", StaticType{Category: String, Literal: true}},
		{"1 | 2", StaticType{Category: Number, Literal: true}},
		{"true", StaticType{Category: Boolean, Literal: true}},
		{"`id-${string}`", StaticType{Category: String, Literal: true}},
		{"Promise<Other>", StaticType{Category: Reference, RefName: "Other", Lazy: true}},
		{"Relation<Other> | null", StaticType{Category: Reference, RefName: "Other", Wrapped: true, Nullable: true}},
		{"Relation<Other[]>", StaticType{Category: Reference, RefName: "Other", Wrapped: true, Array: true}},
		{"Relation<A, B>", StaticType{Category: Reference, RefName: "Relation"}},
		{"any", Zero},
		{"unknown", Zero},
		{"{ a: string }", Zero},
		{"string & Brand", Zero},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := Normalizer{}.Static(typeexpr.MustParse(tt.src))
			if got != tt.want {
				t.Errorf("Static(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestNormalizer_Nil(t *testing.T) {
	if got := (Normalizer{}).Static(nil); got != Zero {
		t.Errorf("Static(nil) = %v, want Zero", got)
	}
}

func TestNormalizer_AliasedWrapper(t *testing.T) {
	aliases := decorator.CollectAliases([]*tsast.Import{{
		Module:     "typeorm",
		Specifiers: []*tsast.ImportSpecifier{{Imported: "Relation", Local: "Ref"}},
	}})
	n := Normalizer{Wrappers: aliases}
	got := n.Static(typeexpr.MustParse("Ref<Other>"))
	want := StaticType{Category: Reference, RefName: "Other", Wrapped: true}
	if got != want {
		t.Errorf("Static(Ref<Other>) = %v, want %v", got, want)
	}
}

type fakeChecker map[string]tsast.Symbol

func (f fakeChecker) ResolveReference(ref *tsast.Reference) (tsast.Symbol, bool) {
	s, ok := f[ref.Name]
	return s, ok
}

func TestNormalizer_Checker(t *testing.T) {
	checker := fakeChecker{
		"UUID":      {Name: "UUID", Type: typeexpr.MustParse("string")},
		"MaybeDate": {Name: "MaybeDate", Type: typeexpr.MustParse("Date | null")},
		"Timestamp": {Name: "Date"},
		"Loop":      {Name: "Loop", Type: typeexpr.MustParse("Loop")},
	}
	n := Normalizer{Checker: checker}
	tests := []struct {
		src  string
		want StaticType
	}{
		{"UUID", StaticType{Category: String}},
		{"UUID[]", StaticType{Category: String, Array: true}},
		{"MaybeDate", StaticType{Category: Temporal, Nullable: true}},
		{"Timestamp", StaticType{Category: Temporal}},
		{"Other", StaticType{Category: Reference, RefName: "Other"}},
		{"Loop", Zero},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := n.Static(typeexpr.MustParse(tt.src)); got != tt.want {
				t.Errorf("Static(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}
