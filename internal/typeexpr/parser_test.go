package typeexpr

import (
	"errors"
	"testing"

	"github.com/broady/typeormlint/tsast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"string", "string"},
		{"string | null", "string | null"},
		{"string|null|undefined", "string | null | undefined"},
		{"Date[]", "Date[]"},
		{"Other[][]", "Other[][]"},
		{"(string | number)[]", "(string | number)[]"},
		{"Relation<Other>", "Relation<Other>"},
		{"Promise<Relation<Other | null>>", "Promise<Relation<Other | null>>"},
		{"Map<string, number>", "Map<string, number>"},
		{"typeorm.Relation<Other>", "typeorm.Relation<Other>"},
		{"'one' | \"two\"", "'one' | \"two\""},
		{"1 | -2 | 10n", "1 | -2 | 10n"},
		{"true", "true"},
		{"`id-${string}`", "`id-${string}`"},
		{"`a${`b-${number}`}c` | null", "`a${`b-${number}`}c` | null"},
		{"`x\\`y`", "`x\\`y`"},
		{"| 'a' | 'b'", "'a' | 'b'"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			node, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tsast.Format(node))
		})
	}
}

func TestParse_Kinds(t *testing.T) {
	node, err := Parse("Relation<Other>[] | null")
	require.NoError(t, err)

	union, ok := node.(*tsast.Union)
	require.True(t, ok, "want *tsast.Union, got %T", node)
	require.Len(t, union.Members, 2)

	arr, ok := union.Members[0].(*tsast.Array)
	require.True(t, ok, "want *tsast.Array, got %T", union.Members[0])
	ref, ok := arr.Element.(*tsast.Reference)
	require.True(t, ok)
	assert.Equal(t, "Relation", ref.Name)
	require.Len(t, ref.TypeArgs, 1)

	kw, ok := union.Members[1].(*tsast.Keyword)
	require.True(t, ok)
	assert.Equal(t, tsast.KeywordNull, kw.Name)
}

func TestParse_Spans(t *testing.T) {
	src := "Other[] | null"
	node, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, tsast.Span{Start: 0, End: len(src)}, node.Span())

	union := node.(*tsast.Union)
	assert.Equal(t, "Other[]", src[union.Members[0].Span().Start:union.Members[0].Span().End])
	assert.Equal(t, "null", src[union.Members[1].Span().Start:union.Members[1].Span().End])
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		src  string
		kind tsast.LiteralKind
	}{
		{"'a'", tsast.LiteralString},
		{"42", tsast.LiteralNumber},
		{"-1", tsast.LiteralNumber},
		{"7n", tsast.LiteralBigInt},
		{"false", tsast.LiteralBoolean},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			node, err := Parse(tt.src)
			require.NoError(t, err)
			lit, ok := node.(*tsast.Literal)
			require.True(t, ok, "want *tsast.Literal, got %T", node)
			assert.Equal(t, tt.kind, lit.LitKind)
		})
	}
}

func TestParse_TemplateLiteral(t *testing.T) {
	node, err := Parse("`id-${string}`[]")
	require.NoError(t, err)
	arr, ok := node.(*tsast.Array)
	require.True(t, ok, "want *tsast.Array, got %T", node)
	tmpl, ok := arr.Element.(*tsast.TemplateLiteral)
	require.True(t, ok, "want *tsast.TemplateLiteral, got %T", arr.Element)
	assert.Equal(t, "`id-${string}`", tmpl.Raw)
	assert.Equal(t, tsast.Span{Start: 0, End: 14}, tmpl.Span())
}

func TestParse_Opaque(t *testing.T) {
	node, err := Parse("{ a: string } & Base")
	require.NoError(t, err)
	other, ok := node.(*tsast.OtherType)
	require.True(t, ok, "want *tsast.OtherType, got %T", node)
	assert.Equal(t, "intersection_type", other.Syntax)
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{"", "string |", "Relation<Other", "(string", "string )", "<>", "`open", "`a${string`"} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "error %v does not wrap ErrSyntax", err)
		})
	}
}
