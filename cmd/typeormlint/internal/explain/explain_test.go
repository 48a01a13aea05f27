package explain

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/typeormlint"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name       string
		column     string
		typ        string
		opts       typeormlint.Options
		decorator  string
		verdict    string
		suggestion string
	}{
		{
			name:       "nullable column",
			column:     "@Column({ type: 'int', nullable: true })",
			typ:        "number",
			decorator:  "Column",
			verdict:    "mismatch",
			suggestion: "number | null",
		},
		{
			name:      "matching column without at sign",
			column:    "Column('varchar')",
			typ:       "string",
			decorator: "Column",
			verdict:   "none",
		},
		{
			name:       "sqlite bigint",
			column:     "@Column({ type: 'bigint' })",
			typ:        "string",
			opts:       typeormlint.Options{Driver: "sqlite"},
			decorator:  "Column",
			verdict:    "mismatch",
			suggestion: "number",
		},
		{
			name:       "relation nullable by default",
			column:     "@ManyToOne(() => User)",
			typ:        "User",
			decorator:  "ManyToOne",
			verdict:    "missing-nullable",
			suggestion: "User | null",
		},
		{
			name:       "to-many",
			column:     "@OneToMany(() => Post, (p) => p.author)",
			typ:        "Post",
			decorator:  "OneToMany",
			verdict:    "missing-array",
			suggestion: "Post[]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Explain(context.Background(), tt.column, tt.typ, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.decorator, e.Decorator)
			assert.Equal(t, tt.verdict, e.Verdict)
			assert.Equal(t, tt.suggestion, e.Suggestion)
			assert.NotEmpty(t, e.Persistence)
			assert.NotEmpty(t, e.Static)
		})
	}
}

func TestExplain_Errors(t *testing.T) {
	tests := []struct {
		name   string
		column string
		typ    string
		opts   typeormlint.Options
		code   typeormlint.ErrorCode
	}{
		{"bad type", "@Column()", "string |", typeormlint.Options{}, typeormlint.CodeParseFailed},
		{"not a decorator", "@Injectable()", "string", typeormlint.Options{}, typeormlint.CodeParseFailed},
		{"no relation type", "@ManyToOne()", "User", typeormlint.Options{}, typeormlint.CodeParseFailed},
		{"bad driver", "@Column()", "string", typeormlint.Options{Driver: "oracle"}, typeormlint.CodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Explain(context.Background(), tt.column, tt.typ, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, typeormlint.AsError(err).Code)
		})
	}
}

func TestExplain_JSON(t *testing.T) {
	e, err := Explain(context.Background(), "@Column({ type: 'int', nullable: true })", "number | null", typeormlint.Options{})
	require.NoError(t, err)
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"verdict":"none"`)
	assert.Contains(t, string(data), `"kind":"union"`)
}

func TestPrint(t *testing.T) {
	e := &Explanation{
		Decorator:   "Column",
		Persistence: "column{number}",
		Static:      "static{string}",
		Verdict:     "mismatch",
		Suggestion:  "number",
	}
	var buf bytes.Buffer
	require.NoError(t, e.Print(&buf, false))
	want := "decorator:   Column\n" +
		"persistence: column{number}\n" +
		"annotation:  static{string}\n" +
		"verdict:     mismatch\n" +
		"suggestion:  number\n"
	assert.Equal(t, want, buf.String())
}
