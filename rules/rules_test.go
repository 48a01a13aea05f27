package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/linttest"
)

func TestFixtures(t *testing.T) {
	tests := []struct {
		archive string
		rule    typeormlint.Rule
	}{
		{"testdata/column.txtar", ColumnTypes{}},
		{"testdata/relation.txtar", RelationTypes{}},
		{"testdata/nullability.txtar", ConsistentNullability{}},
		{"testdata/wrapper.txtar", RelationWrapper{}},
	}
	for _, tt := range tests {
		t.Run(tt.rule.Meta().Name, func(t *testing.T) {
			opts, cases := linttest.LoadArchive(t, tt.archive)
			linttest.Run(t, tt.rule, opts, cases)
		})
	}
}

func TestDefault(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{
		ColumnTypesName,
		ConsistentNullabilityName,
		RelationTypesName,
		RelationWrapperName,
	}, reg.Names())

	preset := reg.Recommended()
	assert.Equal(t, typeormlint.SeverityError, preset[ColumnTypesName].Severity)
	assert.Equal(t, typeormlint.SeverityError, preset[RelationTypesName].Severity)
	assert.Equal(t, typeormlint.SeverityError, preset[ConsistentNullabilityName].Severity)
	assert.Equal(t, typeormlint.SeverityOff, preset[RelationWrapperName].Severity)
}

func TestMetaMessagesHaveTemplates(t *testing.T) {
	for _, r := range All() {
		meta := r.Meta()
		assert.NotEmpty(t, meta.Description, meta.Name)
		for _, id := range meta.Messages {
			tmpl, ok := typeormlint.Template(id)
			assert.True(t, ok, "%s: %s has no template", meta.Name, id)
			assert.NotEmpty(t, tmpl, "%s: %s", meta.Name, id)
		}
	}
}

func TestNullabilityDisabledByDefault(t *testing.T) {
	src := "import { Column } from 'typeorm';\n\nclass User {\n  @Column()\n  name: string;\n}\n"
	diags := linttest.Lint(t, ConsistentNullability{}, typeormlint.Options{}, src)
	assert.Empty(t, diags)
}

func TestRejectsForeignOptions(t *testing.T) {
	l := typeormlint.NewLinter(Default())
	err := l.Configure(ColumnTypesName, typeormlint.RuleConfig{
		Severity: typeormlint.SeverityError,
		Options:  typeormlint.Options{SpecifyRelation: "always"},
	})
	require.Error(t, err)
	assert.Equal(t, typeormlint.CodeInvalidOption, typeormlint.AsError(err).Code)
}

// The recommended rules report one entity file together, in position
// order.
func TestRecommendedTogether(t *testing.T) {
	src := `import { Column, ManyToOne } from 'typeorm';

class Team {}

class User {
  @Column({ type: 'varchar' })
  name: number;

  @ManyToOne(() => Team)
  team: Team;
}
`
	file := linttest.Parse(t, src)
	diags, err := typeormlint.NewLinter(Default()).Lint(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, ColumnTypesName, diags[0].Rule)
	assert.Equal(t, "Type of name in User is not matching the TypeORM column type (expected type: string).", diags[0].Message)
	assert.Equal(t, RelationTypesName, diags[1].Rule)
	assert.Equal(t, typeormlint.MsgRelationNullableByDefault, diags[1].MessageID)
}
