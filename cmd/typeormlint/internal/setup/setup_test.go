package setup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/internal/config"
	"github.com/broady/typeormlint/rules"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestParseRuleFlag(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		sev     typeormlint.Severity
		wantErr bool
	}{
		{in: "enforce-column-types=warn", name: "enforce-column-types", sev: typeormlint.SeverityWarn},
		{in: "enforce-relation-wrapper=error", name: "enforce-relation-wrapper", sev: typeormlint.SeverityError},
		{in: "enforce-column-types=off", name: "enforce-column-types", sev: typeormlint.SeverityOff},
		{in: "enforce-column-types", wantErr: true},
		{in: "=warn", wantErr: true},
		{in: "enforce-column-types=loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, sev, err := ParseRuleFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.sev, sev)
		})
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	cfg := "rules:\n  enforce-column-types: { options: { driver: sqlite } }\nignore: [\"gen/**\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0644))
	t.Chdir(dir)

	f := &LintFlags{
		Rule:   []string{rules.RelationWrapperName + "=warn"},
		Option: []string{rules.ConsistentNullabilityName + ":specifyNullable=always"},
		Jobs:   3,
	}
	env, err := f.Build(discard())
	require.NoError(t, err)

	assert.Equal(t, dir, env.Root)
	assert.Equal(t, []string{"gen/**"}, env.Ignore)
	assert.Equal(t, 3, env.Runner.Jobs)

	col, _ := env.Linter.Config(rules.ColumnTypesName)
	assert.Equal(t, "sqlite", col.Options.Driver)
	wrapper, _ := env.Linter.Config(rules.RelationWrapperName)
	assert.Equal(t, typeormlint.SeverityWarn, wrapper.Severity)
	null, _ := env.Linter.Config(rules.ConsistentNullabilityName)
	assert.Equal(t, typeormlint.SeverityError, null.Severity)
	assert.Equal(t, "always", null.Options.SpecifyNullable)
}

func TestBuild_OptionEnablesRule(t *testing.T) {
	t.Chdir(t.TempDir())
	f := &LintFlags{Option: []string{rules.RelationWrapperName + ":"}}
	env, err := f.Build(discard())
	require.NoError(t, err)
	cfg, _ := env.Linter.Config(rules.RelationWrapperName)
	assert.Equal(t, typeormlint.SeverityError, cfg.Severity)
}

func TestBuild_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	tests := []struct {
		name  string
		flags LintFlags
		code  typeormlint.ErrorCode
	}{
		{"unknown rule", LintFlags{Rule: []string{"no-such-rule=warn"}}, typeormlint.CodeUnknownRule},
		{"bad rule flag", LintFlags{Rule: []string{"warn"}}, typeormlint.CodeConfigInvalid},
		{"bad option flag", LintFlags{Option: []string{"driver=sqlite"}}, typeormlint.CodeConfigInvalid},
		{"unknown option rule", LintFlags{Option: []string{"no-such-rule:driver=sqlite"}}, typeormlint.CodeUnknownRule},
		{"foreign option", LintFlags{Option: []string{rules.ColumnTypesName + ":specifyRelation=always"}}, typeormlint.CodeInvalidOption},
		{"missing config", LintFlags{Config: "/does/not/exist.yaml"}, typeormlint.CodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.Build(discard())
			require.Error(t, err)
			assert.Equal(t, tt.code, typeormlint.AsError(err).Code)
		})
	}
}

func TestFormatError(t *testing.T) {
	err := typeormlint.NewError(typeormlint.CodeUnknownRule, "unknown rule \"x\"").
		WithDetail("rule", "x").
		WithDetail("a", 1)
	assert.Equal(t, "unknown_rule: unknown rule \"x\"\n  a: 1\n  rule: x", FormatError(err))
	assert.Equal(t, "internal: plain", FormatError(errors.New("plain")))
	assert.Equal(t, "canceled: context canceled", FormatError(context.Canceled))

	joined := errors.Join(
		typeormlint.NewError(typeormlint.CodeParseFailed, "bad").WithDetail("file", "a.ts"),
		errors.New("worse"),
	)
	assert.Equal(t, "parse_failed: parse_failed: bad; worse\n  file: a.ts", FormatError(joined))
}
