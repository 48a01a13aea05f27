package typeormlint

import (
	"context"
	"log/slog"

	"github.com/broady/typeormlint/canon"
	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/tsast"
)

// RuleType classifies a rule as in ESLint.
type RuleType string

const (
	RuleProblem    RuleType = "problem"
	RuleSuggestion RuleType = "suggestion"
)

// Meta describes a rule.
type Meta struct {
	Name        string
	Description string
	Type        RuleType
	// Recommended rules are enabled at error severity unless configured.
	Recommended bool
	// Fixable rules produce direct fixes.
	Fixable        bool
	HasSuggestions bool
	// Options lists the option keys the rule accepts, by their
	// configuration name (e.g. "driver").
	Options []string
	// Messages lists the message ids the rule reports.
	Messages []MessageID
}

// Rule checks class properties.
type Rule interface {
	Meta() Meta
	// CheckProperty is called once for every property of every class in
	// the file, in source order.
	CheckProperty(pass *Pass, prop *tsast.Property)
}

// FileChecker is implemented by rules that also inspect file-level
// syntax such as imports. CheckFile runs before any property is checked.
type FileChecker interface {
	CheckFile(pass *Pass)
}

// Pass is one rule's view of one file.
type Pass struct {
	ctx      context.Context
	rule     string
	severity Severity
	logger   *slog.Logger
	diags    []Diagnostic

	File *tsast.File
	// Aliases maps local names to ORM exports for File.
	Aliases *decorator.Aliases
	// Checker is nil when no semantic information is available.
	Checker tsast.Checker
	Options Options
}

// NewPass returns a pass for rule over file. Most callers go through
// Linter.Lint; NewPass is exported for tests.
func NewPass(ctx context.Context, rule string, file *tsast.File, opts Options) *Pass {
	return &Pass{
		ctx:      ctx,
		rule:     rule,
		severity: SeverityError,
		logger:   slog.Default(),
		File:     file,
		Aliases:  decorator.CollectAliases(file.Imports),
		Options:  opts,
	}
}

// Context returns the context of the lint run.
func (p *Pass) Context() context.Context { return p.ctx }

// Rule returns the name of the rule being run.
func (p *Pass) Rule() string { return p.rule }

// Logger returns the pass logger.
func (p *Pass) Logger() *slog.Logger { return p.logger }

// Text returns the source text covered by span.
func (p *Pass) Text(span tsast.Span) string { return p.File.Text(span) }

// Normalizer returns the static normalizer for this file.
func (p *Pass) Normalizer() canon.Normalizer {
	return canon.Normalizer{Wrappers: p.Aliases, Checker: p.Checker}
}

// Diagnostics returns what has been reported so far.
func (p *Pass) Diagnostics() []Diagnostic { return p.diags }

// Report records a diagnostic. Rule, File, Severity, positions and any
// empty message are filled in.
func (p *Pass) Report(d Diagnostic) {
	d.Rule = p.rule
	d.File = p.File.Path
	d.Severity = p.severity
	d.Pos = p.File.Position(d.Span.Start)
	d.End = p.File.Position(d.Span.End)
	if d.Message == "" {
		d.Message = RenderMessage(d.MessageID, d.Data)
	}
	for i := range d.Suggestions {
		s := &d.Suggestions[i]
		if s.Message == "" {
			s.Message = RenderMessage(s.MessageID, s.Data)
		}
	}
	p.diags = append(p.diags, d)
}

// PropertyName is the name used for prop in messages.
func PropertyName(prop *tsast.Property) string {
	if prop.Name == "" {
		return "property"
	}
	return prop.Name
}

// ClassSuffix renders " in <Class>" for messages, or "" for anonymous
// classes.
func ClassSuffix(prop *tsast.Property) string {
	if prop.ClassName == "" {
		return ""
	}
	return " in " + prop.ClassName
}

// ExpectedSuffix renders " (expected type: <text>)", or "" when there is
// no replacement.
func ExpectedSuffix(text string) string {
	if text == "" {
		return ""
	}
	return " (expected type: " + text + ")"
}
