// Package typeormlint cross-checks TypeORM decorator metadata against
// the TypeScript annotations of the same class properties.
//
// A Linter runs the rules of a Registry over parsed files:
//
//	reg := rules.Default()
//	l := typeormlint.NewLinter(reg).WithLogger(logger)
//	diags, err := l.Lint(ctx, file)
package typeormlint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/broady/typeormlint/decorator"
	"github.com/broady/typeormlint/tsast"
)

// Linter runs configured rules over files. Configure it before calling
// Lint; Lint itself is safe for concurrent use.
type Linter struct {
	mu           sync.RWMutex
	registry     *Registry
	configs      map[string]RuleConfig
	interceptors []Interceptor
	logger       *slog.Logger
	checker      tsast.Checker
}

// NewLinter returns a linter with the registry's recommended preset.
func NewLinter(reg *Registry) *Linter {
	return &Linter{
		registry: reg,
		configs:  reg.Recommended(),
	}
}

// WithInterceptor adds an interceptor around every rule pass.
// Interceptors run in the order they were added.
func (l *Linter) WithInterceptor(i Interceptor) *Linter {
	l.interceptors = append(l.interceptors, i)
	return l
}

// WithLogger sets a custom logger for the linter.
// If not set, slog.Default() will be used.
func (l *Linter) WithLogger(logger *slog.Logger) *Linter {
	l.logger = logger
	return l
}

// WithChecker sets the semantic checker used to resolve type references.
func (l *Linter) WithChecker(c tsast.Checker) *Linter {
	l.checker = c
	return l
}

func (l *Linter) log() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}
	return l.logger
}

// Configure sets the severity and options of the named rule.
func (l *Linter) Configure(name string, cfg RuleConfig) error {
	rule, ok := l.registry.Lookup(name)
	if !ok {
		return Errorf(CodeUnknownRule, "unknown rule %q", name).WithDetail("rule", name)
	}
	if err := cfg.Options.CheckFor(rule.Meta()); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.configs[name] = cfg
	return nil
}

// SetSeverity changes only the severity of the named rule.
func (l *Linter) SetSeverity(name string, sev Severity) error {
	cfg, _ := l.Config(name)
	cfg.Severity = sev
	return l.Configure(name, cfg)
}

// Config returns the configuration of the named rule.
func (l *Linter) Config(name string) (RuleConfig, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cfg, ok := l.configs[name]
	return cfg, ok
}

// Enabled returns the rules that are not off, sorted by name.
func (l *Linter) Enabled() []Rule {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Rule
	for _, rule := range l.registry.Rules() {
		if l.configs[rule.Meta().Name].Severity != SeverityOff {
			out = append(out, rule)
		}
	}
	return out
}

// Lint runs every enabled rule over file and returns the diagnostics
// ordered by position, rule and message id.
//
// A panic inside a rule is recovered per property: the property is
// skipped for that rule, the other properties and rules still run, and
// the returned error carries a CodeInternal entry for it. Diagnostics
// are returned even when err is non-nil.
func (l *Linter) Lint(ctx context.Context, file *tsast.File) ([]Diagnostic, error) {
	return l.LintWithChecker(ctx, file, l.checker)
}

// LintWithChecker is like Lint but resolves type references with
// checker instead of the one set by WithChecker.
func (l *Linter) LintWithChecker(ctx context.Context, file *tsast.File, checker tsast.Checker) ([]Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sup := parseSuppressions(file)
	if sup.disablesAll() {
		return nil, nil
	}

	// Imports are resolved once, before any property is visited.
	aliases := decorator.CollectAliases(file.Imports)

	var (
		diags []Diagnostic
		errs  []error
	)
	chain := chainInterceptors(l.interceptors)
	for _, rule := range l.Enabled() {
		name := rule.Meta().Name
		cfg, _ := l.Config(name)
		pass := &Pass{
			ctx:      ctx,
			rule:     name,
			severity: cfg.Severity,
			logger:   l.log(),
			File:     file,
			Aliases:  aliases,
			Checker:  checker,
			Options:  cfg.Options,
		}
		run := func(ctx context.Context, pass *Pass) error {
			pass.ctx = ctx
			return l.runRule(rule, pass)
		}
		var err error
		if chain != nil {
			err = chain(ctx, pass, run)
		} else {
			err = run(ctx, pass)
		}
		if err != nil {
			errs = append(errs, err)
		}
		for _, d := range pass.diags {
			if !sup.suppressed(d) {
				diags = append(diags, d)
			}
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
	}
	SortDiagnostics(diags)
	return diags, errors.Join(errs...)
}

func (l *Linter) runRule(rule Rule, pass *Pass) error {
	var errs []error
	if fc, ok := rule.(FileChecker); ok {
		if err := l.guard(pass, nil, func() { fc.CheckFile(pass) }); err != nil {
			errs = append(errs, err)
		}
	}
	for _, cls := range pass.File.Classes {
		for _, prop := range cls.Properties {
			if err := l.guard(pass, prop, func() { rule.CheckProperty(pass, prop) }); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// guard runs fn, converting a panic into an internal error.
func (l *Linter) guard(pass *Pass, prop *tsast.Property, fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := debug.Stack()
			attrs := []any{
				slog.String("rule", pass.rule),
				slog.String("file", pass.File.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(stack)),
			}
			e := Errorf(CodeInternal, "rule %s panicked: %v", pass.rule, rec).
				WithDetail("rule", pass.rule).
				WithDetail("file", pass.File.Path)
			if prop != nil {
				attrs = append(attrs, slog.String("property", prop.Name))
				e = e.WithDetail("property", prop.Name)
			}
			l.log().Error("PANIC recovered", attrs...)
			err = e
		}
	}()
	fn()
	return nil
}

// LintAll lints files in order and concatenates the results. See
// internal/runner for the concurrent driver.
func (l *Linter) LintAll(ctx context.Context, files []*tsast.File) ([]Diagnostic, error) {
	var (
		all  []Diagnostic
		errs []error
	)
	for _, f := range files {
		diags, err := l.Lint(ctx, f)
		all = append(all, diags...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, err))
		}
	}
	SortDiagnostics(all)
	return all, errors.Join(errs...)
}
