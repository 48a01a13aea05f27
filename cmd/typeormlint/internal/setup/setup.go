// Package setup builds the logger, linter and runner shared by the
// typeormlint subcommands.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/frontend"
	"github.com/broady/typeormlint/internal/config"
	"github.com/broady/typeormlint/internal/discover"
	"github.com/broady/typeormlint/internal/runner"
	"github.com/broady/typeormlint/middleware"
	"github.com/broady/typeormlint/rules"
)

// ErrProblems is returned when error-severity diagnostics were found.
// main exits with status 1 without printing it.
var ErrProblems = errors.New("problems found")

// Globals are flags accepted by every subcommand.
type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" enum:"debug,info,warn,error" name:"log-level"`
}

// Logger returns a text logger writing to w at the configured level,
// and installs it as the default.
func (g *Globals) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// LintFlags select the files and rule configuration of a lint run.
type LintFlags struct {
	Paths  []string `arg:"" optional:"" help:"Files or directories to lint (default: current directory)." type:"path"`
	Config string   `help:"Config file (default: nearest .typeormlint.yaml)." short:"c" type:"path"`
	Rule   []string `help:"Set a rule's severity, as NAME=SEVERITY." short:"r" placeholder:"NAME=SEVERITY"`
	Option []string `help:"Set a rule's options, as NAME:QUERY (e.g. enforce-column-types:driver=sqlite)." short:"o" placeholder:"NAME:QUERY"`
	Jobs   int      `help:"Number of parallel workers (default: number of CPUs)." short:"j"`
}

// Env is a configured lint environment.
type Env struct {
	Linter *typeormlint.Linter
	Runner *runner.Runner
	Logger *slog.Logger
	// Root is the directory of the config file, or the working
	// directory when there is none.
	Root   string
	Ignore []string
}

// Build loads configuration and applies the flag overrides.
func (f *LintFlags) Build(logger *slog.Logger) (*Env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	l := typeormlint.NewLinter(rules.Default()).
		WithLogger(logger).
		WithInterceptor(middleware.LoggingInterceptor(logger))
	env := &Env{Linter: l, Logger: logger, Root: cwd}

	path := f.Config
	if path == "" {
		if path, err = config.Find(cwd); err != nil {
			return nil, err
		}
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(l); err != nil {
			return nil, err
		}
		env.Root = filepath.Dir(path)
		env.Ignore = cfg.Ignore
		logger.Debug("loaded config", slog.String("path", path))
	}

	for _, r := range f.Rule {
		name, sev, err := ParseRuleFlag(r)
		if err != nil {
			return nil, err
		}
		if err := l.SetSeverity(name, sev); err != nil {
			return nil, err
		}
	}
	for _, o := range f.Option {
		if err := applyOption(l, o); err != nil {
			return nil, err
		}
	}

	env.Runner = &runner.Runner{
		Linter: l,
		Parser: frontend.New(frontend.WithLogger(logger)),
		Root:   env.Root,
		Jobs:   f.Jobs,
		Logger: logger,
	}
	return env, nil
}

// Discover lists the files named by the flags' paths.
func (e *Env) Discover(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		paths = []string{cwd}
	}
	return discover.Find(ctx, e.Root, paths, e.Ignore)
}

// ParseRuleFlag parses NAME=SEVERITY.
func ParseRuleFlag(s string) (string, typeormlint.Severity, error) {
	name, sev, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, typeormlint.Errorf(typeormlint.CodeConfigInvalid, "invalid --rule %q, want NAME=SEVERITY", s)
	}
	severity, err := typeormlint.ParseSeverity(sev)
	if err != nil {
		return "", 0, err
	}
	return name, severity, nil
}

// applyOption merges NAME:QUERY into the rule's options. A rule that is
// off is enabled at error.
func applyOption(l *typeormlint.Linter, s string) error {
	name, query, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return typeormlint.Errorf(typeormlint.CodeConfigInvalid, "invalid --option %q, want NAME:QUERY", s)
	}
	opts, err := typeormlint.ParseOptions(query)
	if err != nil {
		return err
	}
	cfg, ok := l.Config(name)
	if !ok {
		return typeormlint.Errorf(typeormlint.CodeUnknownRule, "unknown rule %q", name).WithDetail("rule", name)
	}
	cfg.Options = cfg.Options.Merge(opts)
	if cfg.Severity == typeormlint.SeverityOff {
		cfg.Severity = typeormlint.SeverityError
	}
	return l.Configure(name, cfg)
}

// ReportFileErrors logs per-file failures of a run.
func ReportFileErrors(logger *slog.Logger, res *runner.Result) {
	for _, f := range res.Files {
		if f.Err != nil {
			e := typeormlint.AsError(f.Err)
			logger.Error("lint failed",
				slog.String("file", f.Path),
				slog.String("code", string(e.Code)),
				slog.String("error", e.Message))
		}
	}
}

// FormatError renders err for the terminal with its error code and
// details.
func FormatError(err error) string {
	lintErr := typeormlint.AsError(err)
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", lintErr.Code, lintErr.Message)
	for _, k := range slices.Sorted(maps.Keys(lintErr.Details)) {
		fmt.Fprintf(&b, "\n  %s: %v", k, lintErr.Details[k])
	}
	return b.String()
}
