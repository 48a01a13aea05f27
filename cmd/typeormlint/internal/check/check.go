// Package check implements the check command.
package check

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/cmd/typeormlint/internal/setup"
	"github.com/broady/typeormlint/internal/watch"
	"github.com/broady/typeormlint/report"
)

// Cmd lints files and reports diagnostics.
type Cmd struct {
	setup.LintFlags
	Format string `help:"Output format (text, json)." default:"text" enum:"text,json" short:"f"`
	Watch  bool   `help:"Re-run on file changes." short:"w"`
}

// Run executes the check command.
func (c *Cmd) Run(g *setup.Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := g.Logger(os.Stderr)
	env, err := c.Build(logger)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	rep, err := report.New(format, report.ColorEnabled(os.Stdout))
	if err != nil {
		return err
	}

	if !c.Watch {
		failed, err := c.once(ctx, env, rep, os.Stdout)
		if err != nil {
			return err
		}
		if failed {
			return setup.ErrProblems
		}
		return nil
	}

	if _, err := c.once(ctx, env, rep, os.Stdout); err != nil {
		return err
	}
	w := &watch.Watcher{Root: env.Root, Logger: logger}
	err = w.Run(ctx, func(ctx context.Context, changed []string) error {
		logger.Info("files changed", slog.Int("count", len(changed)))
		_, err := c.once(ctx, env, rep, os.Stdout)
		return err
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// once lints every file once and reports whether any error-severity
// diagnostic was found.
func (c *Cmd) once(ctx context.Context, env *setup.Env, rep report.Reporter, out io.Writer) (bool, error) {
	files, err := env.Discover(ctx, c.Paths)
	if err != nil {
		return false, err
	}
	res, err := env.Runner.Run(ctx, files)
	if err != nil {
		return false, err
	}
	setup.ReportFileErrors(env.Logger, res)
	if err := rep.Report(out, res.Diagnostics); err != nil {
		return false, err
	}
	return res.Count(typeormlint.SeverityError) > 0 || res.Err() != nil, nil
}
