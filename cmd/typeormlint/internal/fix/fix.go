// Package fix implements the fix command.
package fix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/broady/typeormlint/cmd/typeormlint/internal/setup"
	"github.com/broady/typeormlint/internal/runner"
	"github.com/broady/typeormlint/internal/sink"
	"github.com/broady/typeormlint/report"
)

// Cmd applies fixes and suggestions.
type Cmd struct {
	setup.LintFlags
	Suggestion int  `help:"Apply the N-th suggestion of diagnostics without a direct fix (0 applies direct fixes only)." default:"1" short:"s"`
	Diff       bool `help:"Print a unified diff instead of writing files." short:"d"`
	DryRun     bool `help:"Compute fixes without writing files." name:"dry-run" short:"n"`
}

// Run executes the fix command.
func (c *Cmd) Run(g *setup.Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := g.Logger(os.Stderr)
	env, err := c.Build(logger)
	if err != nil {
		return err
	}
	files, err := env.Discover(ctx, c.Paths)
	if err != nil {
		return err
	}
	res, err := env.Runner.Run(ctx, files)
	if err != nil {
		return err
	}
	setup.ReportFileErrors(logger, res)

	var out sink.Sink = sink.NewFilesystemSink(env.Root)
	if c.DryRun || c.Diff {
		out = sink.NewMemorySink()
	}
	stats, err := c.apply(ctx, res, out, os.Stdout, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, stats)
	return nil
}

// Stats counts the fixes of a run.
type Stats struct {
	Files   int
	Applied int
	Skipped int
}

func (s Stats) String() string {
	msg := fmt.Sprintf("applied %d fixes to %d file(s)", s.Applied, s.Files)
	if s.Skipped > 0 {
		msg += fmt.Sprintf(", skipped %d overlapping (run again to apply)", s.Skipped)
	}
	return msg
}

// apply writes the fixed content of every file with selected edits to
// out, or a diff of it to w when c.Diff is set.
func (c *Cmd) apply(ctx context.Context, res *runner.Result, out sink.Sink, w io.Writer, logger *slog.Logger) (Stats, error) {
	var stats Stats
	sets := report.SelectFixes(res.Diagnostics, c.Suggestion-1)
	for _, f := range res.Files {
		set := sets[f.Path]
		if set == nil || len(set.Edits) == 0 {
			continue
		}
		fixed, err := report.Apply(f.Source, set.Edits)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", f.Path, err)
		}
		stats.Files++
		stats.Applied += set.Applied
		stats.Skipped += set.Skipped

		if c.Diff {
			d, err := report.Diff(f.Path, f.Source, fixed)
			if err != nil {
				return stats, err
			}
			if _, err := w.Write(d); err != nil {
				return stats, err
			}
		}
		if err := out.WriteFile(ctx, f.Path, fixed); err != nil {
			return stats, err
		}
		logger.Debug("fixed file",
			slog.String("file", f.Path),
			slog.Int("applied", set.Applied),
			slog.Int("skipped", set.Skipped))
	}
	return stats, nil
}
