// Package runner parses and lints many files concurrently.
//
// A run has two phases. Every file is read and parsed first so that the
// symbol table sees all declarations; then every file is linted against
// that table. Both phases use a bounded worker group, and results keep
// the order of the input paths.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/frontend"
	"github.com/broady/typeormlint/tsast"
)

// Runner lints files under Root.
type Runner struct {
	Linter *typeormlint.Linter
	Parser *frontend.Parser
	// Root is the directory paths are relative to.
	Root string
	// Jobs bounds concurrency; zero means GOMAXPROCS.
	Jobs   int
	Logger *slog.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	Source      []byte
	File        *tsast.File
	Diagnostics []typeormlint.Diagnostic
	// Err is a read, parse or rule failure. Diagnostics may still be
	// present when a rule failed.
	Err error
}

// Result is the outcome of a run.
type Result struct {
	Files       []*FileResult
	Diagnostics []typeormlint.Diagnostic
}

// Err joins the per-file errors.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return errors.Join(errs...)
}

// Count returns the number of diagnostics at sev.
func (r *Result) Count(sev typeormlint.Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Runner) log() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) jobs() int {
	if r.Jobs > 0 {
		return r.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Run lints paths, which are slash-separated and relative to Root.
// Per-file failures are reported in the result; the returned error is
// only set when ctx ends the run early.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	parser := r.Parser
	if parser == nil {
		parser = frontend.New(frontend.WithLogger(r.log()))
	}

	res := &Result{Files: make([]*FileResult, len(paths))}
	for i, p := range paths {
		res.Files[i] = &FileResult{Path: p}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for _, fr := range res.Files {
		g.Go(func() error {
			r.parse(gctx, parser, fr)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := frontend.NewSymbolTable()
	for _, fr := range res.Files {
		if fr.File != nil {
			table.Add(fr.File)
		}
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for _, fr := range res.Files {
		if fr.File == nil {
			continue
		}
		g.Go(func() error {
			diags, err := r.Linter.LintWithChecker(gctx, fr.File, table)
			fr.Diagnostics = diags
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				fr.Err = typeormlint.AsError(err).WithDetail("file", fr.Path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, fr := range res.Files {
		res.Diagnostics = append(res.Diagnostics, fr.Diagnostics...)
	}
	typeormlint.SortDiagnostics(res.Diagnostics)

	r.log().DebugContext(ctx, "lint run completed",
		slog.Int("files", len(paths)),
		slog.Int("diagnostics", len(res.Diagnostics)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (r *Runner) parse(ctx context.Context, parser *frontend.Parser, fr *FileResult) {
	src, err := os.ReadFile(filepath.Join(r.Root, filepath.FromSlash(fr.Path)))
	if err != nil {
		fr.Err = typeormlint.AsError(err).WithDetail("file", fr.Path)
		return
	}
	fr.Source = src
	file, err := parser.Parse(ctx, fr.Path, src)
	if err != nil {
		e := typeormlint.AsError(err)
		if e.Code == typeormlint.CodeInternal {
			e = typeormlint.Errorf(typeormlint.CodeParseFailed, "parse: %v", err)
		}
		fr.Err = e.WithDetail("file", fr.Path)
		r.log().WarnContext(ctx, "skipping file", slog.String("file", fr.Path), slog.Any("error", err))
		return
	}
	if file.SyntaxErrors {
		r.log().WarnContext(ctx, "file has syntax errors", slog.String("file", fr.Path))
	}
	fr.File = file
}
