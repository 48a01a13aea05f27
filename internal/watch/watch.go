// Package watch re-runs a callback when TypeScript sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/broady/typeormlint/internal/discover"
)

// DefaultDebounce is how long events are collected before a run.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the changed files, slash-separated and relative to
// the watched root. Returning an error stops the watch.
type Handler func(ctx context.Context, changed []string) error

// Watcher watches a directory tree.
type Watcher struct {
	Root     string
	Debounce time.Duration
	Logger   *slog.Logger
}

func (w *Watcher) log() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

// Run blocks until ctx is done or handler fails, calling handler once
// per burst of changes.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.Root); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fw, event.Name); err != nil {
						w.log().WarnContext(ctx, "watch directory failed", slog.String("dir", event.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !discover.IsSource(filepath.Base(event.Name)) {
				continue
			}
			rel, err := filepath.Rel(w.Root, event.Name)
			if err != nil {
				continue
			}
			pending[filepath.ToSlash(rel)] = true
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log().WarnContext(ctx, "watch error", slog.Any("error", err))
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			w.log().DebugContext(ctx, "sources changed", slog.Int("files", len(changed)))
			if err := handler(ctx, changed); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && discover.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
