package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "node_modules"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got := make(chan []string, 1)
	w := &Watcher{Root: root, Debounce: 50 * time.Millisecond}
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ctx context.Context, changed []string) error {
			select {
			case got <- changed:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register directories.
	time.Sleep(200 * time.Millisecond)
	for _, name := range []string{"src/user.ts", "src/notes.md", "node_modules/x.ts"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case changed := <-got:
		if len(changed) != 1 || changed[0] != "src/user.ts" {
			t.Errorf("changed = %v, want [src/user.ts]", changed)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for change")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := &Watcher{Root: filepath.Join(t.TempDir(), "missing")}
	err := w.Run(context.Background(), func(context.Context, []string) error { return nil })
	if err == nil {
		t.Error("expected error for missing root")
	}
}
