package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "simple", path: "src/user.ts"},
		{name: "single file", path: "user.ts"},
		{name: "dots in name", path: "src/user..entity.ts"},
		{name: "empty", path: "", wantErr: true, errMsg: "empty"},
		{name: "absolute", path: "/src/user.ts", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "windows drive", path: "C:/src/user.ts", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "traversal", path: "src/../user.ts", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../user.ts", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "current dir prefix", path: "./user.ts", wantErr: true, errMsg: "not clean"},
		{name: "double slash", path: "src//user.ts", wantErr: true, errMsg: "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("class User {}\n")
	if err := s.WriteFile(ctx, "src/user.ts", content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	content[0] = 'X'
	if got := string(s.Get("src/user.ts")); got != "class User {}\n" {
		t.Errorf("Get() = %q, content was not copied", got)
	}
	if s.Get("missing.ts") != nil {
		t.Error("Get() of missing file should be nil")
	}
	if len(s.Files()) != 1 {
		t.Errorf("Files() = %d entries, want 1", len(s.Files()))
	}
	if err := s.WriteFile(ctx, "../x.ts", nil); err == nil {
		t.Error("expected error for traversal path")
	}
}

func TestMemorySink_Concurrent(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.WriteFile(context.Background(), filepath.ToSlash(filepath.Join("src", string(rune('a'+i))+".ts")), []byte("x"))
		}(i)
	}
	wg.Wait()
	if len(s.Files()) != 20 {
		t.Errorf("expected 20 files, got %d", len(s.Files()))
	}
}

func TestFilesystemSink(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "src/user.ts", []byte("a")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "src", "user.ts"))
	if err != nil || string(got) != "a" {
		t.Fatalf("ReadFile() = %q, %v", got, err)
	}

	path := filepath.Join(root, "src", "user.ts")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "src/user.ts", []byte("b")); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want existing mode 0600 kept", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Join(root, "src"))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".typeormlint-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFilesystemSink_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewFilesystemSink(t.TempDir())
	if err := s.WriteFile(ctx, "user.ts", []byte("a")); err != context.Canceled {
		t.Errorf("WriteFile() error = %v, want context.Canceled", err)
	}
}
