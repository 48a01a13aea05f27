package discover

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("export class A {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestFind(t *testing.T) {
	root := writeTree(t,
		"src/user.ts",
		"src/view.tsx",
		"src/types.d.ts",
		"src/readme.md",
		"src/migrations/001.ts",
		"node_modules/typeorm/index.ts",
		"dist/user.ts",
		".cache/user.ts",
		"lib/post.ts",
	)

	tests := []struct {
		name   string
		paths  []string
		ignore []string
		want   []string
	}{
		{
			name: "whole root",
			want: []string{"lib/post.ts", "src/migrations/001.ts", "src/user.ts", "src/view.tsx"},
		},
		{
			name:  "one directory",
			paths: []string{"src"},
			want:  []string{"src/migrations/001.ts", "src/user.ts", "src/view.tsx"},
		},
		{
			name:   "ignore directory glob",
			paths:  []string{"src"},
			ignore: []string{"src/migrations/**"},
			want:   []string{"src/user.ts", "src/view.tsx"},
		},
		{
			name:   "ignore base name",
			ignore: []string{"*.tsx", "migrations"},
			want:   []string{"lib/post.ts", "src/user.ts"},
		},
		{
			name:  "explicit file in skipped dir",
			paths: []string{"dist/user.ts", "src/user.ts", "src"},
			want:  []string{"dist/user.ts", "src/migrations/001.ts", "src/user.ts", "src/view.tsx"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(context.Background(), root, tt.paths, tt.ignore)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFind_Errors(t *testing.T) {
	root := writeTree(t, "src/user.ts")
	if _, err := Find(context.Background(), root, []string{"missing"}, nil); err == nil {
		t.Error("expected error for missing path")
	}
	outside := writeTree(t, "other.ts")
	if _, err := Find(context.Background(), root, []string{outside}, nil); err == nil {
		t.Error("expected error for path outside root")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Find(ctx, root, nil, nil); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"migrations/**", "migrations/001.ts", true},
		{"migrations/**", "src/migrations/001.ts", false},
		{"**/migrations/**", "src/migrations/001.ts", true},
		{"*.spec.ts", "src/user.spec.ts", true},
		{"src/*.ts", "src/user.ts", true},
		{"src/*.ts", "lib/user.ts", false},
		{"generated/", "generated/a/b.ts", true},
		{"./src/user.ts", "src/user.ts", true},
		{"[", "x.ts", false},
		{"*.spec.ts", "user.spec.ts", true},
		{"src/**/*.entity.ts", "src/a/b/user.entity.ts", true},
		{"src/**/*.entity.ts", "src/user.ts", false},
		{"src/{user,post}.ts", "src/post.ts", true},
		{"src/{user,post}.ts", "src/tag.ts", false},
		{"generated/", "generatedx/a.ts", false},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.name); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestIsSource(t *testing.T) {
	for name, want := range map[string]bool{
		"a.ts": true, "a.tsx": true, "a.d.ts": false, "a.js": false, "a.mts": false,
	} {
		if got := IsSource(name); got != want {
			t.Errorf("IsSource(%q) = %v, want %v", name, got, want)
		}
	}
}
