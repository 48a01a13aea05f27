// Package discover finds TypeScript sources to lint.
//
// Directories are walked recursively. node_modules, dist and
// dot-directories are skipped, as are declaration files (.d.ts).
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
}

// SkipDir reports whether a directory named name is never walked.
func SkipDir(name string) bool {
	return skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// IsSource reports whether name is a lintable TypeScript file.
func IsSource(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	return strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx")
}

// Find returns the TypeScript files under paths, as slash-separated
// paths relative to root, sorted and without duplicates. paths are
// relative to root or absolute; an empty list means root itself.
// Files matching an ignore pattern are left out. A file named
// explicitly is returned even if it lives in a skipped directory.
func Find(ctx context.Context, root string, paths, ignore []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	seen := make(map[string]bool)
	add := func(abs string) error {
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return fmt.Errorf("%s is outside %s", abs, absRoot)
		}
		if !Ignored(rel, ignore) {
			seen[rel] = true
		}
		return nil
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(absRoot, p)
		}
		err := filepath.WalkDir(p, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if name != p && SkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if name == p || IsSource(d.Name()) {
				return add(name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", p, err)
		}
	}

	out := make([]string, 0, len(seen))
	for rel := range seen {
		out = append(out, rel)
	}
	sort.Strings(out)
	return out, nil
}

// Ignored reports whether rel matches any of patterns.
func Ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if Match(p, rel) {
			return true
		}
	}
	return false
}

// Match reports whether the slash-separated name matches the
// doublestar pattern. A pattern without a slash matches the base name at
// any depth, and a pattern naming a directory matches everything in it.
// Malformed patterns match nothing.
func Match(pattern, name string) bool {
	pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "./"), "/")
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}
	for _, p := range []string{pattern, pattern + "/**"} {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
