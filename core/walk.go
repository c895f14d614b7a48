package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"stripper/logger"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	filepathx "github.com/yargevad/filepathx"
)

// DefaultSkipDirs are always pruned in addition to every dot-directory.
var DefaultSkipDirs = []string{"node_modules"}

// WalkOptions tunes which files CollectFiles yields.
type WalkOptions struct {
	// SkipDirs are directory base names pruned on top of DefaultSkipDirs.
	SkipDirs []string
	// Gitignore prunes paths matched by the .gitignore files under the root.
	Gitignore bool
	// Include restricts results to files matched by at least one of these
	// globs, relative to the root. "**" matches any number of directories.
	Include []string
}

// CollectFiles walks root and returns the paths of every file with a
// supported extension, in lexical order. Directories whose name starts with
// "." and the configured skip directories are not descended into.
func CollectFiles(root string, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if IsSupportedExtension(filepath.Ext(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	skip := make(map[string]struct{}, len(DefaultSkipDirs)+len(opts.SkipDirs))
	for _, name := range append(append([]string{}, DefaultSkipDirs...), opts.SkipDirs...) {
		name = strings.TrimSpace(name)
		if name != "" {
			skip[name] = struct{}{}
		}
	}

	var ignore gitignore.Matcher
	if opts.Gitignore {
		patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return nil, fmt.Errorf("reading .gitignore patterns under %s: %w", root, err)
		}
		logger.Debug("CollectFiles: loaded %d gitignore patterns under %s", len(patterns), root)
		ignore = gitignore.NewMatcher(patterns)
	}

	included, err := expandIncludes(root, opts.Include)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, ok := skip[name]; ok {
				return filepath.SkipDir
			}
		}
		if ignore != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && ignore.Match(strings.Split(filepath.ToSlash(rel), "/"), d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !IsSupportedExtension(filepath.Ext(name)) {
			return nil
		}
		if included != nil {
			if _, ok := included[absPath(path)]; !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// expandIncludes resolves include globs to a set of absolute paths. A nil set
// means no include filter is active.
func expandIncludes(root string, patterns []string) (map[string]struct{}, error) {
	var active []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	set := make(map[string]struct{})
	for _, p := range active {
		abs := p
		if !filepath.IsAbs(p) {
			abs = filepath.Join(root, p)
		}
		matches, err := filepathx.Glob(abs)
		if err != nil {
			return nil, fmt.Errorf("invalid include glob %q: %w", p, err)
		}
		for _, m := range matches {
			set[absPath(m)] = struct{}{}
		}
	}
	return set, nil
}

// absPath makes include matches and walked paths comparable whether the
// root and the globs were given as relative or absolute paths.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
