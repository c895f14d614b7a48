package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js":                    "",
		"b.json":                  "",
		"src/c.tsx":               "",
		"src/styles/d.css":        "",
		"src/README.md":           "",
		".git/hooks/e.py":         "",
		".cache/f.js":             "",
		"node_modules/lib/g.js":   "",
		"web/node_modules/h.js":   "",
		"vendor/i.py":             "",
		"templates/index.html":    "",
		"templates/.hidden/j.css": "",
	})

	files, err := CollectFiles(root, WalkOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.js",
		"src/c.tsx",
		"src/styles/d.css",
		"templates/index.html",
		"vendor/i.py",
	}, relPaths(t, root, files))

	files, err = CollectFiles(root, WalkOptions{SkipDirs: []string{"vendor", " "}})
	require.NoError(t, err)
	assert.NotContains(t, relPaths(t, root, files), "vendor/i.py")
}

func TestCollectFilesGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "dist/\n*.min.js\n",
		"app.js":           "",
		"app.min.js":       "",
		"dist/bundle.js":   "",
		"lib/.gitignore":   "generated.py\n",
		"lib/generated.py": "",
		"lib/tool.py":      "",
	})

	files, err := CollectFiles(root, WalkOptions{})
	require.NoError(t, err)
	assert.Len(t, files, 5)

	files, err = CollectFiles(root, WalkOptions{Gitignore: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js", "lib/tool.py"}, relPaths(t, root, files))
}

func TestCollectFilesInclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js":           "",
		"src/b.js":       "",
		"src/deep/c.js":  "",
		"src/deep/d.css": "",
	})

	files, err := CollectFiles(root, WalkOptions{Include: []string{"src/**/*.js"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/b.js", "src/deep/c.js"}, relPaths(t, root, files))

	files, err = CollectFiles(root, WalkOptions{Include: []string{"", "  "}})
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestCollectFilesAbsoluteIncludeRelativeRoot(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeTree(t, dir, map[string]string{
		"src/a.js": "",
		"src/b.py": "",
		"lib/c.js": "",
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	files, err := CollectFiles(".", WalkOptions{Include: []string{filepath.Join(dir, "src", "*.js")}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("src", "a.js")}, files)

	files, err = CollectFiles(".", WalkOptions{Include: []string{"src/*.js"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("src", "a.js")}, files)

	files, err = CollectFiles(dir, WalkOptions{Include: []string{"src/*.js"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "a.js")}, files)
}

func TestCollectFilesSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"x.py": "", "y.txt": ""})

	files, err := CollectFiles(filepath.Join(root, "x.py"), WalkOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "x.py")}, files)

	files, err = CollectFiles(filepath.Join(root, "y.txt"), WalkOptions{})
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = CollectFiles(filepath.Join(root, "missing"), WalkOptions{})
	assert.Error(t, err)
}
