package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stripper/core"
	"stripper/database"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStripOptionsConflicts(t *testing.T) {
	cmd := &cobra.Command{}

	_, err := resolveStripOptions(cmd, core.ModeBoth, &stripFlags{stdin: true, file: "a.js"}, nil)
	assert.Error(t, err)

	_, err = resolveStripOptions(cmd, core.ModeBoth, &stripFlags{stdin: true}, []string{"src"})
	assert.Error(t, err)

	_, err = resolveStripOptions(cmd, core.ModeBoth, &stripFlags{file: "a.js"}, []string{"src"})
	assert.Error(t, err)

	opts, err := resolveStripOptions(cmd, core.ModeLogs, &stripFlags{dryRun: true, skipDirs: []string{"vendor"}}, []string{"src"})
	require.NoError(t, err)
	assert.Equal(t, core.ModeLogs, opts.Mode)
	assert.Equal(t, core.LogMatchPrefix, opts.LogMatch)
	assert.Equal(t, "src", opts.Root)
	assert.False(t, opts.History)
	assert.Contains(t, opts.Walk.SkipDirs, "vendor")
}

func TestResolveStripOptionsLogMatchFlag(t *testing.T) {
	c := newStripCmd(core.ModeLogs, "", "")
	require.NoError(t, c.ParseFlags([]string{"--log-match", "strict", "--gitignore", "--include", "src/**/*.js"}))

	flags := &stripFlags{logMatch: "strict", gitignore: true, include: []string{"src/**/*.js"}}
	opts, err := resolveStripOptions(c, core.ModeLogs, flags, nil)
	require.NoError(t, err)
	assert.Equal(t, core.LogMatchStrict, opts.LogMatch)
	assert.True(t, opts.Walk.Gitignore)
	assert.Equal(t, []string{"src/**/*.js"}, opts.Walk.Include)

	flags.logMatch = "loose"
	_, err = resolveStripOptions(c, core.ModeLogs, flags, nil)
	assert.ErrorIs(t, err, core.ErrUnknownLogMatch)
}

func TestRunStripStdin(t *testing.T) {
	var out bytes.Buffer
	opts := stripOptions{Mode: core.ModeBoth, Stdin: true, Extension: "py"}

	err := runStrip(context.Background(), opts, strings.NewReader("# hi\nprint(1)\nx=2"), &out)
	require.NoError(t, err)
	assert.Equal(t, "x=2", out.String())

	opts.Extension = ""
	assert.Error(t, runStrip(context.Background(), opts, strings.NewReader("x"), &out))
}

func TestRunStripSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(path, []byte("// a\nx=1\n/* b\nc */\nd=2"), 0o644))

	var out bytes.Buffer
	opts := stripOptions{Mode: core.ModeComments, File: path, DryRun: true}
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Equal(t, "Would modify current file\n", out.String())

	out.Reset()
	opts.DryRun = false
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Equal(t, "Modified current file\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x=1\nd=2", string(data))

	out.Reset()
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Empty(t, out.String(), "an unchanged file prints nothing")

	opts.File = filepath.Join(dir, "missing.js")
	assert.ErrorIs(t, runStrip(context.Background(), opts, nil, &out), ErrNoDocument)

	opts.File = dir
	assert.ErrorIs(t, runStrip(context.Background(), opts, nil, &out), ErrNoDocument)
}

func TestRunStripTree(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.js":              "console.log(1);\nrun();",
		"b.py":              "x = 1",
		"lib/c.css":         "/* c */\nb {}",
		"node_modules/d.js": "console.log(1);",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	var out bytes.Buffer
	opts := stripOptions{Mode: core.ModeBoth, Root: root, DryRun: true}
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Contains(t, out.String(), "would modify "+filepath.Join(root, "a.js"))
	assert.Contains(t, out.String(), "Would modify 2 files\n")

	out.Reset()
	opts.DryRun = false
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Equal(t, "Modified 2 files\n", out.String())

	data, err := os.ReadFile(filepath.Join(root, "node_modules", "d.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1);", string(data))

	opts.Root = filepath.Join(root, "a.js")
	assert.ErrorIs(t, runStrip(context.Background(), opts, nil, &out), ErrNoWorkspace)
}

func TestRunStripTreeWithHistory(t *testing.T) {
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "history.db")))
	t.Cleanup(func() { database.CloseDB() })

	root := t.TempDir()
	path := filepath.Join(root, "main.py")
	original := "# setup\nprint('debug')\nvalue = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	var out bytes.Buffer
	opts := stripOptions{Mode: core.ModeBoth, LogMatch: core.LogMatchStrict, Root: root, History: true}
	require.NoError(t, runStrip(context.Background(), opts, nil, &out))
	assert.Contains(t, out.String(), "Modified 1 files\n")
	assert.Contains(t, out.String(), "Run ID: ")

	runs, err := database.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Modified)
	assert.Equal(t, 1, runs[0].Scanned)
	assert.Equal(t, "strict", runs[0].LogMatch)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "value = 3\n", string(data))

	n, err := database.RestoreRun(runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
