package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"stripper/config"
	"stripper/core"
	"stripper/database"
	"stripper/logger"
	"stripper/models"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	ErrNoDocument  = errors.New("no document to process")
	ErrNoWorkspace = errors.New("no workspace folder found")
)

// stripOptions is everything a strip command needs, resolved from flags and config.
type stripOptions struct {
	Mode      core.Mode
	LogMatch  core.LogMatch
	DryRun    bool
	File      string
	Root      string
	Stdin     bool
	Extension string
	Walk      core.WalkOptions
	History   bool
}

type stripFlags struct {
	file      string
	stdin     bool
	ext       string
	dryRun    bool
	logMatch  string
	include   []string
	skipDirs  []string
	gitignore bool
	noHistory bool
}

func newStripCmd(mode core.Mode, short, long string) *cobra.Command {
	flags := &stripFlags{}
	c := &cobra.Command{
		Use:   string(mode) + " [path]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger.Info("Executing '%s' command", mode)
			opts, err := resolveStripOptions(cmd, mode, flags, args)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if opts.History {
				opts.History = openHistory()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runStrip(ctx, opts, os.Stdin, os.Stdout); err != nil {
				logger.Error("'%s' command failed: %v", mode, err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				database.CloseDB()
				os.Exit(1)
			}
		},
	}

	f := c.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "process a single file instead of a directory tree")
	f.BoolVar(&flags.stdin, "stdin", false, "read a document from stdin and write the result to stdout")
	f.StringVar(&flags.ext, "ext", "", "file extension of the stdin document, e.g. .js (required with --stdin)")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "report what would change without writing files")
	f.StringVar(&flags.logMatch, "log-match", "", "debug-call matching: prefix or strict (overrides config)")
	f.StringArrayVar(&flags.include, "include", nil, "only process files matching this glob, relative to the root (repeatable, supports **)")
	f.StringArrayVar(&flags.skipDirs, "skip-dir", nil, "additional directory name to skip (repeatable)")
	f.BoolVar(&flags.gitignore, "gitignore", false, "skip files ignored by .gitignore (overrides config)")
	f.BoolVar(&flags.noHistory, "no-history", false, "do not back up rewritten files")
	return c
}

func resolveStripOptions(cmd *cobra.Command, mode core.Mode, flags *stripFlags, args []string) (stripOptions, error) {
	cfg := config.AppConfig
	opts := stripOptions{
		Mode:      mode,
		DryRun:    flags.dryRun || cfg.Strip.DryRun,
		File:      flags.file,
		Stdin:     flags.stdin,
		Extension: flags.ext,
		History:   cfg.History.Enabled && !flags.noHistory,
		Walk: core.WalkOptions{
			SkipDirs:  append(append([]string{}, cfg.Walk.SkipDirs...), flags.skipDirs...),
			Gitignore: cfg.Walk.Gitignore,
			Include:   cfg.Walk.Include,
		},
	}

	logMatch := cfg.Strip.LogMatch
	if cmd.Flags().Changed("log-match") {
		logMatch = flags.logMatch
	}
	lm, err := core.ParseLogMatch(logMatch)
	if err != nil {
		return opts, err
	}
	opts.LogMatch = lm

	if cmd.Flags().Changed("gitignore") {
		opts.Walk.Gitignore = flags.gitignore
	}
	if len(flags.include) > 0 {
		opts.Walk.Include = flags.include
	}

	if len(args) > 0 {
		opts.Root = args[0]
	}
	if opts.Stdin && (opts.File != "" || opts.Root != "") {
		return opts, errors.New("--stdin cannot be combined with --file or a path argument")
	}
	if opts.File != "" && opts.Root != "" {
		return opts, errors.New("--file cannot be combined with a path argument")
	}
	if opts.Stdin {
		opts.History = false
	}
	if opts.DryRun {
		opts.History = false
	}
	return opts, nil
}

// runStrip dispatches to document, single-file or tree processing.
func runStrip(ctx context.Context, opts stripOptions, stdin io.Reader, stdout io.Writer) error {
	switch {
	case opts.Stdin:
		return stripStream(opts, stdin, stdout)
	case opts.File != "":
		return stripSingleFile(ctx, opts, stdout)
	default:
		return stripTree(ctx, opts, stdout)
	}
}

func stripStream(opts stripOptions, stdin io.Reader, stdout io.Writer) error {
	if opts.Extension == "" {
		return errors.New("--ext is required with --stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	p := &core.Processor{Mode: opts.Mode, LogMatch: opts.LogMatch}
	out, changed := p.ProcessText(string(data), opts.Extension)
	logger.Debug("stripStream: %d bytes in, %d bytes out, changed=%t", len(data), len(out), changed)
	_, err = io.WriteString(stdout, out)
	return err
}

// startRun records a run and returns a processor whose backup hook stores
// original contents under it. Without history the run ID is empty.
func startRun(opts stripOptions, root string) (*core.Processor, string) {
	p := &core.Processor{Mode: opts.Mode, LogMatch: opts.LogMatch, DryRun: opts.DryRun}
	if !opts.History {
		return p, ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	runID, err := database.CreateRun(models.Run{
		Root:     root,
		Mode:     string(opts.Mode),
		LogMatch: string(opts.LogMatch),
		DryRun:   opts.DryRun,
	})
	if err != nil {
		logger.Error("Could not record run in history, continuing without backups: %v", err)
		return p, ""
	}
	p.Backup = func(path string, original, stripped []byte) error {
		return database.SaveBackup(runID, path, original, len(stripped))
	}
	return p, runID
}

func finishRun(runID string, scanned, modified, failed int) {
	if runID == "" {
		return
	}
	if err := database.FinishRun(runID, scanned, modified, failed); err != nil {
		logger.Error("Could not finish run %s in history: %v", runID, err)
	}
}

func stripSingleFile(ctx context.Context, opts stripOptions, stdout io.Writer) error {
	info, err := os.Stat(opts.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNoDocument, opts.File)
		}
		return fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNoDocument, opts.File)
	}

	p, runID := startRun(opts, opts.File)
	res, err := p.ProcessFile(ctx, opts.File)
	if err != nil {
		finishRun(runID, 1, 0, 1)
		return err
	}
	modified := 0
	if res.Changed {
		modified = 1
	}
	finishRun(runID, 1, modified, 0)

	switch {
	case res.Changed && opts.DryRun:
		fmt.Fprintln(stdout, "Would modify current file")
	case res.Changed:
		fmt.Fprintln(stdout, "Modified current file")
	}
	if runID != "" && res.Changed {
		logger.Info("Run %s recorded for %s", runID, opts.File)
	}
	return nil
}

func stripTree(ctx context.Context, opts stripOptions, stdout io.Writer) error {
	root := opts.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoWorkspace, root)
	}

	p, runID := startRun(opts, root)
	summary, err := p.ProcessTree(ctx, root, opts.Walk)
	finishRun(runID, summary.Scanned, summary.Modified, summary.Failed)
	if err != nil {
		return err
	}

	if opts.DryRun {
		for _, f := range summary.Files {
			if f.Changed {
				fmt.Fprintf(stdout, "would modify %s\n", f.Path)
			}
		}
		fmt.Fprintf(stdout, "Would modify %d files\n", summary.Modified)
	} else {
		fmt.Fprintf(stdout, "Modified %d files\n", summary.Modified)
	}
	if runID != "" && summary.Modified > 0 {
		fmt.Fprintf(stdout, "Run ID: %s (undo with 'stripper history restore %s')\n", runID, runID)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files could not be processed (see log for details)", summary.Failed, summary.Scanned)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(
		newStripCmd(core.ModeComments,
			"Remove comment lines",
			`Removes whole-line comments and block comments from .js, .jsx, .ts, .tsx,
.css, .html and .py files. A comment sharing a line with code is kept.`),
		newStripCmd(core.ModeLogs,
			"Remove debug statements",
			`Removes lines that are a bare console.log/debug/info/warn/error call
(JavaScript family) or a print call (Python).`),
		newStripCmd(core.ModeBoth,
			"Remove comment lines and debug statements",
			`Strips comments first, then debug statements, from every supported file.`),
	)
}
