package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"stripper/logger"
)

var ErrNotRegularFile = errors.New("not a regular file")

// BackupFunc receives a file's original bytes right before it is rewritten.
// Returning an error aborts the write for that file.
type BackupFunc func(path string, original []byte, stripped []byte) error

// Processor applies the strippers to files on disk.
type Processor struct {
	Mode     Mode
	LogMatch LogMatch
	// DryRun computes changes without writing them back.
	DryRun bool
	Backup BackupFunc
}

// FileResult describes what happened to one file.
type FileResult struct {
	Path         string   `json:"path"`
	Language     Language `json:"language"`
	Changed      bool     `json:"changed"`
	OriginalSize int      `json:"original_size"`
	StrippedSize int      `json:"stripped_size"`
	Err          error    `json:"-"`
}

// Summary aggregates the results of a tree run.
type Summary struct {
	Scanned  int          `json:"scanned"`
	Modified int          `json:"modified"`
	Failed   int          `json:"failed"`
	Files    []FileResult `json:"files"`
}

// ProcessText runs the configured transforms over text and reports whether
// the result differs from the input.
func (p *Processor) ProcessText(text, ext string) (string, bool) {
	out := Apply(text, LanguageForExtension(ext), p.Mode, p.LogMatch)
	return out, out != text
}

// ProcessFile reads path, transforms it and writes it back only when the
// content changed. File permissions are preserved.
func (p *Processor) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Path: path, Language: LanguageForPath(path)}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return res, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}
	res.OriginalSize = len(data)

	out, changed := p.ProcessText(string(data), filepath.Ext(path))
	res.StrippedSize = len(out)
	res.Changed = changed
	if !changed {
		logger.Debug("ProcessFile: %s unchanged", path)
		return res, nil
	}
	if p.DryRun {
		logger.Info("ProcessFile: [dry-run] %s would shrink from %d to %d bytes", path, res.OriginalSize, res.StrippedSize)
		return res, nil
	}

	if p.Backup != nil {
		if err := p.Backup(path, data, []byte(out)); err != nil {
			return res, fmt.Errorf("backing up %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("ProcessFile: rewrote %s (%d -> %d bytes)", path, res.OriginalSize, res.StrippedSize)
	return res, nil
}

// ProcessTree processes every file CollectFiles yields under root, one at a
// time. A failing file is recorded in the summary and the run continues; the
// returned error is reserved for walk failures and cancellation.
func (p *Processor) ProcessTree(ctx context.Context, root string, opts WalkOptions) (Summary, error) {
	var summary Summary

	files, err := CollectFiles(root, opts)
	if err != nil {
		return summary, err
	}
	logger.Info("ProcessTree: %d candidate files under %s (mode=%s, log_match=%s, dry_run=%t)", len(files), root, p.Mode, p.LogMatch, p.DryRun)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := p.ProcessFile(ctx, path)
		summary.Scanned++
		if err != nil {
			logger.Error("ProcessTree: %v", err)
			res.Err = err
			summary.Failed++
		} else if res.Changed {
			summary.Modified++
		}
		summary.Files = append(summary.Files, res)
	}
	return summary, nil
}
