package database

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"stripper/logger"
	"stripper/models"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix matches more than one run")
	ErrNoDatabase   = errors.New("history database is not initialized")
)

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
}

// CreateRun records the start of a run and returns its ID. A fresh UUID is
// assigned when run.ID is empty.
func CreateRun(run models.Run) (string, error) {
	if DB == nil {
		return "", ErrNoDatabase
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	_, err := DB.Exec(`INSERT INTO runs (id, root, mode, log_match, dry_run, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Mode, run.LogMatch, run.DryRun, run.StartedAt)
	if err != nil {
		return "", fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	logger.Debug("CreateRun: recorded run %s for %s (mode=%s)", run.ID, run.Root, run.Mode)
	return run.ID, nil
}

// FinishRun stores the final counters of a run.
func FinishRun(id string, scanned, modified, failed int) error {
	if DB == nil {
		return ErrNoDatabase
	}
	res, err := DB.Exec(`UPDATE runs SET scanned = ?, modified = ?, failed = ?, finished_at = ? WHERE id = ?`,
		scanned, modified, failed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finishing run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// SaveBackup stores the original content of path, brotli-compressed, under runID.
func SaveBackup(runID, path string, original []byte, strippedSize int) error {
	if DB == nil {
		return ErrNoDatabase
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	packed, err := compress(original)
	if err != nil {
		return fmt.Errorf("compressing backup of %s: %w", path, err)
	}
	_, err = DB.Exec(`INSERT OR REPLACE INTO file_backups (run_id, path, original, original_size, stripped_size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, absPath, packed, len(original), strippedSize, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving backup of %s for run %s: %w", path, runID, err)
	}
	logger.Debug("SaveBackup: %s stored for run %s (%d -> %d compressed bytes)", absPath, runID, len(original), len(packed))
	return nil
}

func scanRun(row interface{ Scan(...interface{}) error }) (models.Run, error) {
	var r models.Run
	var finished sql.NullTime
	if err := row.Scan(&r.ID, &r.Root, &r.Mode, &r.LogMatch, &r.DryRun, &r.Scanned, &r.Modified, &r.Failed, &r.StartedAt, &finished); err != nil {
		return r, err
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return r, nil
}

const runColumns = `id, root, mode, log_match, dry_run, scanned, modified, failed, started_at, finished_at`

// ListRuns returns the most recent runs first. A limit of zero or less returns all runs.
func ListRuns(limit int) ([]models.Run, error) {
	if DB == nil {
		return nil, ErrNoDatabase
	}
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id ASC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return runs, nil
}

// ResolveRunID expands a full run ID or a unique prefix of one.
func ResolveRunID(idOrPrefix string) (string, error) {
	if DB == nil {
		return "", ErrNoDatabase
	}
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", ErrRunNotFound
	}
	rows, err := DB.Query(`SELECT id FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`, idOrPrefix, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolving run %q: %w", idOrPrefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating run ids: %w", err)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%q: %w", idOrPrefix, ErrRunNotFound)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("%q: %w", idOrPrefix, ErrAmbiguousRun)
}

// GetRun fetches a run by ID or unique ID prefix.
func GetRun(idOrPrefix string) (models.Run, error) {
	id, err := ResolveRunID(idOrPrefix)
	if err != nil {
		return models.Run{}, err
	}
	r, err := scanRun(DB.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%q: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return r, fmt.Errorf("fetching run %s: %w", id, err)
	}
	return r, nil
}

// GetRunFiles returns the backups recorded for a run, with Original decompressed.
func GetRunFiles(runID string) ([]models.FileBackup, error) {
	if DB == nil {
		return nil, ErrNoDatabase
	}
	rows, err := DB.Query(`SELECT id, run_id, path, original, original_size, stripped_size, created_at FROM file_backups WHERE run_id = ? ORDER BY path ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying backups for run %s: %w", runID, err)
	}
	defer rows.Close()

	files := []models.FileBackup{}
	for rows.Next() {
		var f models.FileBackup
		var packed []byte
		if err := rows.Scan(&f.ID, &f.RunID, &f.Path, &packed, &f.OriginalSize, &f.StrippedSize, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning backup row: %w", err)
		}
		f.Original, err = decompress(packed)
		if err != nil {
			return nil, fmt.Errorf("decompressing backup of %s: %w", f.Path, err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backup rows: %w", err)
	}
	return files, nil
}

// GetRunDetail combines GetRun and GetRunFiles.
func GetRunDetail(idOrPrefix string) (models.RunDetail, error) {
	run, err := GetRun(idOrPrefix)
	if err != nil {
		return models.RunDetail{}, err
	}
	files, err := GetRunFiles(run.ID)
	if err != nil {
		return models.RunDetail{}, err
	}
	return models.RunDetail{Run: run, Files: files}, nil
}

// RestoreRun writes every backup of a run back to its original path and
// returns how many files were restored. Existing file permissions are kept.
func RestoreRun(idOrPrefix string) (int, error) {
	run, err := GetRun(idOrPrefix)
	if err != nil {
		return 0, err
	}
	files, err := GetRunFiles(run.ID)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, f := range files {
		perm := os.FileMode(0644)
		if info, statErr := os.Stat(f.Path); statErr == nil {
			perm = info.Mode().Perm()
		}
		if err := os.WriteFile(f.Path, f.Original, perm); err != nil {
			return restored, fmt.Errorf("restoring %s: %w", f.Path, err)
		}
		logger.Info("RestoreRun: restored %s from run %s", f.Path, run.ID)
		restored++
	}
	return restored, nil
}
