package models

import (
	"time"
)

// Run is one recorded invocation of a strip command over a file or tree.
type Run struct {
	ID         string     `json:"id" example:"3f1c2a9e-8d2b-4c55-9a51-2f6d1c0e7b44" readOnly:"true"`
	// Directory or file the run was started on.
	Root       string     `json:"root" example:"/home/me/project"`
	Mode       string     `json:"mode" example:"both" enum:"comments,logs,both"`
	LogMatch   string     `json:"log_match" example:"prefix" enum:"prefix,strict"`
	DryRun     bool       `json:"dry_run" example:"false"`
	Scanned    int        `json:"scanned" example:"42"`
	Modified   int        `json:"modified" example:"7"`
	Failed     int        `json:"failed" example:"0"`
	StartedAt  time.Time  `json:"started_at" swaggertype:"string" format:"date-time"`
	FinishedAt *time.Time `json:"finished_at,omitempty" swaggertype:"string" format:"date-time"`
}

// FileBackup is the pre-strip content of one rewritten file.
type FileBackup struct {
	ID           int64     `json:"id" example:"1" format:"int64" readOnly:"true"`
	RunID        string    `json:"run_id"`
	Path         string    `json:"path" example:"/home/me/project/src/app.js"`
	OriginalSize int       `json:"original_size" example:"2048"`
	StrippedSize int       `json:"stripped_size" example:"1536"`
	CreatedAt    time.Time `json:"created_at" swaggertype:"string" format:"date-time"`
	Original     []byte    `json:"-"`
}

// RunDetail is a run together with the files it rewrote.
type RunDetail struct {
	Run
	Files []FileBackup `json:"files"`
}
