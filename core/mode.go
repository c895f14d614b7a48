package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode     = errors.New("unknown strip mode")
	ErrUnknownLogMatch = errors.New("unknown log match strategy")
)

// Mode selects which transforms run over a document.
type Mode string

const (
	ModeComments Mode = "comments"
	ModeLogs     Mode = "logs"
	ModeBoth     Mode = "both"
)

// ParseMode accepts "comments", "logs" or "both" in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeComments, ModeLogs, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (expected comments, logs or both)", ErrUnknownMode, s)
}

// Comments reports whether the comment stripper runs in this mode.
func (m Mode) Comments() bool { return m == ModeComments || m == ModeBoth }

// Logs reports whether the log stripper runs in this mode.
func (m Mode) Logs() bool { return m == ModeLogs || m == ModeBoth }

// LogMatch selects how strictly a debug-call line must match before it is dropped.
type LogMatch string

const (
	// LogMatchPrefix drops any line that begins with the call through its opening parenthesis.
	LogMatchPrefix LogMatch = "prefix"
	// LogMatchStrict drops a line only when the whole call, closing parenthesis
	// included, sits on that line.
	LogMatchStrict LogMatch = "strict"
)

// ParseLogMatch accepts "prefix" or "strict"; the empty string yields LogMatchPrefix.
func ParseLogMatch(s string) (LogMatch, error) {
	switch lm := LogMatch(strings.ToLower(strings.TrimSpace(s))); lm {
	case "":
		return LogMatchPrefix, nil
	case LogMatchPrefix, LogMatchStrict:
		return lm, nil
	}
	return "", fmt.Errorf("%w: %q (expected prefix or strict)", ErrUnknownLogMatch, s)
}
