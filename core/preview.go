package core

import (
	"strings"
)

const contextLines = 2 // lines of context shown before and after a removed line

// RemovalKind says which stripper removes a line.
type RemovalKind string

const (
	RemovalComment RemovalKind = "comment"
	RemovalLog     RemovalKind = "log"
)

// RemovedLine is one line a strip would delete, with its surroundings.
type RemovedLine struct {
	LineNumber    int         `json:"line_number"`
	Text          string      `json:"text"`
	Kind          RemovalKind `json:"kind"`
	ContextBefore string      `json:"context_before"`
	ContextAfter  string      `json:"context_after"`
}

// Preview lists the lines Apply would remove from text, numbered from 1.
// A line dropped by the comment stripper is never reported again as a log
// line. Blank lines merged by the collapse step are not reported.
func Preview(text string, lang Language, mode Mode, match LogMatch) []RemovedLine {
	lines := strings.Split(text, "\n")
	kinds := make([]RemovalKind, len(lines))

	if mode.Comments() {
		if mask, ok := commentDropMask(lines, lang); ok {
			for i, drop := range mask {
				if drop {
					kinds[i] = RemovalComment
				}
			}
		}
	}
	if mode.Logs() {
		if mask, ok := logDropMask(lines, lang, match); ok {
			for i, drop := range mask {
				if drop && kinds[i] == "" {
					kinds[i] = RemovalLog
				}
			}
		}
	}

	var removed []RemovedLine
	for i, kind := range kinds {
		if kind == "" {
			continue
		}
		before, after := getContext(lines, i)
		removed = append(removed, RemovedLine{
			LineNumber:    i + 1,
			Text:          lines[i],
			Kind:          kind,
			ContextBefore: before,
			ContextAfter:  after,
		})
	}
	return removed
}

func getContext(lines []string, currentLineIndex int) (before string, after string) {
	startLine := currentLineIndex - contextLines
	if startLine < 0 {
		startLine = 0
	}
	endLine := currentLineIndex + 1 + contextLines
	if endLine > len(lines) {
		endLine = len(lines)
	}
	return strings.Join(lines[startLine:currentLineIndex], "\n"), strings.Join(lines[currentLineIndex+1:endLine], "\n")
}
