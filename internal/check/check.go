// Package check implements the enforcement check engine: regex-based
// checkers that walk project files and emit diagnostics. Checkers always
// inspect real file contents - there is no cached or assumed-success path.
// A checker that cannot run reports that failure as a diagnostic instead of
// being skipped silently.
package check

import (
	"fmt"
	"sort"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	// SeverityOff disables a checker entirely via config.
	SeverityOff Severity = "off"
)

// Diagnostic is one finding from one checker against one file.
type Diagnostic struct {
	Checker  string   `json:"checker"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`           // slash-separated, relative to the project root
	Line     int      `json:"line,omitempty"` // 1-based; 0 for file-level findings
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
	Snippet  string   `json:"snippet,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", d.File, d.Line, d.Column, d.Severity, d.Message, d.Checker)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", d.File, d.Severity, d.Message, d.Checker)
}

// File is the unit of work handed to checkers. Content is the full file;
// Lines is the same content split for line-oriented checkers.
type File struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is slash-separated and relative to the project root.
	RelPath string
	Content []byte
	Lines   []string
}

// Checker inspects a single file. Implementations must be safe for
// concurrent use: Check is called from multiple goroutines.
type Checker interface {
	// ID is the stable identifier used in config and diagnostics.
	ID() string
	// Description is a one-line summary for listings.
	Description() string
	// Applies reports whether the checker wants to see this file at all.
	Applies(relPath string) bool
	// Check returns findings for one file.
	Check(f *File) []Diagnostic
}

// sortDiagnostics orders diagnostics deterministically regardless of the
// goroutine schedule that produced them.
func sortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Checker != b.Checker {
			return a.Checker < b.Checker
		}
		return a.Message < b.Message
	})
}

// Count tallies diagnostics by severity.
func Count(diags []Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
