// Package diag provides the non-fatal diagnostic sink used by the
// legacy VTK reader for warnings that should be recorded rather than
// raised: unrecognized METADATA keys, unknown information keys,
// malformed information entries, and a file version newer than this
// reader's compiled-in maximum.
//
// Log wraps *log.Logger and also keeps a small bounded ring of recent
// entries for programmatic inspection, mirroring the
// accumulate-and-expose shape of internal/collision.Tracker.
package diag

import (
	"fmt"
	"log"
)

// ringCapacity bounds how many recent diagnostics a Log retains for
// programmatic inspection; older entries are dropped first.
const ringCapacity = 64

// Entry is one recorded diagnostic.
type Entry struct {
	Stage   string // component that raised the diagnostic, e.g. "infokey", "arrayio"
	Message string
}

// Log accumulates diagnostics and forwards each one to an underlying
// *log.Logger. The zero value is not usable; construct with New.
type Log struct {
	logger *log.Logger
	ring   []Entry
	head   int
	count  int
}

// New creates a Log that writes through logger. A nil logger falls
// back to log.Default().
func New(logger *log.Logger) *Log {
	if logger == nil {
		logger = log.Default()
	}

	return &Log{
		logger: logger,
		ring:   make([]Entry, ringCapacity),
	}
}

// Warnf records a diagnostic for the given stage and writes it
// through the underlying logger.
func (l *Log) Warnf(stage, format string, args ...any) {
	if l == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("vtklegacy: [%s] %s", stage, msg)

	l.ring[l.head] = Entry{Stage: stage, Message: msg}
	l.head = (l.head + 1) % ringCapacity
	if l.count < ringCapacity {
		l.count++
	}
}

// Recent returns the recorded diagnostics in chronological order,
// oldest first, capped at ringCapacity entries.
func (l *Log) Recent() []Entry {
	if l == nil || l.count == 0 {
		return nil
	}

	out := make([]Entry, l.count)
	start := l.head - l.count
	if start < 0 {
		start += ringCapacity
	}
	for i := 0; i < l.count; i++ {
		out[i] = l.ring[(start+i)%ringCapacity]
	}

	return out
}

// Reset clears the recorded diagnostics. The underlying logger is
// unchanged.
func (l *Log) Reset() {
	if l == nil {
		return
	}

	l.head = 0
	l.count = 0
}
