package asynclog

import (
	"fmt"
	"sync/atomic"
)

// Level is the verbosity of a single LogRecord, ordered from least to most
// verbose: Error is the most severe and least verbose, Trace is the least
// severe and most verbose. A record is admitted when level <= filter.
type Level uint32

const (
	// Error indicates failures that require attention.
	Error Level = iota + 1
	// Warn signals unexpected situations the application can recover from.
	Warn
	// Info emits general information about application progress.
	Info
	// Debug is lower priority information, useful for troubleshooting.
	Debug
	// Trace is very low priority, often extremely verbose, information.
	Trace
)

var levelNames = [...]string{
	0:     "OFF",
	Error: "ERROR",
	Warn:  "WARN",
	Info:  "INFO",
	Debug: "DEBUG",
	Trace: "TRACE",
}

// String returns the upper-case name of the level, e.g. "ERROR".
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("LEVEL(%d)", uint32(l))
}

// Off disables all records, including Error, when used as a LevelFilter value.
const Off Level = 0

// LevelFilter is an atomic threshold shared lock-free between every producer
// goroutine and the owning LoggerHandle. Producers read it with acquire
// ordering on every submission; it is mutated with release ordering via
// SetFilter. Together with Flag, it is one of the two single-word atomics
// the module permits outside RingBuffer, matching the original Rust
// design's own use of a bare AtomicU8 for the same purpose.
type LevelFilter struct {
	level atomic.Uint32
}

// newLevelFilter constructs a LevelFilter initialized to the given level.
func newLevelFilter(initial Level) *LevelFilter {
	f := &LevelFilter{}
	f.level.Store(uint32(initial))
	return f
}

// Load returns the current filter level.
func (f *LevelFilter) Load() Level {
	return Level(f.level.Load())
}

// Store sets the filter level.
func (f *LevelFilter) Store(level Level) {
	f.level.Store(uint32(level))
}

// Admits reports whether a record at the given level is admitted by the
// current filter: level <= filter in the Error..Trace verbosity ordering,
// and never when the filter is Off.
func (f *LevelFilter) Admits(level Level) bool {
	cur := f.Load()
	if cur == Off {
		return false
	}
	return level <= cur
}
