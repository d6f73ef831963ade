// Package asynclog provides a minimal asynchronous, multi-sink logging core.
// Producers on any goroutine build a LogRecord, check it against an atomic
// LevelFilter, and hand it to a single background worker goroutine over a
// bounded ring buffer. The worker fans each record out to an ordered list of
// Handlers (stdout/stderr, per-target files, an in-memory capture ring, or a
// caller-supplied sink); a sink that panics is isolated so the remaining
// sinks and the worker keep running.
package asynclog
