package asynclog

import "sync/atomic"

// Flag is a small shared atomic boolean, used for EnableStdoutFlag: readable
// by StdSink on every write and writable from any producer goroutine via
// LoggerHandle.EnableStdout.
type Flag struct {
	value atomic.Bool
}

// NewFlag constructs a Flag with the given initial value.
func NewFlag(initial bool) *Flag {
	f := &Flag{}
	f.value.Store(initial)
	return f
}

// Enabled reports the flag's current value.
func (f *Flag) Enabled() bool {
	return f.value.Load()
}

// Set updates the flag's value.
func (f *Flag) Set(enabled bool) {
	f.value.Store(enabled)
}

// Handler is the sink contract. Implementations run exclusively on the
// worker goroutine once installed and may assume serial invocation: no
// internal synchronization is required beyond what their own owned
// resources (files, streams) demand.
type Handler interface {
	// Install is called exactly once on the worker goroutine before the
	// first Write, so the handler can capture shared flags or open lazy
	// resources.
	Install(enableStdout *Flag)
	// Write is called in worker order for every admitted record. It must
	// never panic on I/O errors; failures are swallowed or, in
	// exceptional cases, reported to stderr, because the logger itself
	// must never become a source of application failures.
	Write(record *LogRecord)
	// Flush is called on Flush commands and during orderly shutdown.
	Flush()
}

// NopHandler discards every record and ignores Flush. It is available to
// callers that need a Handler with no effect; the package-level default
// handle does not use it (Default builds a handle with no handlers and an
// Off filter instead).
type NopHandler struct{}

func (NopHandler) Install(*Flag)    {}
func (NopHandler) Write(*LogRecord) {}
func (NopHandler) Flush()           {}
