package asynclog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const panicRecord = "The logging thread has panicked!"

var (
	defaultGuard sync.Mutex
	defaultSlot  *LoggerHandle
)

// Default returns the process-wide convenience handle, lazily building an
// inert handle on first use so call sites never need a nil check. Per the
// design notes, this is the only process-wide mutable slot the package
// exposes; all other mutable state lives behind the atomic
// LevelFilter/Flag the returned handle already carries.
func Default() *LoggerHandle {
	defaultGuard.Lock()
	defer defaultGuard.Unlock()
	if defaultSlot == nil {
		defaultSlot = NewBuilder().Filter(Off).Start()
	}
	return defaultSlot
}

func replaceDefault(next *Builder) *LoggerHandle {
	defaultGuard.Lock()
	defer defaultGuard.Unlock()

	panicked := false
	if defaultSlot != nil {
		// Close() joins the worker goroutine before returning, so by the
		// time WorkerPanicked() runs its done channel is guaranteed closed
		// and the check below is deterministic rather than racing the
		// panic recovery in worker.run's defer.
		defaultSlot.Close()
		panicked = defaultSlot.WorkerPanicked()
	}

	h := next.Start()
	if panicked {
		h.SubmitRaw(FromMessage(Location{ModulePath: "asynclog::global", File: "global.go"}, Error, panicRecord))
	}
	defaultSlot = h
	return h
}

// EnableDefaultForUtility configures the default handle for short-lived
// command-line utilities: colorized console output at Info plus an
// optional file sink, generalizing the teacher's
// EnableDefaultLoggerForUtility. logDir may be nil to skip the file sink.
func EnableDefaultForUtility(logDir DirectoryProvider) *LoggerHandle {
	b := NewBuilder().ColorPolicy(ColorAuto).Filter(Info).AddStdout()
	if logDir != nil {
		b = b.AddFile(logDir)
	}
	return replaceDefault(b)
}

// EnableDefaultForService configures the default handle for long-running
// daemons: console output defaulting to Warn plus an optional file sink,
// generalizing EnableDefaultLoggerForService.
func EnableDefaultForService(logDir DirectoryProvider) *LoggerHandle {
	b := NewBuilder().ColorPolicy(ColorAuto).Filter(Warn).AddStdout()
	if logDir != nil {
		b = b.AddFile(logDir)
	}
	return replaceDefault(b)
}

// EnableDefaultForLogServer configures the default handle for pure
// log-forwarding processes that only need durable file storage, with
// console output disabled entirely — generalizing
// EnableDefaultLoggerForLogServer.
func EnableDefaultForLogServer(logDir DirectoryProvider) *LoggerHandle {
	b := NewBuilder().Filter(Info)
	if logDir != nil {
		b = b.AddFile(logDir)
	}
	return replaceDefault(b)
}

// CloseDefault releases resources owned by the default handle and empties
// the slot, so the next Default call lazily builds a fresh inert handle.
func CloseDefault() {
	defaultGuard.Lock()
	if defaultSlot != nil {
		defaultSlot.Close()
	}
	defaultSlot = nil
	defaultGuard.Unlock()
}

func callerLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{ModulePath: "asynclog::unknown", File: "unknown", Line: 0}
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	target, module := splitFuncName(name)
	return Location{ModulePath: target + "::" + module, File: filepath.Base(file), Line: line}
}

// splitFuncName turns a runtime function name such as
// "github.com/org/pkg.FuncName" or "github.com/org/pkg.(*Type).Method"
// into a (target, module) pair matching Location.Target()/Module().
func splitFuncName(full string) (target, module string) {
	rest := full
	if slash := strings.LastIndex(full, "/"); slash >= 0 {
		rest = full[slash+1:]
	}
	if dot := strings.Index(rest, "."); dot >= 0 {
		return rest[:dot], rest[dot+1:]
	}
	return rest, "main"
}

// Debugf logs a Debug-level record against the default handle, using
// fmt.Sprintf-style formatting and the immediate caller's location.
func Debugf(format string, args ...interface{}) { logf(3, Debug, format, args...) }

// Infof logs an Info-level record against the default handle.
func Infof(format string, args ...interface{}) { logf(3, Info, format, args...) }

// Warnf logs a Warn-level record against the default handle.
func Warnf(format string, args ...interface{}) { logf(3, Warn, format, args...) }

// Errorf logs an Error-level record against the default handle.
func Errorf(format string, args ...interface{}) { logf(3, Error, format, args...) }

// Fatalf logs an Error-level record, closes the default handle to flush
// it, then exits the process with status 1.
func Fatalf(format string, args ...interface{}) {
	logf(3, Error, format, args...)
	CloseDefault()
	os.Exit(1)
}

func logf(skip int, level Level, format string, args ...interface{}) {
	h := Default()
	if !h.Admits(level) {
		return
	}
	loc := callerLocation(skip)
	rec := NewRecord(loc, level)
	rec.AppendString(fmt.Sprintf(format, args...))
	h.SubmitRaw(rec)
}
