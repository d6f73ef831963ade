package asynclog

import "runtime"

// LoggerHandle is the owning facade: it carries the send end of the
// command ring buffer, the shared atomic level filter, the shared
// EnableStdoutFlag, and a join signal for the worker goroutine. Producers
// on any goroutine call Submit/SubmitRaw/Flush/SetFilter/Filter through it;
// Close tears the worker down and makes the handle unusable afterward.
type LoggerHandle struct {
	commands    *RingBuffer[logCommand]
	filter      *LevelFilter
	enableStd   *Flag
	captureRing *RingBuffer[LogRecord]
	done        chan struct{}
	panicked    bool
	closed      bool
}

func startHandle(handlers []Handler, bufferSize int, initialFilter Level, captureSize int) *LoggerHandle {
	commands := NewRingBuffer[logCommand](bufferSize)
	enableStd := NewFlag(true)
	var captureRing *RingBuffer[LogRecord]
	if captureSize > 0 {
		captureRing = NewRingBuffer[LogRecord](captureSize)
	}

	h := &LoggerHandle{
		commands:    commands,
		filter:      newLevelFilter(initialFilter),
		enableStd:   enableStd,
		captureRing: captureRing,
		done:        make(chan struct{}),
	}

	w := newWorker(handlers, commands, enableStd, captureRing)
	go w.run(h.done, &h.panicked)
	return h
}

// Submit admits record only if its level passes the current LevelFilter,
// then pushes it onto the bounded command ring buffer. Because the ring is
// bounded, a slow worker applies backpressure to every producer calling
// Submit or SubmitRaw.
func (h *LoggerHandle) Submit(record LogRecord) {
	if !h.filter.Admits(record.Level()) {
		return
	}
	h.SubmitRaw(record)
}

// SubmitRaw pushes record unconditionally, bypassing the level filter.
func (h *LoggerHandle) SubmitRaw(record LogRecord) {
	h.commands.Send(logCommand{kind: cmdLog, record: record})
}

// Flush pushes a Flush command and busy-waits until the command ring
// reports empty, giving a best-effort fence so that subsequent reads from
// the capture ring observe prior writes. It is a no-op while the filter is
// Off, matching the reference implementation's short-circuit.
func (h *LoggerHandle) Flush() {
	if h.filter.Load() == Off {
		return
	}
	h.commands.Send(logCommand{kind: cmdFlush})
	for h.commands.Len() != 0 {
		// Best-effort spin: the channel is bounded and small, and
		// draining it is always in progress on the worker side.
		runtime.Gosched()
	}
}

// SetFilter updates the shared level filter observed by every producer.
func (h *LoggerHandle) SetFilter(level Level) {
	h.filter.Store(level)
}

// Filter returns the current level filter.
func (h *LoggerHandle) Filter() Level {
	return h.filter.Load()
}

// Admits reports whether a record at the given level currently passes the
// handle's filter, without constructing one. Callers that build an
// expensive record (formatting, caller lookup) can check this first to
// skip that work entirely when the level is disabled.
func (h *LoggerHandle) Admits(level Level) bool {
	return h.filter.Admits(level)
}

// EnableStdout toggles the shared EnableStdoutFlag read by StdSink. It
// takes effect on the next record.
func (h *LoggerHandle) EnableStdout(enabled bool) {
	h.enableStd.Set(enabled)
}

// EnableCapture toggles whether Log commands also force-push a copy into
// the worker's capture ring. The toggle itself travels as a command, so it
// is ordered relative to the records it starts or stops mirroring.
func (h *LoggerHandle) EnableCapture(enabled bool) {
	kind := cmdDisableCapture
	if enabled {
		kind = cmdEnableCapture
	}
	h.commands.Send(logCommand{kind: kind})
}

// ReadCaptured pops the oldest captured record, if any. It requires the
// handle to have been built with a non-zero capture buffer size.
func (h *LoggerHandle) ReadCaptured() (LogRecord, bool) {
	if h.captureRing == nil {
		return LogRecord{}, false
	}
	return h.captureRing.TryPop()
}

// ClearCaptured discards every currently buffered captured record.
func (h *LoggerHandle) ClearCaptured() {
	if h.captureRing != nil {
		h.captureRing.Clear()
	}
}

// WorkerPanicked reports whether the worker goroutine terminated via an
// unrecovered panic rather than an orderly Terminate command. replaceDefault
// (global.go) checks this when it replaces the package-level default handle,
// to emit the synthetic "The logging thread has panicked!" record through
// the freshly spawned replacement worker.
func (h *LoggerHandle) WorkerPanicked() bool {
	select {
	case <-h.done:
		return h.panicked
	default:
		return false
	}
}

// Close sets the filter to Off, pushes Flush then Terminate, joins the
// worker goroutine, then closes the command ring so that any producer still
// blocked in Submit/SubmitRaw's Send (backpressure from a full ring at the
// moment of shutdown) is released rather than left blocked forever. After
// Close the handle must not be used again.
func (h *LoggerHandle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.filter.Store(Off)
	h.commands.Send(logCommand{kind: cmdFlush})
	h.commands.Send(logCommand{kind: cmdTerminate})
	<-h.done
	h.commands.Close()
}
