package asynclog

// worker is the single dedicated background consumer goroutine. It owns the
// handler list exclusively for its lifetime; producers never touch it.
type worker struct {
	handlers      []Handler
	commands      *RingBuffer[logCommand]
	enableStdout  *Flag
	captureRing   *RingBuffer[LogRecord]
	captureActive bool
}

func newWorker(handlers []Handler, commands *RingBuffer[logCommand], enableStdout *Flag, captureRing *RingBuffer[LogRecord]) *worker {
	return &worker{
		handlers:     handlers,
		commands:     commands,
		enableStdout: enableStdout,
		captureRing:  captureRing,
	}
}

// run installs every handler in order, then drains commands until a
// Terminate command is received. It is meant to be launched with `go`.
// A panic escaping command execution (which should not happen, since every
// handler call is individually isolated by safeWrite/safeFlush below) is
// still recovered here so the worker goroutine never takes the process
// down with it; panicked records that fact for the caller to notice on
// the next restart.
func (w *worker) run(done chan<- struct{}, panicked *bool) {
	defer func() {
		if recover() != nil {
			*panicked = true
		}
		close(done)
	}()

	for _, h := range w.handlers {
		h.Install(w.enableStdout)
	}

	for {
		cmd, ok := w.commands.Recv()
		if !ok {
			return
		}
		if w.execute(cmd) {
			return
		}
	}
}

// execute runs a single command against the handler list and reports
// whether the worker should terminate.
func (w *worker) execute(cmd logCommand) bool {
	switch cmd.kind {
	case cmdTerminate:
		return true
	case cmdFlush:
		for _, h := range w.handlers {
			w.safeFlush(h)
		}
	case cmdEnableCapture:
		w.captureActive = true
	case cmdDisableCapture:
		w.captureActive = false
	case cmdLog:
		for _, h := range w.handlers {
			w.safeWrite(h, &cmd.record)
		}
		if w.captureActive && w.captureRing != nil {
			w.captureRing.ForcePush(cmd.record)
		}
	}
	return false
}

// safeWrite and safeFlush isolate a single handler's panic so that one
// misbehaving sink never stops the remaining handlers in the same command,
// nor the worker loop itself, from running.
func (w *worker) safeWrite(h Handler, rec *LogRecord) {
	defer func() { recover() }()
	h.Write(rec)
}

func (w *worker) safeFlush(h Handler) {
	defer func() { recover() }()
	h.Flush()
}
