package asynclog

import (
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// ColorPolicy controls whether StdSink decorates its output with ANSI
// escape sequences.
type ColorPolicy int

const (
	// ColorDisabled never emits color escapes.
	ColorDisabled ColorPolicy = iota
	// ColorEnabled always emits color escapes.
	ColorEnabled
	// ColorAuto emits color escapes only when the chosen stream is a
	// terminal.
	ColorAuto
)

const ansiReset = "\033[0m"
const ansiBold = "\033[1m"

var levelColorCodes = map[Level]string{
	Error: "\033[1;31m", // bold red
	Warn:  "\033[1;33m", // bold yellow
	Info:  "\033[1;32m", // bold green
	Debug: "\033[1;34m", // bold blue
	Trace: "\033[1;36m", // bold cyan
}

const timeLayout = "Mon Jan 02 03:04:05 PM"

// StdSink writes records to stdout or stderr. When EnableStdoutFlag is
// false it skips the record entirely. With smartStderr enabled, Error
// records go to stderr and everything else to stdout; otherwise everything
// goes to stdout. Coloring follows ColorPolicy, with Auto deciding per the
// terminal-ness of the chosen stream.
type StdSink struct {
	smartStderr bool
	colors      ColorPolicy
	enable      *Flag

	// overridable for tests; default to the real stdout/stderr fds.
	stdout, stderr io.Writer
	stdoutIsTerm   func() bool
	stderrIsTerm   func() bool
}

// NewStdSink creates a sink printing to the real process stdout/stderr.
func NewStdSink(smartStderr bool, colors ColorPolicy) *StdSink {
	return &StdSink{
		smartStderr:  smartStderr,
		colors:       colors,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		stdoutIsTerm: func() bool { return term.IsTerminal(syscall.Stdout) },
		stderrIsTerm: func() bool { return term.IsTerminal(syscall.Stderr) },
	}
}

func (s *StdSink) Install(enableStdout *Flag) {
	s.enable = enableStdout
}

func (s *StdSink) chooseStream(level Level) (w io.Writer, isTerm func() bool) {
	if s.smartStderr && level == Error {
		return s.stderr, s.stderrIsTerm
	}
	return s.stdout, s.stdoutIsTerm
}

func (s *StdSink) Write(rec *LogRecord) {
	if s.enable == nil || !s.enable.Enabled() {
		return
	}

	stream, isTerm := s.chooseStream(rec.Level())
	useColor := false
	switch s.colors {
	case ColorEnabled:
		useColor = true
	case ColorAuto:
		useColor = isTerm()
	}

	loc := rec.Location()
	target, module := loc.Target(), loc.Module()
	timeStr := formatLocalTime(rec.Timestamp())

	if useColor {
		levelColor := levelColorCodes[rec.Level()]
		fmt.Fprintf(stream, "<%s%s%s> [%s%s%s] %s %s: %s\n",
			ansiBold, target, ansiReset,
			levelColor, rec.Level().String(), ansiReset,
			timeStr, module, rec.Body())
		return
	}

	fmt.Fprintf(stream, "<%s> [%s] %s %s: %s\n", target, rec.Level().String(), timeStr, module, rec.Body())
}

func (s *StdSink) Flush() {}

// formatLocalTime renders a timestamp in the "Day Mon DD hh:mm:ss AM/PM"
// layout using the local offset when available, falling back to UTC
// transparently the way time.Local already does when zone data is absent.
func formatLocalTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
