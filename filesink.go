package asynclog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileTimeLayout is the closest stdlib equivalent to the reference
// implementation's ISO-8601 file timestamps (time::format_description::
// well_known::Iso8601 in the Rust original).
const fileTimeLayout = time.RFC3339Nano

// FileSink maintains a lazily-populated map from target name to an
// append-mode buffered file handle opened at "<root>/<target>.log". Open
// failures are silently dropped; subsequent writes retry lazily on the
// next record for that target.
type FileSink struct {
	root    string
	targets map[string]*bufio.Writer
	files   map[string]*os.File
}

// NewFileSink creates a FileSink rooted at dir. The directory is expected
// to already exist; Builder.AddFile is responsible for validating it and
// warning to stderr before ever constructing a FileSink.
func NewFileSink(dir string) *FileSink {
	return &FileSink{
		root:    dir,
		targets: make(map[string]*bufio.Writer),
		files:   make(map[string]*os.File),
	}
}

func (s *FileSink) Install(*Flag) {}

func (s *FileSink) getOrOpen(target string) *bufio.Writer {
	if w, ok := s.targets[target]; ok {
		return w
	}
	f, err := os.OpenFile(filepath.Join(s.root, target+".log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	w := bufio.NewWriter(f)
	s.files[target] = f
	s.targets[target] = w
	return w
}

func (s *FileSink) Write(rec *LogRecord) {
	loc := rec.Location()
	target, module := loc.Target(), loc.Module()
	w := s.getOrOpen(target)
	if w == nil {
		return
	}
	timeStr := rec.Timestamp().UTC().Format(fileTimeLayout)
	_, _ = fmt.Fprintf(w, "[%s] (%s) %s: %s\n", rec.Level().String(), timeStr, module, rec.Body())
}

func (s *FileSink) Flush() {
	for _, w := range s.targets {
		_ = w.Flush()
	}
}

// Close flushes and closes every open target file. It is not part of the
// Handler contract; callers that own a FileSink directly (rather than via
// Builder.AddFile) may call it during their own shutdown sequence.
func (s *FileSink) Close() {
	s.Flush()
	for _, f := range s.files {
		_ = f.Close()
	}
}
