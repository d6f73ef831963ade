package asynclog

import (
	"bufio"
	"fmt"
	"os"
)

// RotatingFileSink appends records to a single rolling log file, rotating
// before a write would push the active file past maxFileSize bytes. Unlike
// FileSink, which
// fans records out to one file per target, RotatingFileSink writes every
// record it receives into one file and keeps a bounded number of rotated
// backups — the rotation mechanics the teacher's FileWriter used for its
// single default log file, repurposed here as an explicitly opt-in
// handler rather than the core's default behavior (rotation is a
// spec.md non-goal for the core itself, but handlers may add it
// independently).
type RotatingFileSink struct {
	path        string
	maxFileSize int64
	maxBackups  int

	f        *os.File
	w        *bufio.Writer
	fileSize int64
}

// NewRotatingFileSink creates a handler writing to path, rotating to
// "<path>.1", "<path>.2", ... "<path>.<maxBackups>" before a write would
// push the active file past maxSize bytes.
// A maxSize of 0 defaults to 1GB; maxBackups defaults to 3 when <= 0.
func NewRotatingFileSink(path string, maxSize int64, maxBackups int) *RotatingFileSink {
	if maxSize <= 0 {
		maxSize = 1e9
	}
	if maxBackups <= 0 {
		maxBackups = 3
	}
	return &RotatingFileSink{path: path, maxFileSize: maxSize, maxBackups: maxBackups}
}

func (s *RotatingFileSink) Install(*Flag) {}

func (s *RotatingFileSink) backupName(n int) string {
	if n <= 0 {
		return s.path
	}
	return fmt.Sprintf("%s.%d", s.path, n)
}

func (s *RotatingFileSink) open() bool {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return false
	}
	s.f = f
	s.w = bufio.NewWriterSize(f, 128*1024)
	if fi, err := f.Stat(); err == nil {
		s.fileSize = fi.Size()
	}
	return true
}

func (s *RotatingFileSink) rotate() {
	_ = s.w.Flush()
	_ = s.f.Close()
	for i := s.maxBackups; i > 0; i-- {
		_ = os.Rename(s.backupName(i-1), s.backupName(i))
	}
	f, err := os.OpenFile(s.backupName(0), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		s.f = nil
		s.w = nil
		return
	}
	s.f = f
	s.w = bufio.NewWriterSize(f, 128*1024)
	s.fileSize = 0
}

func (s *RotatingFileSink) Write(rec *LogRecord) {
	if s.f == nil {
		if !s.open() {
			return
		}
	}

	line := fmt.Sprintf("[%s] (%s) %s: %s\n",
		rec.Level().String(), rec.Timestamp().UTC().Format(fileTimeLayout), rec.Location().Module(), rec.Body())

	if s.fileSize+int64(len(line)) > s.maxFileSize {
		s.rotate()
		if s.w == nil {
			return
		}
	}

	n, err := s.w.WriteString(line)
	if err == nil {
		s.fileSize += int64(n)
	}
}

func (s *RotatingFileSink) Flush() {
	if s.w != nil {
		_ = s.w.Flush()
	}
}

// Close flushes and closes the active file.
func (s *RotatingFileSink) Close() {
	s.Flush()
	if s.f != nil {
		_ = s.f.Close()
	}
}

