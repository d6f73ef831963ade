package asynclog

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultBufferSize  = 16
	defaultCaptureSize = 32
)

// Builder is a value-returning configuration assembler: every option
// method returns the (mutated) Builder so calls chain, matching the
// reference implementation's Builder::colors/smart_stderr/buffer_size
// chain and spec.md §4.H.
type Builder struct {
	colorPolicy ColorPolicy
	smartStderr bool
	bufferSize  int
	filter      Level
	captureSize int
	handlers    []Handler
}

// NewBuilder creates a Builder with the spec.md §4.H defaults: colors
// disabled, smart stderr routing enabled, a 16-slot command buffer, and an
// initial Info filter.
func NewBuilder() *Builder {
	return &Builder{
		colorPolicy: ColorDisabled,
		smartStderr: true,
		bufferSize:  defaultBufferSize,
		filter:      Info,
		captureSize: defaultCaptureSize,
	}
}

// ColorPolicy sets the color policy forwarded to any StdSink subsequently
// added via AddStdout.
func (b *Builder) ColorPolicy(policy ColorPolicy) *Builder {
	b.colorPolicy = policy
	return b
}

// SmartStderr enables or disables redirecting Error-level records to
// stderr in any StdSink subsequently added via AddStdout.
func (b *Builder) SmartStderr(enabled bool) *Builder {
	b.smartStderr = enabled
	return b
}

// BufferSize sets the capacity of the command ring buffer between
// producers and the worker.
func (b *Builder) BufferSize(size int) *Builder {
	b.bufferSize = size
	return b
}

// Filter sets the initial level filter.
func (b *Builder) Filter(level Level) *Builder {
	b.filter = level
	return b
}

// CaptureSize sets the capacity of the worker's built-in capture ring,
// wired to Handle.EnableCapture/ReadCaptured/ClearCaptured. It defaults to
// defaultCaptureSize (32), matching spec.md §3's CaptureRing default; a
// size of 0 disables capture entirely on the resulting handle.
func (b *Builder) CaptureSize(size int) *Builder {
	b.captureSize = size
	return b
}

// AddStdout appends a StdSink using the builder's current color policy
// and smart-stderr setting.
func (b *Builder) AddStdout() *Builder {
	b.handlers = append(b.handlers, NewStdSink(b.smartStderr, b.colorPolicy))
	return b
}

// AddFile appends a FileSink rooted at provider's resolved path. If the
// provider cannot resolve a directory, or the directory does not exist, a
// single line is printed to stderr and no sink is added — matching
// spec.md §7's Directory-unavailable policy. Calling AddFile more than
// once appends independent FileSink instances, per spec.md §9.
func (b *Builder) AddFile(provider DirectoryProvider) *Builder {
	path, ok := provider.Path()
	if !ok {
		fmt.Fprintln(os.Stderr, "asynclog: failed to obtain log directory, file sink disabled")
		return b
	}
	if !dirExists(path) {
		fmt.Fprintf(os.Stderr, "asynclog: log directory %q does not exist, file sink disabled\n", path)
		return b
	}
	b.handlers = append(b.handlers, NewFileSink(path))
	return b
}

// AddRotatingFile appends a RotatingFileSink writing <provider.Path()>/name,
// rotating before a write would push the active file past maxSize bytes and
// keeping maxBackups
// renamed copies (see NewRotatingFileSink for the zero-value defaults). Like
// AddFile, an unresolved or missing directory prints one line to stderr and
// adds no sink — the core's default FileSink never rotates, so callers that
// want rotation opt in explicitly through this handler-level extension
// point, matching "Handlers may add any of these independently" (spec.md
// §1).
func (b *Builder) AddRotatingFile(provider DirectoryProvider, name string, maxSize int64, maxBackups int) *Builder {
	path, ok := provider.Path()
	if !ok {
		fmt.Fprintln(os.Stderr, "asynclog: failed to obtain log directory, rotating file sink disabled")
		return b
	}
	if !dirExists(path) {
		fmt.Fprintf(os.Stderr, "asynclog: log directory %q does not exist, rotating file sink disabled\n", path)
		return b
	}
	b.handlers = append(b.handlers, NewRotatingFileSink(filepath.Join(path, name), maxSize, maxBackups))
	return b
}

// AddHandler appends a caller-supplied Handler.
func (b *Builder) AddHandler(h Handler) *Builder {
	b.handlers = append(b.handlers, h)
	return b
}

// Start spawns the worker goroutine, hands over the handler list, and
// returns an enabled LoggerHandle.
func (b *Builder) Start() *LoggerHandle {
	bufSize := b.bufferSize
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}
	return startHandle(b.handlers, bufSize, b.filter, b.captureSize)
}

// WithHandle builds logger, runs fn with it, and closes it afterward —
// the closure-based rendering of the reference implementation's
// with_logger(builder, closure) scoped-execution helper (lib.rs), since Go
// has no destructor to rely on for the equivalent RAII guard.
func WithHandle(builder *Builder, fn func(*LoggerHandle)) {
	h := builder.Start()
	defer h.Close()
	fn(h)
}
