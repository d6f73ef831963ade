package asynclog

// QueueSink force-pushes a copy of every record into a supplied
// CaptureRing. It never blocks the worker: when the ring is full the
// oldest buffered record is evicted. Flush is a no-op. Programs that want
// to observe their own logs (embedded UIs, self-tests) add one via
// Builder.AddHandler pointing at a ring of their own, independent of the
// worker's built-in EnableCapture/DisableCapture toggle.
type QueueSink struct {
	ring *RingBuffer[LogRecord]
}

// NewQueueSink creates a handler that mirrors every record it sees into ring.
func NewQueueSink(ring *RingBuffer[LogRecord]) *QueueSink {
	return &QueueSink{ring: ring}
}

func (s *QueueSink) Install(*Flag) {}

func (s *QueueSink) Write(rec *LogRecord) {
	s.ring.ForcePush(*rec)
}

func (s *QueueSink) Flush() {}
