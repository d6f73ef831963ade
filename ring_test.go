package asynclog

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestRingBufferFIFOSingleProducer(t *testing.T) {
	r := NewRingBuffer[int](4)
	for i := 0; i < 4; i++ {
		r.Send(i)
	}
	for i := 0; i < 4; i++ {
		got, ok := r.Recv()
		if !ok || got != i {
			t.Fatalf("Recv() = (%d, %v), want (%d, true)", got, ok, i)
		}
	}
}

func TestRingBufferSendBlocksUntilSpace(t *testing.T) {
	r := NewRingBuffer[int](1)
	r.Send(1)

	unblocked := make(chan struct{})
	go func() {
		r.Send(2) // must block until the Recv below frees a slot
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("Send on a full ring returned before room was made")
	default:
	}

	v, ok := r.Recv()
	if !ok || v != 1 {
		t.Fatalf("Recv() = (%d, %v), want (1, true)", v, ok)
	}
	<-unblocked

	v, ok = r.Recv()
	if !ok || v != 2 {
		t.Fatalf("Recv() = (%d, %v), want (2, true)", v, ok)
	}
}

// TestRingBufferForcePushEvictsOldest is scenario S3 from spec.md §8: with a
// buffer sized for two, three force-pushed records leave only the two most
// recent behind.
func TestRingBufferForcePushEvictsOldest(t *testing.T) {
	r := NewRingBuffer[string](2)
	r.ForcePush("r1")
	r.ForcePush("r2")
	r.ForcePush("r3")

	got, ok := r.TryPop()
	if !ok || got != "r2" {
		t.Fatalf("first TryPop() = (%q, %v), want (\"r2\", true)", got, ok)
	}
	got, ok = r.TryPop()
	if !ok || got != "r3" {
		t.Fatalf("second TryPop() = (%q, %v), want (\"r3\", true)", got, ok)
	}
	if _, ok := r.TryPop(); ok {
		t.Fatal("third TryPop() should report empty")
	}
}

func TestRingBufferTryPopOnEmpty(t *testing.T) {
	r := NewRingBuffer[int](2)
	if _, ok := r.TryPop(); ok {
		t.Fatal("TryPop() on an empty ring should report ok=false")
	}
}

func TestRingBufferClear(t *testing.T) {
	r := NewRingBuffer[int](4)
	r.Send(1)
	r.Send(2)
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", r.Len())
	}
}

// TestRingBufferConcurrentProducersPreserveOrder mirrors scenario S5: two
// producers each send 1000 distinct values; per-producer order must be
// preserved at the consumer even though arrival across producers
// interleaves.
func TestRingBufferConcurrentProducersPreserveOrder(t *testing.T) {
	const n = 1000
	r := NewRingBuffer[string](8)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			r.Send(sprintfTag("A", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			r.Send(sprintfTag("B", i))
		}
	}()

	var aSeen, bSeen int
	for aSeen < n || bSeen < n {
		v, ok := r.Recv()
		if !ok {
			t.Fatal("Recv() reported closed before all values were seen")
		}
		if v == sprintfTag("A", aSeen) {
			aSeen++
		} else if v == sprintfTag("B", bSeen) {
			bSeen++
		} else {
			t.Fatalf("out-of-order value %q (aSeen=%d bSeen=%d)", v, aSeen, bSeen)
		}
	}
	wg.Wait()
}

func sprintfTag(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i)
}

// TestRingBufferCloseReleasesBlockedSend is the deadlock-release property
// Close exists for: a producer blocked in Send against a full ring must be
// released, not left blocked forever, once the ring is closed.
func TestRingBufferCloseReleasesBlockedSend(t *testing.T) {
	r := NewRingBuffer[int](1)
	r.Send(1) // fill the only slot

	unblocked := make(chan struct{})
	go func() {
		r.Send(2) // blocks until Close wakes it; returns without enqueueing
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("Send on a full ring returned before Close or Recv freed it")
	default:
	}

	r.Close()

	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full ring was not released by Close")
	}

	if r.Len() != 1 {
		t.Fatalf("Len() after a closed, rejected Send = %d, want 1 (the pre-Close item only)", r.Len())
	}

	if _, ok := r.Recv(); !ok {
		t.Fatal("Recv() on a closed ring with a buffered item should still drain it")
	}
	if _, ok := r.Recv(); ok {
		t.Fatal("Recv() on a closed, drained ring should report ok=false")
	}
}
