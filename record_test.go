package asynclog

import (
	"strings"
	"testing"
	"time"
)

func TestRecordAppendAndBody(t *testing.T) {
	rec := NewRecord(Location{ModulePath: "app::net", File: "net.go", Line: 10}, Info)
	n := rec.Append([]byte("hello"))
	if n != 5 {
		t.Fatalf("Append returned %d, want 5", n)
	}
	if got := rec.Body(); got != "hello" {
		t.Fatalf("Body() = %q, want %q", got, "hello")
	}
}

func TestRecordClearPreservesMetadata(t *testing.T) {
	loc := Location{ModulePath: "app::net", File: "net.go", Line: 10}
	rec := FromMessage(loc, Warn, "boom")
	rec.Clear()
	if rec.Body() != "" {
		t.Fatalf("Body() after Clear = %q, want empty", rec.Body())
	}
	if rec.Level() != Warn {
		t.Fatalf("Level() after Clear = %v, want Warn", rec.Level())
	}
	if rec.Location() != loc {
		t.Fatalf("Location() after Clear = %+v, want %+v", rec.Location(), loc)
	}
}

func TestRecordAppendTruncatesAtCapacity(t *testing.T) {
	rec := NewRecord(Location{ModulePath: "app"}, Info)
	big := strings.Repeat("x", bodyCap+100)
	n := rec.AppendString(big)
	if n != bodyCap {
		t.Fatalf("AppendString wrote %d bytes, want exactly %d", n, bodyCap)
	}
	if len(rec.Body()) != bodyCap {
		t.Fatalf("Body() length = %d, want %d", len(rec.Body()), bodyCap)
	}
}

func TestRecordAppendTruncatesOnUTF8Boundary(t *testing.T) {
	rec := NewRecord(Location{ModulePath: "app"}, Info)
	// Fill to one byte short of capacity, then append a 3-byte rune so the
	// truncation must drop the whole rune rather than split it.
	rec.AppendString(strings.Repeat("a", bodyCap-1))
	n := rec.AppendString("☃") // snowman, 3 bytes in UTF-8
	if n != 0 {
		t.Fatalf("AppendString wrote %d bytes of a rune that cannot fit, want 0", n)
	}
	body := rec.Body()
	if !isValidUTF8(body) {
		t.Fatalf("Body() is not valid UTF-8: %q", body)
	}
	if len(body) != bodyCap-1 {
		t.Fatalf("Body() length = %d, want %d", len(body), bodyCap-1)
	}
}

func isValidUTF8(s string) bool {
	return strings.ToValidUTF8(s, "�") == s
}

func TestLocationTargetModule(t *testing.T) {
	cases := []struct {
		modulePath string
		wantTarget string
		wantModule string
	}{
		{"app::net::dial", "app", "net::dial"},
		{"app", "app", "main"},
		{"", "", "main"},
	}
	for _, c := range cases {
		loc := Location{ModulePath: c.modulePath}
		if got := loc.Target(); got != c.wantTarget {
			t.Errorf("Target() for %q = %q, want %q", c.modulePath, got, c.wantTarget)
		}
		if got := loc.Module(); got != c.wantModule {
			t.Errorf("Module() for %q = %q, want %q", c.modulePath, got, c.wantModule)
		}
	}
}

func TestNewRecordAtExplicitTimestamp(t *testing.T) {
	at := time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecordAt(Location{ModulePath: "app"}, at, Info)
	if !rec.Timestamp().Equal(at) {
		t.Fatalf("Timestamp() = %v, want %v", rec.Timestamp(), at)
	}
}
