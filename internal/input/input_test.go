package input

import (
	"testing"
	"time"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"up", KeyUp, true},
		{" Right ", KeyRight, true},
		{"esc", KeyEscape, true},
		{"escape", KeyEscape, true},
		{"return", KeyEnter, true},
		{"F1", KeyF1, true},
		{"none", KeyNone, false},
		{"space", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys("down, enter,,right")
	if err != nil {
		t.Fatalf("ParseKeys: %v", err)
	}
	want := []Key{KeyDown, KeyEnter, KeyRight}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v; want %v", keys, want)
		}
	}
	if _, err := ParseKeys("up,jump"); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestScriptReplaysThenRunsDry(t *testing.T) {
	s := NewScript(KeyDown, KeyEnter)
	for _, want := range []Key{KeyDown, KeyEnter} {
		if got, ok := s.Next(time.Second); !ok || got != want {
			t.Fatalf("Next = %v, %v; want %v", got, ok, want)
		}
	}
	if _, ok := s.Next(time.Second); ok {
		t.Fatal("script should be exhausted")
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %d", s.Remaining())
	}
}

func TestScriptEscapeTail(t *testing.T) {
	s := NewScript(KeyDown).WithEscapeTail(3)
	if k, ok := s.Next(0); !ok || k != KeyDown {
		t.Fatalf("first key = %v, %v", k, ok)
	}
	var got []bool
	for i := 0; i < 6; i++ {
		k, ok := s.Next(0)
		if ok && k != KeyEscape {
			t.Fatalf("tail yielded %v", k)
		}
		got = append(got, ok)
	}
	want := []bool{false, false, true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tail polls = %v; want %v", got, want)
		}
	}
}

func TestQueuePollAndTimeout(t *testing.T) {
	q := NewQueue(1)
	if _, ok := q.Next(0); ok {
		t.Fatal("empty queue returned a key")
	}
	if !q.Push(KeyF1) {
		t.Fatal("push into empty queue failed")
	}
	if q.Push(KeyUp) {
		t.Fatal("push into full queue succeeded")
	}
	if k, ok := q.Next(10 * time.Millisecond); !ok || k != KeyF1 {
		t.Fatalf("Next = %v, %v", k, ok)
	}
	start := time.Now()
	if _, ok := q.Next(20 * time.Millisecond); ok {
		t.Fatal("expected timeout")
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Fatal("Next returned before the timeout")
	}
}

func TestMultiPollsInOrder(t *testing.T) {
	q := NewQueue(4)
	q.Push(KeyLeft)
	m := Multi{nil, NewScript(), q}
	if k, ok := m.Next(0); !ok || k != KeyLeft {
		t.Fatalf("Next = %v, %v", k, ok)
	}
	if _, ok := m.Next(0); ok {
		t.Fatal("expected no input")
	}
}
