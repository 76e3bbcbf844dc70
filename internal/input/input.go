// Package input turns platform key events into the small key vocabulary the
// menus understand.
package input

import (
	"fmt"
	"strings"
	"time"
)

type Key uint16

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeyF1
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyEnter:  "enter",
	KeyEscape: "escape",
	KeyTab:    "tab",
	KeyF1:     "f1",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey accepts the names printed by Key.String plus a few aliases.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "esc":
		return KeyEscape, true
	case "return":
		return KeyEnter, true
	case "help":
		return KeyF1, true
	}
	for k, n := range keyNames {
		if k != KeyNone && n == name {
			return k, true
		}
	}
	return KeyNone, false
}

// ParseKeys parses a comma separated key list such as "down,enter,right".
func ParseKeys(list string) ([]Key, error) {
	var keys []Key
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, ok := ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", strings.TrimSpace(name))
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Source delivers key presses. Next waits at most timeout for one; a zero
// timeout polls.
type Source interface {
	Next(timeout time.Duration) (Key, bool)
}

// Script replays a fixed key sequence and then reports no input, unless an
// escape tail is set.
type Script struct {
	keys []Key

	tail int
	idle int
}

func NewScript(keys ...Key) *Script {
	return &Script{keys: append([]Key(nil), keys...)}
}

// WithEscapeTail makes the script yield Escape after every idle polls once
// the keys run out. Repeated Escape backs out of any menu, so a headless run
// ends on its own.
func (s *Script) WithEscapeTail(idle int) *Script {
	if idle < 1 {
		idle = 1
	}
	s.tail = idle
	return s
}

func (s *Script) Next(time.Duration) (Key, bool) {
	if len(s.keys) == 0 {
		if s.tail == 0 {
			return KeyNone, false
		}
		s.idle++
		if s.idle < s.tail {
			return KeyNone, false
		}
		s.idle = 0
		return KeyEscape, true
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, true
}

// Remaining reports how many keys have not been consumed yet.
func (s *Script) Remaining() int { return len(s.keys) }

// Queue is a Source fed from other goroutines (window, evdev, HTTP).
type Queue struct {
	ch chan Key
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan Key, size)}
}

// Push enqueues k without blocking; it reports false when the queue is full.
func (q *Queue) Push(k Key) bool {
	select {
	case q.ch <- k:
		return true
	default:
		return false
	}
}

func (q *Queue) Next(timeout time.Duration) (Key, bool) {
	if timeout <= 0 {
		select {
		case k := <-q.ch:
			return k, true
		default:
			return KeyNone, false
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case k := <-q.ch:
		return k, true
	case <-timer.C:
		return KeyNone, false
	}
}

// Multi merges several sources, polling them in order.
type Multi []Source

func (m Multi) Next(timeout time.Duration) (Key, bool) {
	deadline := time.Now().Add(timeout)
	for {
		for _, src := range m {
			if src == nil {
				continue
			}
			if k, ok := src.Next(0); ok {
				return k, true
			}
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return KeyNone, false
		}
		if remaining > 5*time.Millisecond {
			remaining = 5 * time.Millisecond
		}
		time.Sleep(remaining)
	}
}
