package web

import (
	"errors"
	"io"

	"github.com/HyperNiki/umt/internal/graphics/headless"
	"github.com/HyperNiki/umt/internal/input"
)

// Display is the observed front buffer.
//
// The concrete implementation is *headless.Provider.
type Display interface {
	Snapshot() headless.Snapshot
	WritePNG(w io.Writer) error
}

// KeySink accepts injected key presses. *input.Queue implements it.
type KeySink interface {
	Push(k input.Key) bool
}

// SessionInfo describes the application run behind the display.
type SessionInfo struct {
	Running bool
	// Status is the boot status once the run has finished.
	Status string
	State  string
}

type APIV1Deps struct {
	Display Display
	Keys    KeySink
	Session func() SessionInfo
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Display == nil {
		out.Display = NoopDisplay{Err: errors.New("display not configured")}
	}
	if out.Keys == nil {
		out.Keys = NoopKeySink{}
	}
	if out.Session == nil {
		out.Session = func() SessionInfo { return SessionInfo{} }
	}
	return out
}

type NoopDisplay struct{ Err error }

func (NoopDisplay) Snapshot() headless.Snapshot { return headless.Snapshot{} }

func (d NoopDisplay) WritePNG(io.Writer) error {
	if d.Err != nil {
		return d.Err
	}
	return errors.New("display not configured")
}

type NoopKeySink struct{}

func (NoopKeySink) Push(input.Key) bool { return false }
