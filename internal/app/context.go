package app

import (
	"fmt"

	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/resource"
)

// Context is the state of one Run. State and Actions only change together,
// through Transition, so Actions always equals the table entry for State.
type Context struct {
	Running  bool
	ShowTip  bool
	Graphics *graphics.Surface
	App      *App

	state   State
	actions ActionBundle
	ticks   uint64
}

func (c *Context) State() State              { return c.state }
func (c *Context) Actions() ActionBundle     { return c.actions }
func (c *Context) Ticks() uint64             { return c.ticks }
func (c *Context) Stop()                     { c.Running = false }
func (c *Context) Strings() *resource.Handle { return c.App.Strings }

// Input returns the key source, which may be nil.
func (c *Context) Input() input.Source { return c.App.Input }

func (c *Context) Logger() Logger {
	if c.App.Logger == nil {
		return NoopLogger{}
	}
	return c.App.Logger
}

// Transition switches to state s. The new bundle runs from the next tick.
// An invalid state leaves the context untouched.
func (c *Context) Transition(s State) error {
	next := c.App.States.Lookup(s)
	if next == nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, s)
	}
	if s != c.state {
		c.Logger().Infof("app", "transition %s -> %s", c.state, s)
	}
	c.state = s
	c.actions = next
	c.App.notify(s)
	return nil
}

// KeyRight runs the active bundle's KeyRight hook.
func (c *Context) KeyRight() { c.navigate("KeyRight", c.actions.KeyRight) }

// KeyLeft runs the active bundle's KeyLeft hook.
func (c *Context) KeyLeft() { c.navigate("KeyLeft", c.actions.KeyLeft) }

// navigate runs a hook that may not stop the loop; a hook that flips
// Running has it restored.
func (c *Context) navigate(name string, hook func(*Context)) {
	running := c.Running
	hook(c)
	if c.Running != running {
		c.Logger().Errorf("app", "%s of %s changed Running; restored", name, c.state)
		c.Running = running
	}
}
