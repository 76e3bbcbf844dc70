package app

import (
	"errors"
	"fmt"

	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/resource"
)

// App is the application-wide environment: the state table plus the
// collaborators every screen shares. It lives from startup to shutdown.
type App struct {
	States  StateTable
	Strings *resource.Handle
	Input   input.Source
	Logger  Logger

	// OnState, when set, is told the state the loop enters first and every
	// state Transition moves to. It runs on the loop goroutine.
	OnState func(State)
}

func New(states StateTable, strings *resource.Handle, in input.Source) *App {
	return &App{States: states, Strings: strings, Input: in, Logger: NoopLogger{}}
}

// Run drives the state machine on surface until an action clears Running.
// Each tick is one Doit followed by one Swap.
func (app *App) Run(surface *graphics.Surface) error {
	if surface == nil {
		return errors.New("run: no graphics surface")
	}
	c := &Context{
		Running:  true,
		ShowTip:  false,
		Graphics: surface,
		App:      app,
		state:    InitialState,
		actions:  app.States.Lookup(InitialState),
	}
	if c.actions == nil {
		return fmt.Errorf("%w: no bundle for %s", ErrIncompleteTable, InitialState)
	}
	app.notify(c.state)
	log := c.Logger()
	log.Infof("app", "run start: %s, %d byte frames", surface.Mode, surface.BufferSize())

	c.actions.Init(c)

	for c.Running {
		c.actions.Doit(c)

		if err := surface.Swap(); err != nil {
			log.Errorf("app", "swap failed at tick %d: %v", c.ticks, err)
			return fmt.Errorf("swap at tick %d: %w", c.ticks, err)
		}
		c.ticks++
	}

	log.Infof("app", "run done after %d ticks in %s", c.ticks, c.state)
	return nil
}

func (app *App) notify(s State) {
	if app.OnState != nil {
		app.OnState(s)
	}
}
