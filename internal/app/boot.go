package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/resource"
)

// Status is the process outcome of Boot.
type Status int

const (
	StatusSuccess Status = iota
	StatusProviderFailure
	StatusResourceRegistration
	StatusNotFound
	StatusDisplayMode
	StatusAllocation
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusProviderFailure:
		return "provider failure"
	case StatusResourceRegistration:
		return "resource registration failure"
	case StatusNotFound:
		return "display not found"
	case StatusDisplayMode:
		return "display mode failure"
	case StatusAllocation:
		return "allocation failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ExitCode maps a status onto a process exit code.
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusResourceRegistration:
		return 2
	case StatusNotFound:
		return 3
	case StatusDisplayMode:
		return 4
	case StatusAllocation:
		return 5
	default:
		return 1
	}
}

// StatusOf classifies an error from startup or from Run.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, resource.ErrRegistration):
		return StatusResourceRegistration
	case errors.Is(err, graphics.ErrDisplayNotFound):
		return StatusNotFound
	case errors.Is(err, graphics.ErrAllocation):
		return StatusAllocation
	case errors.Is(err, graphics.ErrDisplayMode), errors.Is(err, graphics.ErrNotStarted):
		return StatusDisplayMode
	default:
		return StatusProviderFailure
	}
}

// BootConfig carries the collaborators Boot wires together.
type BootConfig struct {
	Resources resource.Registrar
	Package   resource.Package

	// Locate finds the display provider. It is only called once the string
	// package is registered.
	Locate func() (graphics.Provider, error)

	States StateTable
	Input  input.Source
	Logger Logger

	// OnState is handed to the App; see App.OnState.
	OnState func(State)

	// Console receives the one-line startup diagnostics.
	Console io.Writer
}

// Boot registers strings, acquires the display and runs the application.
// Any startup failure aborts before the loop is entered.
func Boot(cfg BootConfig) Status {
	log := cfg.Logger
	if log == nil {
		log = NoopLogger{}
	}
	console := cfg.Console
	if console == nil {
		console = io.Discard
	}
	fail := func(message string, err error) Status {
		status := StatusOf(err)
		log.Errorf("boot", "%s: %v (%s)", message, err, status)
		fmt.Fprintf(console, "Error: %s: %v\n", message, err)
		return status
	}

	if cfg.Resources == nil {
		return fail("registering string package", fmt.Errorf("%w: no resource database", resource.ErrRegistration))
	}
	strings, err := cfg.Resources.Register(cfg.Package)
	if err != nil {
		if !errors.Is(err, resource.ErrRegistration) {
			err = fmt.Errorf("%w: %w", resource.ErrRegistration, err)
		}
		return fail("registering string package", err)
	}
	if db, ok := cfg.Resources.(interface{ Unregister(*resource.Handle) }); ok {
		defer db.Unregister(strings)
	}
	log.Infof("boot", "string package %q registered, language %s", strings.Name, strings.Language())

	var provider graphics.Provider
	if cfg.Locate != nil {
		provider, err = cfg.Locate()
	}
	if err == nil && provider == nil {
		err = graphics.ErrDisplayNotFound
	}
	if err != nil {
		if !errors.Is(err, graphics.ErrDisplayNotFound) {
			err = fmt.Errorf("%w: %w", graphics.ErrDisplayNotFound, err)
		}
		return fail("locating display", err)
	}

	surface, err := graphics.Prepare(provider)
	if err != nil {
		return fail("preparing graphics", err)
	}
	defer surface.Forget()
	log.Infof("boot", "graphics ready: %s", surface.Mode)

	a := New(cfg.States, strings, cfg.Input)
	a.Logger = log
	a.OnState = cfg.OnState
	if err := a.Run(surface); err != nil {
		return fail("running", err)
	}
	return StatusSuccess
}
