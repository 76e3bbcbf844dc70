package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/resource"
)

const bootPackage = "default: en-US\nstrings:\n  en-US:\n    STR_TITLE: Monitor Test\n"

type failingRegistrar struct{ calls int }

func (r *failingRegistrar) Register(resource.Package) (*resource.Handle, error) {
	r.calls++
	return nil, errors.New("package list protocol missing")
}

type bootCalls struct {
	inits  int
	doits  int
	locate int
}

func (p *bootCalls) table(t *testing.T) StateTable {
	main := idle()
	main.InitFunc = func(c *Context) { p.inits++ }
	main.DoitFunc = func(c *Context) {
		p.doits++
		if c.Strings() == nil || c.Strings().String("STR_TITLE") != "Monitor Test" {
			t.Fatalf("strings handle not reachable from context")
		}
		c.Stop()
	}
	return tableWith(t, map[State]ActionBundle{StateMainMenu: main})
}

func TestBootSucceeds(t *testing.T) {
	calls := &bootCalls{}
	provider := newTestProvider()
	db := resource.NewDatabase()
	var console bytes.Buffer

	status := Boot(BootConfig{
		Resources: db,
		Package:   resource.Package{Name: "umt", Data: []byte(bootPackage)},
		Locate: func() (graphics.Provider, error) {
			calls.locate++
			return provider, nil
		},
		States:  calls.table(t),
		Console: &console,
	})
	if status != StatusSuccess || status.ExitCode() != 0 {
		t.Fatalf("status = %v", status)
	}
	if calls.inits != 1 || calls.doits != 1 || len(provider.front.frames) != 1 {
		t.Fatalf("inits=%d doits=%d swaps=%d", calls.inits, calls.doits, len(provider.front.frames))
	}
	if console.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %q", console.String())
	}
}

func TestBootWithoutDisplay(t *testing.T) {
	calls := &bootCalls{}
	var console bytes.Buffer
	status := Boot(BootConfig{
		Resources: resource.NewDatabase(),
		Package:   resource.Package{Name: "umt", Data: []byte(bootPackage)},
		Locate: func() (graphics.Provider, error) {
			calls.locate++
			return nil, errors.New("no framebuffer device")
		},
		States:  calls.table(t),
		Console: &console,
	})
	if status != StatusNotFound {
		t.Fatalf("status = %v, want %v", status, StatusNotFound)
	}
	if calls.inits != 0 || calls.doits != 0 {
		t.Fatal("run entered without a display")
	}
	if !strings.HasPrefix(console.String(), "Error: ") {
		t.Fatalf("diagnostic = %q", console.String())
	}
}

func TestBootNilProviderIsNotFound(t *testing.T) {
	calls := &bootCalls{}
	status := Boot(BootConfig{
		Resources: resource.NewDatabase(),
		Package:   resource.Package{Name: "umt", Data: []byte(bootPackage)},
		Locate:    func() (graphics.Provider, error) { return nil, nil },
		States:    calls.table(t),
	})
	if status != StatusNotFound {
		t.Fatalf("status = %v", status)
	}
}

func TestBootRegistrationFailure(t *testing.T) {
	for _, reg := range []resource.Registrar{&failingRegistrar{}, resource.NewDatabase()} {
		calls := &bootCalls{}
		var console bytes.Buffer
		status := Boot(BootConfig{
			Resources: reg,
			Package:   resource.Package{Name: "umt"},
			Locate: func() (graphics.Provider, error) {
				calls.locate++
				return newTestProvider(), nil
			},
			States:  calls.table(t),
			Console: &console,
		})
		if status != StatusResourceRegistration || status.ExitCode() != 2 {
			t.Fatalf("%T: status = %v", reg, status)
		}
		if calls.locate != 0 {
			t.Fatalf("%T: display located after failed registration", reg)
		}
		if calls.inits != 0 || calls.doits != 0 {
			t.Fatalf("%T: run entered after failed registration", reg)
		}
		if console.Len() == 0 {
			t.Fatalf("%T: no diagnostic printed", reg)
		}
	}
}

func TestBootUnregistersStrings(t *testing.T) {
	calls := &bootCalls{}
	db := resource.NewDatabase()
	var handle *resource.Handle
	table := tableWith(t, map[State]ActionBundle{StateMainMenu: &ActionFuncs{
		InitFunc: func(c *Context) { handle = c.Strings() },
		DoitFunc: func(c *Context) {
			calls.doits++
			if !db.Registered(c.Strings()) {
				t.Fatal("handle not registered during run")
			}
			c.Stop()
		},
		TipFunc: noop, KeyRightFunc: noop, KeyLeftFunc: noop,
	}})
	status := Boot(BootConfig{
		Resources: db,
		Package:   resource.Package{Name: "umt", Data: []byte(bootPackage)},
		Locate:    func() (graphics.Provider, error) { return newTestProvider(), nil },
		States:    table,
	})
	if status != StatusSuccess || calls.doits != 1 {
		t.Fatalf("status=%v doits=%d", status, calls.doits)
	}
	if db.Registered(handle) {
		t.Fatal("handle still registered after boot returned")
	}
}

func TestBootDisplayFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *testProvider)
		want  Status
	}{
		{"unsupported format", func(p *testProvider) { p.mode.Format = graphics.PixelBitMask }, StatusDisplayMode},
		{"oversized mode", func(p *testProvider) {
			p.mode = graphics.ModeInfo{Width: 1 << 16, Height: 1 << 15, PixelsPerScanLine: 1 << 16, Format: graphics.PixelBGRX}
			p.front.size = p.mode.BufferSize()
		}, StatusAllocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &bootCalls{}
			p := newTestProvider()
			tt.setup(p)
			status := Boot(BootConfig{
				Resources: resource.NewDatabase(),
				Package:   resource.Package{Name: "umt", Data: []byte(bootPackage)},
				Locate:    func() (graphics.Provider, error) { return p, nil },
				States:    calls.table(t),
			})
			if status != tt.want {
				t.Fatalf("status = %v, want %v", status, tt.want)
			}
			if calls.inits != 0 {
				t.Fatal("run entered after display failure")
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
		code int
	}{
		{nil, StatusSuccess, 0},
		{resource.ErrRegistration, StatusResourceRegistration, 2},
		{graphics.ErrDisplayNotFound, StatusNotFound, 3},
		{graphics.ErrNotStarted, StatusDisplayMode, 4},
		{graphics.ErrDisplayMode, StatusDisplayMode, 4},
		{graphics.ErrAllocation, StatusAllocation, 5},
		{errors.New("other"), StatusProviderFailure, 1},
	}
	for _, tt := range tests {
		got := StatusOf(tt.err)
		if got != tt.want || got.ExitCode() != tt.code {
			t.Errorf("StatusOf(%v) = %v/%d, want %v/%d", tt.err, got, got.ExitCode(), tt.want, tt.code)
		}
	}
}
