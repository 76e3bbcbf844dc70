package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/app/screens"
	"github.com/HyperNiki/umt/internal/assets"
	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/graphics/headless"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/resource"
	"github.com/HyperNiki/umt/internal/web"
)

// SimControl runs one application session at a time on a headless display
// and lets HTTP clients drive it.
type SimControl struct {
	Display  *headless.Provider
	Keys     *input.Queue
	Language string
	Logger   app.Logger

	mu      sync.RWMutex
	running bool
	state   app.State
	status  app.Status
	runs    int
}

func NewSimControl(display *headless.Provider, language string, logger app.Logger) *SimControl {
	if logger == nil {
		logger = app.NoopLogger{}
	}
	return &SimControl{Display: display, Keys: input.NewQueue(64), Language: language, Logger: logger}
}

// Start launches a session in the background. It fails while one is running.
func (c *SimControl) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("session already running")
	}
	c.running = true
	c.state = app.InitialState
	c.runs++
	c.mu.Unlock()

	go func() {
		status := c.run()
		c.mu.Lock()
		c.running = false
		c.status = status
		c.mu.Unlock()
		c.Logger.Infof("sim", "session finished: %s", status)
	}()
	return nil
}

func (c *SimControl) run() app.Status {
	kit := screens.NewKit(c.Logger)
	table, err := screens.Table(kit)
	if err != nil {
		c.Logger.Errorf("sim", "state table: %v", err)
		return app.StatusOf(err)
	}
	defer func() {
		if err := kit.Close(); err != nil {
			c.Logger.Errorf("sim", "release fonts: %v", err)
		}
	}()
	return app.Boot(app.BootConfig{
		Resources: resource.NewDatabase(c.Language),
		Package:   resource.Package{Name: assets.StringsName, Data: assets.StringsYAML},
		Locate:    func() (graphics.Provider, error) { return c.Display, nil },
		States:    table,
		Input:     c.Keys,
		Logger:    c.Logger,
		OnState:   c.setState,
	})
}

func (c *SimControl) setState(s app.State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *SimControl) Session() web.SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info := web.SessionInfo{Running: c.running}
	if c.running {
		info.State = c.state.String()
	} else if c.runs > 0 {
		info.Status = c.status.String()
	}
	return info
}

func (c *SimControl) Deps() web.APIV1Deps {
	return web.APIV1Deps{Display: c.Display, Keys: c.Keys, Session: c.Session}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/restart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Start(); err != nil {
			writeSimError(w, http.StatusConflict, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
