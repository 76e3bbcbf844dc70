package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/HyperNiki/umt/internal/input"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	PixelsPerScanLine int    `json:"pixelsPerScanLine"`
	Format            string `json:"format"`
	Started           bool   `json:"started"`
	Swaps             uint64 `json:"swaps"`
	Running           bool   `json:"running"`
	State             string `json:"state,omitempty"`
	Status            string `json:"status,omitempty"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/key/", func(w http.ResponseWriter, r *http.Request) { handleKey(w, r, deps) })
	return mux
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	snap := deps.Display.Snapshot()
	if !snap.Started {
		writeAPIError(w, http.StatusConflict, "display_not_started", "display not started")
		return
	}

	// Encode first so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := deps.Display.WritePNG(&buf); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Frame-Swaps", strconv.FormatUint(snap.Swaps, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	snap := deps.Display.Snapshot()
	session := deps.Session()
	writeJSON(w, http.StatusOK, statusResponse{
		Width:             snap.Mode.Width,
		Height:            snap.Mode.Height,
		PixelsPerScanLine: snap.Mode.PixelsPerScanLine,
		Format:            snap.Mode.Format.String(),
		Started:           snap.Started,
		Swaps:             snap.Swaps,
		Running:           session.Running,
		State:             session.State,
		Status:            session.Status,
	})
}

func handleKey(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/key/"), "/")
	key, ok := input.ParseKey(name)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "unknown_key", "unknown key "+strconv.Quote(name))
		return
	}
	if !deps.Session().Running {
		writeAPIError(w, http.StatusConflict, "session_finished", "application is not running")
		return
	}
	if !deps.Keys.Push(key) {
		writeAPIError(w, http.StatusServiceUnavailable, "input_busy", "key queue is full")
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
