// Package httpapi exposes the dice dispatcher, stat uploads and the observer
// WebSocket over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/command"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// Error details for failures that carry no rule message.
const (
	detailUploadFailed      = "Failed to upload stats"
	detailOccupiedIDsFailed = "Failed to fetch occupied IDs"
	detailMalformedBody     = "请求格式错误。"
	detailNotReady          = "Sheet store unavailable"
)

// Dispatcher resolves a command request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req command.Request) (command.Response, error)
}

// Deps are the collaborators served by the handler.
type Deps struct {
	Dispatcher Dispatcher
	// Commands is listed by GET /dice/commands; nil lists the built-ins.
	Commands *command.Registry
	Store    sheet.Store
	// Ready reports whether the sheet store can serve requests; nil is always ready.
	Ready func(ctx context.Context) error
	// Observers is mounted at /dice/ws; nil leaves the route unregistered.
	Observers http.Handler
	// Retention is the age past which sheets are purged on upload.
	Retention time.Duration
	// StaticDir is served under /static/; empty disables it.
	StaticDir      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

type handler struct {
	deps Deps
}

// RollRequest is the POST /dice/roll body.
type RollRequest struct {
	Command string `json:"command"`
	A1      string `json:"a1"`
	A2      string `json:"a2"`
	A3      string `json:"a3"`
	A4      string `json:"a4"`
	A5      string `json:"a5"`
	A6      string `json:"a6"`
	IP      string `json:"ip"`
	Time    string `json:"time"`
}

func (r RollRequest) request() command.Request {
	return command.Request{
		Command: r.Command,
		Args:    [command.MaxArgs]string{r.A1, r.A2, r.A3, r.A4, r.A5, r.A6},
		IP:      r.IP,
		Time:    r.Time,
	}
}

// UploadRequest is the POST /dice/upload_stats body.
type UploadRequest struct {
	UserID    int    `json:"user_id"`
	Stats     string `json:"stats"`
	CreateNew bool   `json:"create_new"`
}

// NewHandler builds the HTTP surface:
//
//	POST /dice/roll          dispatch a command and broadcast the result
//	POST /dice/upload_stats  merge a ".st" stat line into a sheet
//	GET  /dice/occupied_ids  list ids that have sheets
//	POST /dice/log_command   record a command as typed
//	GET  /dice/commands      command help grouped by category
//	GET  /dice/ready         sheet store readiness
//	GET  /dice/ws            observer WebSocket
//	GET  /                   redirect to /static/index.html
//	GET  /static/            static files
//
// Precondition: deps.Dispatcher, deps.Store and deps.Logger must be non-nil.
func NewHandler(deps Deps) http.Handler {
	if deps.Commands == nil {
		deps.Commands = command.DefaultRegistry()
	}
	h := &handler{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /dice/roll", h.roll)
	mux.HandleFunc("POST /dice/upload_stats", h.uploadStats)
	mux.HandleFunc("GET /dice/occupied_ids", h.occupiedIDs)
	mux.HandleFunc("POST /dice/log_command", h.logCommand)
	mux.HandleFunc("GET /dice/commands", h.commands)
	mux.HandleFunc("GET /dice/ready", h.ready)
	if deps.Observers != nil {
		mux.Handle("GET /dice/ws", deps.Observers)
	}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
	if deps.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return requestLogger(deps.Logger)(c.Handler(mux))
}

func (h *handler) roll(w http.ResponseWriter, r *http.Request) {
	var body RollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailMalformedBody)
		return
	}
	resp, err := h.deps.Dispatcher.Dispatch(r.Context(), body.request())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, command.Message(err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) uploadStats(w http.ResponseWriter, r *http.Request) {
	var body UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailMalformedBody)
		return
	}

	entries, err := h.parseUpload(body)
	if err != nil {
		msg, _ := gameerr.Message(err)
		h.deps.Logger.Error("rejecting stat upload",
			zap.Int("user_id", body.UserID),
			zap.String("message", msg),
		)
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	if n, err := h.deps.Store.Purge(r.Context(), h.deps.Retention); err != nil {
		h.deps.Logger.Warn("purging stale sheets", zap.Error(err))
	} else if n > 0 {
		h.deps.Logger.Info("purged stale sheets", zap.Int("count", n))
	}

	if _, err := sheet.Merge(r.Context(), h.deps.Store, body.UserID, entries, body.CreateNew); err != nil {
		h.deps.Logger.Error("saving uploaded stats",
			zap.Int("user_id", body.UserID),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, detailUploadFailed)
		return
	}

	h.deps.Logger.Info("stats uploaded",
		zap.Int("user_id", body.UserID),
		zap.Int("attributes", len(entries)),
		zap.Bool("create_new", body.CreateNew),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *handler) parseUpload(body UploadRequest) ([]sheet.Entry, error) {
	if err := sheet.ValidateID(body.UserID); err != nil {
		return nil, err
	}
	return sheet.ParseUpload(body.Stats)
}

func (h *handler) occupiedIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.deps.Store.List(r.Context())
	if err != nil {
		h.deps.Logger.Error("listing sheets", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, detailOccupiedIDsFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"occupied_ids": ids})
}

func (h *handler) logCommand(w http.ResponseWriter, r *http.Request) {
	var body RollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailMalformedBody)
		return
	}
	req := body.request()
	h.deps.Logger.Info("command submitted",
		zap.String("command", req.Command),
		zap.Strings("args", req.Args[:]),
		zap.String("ip", req.IP),
		zap.String("time", req.Time),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

func (h *handler) commands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]command.Section{"categories": h.deps.Commands.Help()})
}

func (h *handler) ready(w http.ResponseWriter, r *http.Request) {
	if h.deps.Ready != nil {
		if err := h.deps.Ready(r.Context()); err != nil {
			h.deps.Logger.Warn("sheet store not ready", zap.Error(err))
			writeDetail(w, http.StatusServiceUnavailable, detailNotReady)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errServerClosed reports whether err is the normal result of Shutdown.
func errServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
