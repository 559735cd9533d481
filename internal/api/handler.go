package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/engine"
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/typeid"
)

const maxOpSize = 64 << 10

type Handler struct {
	session *Session
}

func NewHandler(session *Session) *Handler {
	return &Handler{session: session}
}

type opResponse struct {
	Version uint64       `json:"version"`
	State   engine.State `json:"state"`
}

// SubmitOp applies one operation from the request body.
func (h *Handler) SubmitOp(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxOpSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if _, err := h.session.Apply(r.Context(), body); err != nil {
		handleApplyError(w, err)
		return
	}

	var resp opResponse
	h.session.Read(func(e *engine.Engine) {
		resp.State = e.State()
		resp.Version = resp.State.Version
	})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var cmds []engine.DrawCommand
	h.session.Read(func(e *engine.Engine) { cmds = e.Render() })
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}
	writeJSON(w, http.StatusOK, cmds)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	var st engine.State
	h.session.Read(func(e *engine.Engine) { st = e.State() })
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) ListFigures(w http.ResponseWriter, r *http.Request) {
	var info []figure.Info
	h.session.Read(func(e *engine.Engine) { info = e.Info() })
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) GetFigure(w http.ResponseWriter, r *http.Request) {
	figureID := mux.Vars(r)["figureId"]
	if _, err := typeid.Prefix(figureID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid figure id"})
		return
	}

	var (
		info  figure.Info
		found bool
	)
	h.session.Read(func(e *engine.Engine) {
		for _, fi := range e.Info() {
			if fi.ID == figureID {
				info, found = fi, true
				return
			}
		}
	})
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "figure not found"})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) SelectionBounds(w http.ResponseWriter, r *http.Request) {
	var b geom.Rect
	h.session.Read(func(e *engine.Engine) { b = e.SelectionBounds() })
	writeJSON(w, http.StatusOK, b)
}

// HitTest reports the topmost visible figure at ?x=&y=.
func (h *Handler) HitTest(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required numbers"})
		return
	}

	res := engine.HitTestResult{X: x, Y: y}
	h.session.Read(func(e *engine.Engine) { res.ObjectID = e.HitTest(x, y) })
	writeJSON(w, http.StatusOK, res)
}

func handleApplyError(w http.ResponseWriter, err error) {
	if errors.Is(err, drawing.ErrNilMemento) {
		slog.Error("apply operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
