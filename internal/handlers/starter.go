package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/prlsite/starters/internal/httpx"
	"github.com/prlsite/starters/internal/models"
	"github.com/prlsite/starters/internal/normalize"
	"github.com/prlsite/starters/internal/pdf"
	"github.com/prlsite/starters/internal/services"
	"github.com/prlsite/starters/internal/store"
)

// StarterHandler exposes the capture, list/edit, and report boundaries.
type StarterHandler struct {
	Svc   *services.StarterService
	Store *store.StarterStore
	Log   *zap.Logger
}

func NewStarterHandler(svc *services.StarterService, st *store.StarterStore, log *zap.Logger) *StarterHandler {
	return &StarterHandler{Svc: svc, Store: st, Log: log}
}

// Create: POST /starters – capture one starter, answer with the rendered
// document. The assigned id travels in the X-Starter-Id header so the
// body can stay pure PDF.
func (h *StarterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec models.Starter
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	id, doc, err := h.Svc.Submit(r.Context(), rec)
	if err != nil {
		if id != 0 && errors.Is(err, pdf.ErrRenderUnavailable) {
			// record persisted; only the document failed
			httpx.JSONError(w, http.StatusServiceUnavailable, "render_unavailable", map[string]any{"id": id})
			return
		}
		h.Log.Error("capture failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "capture_failed", nil)
		return
	}

	w.Header().Set("X-Starter-Id", strconv.FormatUint(uint64(id), 10))
	httpx.PDF(w, http.StatusCreated, downloadName("new_starter", rec.EmployeeName), doc)
}

// List: GET /starters – the full current record set for the edit view.
func (h *StarterHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("list failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_starters", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": recs, "total": len(recs)})
}

// Reconcile: PUT /starters – full replacement row set from an edit
// round-trip. Rows present before but absent now are deletions.
func (h *StarterHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var rows []models.Starter
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	sum, err := h.Store.Reconcile(r.Context(), rows)
	if err != nil {
		h.Log.Error("reconcile failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "reconcile_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

// PDF: GET /starters/pdf?id=N – re-render the document for one stored
// record.
func (h *StarterHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	doc, rec, err := h.Svc.Render(r.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, pdf.ErrRenderUnavailable):
			httpx.JSONError(w, http.StatusServiceUnavailable, "render_unavailable", nil)
		default:
			h.Log.Error("render failed", zap.Uint64("id", id), zap.Error(err))
			httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
		}
		return
	}
	httpx.PDF(w, http.StatusOK, downloadName("starter", rec.EmployeeName), doc)
}

// Report: GET /starters/report – the tabular roster over the full set.
func (h *StarterHandler) Report(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Report(r.Context())
	if err != nil {
		if errors.Is(err, pdf.ErrRenderUnavailable) {
			httpx.JSONError(w, http.StatusServiceUnavailable, "render_unavailable", nil)
			return
		}
		h.Log.Error("report failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	httpx.PDF(w, http.StatusOK, "all_starters_report.pdf", doc)
}

func downloadName(prefix, employee string) string {
	name := strings.TrimSpace(normalize.Text(employee))
	name = strings.NewReplacer(" ", "_", "\n", "_").Replace(name)
	if name == "" {
		name = "record"
	}
	return prefix + "_" + name + ".pdf"
}
