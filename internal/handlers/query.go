package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/prlsite/starters/internal/httpx"
	"github.com/prlsite/starters/internal/query"
	"github.com/prlsite/starters/internal/services"
	"github.com/prlsite/starters/internal/validation"
)

// QueryHandler forwards a free-text question plus the current dataset to
// the external model and returns its answer verbatim.
type QueryHandler struct {
	Adapter query.Adapter
	Svc     *services.StarterService
	Log     *zap.Logger
}

func NewQueryHandler(adapter query.Adapter, svc *services.StarterService, log *zap.Logger) *QueryHandler {
	return &QueryHandler{Adapter: adapter, Svc: svc, Log: log}
}

// Ask: POST /query
func (h *QueryHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.Adapter == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "query_unconfigured", nil)
		return
	}

	var in struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("prompt", in.Prompt, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_empty", v)
		return
	}

	snapshot, err := h.Svc.Snapshot(r.Context())
	if err != nil {
		h.Log.Error("snapshot failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "snapshot_failed", nil)
		return
	}

	answer, err := h.Adapter.Ask(r.Context(), in.Prompt, snapshot)
	if err != nil {
		h.Log.Warn("query adapter failed", zap.Error(err))
		httpx.JSONError(w, http.StatusBadGateway, "query_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"answer": answer})
}
