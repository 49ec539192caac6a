package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/prlsite/starters/internal/httpx"
	"github.com/prlsite/starters/internal/store"
	"github.com/prlsite/starters/internal/validation"
)

// ClientHandler exposes the client directory used by the capture form's
// autofill dropdown.
type ClientHandler struct {
	Dir *store.ClientDirectory
	Log *zap.Logger
}

func NewClientHandler(dir *store.ClientDirectory, log *zap.Logger) *ClientHandler {
	return &ClientHandler{Dir: dir, Log: log}
}

// List: GET /clients – name-ordered for deterministic dropdown display.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Dir.List(r.Context())
	if err != nil {
		h.Log.Error("list clients failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /clients – explicit directory add. A duplicate name is a
// silent no-op reported as 200; only a genuinely new name answers 201.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_empty", v)
		return
	}

	inserted, err := h.Dir.UpsertIfAbsent(r.Context(), in.Name, in.Contact, in.Address)
	if err != nil {
		h.Log.Error("upsert client failed", zap.String("name", in.Name), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_add_client", nil)
		return
	}
	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, map[string]any{"inserted": inserted})
}
