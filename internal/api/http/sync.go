package http

import (
	"encoding/json"
	"net/http"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/services"
)

// SyncHandler exposes the snapshot push/pull protocol (thin transport layer).
type SyncHandler struct {
	sync *services.SyncService
}

func NewSyncHandler(svc *services.SyncService) *SyncHandler {
	return &SyncHandler{sync: svc}
}

// Push handles POST /api/sync/push
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var snap model.SyncSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	result, err := h.sync.Push(r.Context(), userID, &snap)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// Pull handles GET /api/sync/pull
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	snap, err := h.sync.Pull(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, snap)
}

// Status handles GET /api/sync/status
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	status, err := h.sync.Status(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, status)
}

// Enable handles POST /api/sync/enable
func (h *SyncHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, true)
}

// Disable handles POST /api/sync/disable
func (h *SyncHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, false)
}

type cloudSyncResponse struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

func (h *SyncHandler) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var err error
	message := "Cloud sync disabled. Your data remains on your device."
	if enabled {
		err = h.sync.Enable(r.Context(), userID)
		message = "Cloud sync enabled. Your data will now be securely backed up."
	} else {
		err = h.sync.Disable(r.Context(), userID)
	}
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cloudSyncResponse{Enabled: enabled, Message: message})
}
