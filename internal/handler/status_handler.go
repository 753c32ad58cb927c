package handler

import (
	"net/http"

	"github.com/grpaccess/backend/internal/model"
	"github.com/grpaccess/backend/internal/service"
)

// StatusHandler handles status-check creation and listing.
type StatusHandler struct {
	statusService service.StatusService
}

// NewStatusHandler creates a StatusHandler with the given service.
func NewStatusHandler(statusService service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// Create handles POST /api/status.
func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.StatusCheckCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	check, err := h.statusService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to record status check")
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// List handles GET /api/status.
func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.statusService.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list status checks")
		return
	}

	// Return [] not null for empty lists
	if checks == nil {
		checks = []*model.StatusCheck{}
	}
	writeJSON(w, http.StatusOK, checks)
}
