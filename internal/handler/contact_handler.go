package handler

import (
	"net/http"

	"github.com/grpaccess/backend/internal/model"
	"github.com/grpaccess/backend/internal/service"
)

// ContactHandler handles contact form submission and listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// name, email and message are required; phone is optional. The reply does not
// reveal whether the notification email went out.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactSubmissionCreate
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.contactService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to process contact submission")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// List handles GET /api/contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.contactService.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list contact submissions")
		return
	}

	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}
