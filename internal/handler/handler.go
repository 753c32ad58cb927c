package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/grpaccess/backend/internal/docstore"
	"github.com/grpaccess/backend/internal/service"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	origins []string
}

// New creates the root Handler. origins lists the allowed CORS origins; "*" allows any.
func New(db Pinger, origins []string) *Handler {
	return &Handler{db: db, origins: origins}
}

func (h *Handler) allowOrigin(origin string) bool {
	return slices.Contains(h.origins, "*") || slices.Contains(h.origins, origin)
}

// CORS echoes an allowed Origin back with credentials enabled and answers
// preflight requests directly.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && h.allowOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// decodeJSON reads a bounded JSON body into v, replying 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid JSON body"})
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP: validation → 422, anything
// else → 500 with the generic detail and nothing internal.
func writeServiceError(w http.ResponseWriter, err error, detail string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: verr.Error(), Field: verr.Field})
		return
	}

	var serr *docstore.StorageError
	if errors.As(err, &serr) {
		slog.Error(detail, "op", serr.Op, "collection", serr.Collection, "error", serr.Err)
	} else {
		slog.Error(detail, "error", err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: detail})
}
