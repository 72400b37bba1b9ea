package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadforge/internal/model"
	"leadforge/internal/service"
	"leadforge/internal/transport/rest/middleware"
)

// ContactHandler handles the contact form endpoint
type ContactHandler struct {
	contactSvc *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactSvc *service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// Submit handles POST /v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.contactSvc.Submit(r.Context(), &req, middleware.ClientIP(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, service.ErrRateLimited.Error())
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		writeError(w, http.StatusInternalServerError, service.ErrStorageUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
