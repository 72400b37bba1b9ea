package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leadforge/internal/model"
	"leadforge/internal/service"
)

// LeadHandler handles admin dashboard endpoints
type LeadHandler struct {
	leadSvc         *service.LeadService
	defaultBusiness string
}

// NewLeadHandler creates a new lead handler. Requests without ?business=
// are scoped to defaultBusiness.
func NewLeadHandler(leadSvc *service.LeadService, defaultBusiness string) *LeadHandler {
	return &LeadHandler{
		leadSvc:         leadSvc,
		defaultBusiness: defaultBusiness,
	}
}

func (h *LeadHandler) business(r *http.Request) string {
	if b := r.URL.Query().Get("business"); b != "" {
		return b
	}
	return h.defaultBusiness
}

// List handles GET /v1/admin/leads
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	leads, err := h.leadSvc.List(r.Context(), h.business(r), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leads")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leads": leads})
}

// ExportCSV handles GET /v1/admin/leads/export.csv
func (h *LeadHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	business := h.business(r)
	leads, err := h.leadSvc.List(r.Context(), business, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leads")
		return
	}

	var buf bytes.Buffer
	if err := h.leadSvc.ExportCSV(&buf, leads); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export leads")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.leadSvc.CSVFilename(business)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// UpdateStatusRequest is the body for changing a lead status
type UpdateStatusRequest struct {
	Status model.LeadStatus `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/leads/{id}/status
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.leadSvc.UpdateStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrLeadNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Stats handles GET /v1/admin/stats
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leadSvc.Stats(r.Context(), h.business(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
