package handler

import (
	"net/http"
	"strconv"
	"time"

	"leadforge/internal/service"
)

// SiteHandler handles landing page endpoints
type SiteHandler struct {
	siteSvc *service.SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteSvc *service.SiteService) *SiteHandler {
	return &SiteHandler{siteSvc: siteSvc}
}

// Hero handles GET /v1/site/hero?state=&month=
func (h *SiteHandler) Hero(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")

	var month time.Month
	if m := r.URL.Query().Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			writeError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		month = time.Month(n)
	}

	writeJSON(w, http.StatusOK, h.siteSvc.Info(state, month))
}
