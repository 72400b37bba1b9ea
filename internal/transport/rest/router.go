package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadforge/internal/metrics"
	"leadforge/internal/service"
	"leadforge/internal/transport/rest/handler"
	"leadforge/internal/transport/rest/middleware"
	"leadforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ContactService    *service.ContactService
	LeadService       *service.LeadService
	SiteService       *service.SiteService
	WSHub             *ws.Hub
	RateLimiter       *middleware.RateLimiter
	Metrics           *metrics.Metrics
	Gatherer          prometheus.Gatherer // defaults to the global registry
	BusinessName      string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	contactHandler := handler.NewContactHandler(c.ContactService)
	siteHandler := handler.NewSiteHandler(c.SiteService)
	leadHandler := handler.NewLeadHandler(c.LeadService, c.BusinessName)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.Metrics(c.Metrics))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")

	// Public routes (rate limited per client)
	public := v1.NewRoute().Subrouter()
	public.Use(c.RateLimiter.Middleware)

	public.HandleFunc("/assessment/questions", assessmentHandler.Questions).Methods("GET", "OPTIONS")
	public.HandleFunc("/assessment/validate", assessmentHandler.Validate).Methods("POST", "OPTIONS")
	public.HandleFunc("/assessment/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	public.HandleFunc("/assessment/results/{id}", assessmentHandler.Results).Methods("GET", "OPTIONS")
	public.HandleFunc("/contact", contactHandler.Submit).Methods("POST", "OPTIONS")
	public.HandleFunc("/site/hero", siteHandler.Hero).Methods("GET", "OPTIONS")
	public.HandleFunc("/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/leads", leadHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/leads/export.csv", leadHandler.ExportCSV).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/leads/{id}/status", leadHandler.UpdateStatus).Methods("PATCH", "OPTIONS")
	adminRoutes.HandleFunc("/stats", leadHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PATCH, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
