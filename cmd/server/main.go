package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadforge/internal/assessment"
	"leadforge/internal/cache"
	"leadforge/internal/config"
	"leadforge/internal/metrics"
	"leadforge/internal/repository"
	"leadforge/internal/service"
	"leadforge/internal/transport/rest"
	"leadforge/internal/transport/rest/middleware"
	"leadforge/internal/transport/ws"
)

// @title Leadforge API
// @version 1.0
// @description Lead capture backend: assessment quiz, contact form and admin dashboard
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Business: %s (%s, %s)", cfg.Business.Name, cfg.Business.Type, cfg.Business.State)
	if cfg.WebhookEnabled() {
		log.Println("  Webhook:   configured ✓")
	} else {
		log.Println("  Webhook:   NOT SET (leads stored only)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Initialize repositories
	leadRepo := repository.NewLeadRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Initialize caches
	resultsCache := cache.NewResultsCache(rdb)
	rateLimitCache := cache.NewRateLimitCache(rdb)
	leadStats := cache.NewLeadStatsCache(rdb)

	m := metrics.Default()
	webhook := service.NewWebhookClient(cfg.Webhook)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Admin)
	assessmentSvc := service.NewAssessmentService(assessment.DefaultCatalog(), submissionRepo, leadRepo, resultsCache, leadStats, webhook, m, cfg.Webhook)
	contactSvc := service.NewContactService(leadRepo, rateLimitCache, leadStats, webhook, m, cfg.Contact, cfg.Webhook)
	leadSvc := service.NewLeadService(leadRepo, leadStats)
	siteSvc := service.NewSiteService(cfg.Business)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)
	contactSvc.SetBroadcaster(wsHub)
	leadSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		ContactService:    contactSvc,
		LeadService:       leadSvc,
		SiteService:       siteSvc,
		WSHub:             wsHub,
		RateLimiter:       middleware.NewRateLimiter(cfg.RateLimit),
		Metrics:           m,
		Gatherer:          prometheus.DefaultGatherer,
		BusinessName:      cfg.Business.Name,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Admin auth: username=%s", cfg.Admin.Username)
		log.Println("Endpoints:")
		log.Println("  GET  /health, /metrics")
		log.Println("  GET  /v1/assessment/questions")
		log.Println("  POST /v1/assessment/validate")
		log.Println("  POST /v1/assessment/submit")
		log.Println("  GET  /v1/assessment/results/{id}")
		log.Println("  POST /v1/contact")
		log.Println("  GET  /v1/site/hero")
		log.Println("  POST /v1/admin/login")
		log.Println("  GET  /v1/admin/leads, /v1/admin/leads/export.csv, /v1/admin/stats")
		log.Println("  PATCH /v1/admin/leads/{id}/status")
		log.Println("  WS   /v1/ws/admin")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	contactSvc.WaitForWebhooks()
	assessmentSvc.WaitForWebhooks()

	log.Println("Server exited")
}
