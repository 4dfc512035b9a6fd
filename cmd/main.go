package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skypass/internal/clients"
	"skypass/internal/config"
	"skypass/internal/handlers"
	"skypass/internal/metrics"
	"skypass/internal/middleware"
	"skypass/internal/service"
	"skypass/internal/session"
	"skypass/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Skypass Starting ===")

	cfg := config.Load()

	if cfg.Passes.Timeout == 0 {
		log.Println("Pass requests have no timeout (PASSES_TIMEOUT unset)")
	}

	// Outbound collaborators
	passClient := clients.NewPassClient(cfg.Passes.URL, cfg.Passes.Timeout)
	locator := clients.NewLocator(clients.LocationConfig{
		URL:        cfg.Location.URL,
		Permission: cfg.Location.Permission,
	})

	coordinateService := service.NewCoordinateService(locator)
	passService := service.NewPassService(passClient, service.PassConfig{
		SatelliteID: cfg.Passes.SatelliteID,
	})

	store := session.NewStore(coordinateService, passService)

	scheduler := worker.NewScheduler()
	scheduler.AddWorker(worker.NewSessionReaperWorker(store, cfg.Sessions.IdleTTL, cfg.Sessions.ReapInterval))
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	api.GET("/health", handlers.Health(store, cfg.Passes.SatelliteID))

	// One outbound call per second per client, on top of the global limit.
	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(1), 3)
	sessionHandler := handlers.NewSessionHandler(store, passService.SatelliteID(), cfg.DisplayLocation())
	sessionHandler.Register(api, middleware.IPRateLimitMiddleware(ipLimiter))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// No WriteTimeout: a predict call waits on the remote service for as
	// long as it takes.
	server := &http.Server{
		Addr:        ":" + cfg.App.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)
		log.Printf("Pass service: %s (satellite %s)", cfg.Passes.URL, cfg.Passes.SatelliteID)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
