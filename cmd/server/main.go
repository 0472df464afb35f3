// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/api"
	"github.com/andresuchdata/merchview/backend-go/internal/cache"
	"github.com/andresuchdata/merchview/backend-go/internal/config"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/realtime"
	"github.com/andresuchdata/merchview/backend-go/internal/repository/mongodb"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
	"github.com/andresuchdata/merchview/backend-go/internal/storage"
	"github.com/andresuchdata/merchview/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := mongodb.NewDB(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Repositories
	outletRepo := mongodb.NewOutletRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	expiryRepo := mongodb.NewExpiryRepository(db)
	grnRepo := mongodb.NewGrnRepository(db)
	occurrenceRepo := mongodb.NewOccurrenceRepository(db)

	// Analysis cache (noop when disabled)
	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	// Document storage is optional; GRN uploads fail gracefully without it
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to object storage")
		}
		objectStorage = minioClient
	} else {
		logger.Log.Info().Msg("Object storage disabled, GRN document uploads unavailable")
	}

	// Realtime hub: services notify it on writes, it pushes fresh
	// snapshots to websocket subscribers
	hub := realtime.NewHub()

	// Services
	outletService := service.NewOutletService(outletRepo, productRepo, analysisCache, hub)
	productService := service.NewProductService(productRepo, analysisCache, hub)
	expiryService := service.NewExpiryService(expiryRepo, outletRepo, productRepo, analysisCache, hub)
	grnService := service.NewGrnService(grnRepo, objectStorage, hub)
	occurrenceService := service.NewOccurrenceService(occurrenceRepo, hub)
	analysisService := service.NewAnalysisService(expiryRepo, outletRepo, productRepo, analysisCache)

	// Subscription sources: one loader per collection the console watches
	hub.RegisterLoader("outlets", func(ctx context.Context) (interface{}, error) {
		return outletService.List(ctx)
	})
	hub.RegisterLoader("products", func(ctx context.Context) (interface{}, error) {
		return productService.List(ctx)
	})
	hub.RegisterLoader("expiries", func(ctx context.Context) (interface{}, error) {
		return expiryService.ListGrouped(ctx)
	})
	hub.RegisterLoader("grns", func(ctx context.Context) (interface{}, error) {
		return grnService.List(ctx)
	})
	hub.RegisterLoader("occurrences", func(ctx context.Context) (interface{}, error) {
		return occurrenceService.List(ctx, domain.OccurrenceFilter{})
	})

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		OutletService:     outletService,
		ProductService:    productService,
		ExpiryService:     expiryService,
		GrnService:        grnService,
		OccurrenceService: occurrenceService,
		AnalysisService:   analysisService,
		Hub:               hub,
	}, cfg.Server.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
