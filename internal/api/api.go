// backend-go/internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/merchview/backend-go/internal/api/handlers"
	"github.com/andresuchdata/merchview/backend-go/internal/api/middleware"
	"github.com/andresuchdata/merchview/backend-go/internal/realtime"
	"github.com/andresuchdata/merchview/backend-go/internal/service"
)

type Services struct {
	OutletService     *service.OutletService
	ProductService    *service.ProductService
	ExpiryService     *service.ExpiryService
	GrnService        *service.GrnService
	OccurrenceService *service.OccurrenceService
	AnalysisService   *service.AnalysisService
	Hub               *realtime.Hub
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.OutletService != nil {
		outletHandler := handlers.NewOutletHandler(services.OutletService)
		outletGroup := apiGroup.Group("/outlets")
		{
			outletGroup.GET("", outletHandler.List)
			outletGroup.POST("", outletHandler.Create)
			outletGroup.PUT("/:id", outletHandler.Update)
			outletGroup.DELETE("/:id", outletHandler.Delete)
			outletGroup.GET("/:id/products", outletHandler.Products)
		}
	}

	if services.ProductService != nil {
		productHandler := handlers.NewProductHandler(services.ProductService)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.List)
			productGroup.POST("", productHandler.Create)
			productGroup.PUT("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
		}
	}

	if services.ExpiryService != nil {
		expiryHandler := handlers.NewExpiryHandler(services.ExpiryService)
		expiryGroup := apiGroup.Group("/expiries")
		{
			expiryGroup.GET("", expiryHandler.List)
			expiryGroup.POST("", expiryHandler.Create)
			expiryGroup.PUT("/:id", expiryHandler.Update)
			expiryGroup.DELETE("/:id", expiryHandler.Delete)
			expiryGroup.DELETE("/groups/:outletId/:productId/:batchNo", expiryHandler.DeleteGroup)
		}
	}

	if services.GrnService != nil {
		grnHandler := handlers.NewGrnHandler(services.GrnService)
		grnGroup := apiGroup.Group("/grns")
		{
			grnGroup.GET("", grnHandler.List)
			grnGroup.POST("", grnHandler.Create)
			grnGroup.PUT("/:id", grnHandler.Update)
			grnGroup.DELETE("/:id", grnHandler.Delete)
			grnGroup.POST("/documents", grnHandler.UploadDocument)
		}
	}

	if services.OccurrenceService != nil {
		occurrenceHandler := handlers.NewOccurrenceHandler(services.OccurrenceService)
		occurrenceGroup := apiGroup.Group("/occurrences")
		{
			occurrenceGroup.GET("", occurrenceHandler.List)
			occurrenceGroup.POST("", occurrenceHandler.Create)
			occurrenceGroup.PUT("/:id", occurrenceHandler.Update)
			occurrenceGroup.DELETE("/:id", occurrenceHandler.Delete)
		}
	}

	if services.AnalysisService != nil {
		analysisHandler := handlers.NewAnalysisHandler(services.AnalysisService)
		analysisGroup := apiGroup.Group("/analysis")
		{
			analysisGroup.GET("/report", analysisHandler.Report)
			analysisGroup.GET("/export/detail", analysisHandler.ExportDetail)
			analysisGroup.GET("/export/entries", analysisHandler.ExportEntries)
			analysisGroup.GET("/export/monthly", analysisHandler.ExportMonthly)
		}
	}

	if services.Hub != nil {
		wsHandler := handlers.NewWsHandler(services.Hub)
		apiGroup.GET("/ws/:collection", wsHandler.Subscribe)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
