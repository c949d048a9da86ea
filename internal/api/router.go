package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/sharktrack-backend-go/internal/handler"
	"github.com/jengzang/sharktrack-backend-go/internal/metrics"
	"github.com/jengzang/sharktrack-backend-go/internal/middleware"
	"github.com/jengzang/sharktrack-backend-go/internal/service"
)

// Dependencies are the collaborators the router wires together
type Dependencies struct {
	Service     *service.DatasetService
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
}

// SetupRouter builds the read-only query API
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Logger, deps.Metrics))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		if !deps.Service.Ready() {
			status = "generating"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"message": "SharkTrack Backend API is running",
		})
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	datasetHandler := handler.NewDatasetHandler(deps.Service)

	api := r.Group("/api/v1")
	if deps.RateLimiter != nil {
		api.Use(middleware.RateLimit(deps.RateLimiter))
	}
	{
		api.GET("/satellite-predictions", datasetHandler.GetSatellitePredictions)
		api.GET("/tag-data", datasetHandler.GetTagData)
		api.GET("/combined-events", datasetHandler.GetCombinedEvents)
		api.GET("/system-stats", datasetHandler.GetSystemStats)
		api.GET("/performance", datasetHandler.GetPerformance)
		api.GET("/data-sources", datasetHandler.GetDataSources)
	}

	return r
}
