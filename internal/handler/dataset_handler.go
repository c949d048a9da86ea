package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/sharktrack-backend-go/internal/models"
	"github.com/jengzang/sharktrack-backend-go/internal/service"
	"github.com/jengzang/sharktrack-backend-go/pkg/response"
)

// DatasetHandler handles HTTP requests for the generated tables
type DatasetHandler struct {
	datasetService *service.DatasetService
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasetService *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
	}
}

// writeError maps service errors to HTTP responses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotGenerated):
		response.ServiceUnavailable(c, "Dataset not generated yet. Run the generator first.")
	case errors.Is(err, service.ErrInvalidFilter):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

// GetSatellitePredictions handles GET /api/v1/satellite-predictions
func (h *DatasetHandler) GetSatellitePredictions(c *gin.Context) {
	var filter models.PredictionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.datasetService.GetPredictions(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, page)
}

// GetTagData handles GET /api/v1/tag-data
func (h *DatasetHandler) GetTagData(c *gin.Context) {
	var filter models.TagEventFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.datasetService.GetTagEvents(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, page)
}

// GetCombinedEvents handles GET /api/v1/combined-events
func (h *DatasetHandler) GetCombinedEvents(c *gin.Context) {
	var filter models.CombinedFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.datasetService.GetCombined(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, page)
}

// GetSystemStats handles GET /api/v1/system-stats
func (h *DatasetHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.datasetService.GetSystemStats()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, stats)
}

// GetPerformance handles GET /api/v1/performance
func (h *DatasetHandler) GetPerformance(c *gin.Context) {
	metrics, err := h.datasetService.GetPerformance()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, metrics)
}

// GetDataSources handles GET /api/v1/data-sources
func (h *DatasetHandler) GetDataSources(c *gin.Context) {
	response.Success(c, h.datasetService.GetDataSources())
}
