package handler

import (
	"github.com/gin-gonic/gin"
	appperf "github.com/storefront/platform/internal/application/performance"
)

// PerformanceHandler ingests and reports request timings
type PerformanceHandler struct {
	BaseHandler
	metrics *appperf.MetricService
}

// NewPerformanceHandler creates a new performance handler
func NewPerformanceHandler(metrics *appperf.MetricService) *PerformanceHandler {
	return &PerformanceHandler{metrics: metrics}
}

// Record godoc
// @Summary      Ingest a request measurement
// @Tags         performance
// @Accept       json
// @Produce      json
// @Param        request body appperf.RecordMetricRequest true "Measurement"
// @Success      201 {object} dto.Response{data=appperf.MetricResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /performance/metrics [post]
func (h *PerformanceHandler) Record(c *gin.Context) {
	var req appperf.RecordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	m, err := h.metrics.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, m)
}

// List godoc
// @Summary      Recent measurements, newest first
// @Tags         performance
// @Produce      json
// @Param        service  query string false "Service"
// @Param        endpoint query string false "Endpoint"
// @Param        since    query string false "RFC 3339 lower bound"
// @Param        limit    query int    false "Maximum rows" default(1000)
// @Success      200 {object} dto.Response{data=[]appperf.MetricResponse}
// @Security     BearerAuth
// @Router       /performance/metrics [get]
func (h *PerformanceHandler) List(c *gin.Context) {
	var q appperf.MetricQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	items, err := h.metrics.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, items, len(items))
}

// Summary godoc
// @Summary      Per-endpoint count, average, p95, max and error rate
// @Tags         performance
// @Produce      json
// @Param        service  query string false "Service"
// @Param        endpoint query string false "Endpoint"
// @Param        since    query string false "RFC 3339 lower bound"
// @Success      200 {object} dto.Response{data=[]object}
// @Security     BearerAuth
// @Router       /performance/summary [get]
func (h *PerformanceHandler) Summary(c *gin.Context) {
	var q appperf.MetricQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	summary, err := h.metrics.Summary(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, summary, len(summary))
}
