package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheckTimeout bounds each dependency probe of the health endpoint
const HealthCheckTimeout = 2 * time.Second

// Health states reported per dependency
const (
	CheckUp     = "up"
	CheckDown   = "down"
	CheckMemory = "memory"
)

// Pinger is a dependency the health endpoint can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeyValueBackend is the cache backend of the service
type KeyValueBackend interface {
	Pinger
	Backend() string
}

// RouteLister exposes the registered routes, as *gin.Engine does
type RouteLister interface {
	Routes() gin.RoutesInfo
}

// SystemConfig describes the process to the system endpoints
type SystemConfig struct {
	Service  string
	Version  string
	Database Pinger
	Cache    KeyValueBackend
	Routes   RouteLister
	Domains  func() []string
}

// SystemHandler handles health and introspection endpoints
type SystemHandler struct {
	BaseHandler
	cfg       SystemConfig
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(cfg SystemConfig) *SystemHandler {
	return &SystemHandler{
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Service   string            `json:"service" example:"storefront-platform"`
	Timestamp string            `json:"timestamp" example:"2026-01-23T12:00:00Z"`
	Checks    map[string]string `json:"checks"`
}

// Health godoc
// @ID           health
// @Summary      Liveness and dependency health
// @Description  503 when the database is unreachable. A Redis failure only degrades the status.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Service:   h.cfg.Service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"database": CheckUp, "redis": CheckMemory},
	}
	status := http.StatusOK

	if h.cfg.Database != nil {
		if err := h.cfg.Database.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Database health check failed", zap.Error(err))
			resp.Checks["database"] = CheckDown
			resp.Status = "error"
			status = http.StatusServiceUnavailable
		}
	}

	if h.cfg.Cache != nil && h.cfg.Cache.Backend() != CheckMemory {
		resp.Checks["redis"] = CheckUp
		if err := h.cfg.Cache.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Redis health check failed", zap.Error(err))
			resp.Checks["redis"] = CheckDown
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	c.JSON(status, resp)
}

// RouteInfo is one registered route
type RouteInfo struct {
	Method string `json:"method" example:"GET"`
	Path   string `json:"path" example:"/products/:id"`
}

// IntrospectResponse describes the running service
type IntrospectResponse struct {
	Service   string      `json:"service" example:"storefront-platform"`
	Version   string      `json:"version" example:"1.0.0"`
	Domains   []string    `json:"domains"`
	Routes    []RouteInfo `json:"routes"`
	GoVersion string      `json:"goVersion" example:"go1.25.5"`
	Uptime    string      `json:"uptime" example:"1h30m45s"`
}

// Introspect godoc
// @ID           introspect
// @Summary      Service metadata
// @Description  Mounted domains, their routes, Go version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=IntrospectResponse}
// @Router       /__introspect [get]
func (h *SystemHandler) Introspect(c *gin.Context) {
	info := IntrospectResponse{
		Service:   h.cfg.Service,
		Version:   h.cfg.Version,
		Domains:   []string{},
		Routes:    []RouteInfo{},
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.cfg.Domains != nil {
		info.Domains = append(info.Domains, h.cfg.Domains()...)
	}
	if h.cfg.Routes != nil {
		for _, r := range h.cfg.Routes.Routes() {
			info.Routes = append(info.Routes, RouteInfo{Method: r.Method, Path: r.Path})
		}
		sort.Slice(info.Routes, func(i, j int) bool {
			if info.Routes[i].Path == info.Routes[j].Path {
				return info.Routes[i].Method < info.Routes[j].Method
			}
			return info.Routes[i].Path < info.Routes[j].Path
		})
	}
	h.Success(c, info)
}
