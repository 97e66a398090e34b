package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticket-monitor-go/internal/metrics"
	"ticket-monitor-go/internal/scheduler"
	"ticket-monitor-go/internal/store"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store     *store.ProcessedStore
	scheduler *scheduler.Scheduler
	metrics   *metrics.Metrics
}

// NewHandlers creates new HTTP handlers
func NewHandlers(st *store.ProcessedStore, s *scheduler.Scheduler, m *metrics.Metrics) *Handlers {
	return &Handlers{store: st, scheduler: s, metrics: m}
}

// SetupRoutes sets up all HTTP routes
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.GET("/", h.Home)
	router.GET("/healthz", h.HealthCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	sched := api.Group("/scheduler")
	sched.POST("/start", h.StartScheduler)
	sched.POST("/stop", h.StopScheduler)
	sched.POST("/run", h.RunOnce)
	sched.GET("/status", h.GetSchedulerStatus)
}

// Home handles the liveness endpoint
func (h *Handlers) Home(c *gin.Context) {
	c.String(http.StatusOK, "Ticket monitor is running.")
}
