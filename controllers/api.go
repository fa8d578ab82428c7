package controllers

import (
	"time"

	"mclauncher/internal/middleware"
	"mclauncher/internal/models"
	"mclauncher/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIController struct {
	launcher  *services.Launcher
	version   string
	startTime time.Time
}

/**
 * Create new API controller instance
 * @param {*services.Launcher} launcher - Engine the server exposes
 * @param {string} version - Software version reported by /healthz
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(launcher *services.Launcher, version string) *APIController {
	return &APIController{
		launcher:  launcher,
		version:   version,
		startTime: time.Now(),
	}
}

/**
 * Register probe and metrics routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - GET /healthz: readiness probe with request statistics
 * - GET /metrics: prometheus exposition
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary Readiness probe
// @Description Returns version, start time, game directory and request statistics
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(200, models.HealthResponse{
		Status:        "ok",
		Version:       a.version,
		StartTime:     a.startTime.Format(time.RFC3339),
		GameDir:       a.launcher.Store().Root(),
		Platform:      a.launcher.Platform().String(),
		TotalRequests: middleware.GetTotalRequests(),
		ErrorRequests: middleware.GetErrorRequests(),
	})
}
