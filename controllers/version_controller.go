package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"mclauncher/internal/models"
	"mclauncher/services"

	"github.com/gin-gonic/gin"
)

type VersionController struct {
	launcher *services.Launcher
}

/**
 * Create new version controller instance
 * @param {*services.Launcher} launcher - Engine used to check, synchronize and assemble versions
 * @returns {*VersionController} New version controller instance
 */
func NewVersionController(launcher *services.Launcher) *VersionController {
	return &VersionController{
		launcher: launcher,
	}
}

/**
 * Register all version API routes to Gin router
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers under /launcher/api/v1:
 *   - version listing
 *   - integrity check, asset and library synchronization
 *   - classpath and library resolution listing
 */
func (v *VersionController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/launcher/api/v1")
	api.GET("/versions", v.ListVersions)
	api.GET("/versions/:id/check", v.CheckVersion)
	api.POST("/versions/:id/assets/sync", v.SyncAssets)
	api.POST("/versions/:id/libraries/sync", v.SyncLibraries)
	api.GET("/versions/:id/classpath", v.Classpath)
	api.GET("/versions/:id/libraries", v.Libraries)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "version.not_found"
	case errors.Is(err, models.ErrIncompleteClasspath):
		return http.StatusConflict, "classpath.incomplete"
	case errors.Is(err, models.ErrNetworkFailure):
		return http.StatusBadGateway, "network.failure"
	case errors.Is(err, models.ErrIntegrityMismatch):
		return http.StatusBadGateway, "integrity.mismatch"
	default:
		return http.StatusInternalServerError, "internal.error"
	}
}

func respondError(g *gin.Context, err error) {
	code, key := errorStatus(err)
	body := gin.H{
		"code":    key,
		"message": err.Error(),
	}
	var ice *models.IncompleteClasspathError
	if errors.As(err, &ice) {
		body["missing"] = ice.Missing
	}
	g.JSON(code, body)
}

func (v *VersionController) load(g *gin.Context) (*models.VersionDescriptor, bool) {
	ver, err := v.launcher.LoadVersion(g.Param("id"))
	if err != nil {
		respondError(g, err)
		return nil, false
	}
	return ver, true
}

// @Summary List local versions
// @Tags Versions
// @Produce json
// @Success 200 {array} models.VersionSummary
// @Router /launcher/api/v1/versions [get]
func (v *VersionController) ListVersions(g *gin.Context) {
	list, err := v.launcher.LocalVersions()
	if err != nil {
		respondError(g, err)
		return
	}
	if list == nil {
		list = []models.VersionSummary{}
	}
	g.JSON(200, list)
}

// @Summary Check version integrity
// @Description Read-only check of main archive, libraries and assets
// @Tags Versions
// @Param id path string true "Version ID"
// @Success 200 {object} models.IntegrityReport
// @Failure 404 {object} map[string]interface{}
// @Router /launcher/api/v1/versions/{id}/check [get]
func (v *VersionController) CheckVersion(g *gin.Context) {
	ver, ok := v.load(g)
	if !ok {
		return
	}
	g.JSON(200, v.launcher.Check(ver))
}

// @Summary Synchronize assets
// @Tags Versions
// @Param id path string true "Version ID"
// @Success 200 {object} models.SyncResponse
// @Failure 404 {object} map[string]interface{}
// @Router /launcher/api/v1/versions/{id}/assets/sync [post]
func (v *VersionController) SyncAssets(g *gin.Context) {
	ver, ok := v.load(g)
	if !ok {
		return
	}
	result, err := v.launcher.SyncAssets(g.Request.Context(), ver, nil)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(200, models.NewSyncResponse(result))
}

// @Summary Synchronize libraries
// @Tags Versions
// @Param id path string true "Version ID"
// @Param force query bool false "Refetch libraries without a digest"
// @Success 200 {object} models.SyncResponse
// @Failure 404 {object} map[string]interface{}
// @Router /launcher/api/v1/versions/{id}/libraries/sync [post]
func (v *VersionController) SyncLibraries(g *gin.Context) {
	ver, ok := v.load(g)
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(g.DefaultQuery("force", "false"))
	result, err := v.launcher.SyncLibraries(g.Request.Context(), ver, force, nil)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(200, models.NewSyncResponse(result))
}

// @Summary Build classpath
// @Tags Versions
// @Param id path string true "Version ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "{"code": "classpath.incomplete", "missing": [...]}"
// @Router /launcher/api/v1/versions/{id}/classpath [get]
func (v *VersionController) Classpath(g *gin.Context) {
	ver, ok := v.load(g)
	if !ok {
		return
	}
	paths, err := v.launcher.BuildClasspath(g.Request.Context(), ver, "")
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(200, gin.H{"version": ver.ID, "classpath": paths})
}

// @Summary Library resolution listing
// @Tags Versions
// @Param id path string true "Version ID"
// @Success 200 {array} models.LibraryStatus
// @Router /launcher/api/v1/versions/{id}/libraries [get]
func (v *VersionController) Libraries(g *gin.Context) {
	ver, ok := v.load(g)
	if !ok {
		return
	}
	g.JSON(200, v.launcher.Libraries(ver))
}
