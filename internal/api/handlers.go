package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"medguard/internal/engine"
	"medguard/internal/models"
	"medguard/internal/registry"
)

type Handler struct {
	store   *registry.Store
	dataDir string

	riskWarn     float64
	riskCritical float64
}

func NewHandler(store *registry.Store, dataDir string, riskWarn, riskCritical float64) *Handler {
	return &Handler{
		store:        store,
		dataDir:      dataDir,
		riskWarn:     riskWarn,
		riskCritical: riskCritical,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/metrics", h.GetMetrics)
	api.GET("/risk/summary", h.GetRiskSummary)
	api.GET("/risk/surface", h.GetRiskSurface)
	api.GET("/habitat/points", h.GetHabitatPoints)
	api.GET("/connectivity/hotspots", h.GetConnectivityHotspots)
	api.GET("/alerts/vessels", h.GetVesselAlerts)
	api.GET("/mpa/recommended", h.GetRecommendedMPAs)
	api.GET("/mpa/simulate", h.GetSimulation)
	api.GET("/impact/scenarios", h.GetScenarios)
	api.GET("/datasets", h.GetDatasets)
	api.GET("/export/:name", h.GetExport)
	api.POST("/refresh", h.PostRefresh)
}

// registry returns the active registry, or a 503 while the initial
// background load is still running.
func (h *Handler) registry() (*registry.Registry, error) {
	reg := h.store.Current()
	if reg == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "data still loading")
	}
	return reg, nil
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func getFloatParam(c echo.Context, name string, def float64) float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return def
	}
	return v
}

func getIntParam(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

func (h *Handler) GetHealth(c echo.Context) error {
	reg := h.store.Current()
	health := models.Health{Loading: reg == nil}
	if reg != nil {
		health.Datasets = reg.Len()
		health.LoadedAt = h.store.LoadedAt()
	}
	return c.JSON(http.StatusOK, health)
}

func (h *Handler) GetMetrics(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	data := engine.Snapshot(reg, h.riskWarn, h.riskCritical)
	return c.JSON(http.StatusOK, data.Metrics)
}

func (h *Handler) GetRiskSummary(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.RiskSummary(reg, h.riskWarn, h.riskCritical))
}

// GetRiskSurface returns the downsampled lat/lon matrix for the 3D risk
// plot. coarsen defaults to the block factor the dashboard renders with.
func (h *Handler) GetRiskSurface(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	coarsen := getIntParam(c, "coarsen", 3)
	return c.JSON(http.StatusOK, engine.RiskSurface(reg, coarsen))
}

func (h *Handler) GetHabitatPoints(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	coarsen := getIntParam(c, "coarsen", 5)
	return c.JSON(http.StatusOK, engine.HabitatPoints(reg, coarsen))
}

func (h *Handler) GetConnectivityHotspots(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	q := getFloatParam(c, "quantile", 0.8)
	if q < 0 || q > 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantile must be in [0, 1]")
	}
	return c.JSON(http.StatusOK, engine.ConnectivityHotspots(reg, q))
}

func (h *Handler) GetVesselAlerts(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	alerts, available := engine.VesselAlerts(reg)
	total := len(alerts)
	limit, offset := getPaginationParams(c, total)

	page := []models.VesselAlert{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = alerts[offset:end]
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
		"data":      page,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) GetRecommendedMPAs(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	sites, available := engine.MPASites(reg)
	total := len(sites)
	limit, _ := getPaginationParams(c, total)
	if limit < total {
		sites = sites[:limit]
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
		"data":      sites,
		"total":     total,
	})
}

func (h *Handler) GetSimulation(c echo.Context) error {
	expansion := getFloatParam(c, "expansion", 20)
	if expansion < 0 || expansion > 50 {
		return echo.NewHTTPError(http.StatusBadRequest, "expansion must be in [0, 50]")
	}
	return c.JSON(http.StatusOK, engine.Simulate(expansion))
}

func (h *Handler) GetScenarios(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	scenarios, available := engine.Scenarios(reg)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
		"data":      scenarios,
	})
}

func (h *Handler) GetDatasets(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	data := engine.Snapshot(reg, h.riskWarn, h.riskCritical)
	return c.JSON(http.StatusOK, data)
}

// GetExport serves the source file backing a registry entry. The name must
// match a loaded dataset, so no user-supplied path reaches the filesystem.
func (h *Handler) GetExport(c echo.Context) error {
	reg, err := h.registry()
	if err != nil {
		return err
	}
	ds, ok := reg.Get(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "dataset not available")
	}
	return c.Attachment(ds.Source(), filepath.Base(ds.Source()))
}

// PostRefresh discards the registry and rebuilds it from disk.
func (h *Handler) PostRefresh(c echo.Context) error {
	reg := h.store.Reload(h.dataDir)
	slog.Info("registry refreshed", "datasets", reg.Len())
	return c.JSON(http.StatusOK, models.Health{
		Datasets: reg.Len(),
		LoadedAt: h.store.LoadedAt(),
	})
}
