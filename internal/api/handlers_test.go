package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medguard/internal/engine"
	"medguard/internal/models"
	"medguard/internal/registry"
)

const suspectsCSV = `cluster_id,n_vessels,total_effort_hours,near_mpa,risk_score
C1,4,120.5,True,0.91
C2,2,33.0,False,0.42
C3,7,88.8,True,0.77
`

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()
	store := registry.NewStore()
	return NewHandler(store, dir, 0.3, 0.6), dir
}

func doGET(t *testing.T, h func(echo.Context) error, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestEndpointsWhileLoading(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := doGET(t, h.GetMetrics, "/api/metrics")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)

	// Health stays reachable and reports the loading state.
	rec, err := doGET(t, h.GetHealth, "/api/health")
	require.NoError(t, err)
	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.True(t, health.Loading)
}

func TestMetricsPlaceholders(t *testing.T) {
	h, dir := newTestHandler(t)
	h.store.Reload(dir) // empty directory

	rec, err := doGET(t, h.GetMetrics, "/api/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var m models.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.False(t, m.RiskIndex.Available)
	assert.False(t, m.Habitat.Available)
	assert.Equal(t, 0, m.Alerts.Count)
	assert.Equal(t, "ALL CLEAR", m.Alerts.Status)
}

func TestMetricsWithData(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "illegal_fishing_suspects.csv"), []byte(suspectsCSV), 0o644))
	h.store.Reload(dir)

	// The gridded product comes from the in-memory constructor; the table
	// comes off disk.
	reg := h.store.Current()
	risk := registry.NewGridArray(engine.DatasetRiskIndex, &registry.GridVar{
		Name:   "risk",
		Dims:   []string{"lat", "lon"},
		Shape:  []int{2, 2},
		Values: []float64{0.8, 0.8, 0.8, 0.8},
	}, nil)
	table, ok := reg.Table(engine.DatasetSuspects)
	require.True(t, ok)
	h.store.Replace(registry.NewRegistry(risk, table))

	rec, err := doGET(t, h.GetMetrics, "/api/metrics")
	require.NoError(t, err)

	var m models.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.True(t, m.RiskIndex.Available)
	assert.InDelta(t, 0.8, m.RiskIndex.Mean, 1e-12)
	assert.Equal(t, "CRITICAL", m.RiskIndex.Classification)
	assert.Equal(t, 3, m.Alerts.Count)
}

func TestSimulation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doGET(t, h.GetSimulation, "/api/mpa/simulate?expansion=20")
	require.NoError(t, err)

	var s models.Simulation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, 50.0, s.EfficiencyGainPct)
	assert.Equal(t, 13000.0, s.NewProtectedKm2)
}

func TestSimulationRejectsOutOfRange(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := doGET(t, h.GetSimulation, "/api/mpa/simulate?expansion=80")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHotspotsRejectsBadQuantile(t *testing.T) {
	h, dir := newTestHandler(t)
	h.store.Reload(dir)

	_, err := doGET(t, h.GetConnectivityHotspots, "/api/connectivity/hotspots?quantile=1.5")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestVesselAlertsPagination(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "illegal_fishing_suspects.csv"), []byte(suspectsCSV), 0o644))
	h.store.Reload(dir)

	rec, err := doGET(t, h.GetVesselAlerts, "/api/alerts/vessels?limit=2&offset=1")
	require.NoError(t, err)

	var resp struct {
		Available bool                 `json:"available"`
		Data      []models.VesselAlert `json:"data"`
		Total     int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "C2", resp.Data[0].ClusterID)

	// Offset past the end yields an empty page, not an error.
	rec, err = doGET(t, h.GetVesselAlerts, "/api/alerts/vessels?offset=10")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestExport(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "illegal_fishing_suspects.csv"), []byte(suspectsCSV), 0o644))
	h.store.Reload(dir)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/export/illegal_fishing_suspects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("illegal_fishing_suspects")

	require.NoError(t, h.GetExport(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "illegal_fishing_suspects.csv")
	assert.Equal(t, suspectsCSV, rec.Body.String())
}

func TestExportUnknownDataset(t *testing.T) {
	h, dir := newTestHandler(t)
	h.store.Reload(dir)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/export/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("nope")

	err := h.GetExport(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestRefreshRebuildsRegistry(t *testing.T) {
	h, dir := newTestHandler(t)
	h.store.Reload(dir)
	assert.Equal(t, 0, h.store.Current().Len())

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "illegal_fishing_suspects.csv"), []byte(suspectsCSV), 0o644))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.PostRefresh(e.NewContext(req, rec)))

	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, 1, health.Datasets)
	assert.Equal(t, 1, h.store.Current().Len())
}

func TestDatasetsInventory(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "illegal_fishing_suspects.csv"), []byte(suspectsCSV), 0o644))
	h.store.Reload(dir)

	rec, err := doGET(t, h.GetDatasets, "/api/datasets")
	require.NoError(t, err)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, "illegal_fishing_suspects", data.Datasets[0].Name)
	assert.Equal(t, "CSV (Tabular)", data.Datasets[0].Type)
	assert.Equal(t, "3 rows", data.Datasets[0].Size)
}
