package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"bess-degradation/internal/api/models"
	"bess-degradation/internal/config"
	"bess-degradation/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	sims     []metrics.Simulation
	rejected []string
}

func (r *recorder) RecordSimulation(s metrics.Simulation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sims = append(r.sims, s)
}

func (r *recorder) RecordRejected(reason, field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, reason+"/"+field)
}

func newTestRouter(t *testing.T) (*gin.Engine, *recorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := config.DefaultSettings()
	s.OutputDir = t.TempDir()
	rec := &recorder{}
	reg := prometheus.NewRegistry()
	r, err := NewRouter(Deps{Settings: s, Recorder: rec, Gatherer: reg})
	require.NoError(t, err)
	return r, rec, s.OutputDir
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const tampicoBody = `{
	"capacity_kwh": 2028,
	"power_kw": 500,
	"temperature_celsius": 30,
	"dod": 0.95,
	"cycles_per_day": 1,
	"c_rate": 0.5,
	"soc_min": 0.05,
	"soc_max": 0.95,
	"eol_threshold": 0.8
}`

func TestSimulate(t *testing.T) {
	r, rec, dir := newTestRouter(t)

	for _, path := range []string{"/simulate", "/api/v1/simulate"} {
		w := do(r, http.MethodPost, path, tampicoBody)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.SimulateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "nominal", resp.Summary.OperationMode)
		assert.True(t, resp.Summary.YearsToEOL.Reached)
		assert.Equal(t, 3, resp.Summary.YearsToEOL.Year)
		assert.InDelta(t, 0.8915, resp.Summary.Year1SOH, 1e-3)
		assert.Contains(t, resp.Summary.Report, "Years to EOL")
		assert.Empty(t, resp.Records)

		assert.Equal(t, filepath.Base(resp.CSVPath), resp.CSVPath)
		_, err := os.Stat(filepath.Join(dir, resp.CSVPath))
		assert.NoError(t, err)
	}
	require.Len(t, rec.sims, 2)
	assert.Equal(t, metrics.Simulation{Mode: "nominal", EOLReached: true, YearsToEOL: 3}, rec.sims[0])
}

func TestSimulateWithPresetAndRecords(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/simulate", `{"capacity_kwh": 500, "power_kw": 250, "manufacturer": "CATL", "include_records": true, "horizon_years": 5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.85, resp.Summary.ACEfficiency)
	assert.Equal(t, "Contemporary Amperex Technology Co. Ltd.", resp.Summary.Manufacturer)
	assert.Equal(t, 5, resp.Summary.HorizonYears)
	assert.NotEmpty(t, resp.Records)
}

func TestSimulateErrors(t *testing.T) {
	r, rec, _ := newTestRouter(t)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
		field  string
	}{
		{"malformed", `{"capacity_kwh": `, http.StatusBadRequest, "invalid_request", ""},
		{"wrong type", `{"capacity_kwh": "big", "power_kw": 500}`, http.StatusBadRequest, "validation_error", "capacity_kwh"},
		{"wrong type dod", `{"capacity_kwh": 1000, "power_kw": 500, "dod": true}`, http.StatusBadRequest, "validation_error", "depth_of_discharge"},
		{"wrong type name", `{"capacity_kwh": 1000, "power_kw": 500, "name": 7}`, http.StatusBadRequest, "invalid_request", ""},
		{"missing capacity", `{"power_kw": 500}`, http.StatusBadRequest, "validation_error", "capacity_kwh"},
		{"out of range", `{"capacity_kwh": 99.999, "power_kw": 500}`, http.StatusBadRequest, "validation_error", "capacity_kwh"},
		{"percent dod", `{"capacity_kwh": 1000, "power_kw": 500, "dod": 95}`, http.StatusBadRequest, "validation_error", "depth_of_discharge"},
		{"horizon", `{"capacity_kwh": 1000, "power_kw": 500, "horizon_years": 101}`, http.StatusBadRequest, "validation_error", "horizon_years"},
		{"unknown manufacturer", `{"capacity_kwh": 1000, "power_kw": 500, "manufacturer": "catll"}`, http.StatusNotFound, "unknown_manufacturer", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/simulate", tc.body)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error)
			assert.Equal(t, tc.field, body.Field)
			assert.NotEmpty(t, body.Detail)
			if tc.code == "unknown_manufacturer" {
				assert.Contains(t, body.Suggestions, "catl")
			}
		})
	}
	assert.Len(t, rec.rejected, len(cases))
	assert.Empty(t, rec.sims)
}

func TestDownload(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/simulate", tampicoBody)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = do(r, http.MethodGet, "/download/"+resp.CSVPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "year,cumulative_cycles"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = do(r, http.MethodGet, "/download/passwd", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/download/bess_degradation_00000000-0000-0000-0000-000000000000.csv", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompare(t *testing.T) {
	r, rec, _ := newTestRouter(t)

	body := map[string]any{
		"scenarios": []map[string]any{
			{"name": "hot", "capacity_kwh": 1000, "power_kw": 500, "temperature_celsius": 45, "dod": 0.5, "c_rate": 1.0},
			{"name": "reference", "capacity_kwh": 2028, "power_kw": 500, "temperature_celsius": 30},
			{"name": "bad", "capacity_kwh": 1000},
			{"name": "typo", "capacity_kwh": 1000, "power_kw": 500, "manufacturer": "pylontec"},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/v1/simulate/compare", string(raw))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "reference", resp.Rankings[0].Name)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "hot", resp.Rankings[1].Name)

	require.Len(t, resp.Failed, 2)
	assert.Equal(t, "bad", resp.Failed[0].Name)
	assert.Equal(t, "power_kw", resp.Failed[0].Field)
	assert.Equal(t, "typo", resp.Failed[1].Name)
	assert.Equal(t, "unknown_manufacturer", resp.Failed[1].Error)

	assert.Len(t, rec.sims, 2)

	w = do(r, http.MethodPost, "/api/v1/simulate/compare", `{"scenarios": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/simulate/compare", `{"scenarios": [{"capacity_kwh": 1000, "power_kw": 500, "c_rate": "fast"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var bad models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bad))
	assert.Equal(t, "validation_error", bad.Error)
	assert.Equal(t, "c_rate", bad.Field)
}

func TestPresets(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list models.PresetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Presets, 4)

	w = do(r, http.MethodGet, "/api/v1/presets/BYD", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"byd"`)

	w = do(r, http.MethodGet, "/api/v1/presets/tesla", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthMetricsAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := config.DefaultSettings()
	s.OutputDir = t.TempDir()
	s.AllowedOrigins = []string{"https://ui.example"}
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSink(reg)
	require.NoError(t, err)
	r, err := NewRouter(Deps{Settings: s, Recorder: sink, Gatherer: reg})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/simulate", tampicoBody).Code)
	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bess_simulations_total{eol_reached="true",mode="nominal"} 1`)

	req := httptest.NewRequest(http.MethodOptions, "/simulate", nil)
	req.Header.Set("Origin", "https://ui.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre := httptest.NewRecorder()
	r.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Equal(t, "https://ui.example", pre.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://evil.example")
	other := httptest.NewRecorder()
	r.ServeHTTP(other, req)
	assert.Empty(t, other.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>bess</html>"), 0o644))

	s := config.DefaultSettings()
	s.OutputDir = t.TempDir()
	s.StaticDir = static
	r, err := NewRouter(Deps{Settings: s})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/results/42", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bess")

	w = do(r, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
