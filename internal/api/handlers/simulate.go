package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"bess-degradation/internal/analysis"
	"bess-degradation/internal/api/models"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/metrics"
	"bess-degradation/internal/presets"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csvPrefix = "bess_degradation_"
	csvSuffix = ".csv"

	// MaxCompareScenarios bounds a single comparison request.
	MaxCompareScenarios = 50
)

// SimulationHandler handles lifetime simulation requests
type SimulationHandler struct {
	reg       *presets.Registry
	outputDir string
	horizon   int
	rec       metrics.Recorder
	log       logging.Logger
}

// NewSimulationHandler creates a handler writing CSV artifacts under outputDir.
// The directory is created if missing.
func NewSimulationHandler(reg *presets.Registry, outputDir string, horizon int, rec metrics.Recorder, log logging.Logger) (*SimulationHandler, error) {
	if reg == nil {
		reg = presets.Default()
	}
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	if horizon == 0 {
		horizon = lifetime.DefaultHorizonYears
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &SimulationHandler{reg: reg, outputDir: outputDir, horizon: horizon, rec: rec, log: log}, nil
}

func (h *SimulationHandler) engineOptions() []lifetime.Option {
	return []lifetime.Option{lifetime.WithHorizon(h.horizon), lifetime.WithLogger(h.log)}
}

// Simulate handles POST /simulate and POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.rec, err)
		return
	}

	sc, err := req.Scenario("")
	if err != nil {
		writeError(c, h.rec, err)
		return
	}
	eng, err := sc.Engine(h.reg, h.engineOptions()...)
	if err != nil {
		writeError(c, h.rec, err)
		return
	}
	result := eng.SimulateLifetime()
	h.record(result)

	id := uuid.NewString()
	path := filepath.Join(h.outputDir, csvPrefix+id+csvSuffix)
	if err := lifetime.WriteRecordsCSV(path, result.Records); err != nil {
		h.log.Errorf("write %s: %v", path, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: CodeInternal, Detail: "failed to write results"})
		return
	}

	resp := models.SimulateResponse{
		ID:      id,
		Summary: models.NewSummary(result),
		CSVPath: filepath.Base(path),
	}
	if req.IncludeRecords {
		resp.Records = result.Records
	}
	c.JSON(http.StatusOK, resp)
}

// Download handles GET /download/:file for CSV artifacts written by Simulate.
func (h *SimulationHandler) Download(c *gin.Context) {
	name := c.Param("file")
	if name != filepath.Base(name) || !strings.HasPrefix(name, csvPrefix) || !strings.HasSuffix(name, csvSuffix) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: CodeInvalidRequest, Detail: "invalid file name"})
		return
	}
	if _, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(name, csvPrefix), csvSuffix)); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: CodeInvalidRequest, Detail: "invalid file name"})
		return
	}
	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: CodeNotFound, Detail: name})
		return
	}
	c.FileAttachment(path, name)
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.rec, err)
		return
	}
	if len(req.Scenarios) > MaxCompareScenarios {
		badRequest(c, h.rec, fmt.Errorf("at most %d scenarios per comparison", MaxCompareScenarios))
		return
	}

	var failed []models.ScenarioError
	scenarios := make([]lifetime.Scenario, 0, len(req.Scenarios))
	for i, ns := range req.Scenarios {
		name := ns.Name
		if name == "" {
			name = fmt.Sprintf("scenario-%d", i+1)
		}
		sc, err := ns.Scenario(name)
		if err != nil {
			failed = append(failed, h.scenarioError(name, err))
			continue
		}
		scenarios = append(scenarios, sc)
	}

	results, err := lifetime.Sweep(c.Request.Context(), h.reg, scenarios, h.engineOptions()...)
	if err != nil {
		h.log.Warnf("comparison aborted: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: CodeInternal, Detail: err.Error()})
		return
	}
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, h.scenarioError(res.Scenario.Name, res.Err))
			continue
		}
		h.record(res.Result)
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Rankings: analysis.RankByLifespan(results),
		Failed:   failed,
	})
}

func (h *SimulationHandler) scenarioError(name string, err error) models.ScenarioError {
	_, body := errorBody(err)
	h.rec.RecordRejected(body.Error, body.Field)
	return models.ScenarioError{Name: name, ErrorResponse: body}
}

func (h *SimulationHandler) record(r *lifetime.SimulationResult) {
	h.rec.RecordSimulation(metrics.Simulation{
		Mode:       string(r.Mode),
		EOLReached: r.YearsToEOL.Reached,
		YearsToEOL: r.YearsToEOL.Year,
		Warnings:   len(r.Warnings),
	})
}
