package handlers

import (
	"net/http"

	"bess-degradation/internal/api/models"
	"bess-degradation/internal/metrics"
	"bess-degradation/internal/presets"

	"github.com/gin-gonic/gin"
)

// PresetHandler handles manufacturer preset requests
type PresetHandler struct {
	reg *presets.Registry
	rec metrics.Recorder
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(reg *presets.Registry, rec metrics.Recorder) *PresetHandler {
	if reg == nil {
		reg = presets.Default()
	}
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	return &PresetHandler{reg: reg, rec: rec}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, models.PresetsResponse{Presets: h.reg.All()})
}

// GetPreset handles GET /api/v1/presets/:key
func (h *PresetHandler) GetPreset(c *gin.Context) {
	p, err := h.reg.Lookup(c.Param("key"))
	if err != nil {
		writeError(c, h.rec, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
