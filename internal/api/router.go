package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"bess-degradation/internal/api/handlers"
	"bess-degradation/internal/api/middleware"
	"bess-degradation/internal/config"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/metrics"
	"bess-degradation/internal/presets"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Settings config.Settings
	Presets  *presets.Registry
	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer
	Logger   logging.Logger
}

// NewRouter builds the HTTP API.
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Logger == nil {
		d.Logger = logging.NopLogger{}
	}
	router := gin.New()
	router.Use(middleware.CORS(d.Settings.AllowedOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.ErrorHandler(d.Logger))

	sim, err := handlers.NewSimulationHandler(d.Presets, d.Settings.OutputDir, d.Settings.HorizonYears, d.Recorder, d.Logger)
	if err != nil {
		return nil, err
	}
	preset := handlers.NewPresetHandler(d.Presets, d.Recorder)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	router.POST("/simulate", sim.Simulate)
	router.GET("/download/:file", sim.Download)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", sim.Simulate)
		v1.POST("/simulate/compare", sim.Compare)
		v1.GET("/presets", preset.ListPresets)
		v1.GET("/presets/:key", preset.GetPreset)
	}

	serveStatic(router, d.Settings.StaticDir, d.Logger)
	return router, nil
}

// serveStatic serves a built frontend with SPA fallback, if dir exists.
func serveStatic(router *gin.Engine, dir string, log logging.Logger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Warnf("static directory %s not found, skipping static file serving", dir)
		return
	}
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Infof("serving static files from %s", dir)
}
