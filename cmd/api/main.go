package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bess-degradation/internal/api"
	"bess-degradation/internal/config"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/metrics"
	"bess-degradation/internal/presets"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	settingsPath := flag.String("config", "", "settings YAML (optional; BESS_* env vars override)")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		logging.New("api").Errorf("load settings: %v", err)
		os.Exit(1)
	}
	if !settings.Dev() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logging.NewZerologLoggerWith("api", logging.Options{Console: settings.Dev()})

	reg := presets.Default()
	if settings.PresetFile != "" {
		if reg, err = presets.LoadFile(settings.PresetFile); err != nil {
			log.Errorf("load presets %s: %v", settings.PresetFile, err)
			os.Exit(1)
		}
	}

	promReg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSink(promReg)
	if err != nil {
		log.Errorf("register metrics: %v", err)
		os.Exit(1)
	}

	router, err := api.NewRouter(api.Deps{
		Settings: *settings,
		Presets:  reg,
		Recorder: sink,
		Gatherer: promReg,
		Logger:   log,
	})
	if err != nil {
		log.Errorf("build router: %v", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              settings.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("starting API server on %s (presets: %v, output: %s)", settings.Addr, reg.Keys(), settings.OutputDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Infof("server stopped")
}
