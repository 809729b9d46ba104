package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"medguard/internal/api"
	"medguard/internal/config"
	"medguard/internal/logx"
	"medguard/internal/registry"
)

func main() {
	// .env is optional; real environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration", "error", err)
		os.Exit(1)
	}
	logx.Setup(cfg.Verbose)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.HTTPErrorHandler = api.ErrorHandler

	// The API is live immediately; dataset-backed endpoints answer 503
	// until the background load has filled the store.
	store := registry.NewStore()
	h := api.NewHandler(store, cfg.DataDir, cfg.RiskWarn, cfg.RiskCritical)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		reg := store.Reload(cfg.DataDir)
		slog.Info("registry loaded",
			"dir", cfg.DataDir,
			"datasets", reg.Len(),
			"elapsed", time.Since(t0))
	}()

	slog.Info("server ready", "listen", cfg.Listen, "data_dir", cfg.DataDir)
	e.Logger.Fatal(e.Start(cfg.Listen))
}
