package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/config"
	"github.com/ZygmuntJakub/bridge/internal/handler"
	"github.com/ZygmuntJakub/bridge/internal/store"
	"github.com/ZygmuntJakub/bridge/internal/table"
)

func main() {
	path := os.Getenv("BRIDGE_CONFIG")
	if path == "" {
		path = "bridge.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("loading config", zap.String("path", path), zap.Error(err))
	}
	logger := zap.Must(cfg.NewLogger())
	defer logger.Sync()

	var db *store.Store
	if cfg.DatabasePath != "" {
		db, err = store.Open(cfg.DatabasePath)
		if err != nil {
			logger.Fatal("opening hand archive", zap.String("path", cfg.DatabasePath), zap.Error(err))
		}
		defer db.Close()
	}

	if len(os.Args) > 1 && os.Args[1] == "simulation" {
		if err := StartSimulation(cfg, logger, archiveOf(db)); err != nil {
			logger.Fatal("simulation", zap.Error(err))
		}
		return
	}

	h := handler.Handler{
		Tables:  table.NewRegistry(),
		Config:  cfg,
		Archive: archiveOf(db),
		Logger:  logger,
	}
	if db != nil {
		h.Hands = db
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	h.Register(e)

	e.Logger.Fatal(e.Start(":" + cfg.HTTPPort))
}

// archiveOf keeps a nil *store.Store from becoming a non-nil interface.
func archiveOf(db *store.Store) table.Archive {
	if db == nil {
		return nil
	}
	return db
}
