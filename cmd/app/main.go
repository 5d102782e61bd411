package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelf2door/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using environment and defaults")
	}
	config := cmd.GetConfig()

	db, err := cmd.ConnectDB(config)
	if err != nil {
		logger.Warn("database unavailable, archiving disabled", "error", err)
		db = nil
	}

	root := cmd.NewCompositionRoot(config, db, logger)
	if err := root.SeedDemoData(); err != nil {
		logger.Error("seeding demo data failed", "error", err)
		os.Exit(1)
	}

	if err := root.Jobs.StartAll(); err != nil {
		logger.Error("starting jobs failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	root.Server.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", startErr)
		}
	}()
	logger.Info("shelf2door started", "port", config.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	root.Jobs.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	logger.Info("notification spend", "total_cost", root.Gateway.TotalCost().StringFixed(3))
}
