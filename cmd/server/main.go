package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/studymatch-backend/internal/config"
	"github.com/gdugdh24/studymatch-backend/internal/infrastructure/container"
	"github.com/gdugdh24/studymatch-backend/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := container.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Error("error closing application", zap.Error(err))
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Server.Start(); err != nil {
			zl.Error("server error", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
		return
	}

	zl.Info("server exited properly")
}
