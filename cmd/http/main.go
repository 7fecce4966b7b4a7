package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/config"
	"github.com/fekuna/omnipos-fulfillment-service/internal/bootstrap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := bootstrap.NewLogger(cfg)
	defer appLogger.Sync()

	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Connect backends and wire use cases
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		_ = app.Close()
		appLogger.Fatal("Could not initialize service", zap.Error(err))
	}
	defer app.Close()

	// 4. Start Listener
	if l := app.InvoiceListener(); l != nil {
		go l.Start(ctx)
	}

	// 5. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port), zap.String("store", cfg.Store.Backend))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
