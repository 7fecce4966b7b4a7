package main

import (
	"context"
	"os"

	"github.com/fekuna/omnipos-fulfillment-service/config"
	"github.com/fekuna/omnipos-fulfillment-service/internal/bootstrap"
	"github.com/fekuna/omnipos-fulfillment-service/internal/cli"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	// The CLI runs once and exits; no listener, no producer.
	cfg.Kafka.Enabled = false

	appLogger := bootstrap.NewLogger(cfg)
	defer appLogger.Sync()

	open := func(ctx context.Context) (pod.UseCase, func() error, error) {
		app, err := bootstrap.New(ctx, cfg, appLogger)
		if err != nil {
			_ = app.Close()
			return nil, nil, err
		}
		return app.PODs, app.Close, nil
	}

	if err := cli.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
