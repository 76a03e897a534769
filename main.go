package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/tarok-klub/tarok-backend/app"
	"github.com/tarok-klub/tarok-backend/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	application.Logger.Info("Application shut down gracefully")
}
