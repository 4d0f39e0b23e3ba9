package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/df07/go-frame-tracer/pkg/config"
	"github.com/df07/go-frame-tracer/pkg/logging"
	"github.com/df07/go-frame-tracer/web/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "YAML config file")
	port := flag.Int("port", 0, "Port to serve on (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	webServer := server.NewServer(cfg, logger)
	logger.Info("frame tracer web server", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)))

	if err := webServer.Start(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
