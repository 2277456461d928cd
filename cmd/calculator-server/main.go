package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/FreePeak/expense-mcp-server/internal/config"
	"github.com/FreePeak/expense-mcp-server/internal/interfaces/api"
	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/internal/metrics"
	"github.com/FreePeak/expense-mcp-server/internal/middleware"
	"github.com/FreePeak/expense-mcp-server/internal/server"
	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/core"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

const serviceName = "calculator"

func main() {
	transportMode := flag.String("t", "", "Transport mode (http, sse, stdio or cortex)")
	port := flag.Int("port", 0, "Server port")
	flag.Parse()

	cfg, err := config.LoadConfig(config.CalculatorService)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *transportMode != "" {
		cfg.TransportMode = *transportMode
	}
	if *port != 0 {
		cfg.ServerPort = *port
	}

	logger.Initialize(cfg.LogLevel)
	// The calculator has no storage, so only the server settings apply
	if err := cfg.ValidateServer(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	info := usecase.DefaultServerInfo(core.Version())
	calc := usecase.NewCalculator(nil, info)

	m := metrics.New(serviceName)
	registry := tools.NewRegistry()
	registry.Use(middleware.Logging(serviceName), m.Middleware())
	if err := api.NewCalculatorHandler(calc).Register(registry); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	return server.Run(ctx, server.Options{
		Name:      info.Name,
		Version:   info.Version,
		Port:      cfg.ServerPort,
		BaseURL:   cfg.BaseURL,
		Transport: cfg.TransportMode,
		Registry:  registry,
		Metrics:   m,
		Health:    api.NewHealthHandler(serviceName, info.Version, nil),
	})
}
