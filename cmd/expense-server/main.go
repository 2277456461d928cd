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
	"github.com/FreePeak/expense-mcp-server/internal/repository"
	"github.com/FreePeak/expense-mcp-server/internal/server"
	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/core"
	"github.com/FreePeak/expense-mcp-server/pkg/db"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

const (
	serverName  = "ExpenseTracker"
	serviceName = "expense"
)

func main() {
	// Parse command line flags
	transportMode := flag.String("t", "", "Transport mode (http, sse, stdio or cortex)")
	port := flag.Int("port", 0, "Server port")
	flag.Parse()

	cfg, err := config.LoadConfig(config.ExpenseService)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override config with command line flags if provided
	if *transportMode != "" {
		cfg.TransportMode = *transportMode
	}
	if *port != 0 {
		cfg.ServerPort = *port
	}

	logger.Initialize(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
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
	dbConfig := db.Config{
		Type:     cfg.DBConfig.Type,
		Path:     cfg.DBConfig.Path,
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		Name:     cfg.DBConfig.Name,
	}

	if err := db.Migrate(dbConfig); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	database, err := db.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("Failed to close database: %v", err)
		}
	}()
	logger.Info("Using %s database %s", database.DriverName(), database.ConnectionString())

	useCase := usecase.NewExpenseUseCase(
		repository.NewExpenseRepository(database),
		repository.NewFileCategoryRepository(cfg.CategoriesFile),
		usecase.ExpenseOptions{
			CurrencySymbol: cfg.CurrencySymbol,
			FilterMode:     usecase.FilterMode(cfg.AbsentFilterMode),
		},
	)

	m := metrics.New(serviceName)
	registry := tools.NewRegistry()
	registry.Use(middleware.Logging(serviceName), m.Middleware())
	if err := api.NewExpenseHandler(useCase).Register(registry); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	return server.Run(ctx, server.Options{
		Name:      serverName,
		Version:   core.Version(),
		Port:      cfg.ServerPort,
		BaseURL:   cfg.BaseURL,
		Transport: cfg.TransportMode,
		Registry:  registry,
		Metrics:   m,
		Health: api.NewHealthHandler(serviceName, core.Version(), map[string]api.HealthCheck{
			"database": database.Ping,
		}),
	})
}
