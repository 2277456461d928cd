package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FreePeak/expense-mcp-server/internal/config"
	"github.com/FreePeak/expense-mcp-server/internal/delivery/cortex"
	deliverymcp "github.com/FreePeak/expense-mcp-server/internal/delivery/mcp"
	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/internal/metrics"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// ShutdownTimeout bounds graceful shutdown once the context is done
const ShutdownTimeout = 5 * time.Second

// Paths of the operational endpoints
const (
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

// ErrUnknownTransport is returned for an unsupported transport mode
var ErrUnknownTransport = errors.New("unknown transport mode")

// Options describes one MCP service
type Options struct {
	Name      string
	Version   string
	Port      int
	BaseURL   string
	Transport string
	Registry  *tools.Registry
	Metrics   *metrics.Metrics
	Health    http.Handler
}

// Run serves the registry over the configured transport until ctx is done
func Run(ctx context.Context, opts Options) error {
	switch opts.Transport {
	case config.TransportStdio:
		logger.Info("Serving %s over stdio", opts.Name)
		return deliverymcp.ServeStdio(ctx, deliverymcp.NewServer(opts.Name, opts.Version, opts.Registry))
	case config.TransportCortex:
		return runCortex(ctx, opts)
	case config.TransportHTTP, config.TransportSSE:
		return runHTTP(ctx, opts)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTransport, opts.Transport)
	}
}

func runHTTP(ctx context.Context, opts Options) error {
	mux := http.NewServeMux()
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", opts.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	shutdown := NewMux(mux, opts, srv)

	logger.Info("%s listening on %s (%s)", opts.Name, srv.Addr, opts.Transport)
	return serve(ctx, srv.ListenAndServe, shutdown)
}

// NewMux mounts the MCP endpoints and the operational endpoints on mux.
// It returns the graceful shutdown function of srv.
func NewMux(mux *http.ServeMux, opts Options, srv *http.Server) func(context.Context) error {
	mcpServer := deliverymcp.NewServer(opts.Name, opts.Version, opts.Registry)
	shutdown := deliverymcp.Mount(mux, mcpServer, opts.Transport == config.TransportSSE, opts.BaseURL, srv)

	if opts.Metrics != nil {
		mux.Handle(MetricsPath, opts.Metrics.Handler())
	}
	if opts.Health != nil {
		mux.Handle(HealthPath, opts.Health)
	}
	return shutdown
}

// runCortex serves tools through cortex, which owns its listener.
// Operational endpoints are not available in this mode.
func runCortex(ctx context.Context, opts Options) error {
	s, err := cortex.NewServer(ctx, opts.Name, opts.Version, opts.Registry)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("0.0.0.0:%d", opts.Port)
	logger.Info("%s listening on %s (cortex)", opts.Name, addr)
	return serve(ctx, func() error { return s.ListenAndServe(addr) }, s.Shutdown)
}

// serve runs listen until ctx is done, then calls shutdown with ShutdownTimeout
func serve(ctx context.Context, listen func() error, shutdown func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("Server stopped")
		return nil
	})

	return g.Wait()
}
