package server

import (
	"bufio"
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FreePeak/expense-mcp-server/internal/config"
	"github.com/FreePeak/expense-mcp-server/internal/interfaces/api"
	"github.com/FreePeak/expense-mcp-server/internal/metrics"
	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

func testOptions(t *testing.T, transport string) Options {
	t.Helper()
	registry := tools.NewRegistry()
	m := metrics.New("calculator")
	registry.Use(m.Middleware())

	calc := usecase.NewCalculator(rand.New(rand.NewPCG(9, 9)), usecase.DefaultServerInfo("1.0.0"))
	require.NoError(t, api.NewCalculatorHandler(calc).Register(registry))

	return Options{
		Name:      "calculator-server",
		Version:   "1.0.0",
		Port:      8001,
		Transport: transport,
		Registry:  registry,
		Metrics:   m,
		Health: api.NewHealthHandler("calculator", "1.0.0", map[string]api.HealthCheck{
			"self": func(ctx context.Context) error { return nil },
		}),
	}
}

func TestMuxServesStreamableHTTP(t *testing.T) {
	mux := http.NewServeMux()
	NewMux(mux, testOptions(t, config.TransportHTTP), &http.Server{})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	resp, err := http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Mcp-Session-Id"))

	resp, err = http.Get(ts.URL + HealthPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + MetricsPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMuxSSEEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	NewMux(mux, testOptions(t, config.TransportSSE), &http.Server{})

	// The streamable endpoint is not mounted in SSE mode
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}")))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Messages need a session id obtained from the SSE stream
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/message", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// firstEndpointEvent opens the SSE stream and returns the advertised message endpoint
func firstEndpointEvent(t *testing.T, opts Options) string {
	t.Helper()
	mux := http.NewServeMux()
	NewMux(mux, opts, &http.Server{})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
			return data
		}
	}
}

func TestSSEAdvertisesRelativeMessageEndpoint(t *testing.T) {
	endpoint := firstEndpointEvent(t, testOptions(t, config.TransportSSE))
	assert.True(t, strings.HasPrefix(endpoint, "/message?sessionId="), endpoint)
	assert.NotContains(t, endpoint, "localhost")
}

func TestSSEAdvertisesConfiguredBaseURL(t *testing.T) {
	opts := testOptions(t, config.TransportSSE)
	opts.BaseURL = "https://mcp.example.com"

	endpoint := firstEndpointEvent(t, opts)
	assert.True(t, strings.HasPrefix(endpoint, "https://mcp.example.com/message?sessionId="), endpoint)
}

func TestRunUnknownTransport(t *testing.T) {
	err := Run(context.Background(), testOptions(t, "carrier-pigeon"))
	assert.ErrorIs(t, err, ErrUnknownTransport)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	shutdownCalled := false

	listen := func() error {
		<-stopped
		return http.ErrServerClosed
	}
	shutdown := func(ctx context.Context) error {
		shutdownCalled = true
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		close(stopped)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, listen, shutdown) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, shutdownCalled)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeReportsListenError(t *testing.T) {
	bindErr := errors.New("address already in use")
	err := serve(context.Background(), func() error { return bindErr }, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, bindErr)
}
