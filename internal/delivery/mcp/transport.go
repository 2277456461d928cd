package mcp

import (
	"context"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/FreePeak/expense-mcp-server/internal/logger"
)

// Endpoint paths of the HTTP transports
const (
	StreamablePath = "/mcp"
	SSEPath        = "/sse"
	MessagePath    = "/message"
)

// NewStreamableHandler returns the streamable HTTP handler, to be mounted at StreamablePath
func NewStreamableHandler(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(StreamablePath),
		server.WithLogger(logger.WithFields(map[string]interface{}{"component": "streamable-http"})),
	)
}

// NewSSEHandler returns the SSE handler serving both SSEPath and MessagePath.
// A non-empty baseURL is advertised to clients as the origin of the message
// endpoint; otherwise clients get a path relative to the SSE stream.
// Shutting the handler down closes open sessions and then srv.
func NewSSEHandler(s *server.MCPServer, baseURL string, srv *http.Server) *server.SSEServer {
	return server.NewSSEServer(
		s,
		server.WithBaseURL(baseURL),
		server.WithUseFullURLForMessageEndpoint(baseURL != ""),
		server.WithSSEEndpoint(SSEPath),
		server.WithMessageEndpoint(MessagePath),
		server.WithKeepAlive(true),
		server.WithHTTPServer(srv),
	)
}

// Mount registers the MCP endpoints on mux and returns the function that
// gracefully stops srv, which must be the server serving mux.
func Mount(mux *http.ServeMux, s *server.MCPServer, sse bool, baseURL string, srv *http.Server) func(context.Context) error {
	if sse {
		handler := NewSSEHandler(s, baseURL, srv)
		mux.Handle(SSEPath, handler)
		mux.Handle(MessagePath, handler)
		return handler.Shutdown
	}

	mux.Handle(StreamablePath, NewStreamableHandler(s))
	return srv.Shutdown
}

// ServeStdio serves s over stdin/stdout until ctx is done or input ends
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(logger.StdLogger("stdio"))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
