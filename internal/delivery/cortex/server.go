package cortex

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/FreePeak/cortex/pkg/server"
	cortextools "github.com/FreePeak/cortex/pkg/tools"
	"github.com/FreePeak/cortex/pkg/types"

	"github.com/FreePeak/expense-mcp-server/internal/delivery/mcp"
	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// Server wraps a cortex MCP server built from a tool registry.
// Cortex only routes tool calls, so resources are exposed as
// zero-argument tools named after the resource.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer registers every tool and resource of registry on a cortex server
func NewServer(ctx context.Context, name, version string, registry *tools.Registry) (*Server, error) {
	mcpServer := server.NewMCPServer(name, version, logger.StdLogger("cortex"))

	for _, tool := range registry.GetAllTools() {
		if err := mcpServer.AddTool(ctx, BuildTool(tool), ToolHandler(registry, tool.Name)); err != nil {
			return nil, fmt.Errorf("failed to add tool %s: %w", tool.Name, err)
		}
	}
	for _, resource := range registry.GetAllResources() {
		if err := mcpServer.AddTool(ctx, BuildResourceTool(resource), ResourceHandler(registry, resource.URI)); err != nil {
			return nil, fmt.Errorf("failed to add resource %s: %w", resource.URI, err)
		}
	}

	return &Server{mcpServer: mcpServer}, nil
}

// BuildTool converts a registry tool into a cortex tool definition
func BuildTool(tool *tools.Tool) *types.Tool {
	opts := []cortextools.ToolOption{cortextools.WithDescription(tool.Description)}
	for _, param := range tool.Params {
		props := []cortextools.ParameterOption{cortextools.Description(param.Description)}
		if param.Required {
			props = append(props, cortextools.Required())
		}
		if param.Type == tools.TypeString {
			opts = append(opts, cortextools.WithString(param.Name, props...))
		} else {
			opts = append(opts, cortextools.WithNumber(param.Name, props...))
		}
	}
	return cortextools.NewTool(tool.Name, opts...)
}

// BuildResourceTool describes a resource as a tool without parameters
func BuildResourceTool(resource *tools.Resource) *types.Tool {
	return cortextools.NewTool(
		resource.Name,
		cortextools.WithDescription(fmt.Sprintf("%s (%s)", resource.Description, resource.URI)),
	)
}

// ToolHandler dispatches cortex tool calls to the registry
func ToolHandler(registry *tools.Registry, name string) func(ctx context.Context, request server.ToolCallRequest) (interface{}, error) {
	return func(ctx context.Context, request server.ToolCallRequest) (interface{}, error) {
		return mcp.FormatResponse(registry.ExecuteTool(ctx, name, tools.Arguments(request.Parameters)))
	}
}

// ResourceHandler answers a resource tool call with the resource content.
// The response metadata carries the resource URI.
func ResourceHandler(registry *tools.Registry, uri string) func(ctx context.Context, request server.ToolCallRequest) (interface{}, error) {
	return func(ctx context.Context, request server.ToolCallRequest) (interface{}, error) {
		text, err := registry.ReadResource(ctx, uri)
		if err != nil {
			return nil, err
		}
		return mcp.FromString(text).WithMetadata("uri", uri), nil
	}
}

// ListenAndServe serves HTTP on addr until Shutdown is called
func (s *Server) ListenAndServe(addr string) error {
	s.mcpServer.SetAddress(addr)
	if err := s.mcpServer.ServeHTTP(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.mcpServer.Shutdown(ctx)
}
