package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// NewServer builds an MCP server exposing every tool and resource in registry
func NewServer(name, version string, registry *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	for _, tool := range registry.GetAllTools() {
		s.AddTool(NewTool(tool), ToolHandler(registry, tool.Name))
		logger.Debug("Registered tool %s", tool.Name)
	}
	for _, resource := range registry.GetAllResources() {
		s.AddResource(NewResource(resource), ResourceHandler(registry, resource))
		logger.Debug("Registered resource %s (%s)", resource.Name, resource.URI)
	}
	return s
}

// NewTool converts a registry tool into its MCP definition
func NewTool(tool *tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description)}
	for _, param := range tool.Params {
		opts = append(opts, paramOption(param))
	}
	return mcp.NewTool(tool.Name, opts...)
}

func paramOption(param tools.Param) mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(param.Description)}
	if param.Required {
		props = append(props, mcp.Required())
	}

	if param.Type == tools.TypeString {
		if def, ok := param.Default.(string); ok {
			props = append(props, mcp.DefaultString(def))
		}
		return mcp.WithString(param.Name, props...)
	}

	// Integers are advertised as JSON numbers; handlers reject fractions
	if def, ok := numericDefault(param.Default); ok {
		props = append(props, mcp.DefaultNumber(def))
	}
	return mcp.WithNumber(param.Name, props...)
}

func numericDefault(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// NewResource converts a registry resource into its MCP definition
func NewResource(resource *tools.Resource) mcp.Resource {
	return mcp.NewResource(
		resource.URI,
		resource.Name,
		mcp.WithResourceDescription(resource.Description),
		mcp.WithMIMEType(resource.MIMEType),
	)
}

// ToolHandler dispatches MCP tool calls to the registry.
// Failures are returned as protocol errors.
func ToolHandler(registry *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.ExecuteTool(ctx, name, tools.Arguments(request.GetArguments()))
		if err != nil {
			return nil, err
		}
		text, err := FormatText(result)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ResourceHandler serves reads of a registry resource
func ResourceHandler(registry *tools.Registry, resource *tools.Resource) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := registry.ReadResource(ctx, resource.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", resource.URI, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resource.URI,
				MIMEType: resource.MIMEType,
				Text:     text,
			},
		}, nil
	}
}
