package tools

import (
	"context"
	"fmt"
	"sync"
)

// ParamType is the JSON type of a tool parameter
type ParamType string

// Parameter types
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
)

// Param describes one named tool parameter
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	// Default is advertised to clients; handlers still apply their own defaults
	Default interface{}
}

// Handler executes a tool call
type Handler func(ctx context.Context, args Arguments) (interface{}, error)

// Middleware wraps the handler of a tool
type Middleware func(tool *Tool, next Handler) Handler

// Tool represents a tool that can be executed by the MCP server
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Resource is a read-only document addressed by URI
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Read        func(ctx context.Context) (string, error)
}

// Registry manages the available tools and resources.
// Listing returns entries in registration order.
type Registry struct {
	mu          sync.RWMutex
	tools       map[string]*Tool
	toolOrder   []string
	resources   map[string]*Resource
	uriOrder    []string
	middlewares []Middleware
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]*Tool),
		resources: make(map[string]*Resource),
	}
}

// Use appends middleware applied to every tool call, outermost first
func (r *Registry) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw...)
}

// RegisterTool registers a tool with the registry
func (r *Registry) RegisterTool(tool *Tool) error {
	if tool == nil || tool.Name == "" {
		return fmt.Errorf("%w: tool must have a name", ErrInvalidDefinition)
	}
	if tool.Handler == nil {
		return fmt.Errorf("%w: tool %s has no handler", ErrInvalidDefinition, tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: tool %s", ErrDuplicate, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.toolOrder = append(r.toolOrder, tool.Name)
	return nil
}

// RegisterResource registers a resource with the registry
func (r *Registry) RegisterResource(resource *Resource) error {
	if resource == nil || resource.URI == "" {
		return fmt.Errorf("%w: resource must have a URI", ErrInvalidDefinition)
	}
	if resource.Read == nil {
		return fmt.Errorf("%w: resource %s has no reader", ErrInvalidDefinition, resource.URI)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resources[resource.URI]; exists {
		return fmt.Errorf("%w: resource %s", ErrDuplicate, resource.URI)
	}
	r.resources[resource.URI] = resource
	r.uriOrder = append(r.uriOrder, resource.URI)
	return nil
}

// GetAllTools gets all registered tools
func (r *Registry) GetAllTools() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.toolOrder))
	for _, name := range r.toolOrder {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// GetAllResources gets all registered resources
func (r *Registry) GetAllResources() []*Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resources := make([]*Resource, 0, len(r.uriOrder))
	for _, uri := range r.uriOrder {
		resources = append(resources, r.resources[uri])
	}
	return resources
}

// ToolNames returns the registered tool names
func (r *Registry) ToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.toolOrder...)
}

// ExecuteTool executes a tool with the given arguments through the middleware chain
func (r *Registry) ExecuteTool(ctx context.Context, name string, args Arguments) (interface{}, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	middlewares := r.middlewares
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	handler := tool.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](tool, handler)
	}
	if args == nil {
		args = Arguments{}
	}
	return handler(ctx, args)
}

// ReadResource returns the current content of a resource
func (r *Registry) ReadResource(ctx context.Context, uri string) (string, error) {
	r.mu.RLock()
	resource, ok := r.resources[uri]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}
	return resource.Read(ctx)
}
