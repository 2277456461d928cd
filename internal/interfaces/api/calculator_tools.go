package api

import (
	"context"

	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// ServerInfoURI addresses the calculator metadata resource
const ServerInfoURI = "info://server"

// Default bounds of random_number
const (
	DefaultMinVal = 1
	DefaultMaxVal = 100
)

// CalculatorHandler exposes the calculator as tools and resources
type CalculatorHandler struct {
	calc *usecase.Calculator
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(calc *usecase.Calculator) *CalculatorHandler {
	return &CalculatorHandler{calc: calc}
}

// Register adds the calculator tools and the server info resource to registry
func (h *CalculatorHandler) Register(registry *tools.Registry) error {
	addTool := &tools.Tool{
		Name:        "add",
		Description: "Add two numbers together",
		Params: []tools.Param{
			{Name: "a", Type: tools.TypeInteger, Description: "First number", Required: true},
			{Name: "b", Type: tools.TypeInteger, Description: "Second number", Required: true},
		},
		Handler: h.add,
	}
	randomTool := &tools.Tool{
		Name:        "random_number",
		Description: "Generate a random integer between min_val and max_val (inclusive)",
		Params: []tools.Param{
			{Name: "min_val", Type: tools.TypeInteger, Description: "Minimum value", Default: DefaultMinVal},
			{Name: "max_val", Type: tools.TypeInteger, Description: "Maximum value", Default: DefaultMaxVal},
		},
		Handler: h.randomNumber,
	}

	for _, tool := range []*tools.Tool{addTool, randomTool} {
		if err := registry.RegisterTool(tool); err != nil {
			return err
		}
	}
	return registry.RegisterResource(&tools.Resource{
		URI:         ServerInfoURI,
		Name:        "server_info",
		Description: "Information about this server",
		MIMEType:    "application/json",
		Read: func(ctx context.Context) (string, error) {
			return h.calc.InfoJSON()
		},
	})
}

func (h *CalculatorHandler) add(ctx context.Context, args tools.Arguments) (interface{}, error) {
	a, err := args.Int("a")
	if err != nil {
		return nil, err
	}
	b, err := args.Int("b")
	if err != nil {
		return nil, err
	}
	return h.calc.Add(a, b), nil
}

func (h *CalculatorHandler) randomNumber(ctx context.Context, args tools.Arguments) (interface{}, error) {
	minVal, err := args.IntOr("min_val", DefaultMinVal)
	if err != nil {
		return nil, err
	}
	maxVal, err := args.IntOr("max_val", DefaultMaxVal)
	if err != nil {
		return nil, err
	}
	return h.calc.RandomNumber(minVal, maxVal)
}
