package cortex

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/FreePeak/cortex/pkg/server"
	"github.com/FreePeak/cortex/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FreePeak/expense-mcp-server/internal/delivery/mcp"
	"github.com/FreePeak/expense-mcp-server/internal/interfaces/api"
	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

func newRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry()
	calc := usecase.NewCalculator(rand.New(rand.NewPCG(5, 6)), usecase.DefaultServerInfo("1.0.0"))
	require.NoError(t, api.NewCalculatorHandler(calc).Register(registry))
	return registry
}

func TestBuildTool(t *testing.T) {
	registry := newRegistry(t)

	all := registry.GetAllTools()
	require.NotEmpty(t, all)
	assert.Equal(t, "add", BuildTool(all[0]).Name)

	resources := registry.GetAllResources()
	require.Len(t, resources, 1)
	assert.Equal(t, "server_info", BuildResourceTool(resources[0]).Name)
}

func TestBuildToolParameters(t *testing.T) {
	registry := tools.NewRegistry()
	uc := usecase.NewExpenseUseCase(nil, nil, usecase.ExpenseOptions{})
	require.NoError(t, api.NewExpenseHandler(uc).Register(registry))

	all := registry.GetAllTools()
	require.Len(t, all, 3)
	built := BuildTool(all[0])
	assert.Equal(t, "add_expense", built.Name)
	assert.Equal(t, []types.ToolParameter{
		{Name: "date", Description: "Date of the expense, YYYY-MM-DD", Type: "string", Required: true},
		{Name: "amount", Description: "Amount of the expense", Type: "number", Required: true},
		{Name: "category", Description: "Category of the expense", Type: "string", Required: true},
		{Name: "subcategory", Description: "Subcategory of the expense", Type: "string"},
		{Name: "note", Description: "Note about the expense", Type: "string"},
	}, built.Parameters)
}

func TestToolHandler(t *testing.T) {
	registry := newRegistry(t)
	handler := ToolHandler(registry, "add")

	result, err := handler(context.Background(), server.ToolCallRequest{
		Name:       "add",
		Parameters: map[string]interface{}{"a": 40.0, "b": 2.0},
	})
	require.NoError(t, err)

	resp, ok := result.(*mcp.Response)
	require.True(t, ok)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "42", resp.Content[0].Text)

	_, err = handler(context.Background(), server.ToolCallRequest{
		Name:       "add",
		Parameters: map[string]interface{}{"a": "forty"},
	})
	assert.ErrorIs(t, err, tools.ErrInvalidArgument)
}

func TestResourceHandler(t *testing.T) {
	registry := newRegistry(t)

	result, err := ResourceHandler(registry, api.ServerInfoURI)(context.Background(), server.ToolCallRequest{Name: "server_info"})
	require.NoError(t, err)
	resp := result.(*mcp.Response)
	assert.Contains(t, resp.Content[0].Text, `"calculator-server"`)
	assert.Equal(t, api.ServerInfoURI, resp.Metadata["uri"])

	_, err = ResourceHandler(registry, "info://missing")(context.Background(), server.ToolCallRequest{})
	assert.ErrorIs(t, err, tools.ErrResourceNotFound)
}

func TestNewServerRegistersEverything(t *testing.T) {
	s, err := NewServer(context.Background(), "calculator-server", "1.0.0", newRegistry(t))
	require.NoError(t, err)
	assert.NotNil(t, s)
}
