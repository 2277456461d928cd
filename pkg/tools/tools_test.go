package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "Echoes back the input",
		Params: []Param{
			{Name: "message", Type: TypeString, Description: "Message to echo", Required: true},
		},
		Handler: func(ctx context.Context, args Arguments) (interface{}, error) {
			return args.String("message")
		},
	}
}

func TestRegisterToolKeepsOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool(echoTool("b")))
	require.NoError(t, r.RegisterTool(echoTool("a")))
	require.NoError(t, r.RegisterTool(echoTool("c")))

	assert.Equal(t, []string{"b", "a", "c"}, r.ToolNames())

	all := r.GetAllTools()
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Name)
	assert.Equal(t, "a", all[1].Name)
}

func TestRegisterToolRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool(echoTool("echo")))

	assert.ErrorIs(t, r.RegisterTool(echoTool("echo")), ErrDuplicate)
	assert.ErrorIs(t, r.RegisterTool(nil), ErrInvalidDefinition)
	assert.ErrorIs(t, r.RegisterTool(&Tool{Name: ""}), ErrInvalidDefinition)
	assert.ErrorIs(t, r.RegisterTool(&Tool{Name: "nohandler"}), ErrInvalidDefinition)
}

func TestExecuteTool(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool(echoTool("echo")))

	result, err := r.ExecuteTool(context.Background(), "echo", Arguments{"message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)

	_, err = r.ExecuteTool(context.Background(), "echo", nil)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = r.ExecuteTool(context.Background(), "nope", Arguments{})
	assert.ErrorIs(t, err, ErrToolNotFound)
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "tool_not_found", toolErr.Code)
}

func TestMiddlewareOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool(echoTool("echo")))

	var calls []string
	trace := func(label string) Middleware {
		return func(tool *Tool, next Handler) Handler {
			return func(ctx context.Context, args Arguments) (interface{}, error) {
				calls = append(calls, label+":"+tool.Name)
				return next(ctx, args)
			}
		}
	}
	r.Use(trace("outer"), trace("inner"))

	_, err := r.ExecuteTool(context.Background(), "echo", Arguments{"message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:echo", "inner:echo"}, calls)
}

func TestResources(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterResource(&Resource{
		URI:      "info://server",
		Name:     "server_info",
		MIMEType: "application/json",
		Read: func(ctx context.Context) (string, error) {
			return `{"name":"test"}`, nil
		},
	}))

	assert.ErrorIs(t, r.RegisterResource(&Resource{
		URI:  "info://server",
		Read: func(ctx context.Context) (string, error) { return "", nil },
	}), ErrDuplicate)
	assert.ErrorIs(t, r.RegisterResource(&Resource{URI: "x://y"}), ErrInvalidDefinition)

	content, err := r.ReadResource(context.Background(), "info://server")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"test"}`, content)

	_, err = r.ReadResource(context.Background(), "info://missing")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	require.Len(t, r.GetAllResources(), 1)
	assert.Equal(t, "server_info", r.GetAllResources()[0].Name)
}

func TestArgumentsString(t *testing.T) {
	args := Arguments{"s": "value", "n": 1.0, "null": nil}

	s, err := args.String("s")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	_, err = args.String("n")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = args.String("null")
	assert.ErrorIs(t, err, ErrMissingArgument)

	s, err = args.StringOr("missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	opt, err := args.OptionalString("s")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, "value", *opt)

	opt, err = args.OptionalString("null")
	require.NoError(t, err)
	assert.Nil(t, opt)

	_, err = args.OptionalString("n")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestArgumentsNumbers(t *testing.T) {
	args := Arguments{
		"float":    2.5,
		"whole":    7.0,
		"negative": -3.0,
		"number":   json.Number("12"),
		"int":      5,
		"text":     "12",
	}

	f, err := args.Float("float")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	f, err = args.Float("number")
	require.NoError(t, err)
	assert.Equal(t, 12.0, f)

	_, err = args.Float("text")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = args.Float("missing")
	assert.ErrorIs(t, err, ErrMissingArgument)

	i, err := args.Int("whole")
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)

	i, err = args.Int("negative")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), i)

	i, err = args.Int("int")
	require.NoError(t, err)
	assert.Equal(t, int64(5), i)

	i, err = args.Int("number")
	require.NoError(t, err)
	assert.Equal(t, int64(12), i)

	_, err = args.Int("float")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	i, err = args.IntOr("missing", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), i)
}
