package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithText(t *testing.T) {
	resp := NewResponse().WithText("first").WithText("second")
	require.Len(t, resp.Content, 2)
	assert.Equal(t, TextContent{Type: "text", Text: "second"}, resp.Content[1])
	assert.Nil(t, resp.Metadata)

	resp.WithMetadata("tool", "add")
	assert.Equal(t, "add", resp.Metadata["tool"])
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		name     string
		result   interface{}
		expected string
	}{
		{"string passes through", `{"already":"json"}`, `{"already":"json"}`},
		{"integer", int64(42), "42"},
		{"empty list", []string{}, "[]"},
		{"struct", struct {
			Status string `json:"status"`
			ID     int64  `json:"id"`
		}{"ok", 3}, `{"status":"ok","id":3}`},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := FormatText(tt.result)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}

	_, err := FormatText(make(chan int))
	assert.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	resp, err := FormatResponse(int64(5), nil)
	require.NoError(t, err)
	assert.Equal(t, "5", resp.Content[0].Text)

	failure := errors.New("boom")
	_, err = FormatResponse(nil, failure)
	assert.ErrorIs(t, err, failure)
}
