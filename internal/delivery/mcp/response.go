package mcp

import (
	"encoding/json"
	"fmt"
)

// TextContent represents a text content item in a response
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the content envelope used by transports that return plain maps
type Response struct {
	Content  []TextContent          `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewResponse creates a new empty Response
func NewResponse() *Response {
	return &Response{
		Content: make([]TextContent, 0),
	}
}

// WithText adds a text content item to the response
func (r *Response) WithText(text string) *Response {
	r.Content = append(r.Content, TextContent{
		Type: "text",
		Text: text,
	})
	return r
}

// WithMetadata adds metadata to the response
func (r *Response) WithMetadata(key string, value interface{}) *Response {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
	return r
}

// FromString creates a response from a string
func FromString(text string) *Response {
	return NewResponse().WithText(text)
}

// FormatText renders a tool result as text content.
// Strings pass through unchanged; everything else is encoded as JSON.
func FormatText(result interface{}) (string, error) {
	switch v := result.(type) {
	case string:
		return v, nil
	case nil:
		return "null", nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(data), nil
}

// FormatResponse wraps a tool result in a Response
func FormatResponse(result interface{}, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	text, err := FormatText(result)
	if err != nil {
		return nil, err
	}
	return FromString(text), nil
}
