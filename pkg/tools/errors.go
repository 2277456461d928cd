package tools

import "errors"

// ToolError represents an error that occurred while resolving a tool call
type ToolError struct {
	Code    string
	Message string
}

// Error returns a string representation of the error
func (e *ToolError) Error() string {
	return e.Message
}

// Lookup errors
var (
	// ErrToolNotFound is returned when a tool is not found
	ErrToolNotFound = &ToolError{Code: "tool_not_found", Message: "tool not found"}
	// ErrResourceNotFound is returned when a resource is not found
	ErrResourceNotFound = &ToolError{Code: "resource_not_found", Message: "resource not found"}
)

// Registration and argument errors
var (
	ErrDuplicate         = errors.New("already registered")
	ErrInvalidDefinition = errors.New("invalid definition")
	ErrMissingArgument   = errors.New("missing argument")
	ErrInvalidArgument   = errors.New("invalid argument")
)
