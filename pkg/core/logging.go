package core

import (
	"io"
	"os"
	"strings"
)

// LoggingDisabledEnv silences every log line when set to "true" or "1".
const LoggingDisabledEnv = "MCP_DISABLE_LOGGING"

// IsLoggingDisabled checks if server logging should be disabled
func IsLoggingDisabled() bool {
	val := strings.TrimSpace(os.Getenv(LoggingDisabledEnv))
	return strings.EqualFold(val, "true") || val == "1"
}

// GetLogWriter returns the writer log output goes to.
// Logs never go to stdout: the stdio transport owns it for JSON-RPC frames.
func GetLogWriter() io.Writer {
	if IsLoggingDisabled() {
		return io.Discard
	}
	return os.Stderr
}
