package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

type callIDKey struct{}

// CallID returns the id assigned to the current tool call, if any
func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

// Logging returns a registry middleware that tags each tool call with an id
// and logs its outcome and duration
func Logging(service string) tools.Middleware {
	return func(tool *tools.Tool, next tools.Handler) tools.Handler {
		return func(ctx context.Context, args tools.Arguments) (interface{}, error) {
			id := uuid.NewString()
			ctx = context.WithValue(ctx, callIDKey{}, id)

			entry := logger.WithFields(map[string]interface{}{
				"service": service,
				"tool":    tool.Name,
				"call_id": id,
			})
			entry.Debugf("Tool call started with %d arguments", len(args))

			start := time.Now()
			result, err := next(ctx, args)
			entry = entry.WithField("duration", time.Since(start).String())
			if err != nil {
				entry.WithError(err).Warn("Tool call failed")
				return result, err
			}
			entry.Info("Tool call completed")
			return result, nil
		}
	}
}
