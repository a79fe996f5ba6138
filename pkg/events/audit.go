package events

import (
	"context"

	"advisor-api/pkg/logger"

	"go.uber.org/zap"
)

// AuditHandler writes one log line per auth event.
func AuditHandler(l *logger.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		l.InfoCtx(ctx, "auth event",
			zap.String("type", event.Type),
			zap.Any("payload", event.Payload),
			zap.Int64("timestamp", event.Timestamp),
		)
		return nil
	}
}
