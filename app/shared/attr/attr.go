// Package attr provides slog attribute helpers shared by every module.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// UUID renders uuid values without forcing callers through String().
func UUID(key string, id uuid.UUID) slog.Attr {
	return slog.String(key, id.String())
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context so downstream log
// lines and published messages can carry it.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// CorrelationIDFromContext returns the stored correlation ID, or "" when the
// request never had one.
func CorrelationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ExtractCorrelationID produces a log attribute for the context's correlation
// ID, using the watermill metadata key so HTTP and message logs line up.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(middleware.CorrelationIDMetadataKey, CorrelationIDFromContext(ctx))
}
