package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/pkg/jwt"

	"log/slog"
)

const correlationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware propagates the caller's correlation ID, minting one
// when the header is absent.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(correlationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		w.Header().Set(correlationIDHeader, correlationID)

		ctx := attr.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logger.InfoContext(r.Context(), "HTTP request",
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.Int("status", sw.status),
				attr.Duration("duration", time.Since(start)),
				attr.ExtractCorrelationID(r.Context()),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// JWTAuth rejects requests without a valid bearer token. A nil service
// disables auth, for local development and handler tests.
func JWTAuth(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwtService == nil {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if _, err := jwtService.ValidateToken(tokenString); err != nil {
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
