package statsservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"

	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
)

const moduleName = "stats"

// StatsService implements the Service interface.
type StatsService struct {
	repo    statsdb.Repository
	db      bun.IDB
	logger  *slog.Logger
	metrics metrics.OperationMetrics

	mu       sync.RWMutex
	snapshot *LeaderboardResult
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	repo statsdb.Repository,
	db bun.IDB,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
) *StatsService {
	return &StatsService{
		repo:    repo,
		db:      db,
		logger:  logger,
		metrics: operationMetrics,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withOperation wraps a service operation with logging, metrics, and panic
// recovery.
func withOperation[T any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	op operationFunc[T],
) (result T, err error) {
	s.metrics.RecordOperationAttempt(ctx, operationName, moduleName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, moduleName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, moduleName)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, moduleName)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, moduleName)
	return result, nil
}

func (s *StatsService) storeSnapshot(res LeaderboardResult) {
	s.mu.Lock()
	s.snapshot = &res
	s.mu.Unlock()
}

func (s *StatsService) loadSnapshot() *LeaderboardResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
