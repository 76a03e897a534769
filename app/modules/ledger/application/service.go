package ledgerservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"

	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
)

const moduleName = "ledger"

// TxRunner is the slice of *bun.DB the service needs for transactions.
type TxRunner interface {
	bun.IDB
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// LedgerService implements the Service interface.
type LedgerService struct {
	repo         ledgerdb.Repository
	db           TxRunner
	eventBus     eventbus.EventBus
	logger       *slog.Logger
	metrics      metrics.OperationMetrics
	tokenPenalty int
}

// NewLedgerService creates a new LedgerService. tokenPenalty is the score
// applied per unused tally token at game finish (negative).
func NewLedgerService(
	repo ledgerdb.Repository,
	db TxRunner,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	tokenPenalty int,
) *LedgerService {
	return &LedgerService{
		repo:         repo,
		db:           db,
		eventBus:     eventBus,
		logger:       logger,
		metrics:      operationMetrics,
		tokenPenalty: tokenPenalty,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withOperation wraps a service operation with logging, metrics, and panic
// recovery.
func withOperation[T any](
	s *LedgerService,
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

// publish marshals the payload and publishes it, logging failures without
// failing the already-committed operation.
func (s *LedgerService) publish(ctx context.Context, topic string, payload any) {
	if s.eventBus == nil {
		return
	}
	msg, err := eventbus.NewMessage(ctx, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build event message",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	if err := s.eventBus.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
