package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	ledgerqueue "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/queue"
	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
	"github.com/tarok-klub/tarok-backend/config"
)

// Module represents the ledger module.
type Module struct {
	LedgerService ledgerservice.Service
	QueueService  ledgerqueue.QueueService
	logger        *slog.Logger
	cancelFunc    context.CancelFunc
}

// NewLedgerModule creates a new instance of the Ledger module.
func NewLedgerModule(
	ctx context.Context,
	cfg *config.Config,
	db *bun.DB,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
) (*Module, error) {
	logger.InfoContext(ctx, "ledger.NewLedgerModule called")

	service := ledgerservice.NewLedgerService(
		&ledgerdb.LedgerDB{},
		db,
		eventBus,
		logger,
		operationMetrics,
		cfg.Ledger.TokenPenalty,
	)

	queueService, err := ledgerqueue.NewService(
		ctx,
		db,
		logger,
		cfg.Postgres.DSN,
		operationMetrics,
		service,
		cfg.Ledger.ReconcileInterval,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger queue service: %w", err)
	}

	return &Module{
		LedgerService: service,
		QueueService:  queueService,
		logger:        logger,
	}, nil
}

// Run starts the queue and keeps the module alive until the context is
// canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting ledger module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start ledger queue service",
			slog.Any("error", err),
		)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Ledger module goroutine stopped")
}

// Close stops the ledger module and cleans up resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping ledger module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if err := m.QueueService.Stop(context.Background()); err != nil {
		m.logger.Error("Failed to stop ledger queue service", slog.Any("error", err))
	}

	m.logger.Info("Ledger module stopped")
	return nil
}
