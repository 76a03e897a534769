package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	statsservice "github.com/tarok-klub/tarok-backend/app/modules/stats/application"
	statshandlers "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/handlers"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
	statsrouter "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/router"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

// Module represents the stats module.
type Module struct {
	StatsService statsservice.Service
	StatsRouter  *statsrouter.StatsRouter
	logger       *slog.Logger
	cancelFunc   context.CancelFunc
}

// NewStatsModule creates a new instance of the Stats module.
func NewStatsModule(
	ctx context.Context,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	prometheusRegistry *prometheus.Registry,
) (*Module, error) {
	logger.InfoContext(ctx, "stats.NewStatsModule called")

	service := statsservice.NewStatsService(&statsdb.StatsDB{}, db, logger, operationMetrics)

	statsRouter := statsrouter.NewStatsRouter(logger, router, eventBus, prometheusRegistry)
	handlers := statshandlers.NewStatsHandlers(service, logger)
	if err := statsRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure stats router: %w", err)
	}

	return &Module{
		StatsService: service,
		StatsRouter:  statsRouter,
		logger:       logger,
	}, nil
}

// Run keeps the stats module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting stats module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Stats module goroutine stopped")
}

// Close stops the stats module and cleans up resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping stats module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Stats module stopped")
	return nil
}
