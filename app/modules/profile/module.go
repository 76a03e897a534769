package profile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"

	profileservice "github.com/tarok-klub/tarok-backend/app/modules/profile/application"
	profiledb "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

// Module represents the profile module.
type Module struct {
	ProfileService profileservice.Service
	logger         *slog.Logger
	cancelFunc     context.CancelFunc
}

// NewProfileModule creates a new instance of the Profile module.
func NewProfileModule(
	ctx context.Context,
	db *bun.DB,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
) (*Module, error) {
	logger.InfoContext(ctx, "profile.NewProfileModule called")

	service := profileservice.NewProfileService(&profiledb.ProfileDB{}, db, logger, operationMetrics)

	return &Module{
		ProfileService: service,
		logger:         logger,
	}, nil
}

// Run keeps the profile module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting profile module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Profile module goroutine stopped")
}

// Close stops the profile module.
func (m *Module) Close() error {
	m.logger.Info("Stopping profile module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Profile module stopped")
	return nil
}
