package ledgerqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

// QueueService defines the contract for the ledger's background jobs.
type QueueService interface {
	// EnqueueReconcile schedules a reconcile job. A nil playerID sweeps
	// every player.
	EnqueueReconcile(ctx context.Context, playerID *uuid.UUID) error
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles background jobs for the ledger module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics metrics.OperationMetrics
}

// NewService creates a new River-based queue service. reconcileInterval
// controls the periodic full sweep; zero disables it.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	operationMetrics metrics.OperationMetrics,
	ledgerService ledgerservice.Service,
	reconcileInterval time.Duration,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	operationMetrics.RecordOperationAttempt(ctx, "initialize_service", "river")
	ctxLogger.Info("Initializing ledger queue service")

	// River requires pgx, not database/sql.
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		operationMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		operationMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		operationMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewReconcileTotalsWorker(ctxLogger, ledgerService))

	var periodicJobs []*river.PeriodicJob
	if reconcileInterval > 0 {
		periodicJobs = append(periodicJobs, river.NewPeriodicJob(
			river.PeriodicInterval(reconcileInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return ReconcileTotalsJob{}, &river.InsertOpts{Queue: "ledger"}
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		))
	}

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"ledger":           {MaxWorkers: 2},
		},
		Workers:      workers,
		PeriodicJobs: periodicJobs,
	})
	if err != nil {
		pool.Close()
		operationMetrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	operationMetrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	ctxLogger.Info("Ledger queue service initialized",
		attr.Duration("reconcile_interval", reconcileInterval),
	)

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: operationMetrics,
	}, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")
	s.logger.Info("Starting ledger queue service")

	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.logger.Info("Ledger queue service started")
	return nil
}

// Stop stops the River queue service and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	s.logger.Info("Stopping ledger queue service")

	if err := s.client.Stop(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.logger.Info("Ledger queue service stopped")
	return nil
}

// EnqueueReconcile schedules a reconcile job for one player or for everyone.
func (s *Service) EnqueueReconcile(ctx context.Context, playerID *uuid.UUID) error {
	s.metrics.RecordOperationAttempt(ctx, "enqueue_reconcile", "river")

	jobResult, err := s.client.Insert(ctx, ReconcileTotalsJob{PlayerID: playerID}, &river.InsertOpts{
		Queue: "ledger",
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "enqueue_reconcile", "river")
		return fmt.Errorf("failed to enqueue reconcile job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_reconcile", "river")
	s.logger.InfoContext(ctx, "Reconcile job enqueued",
		attr.Int("job_id", int(jobResult.Job.ID)),
	)
	return nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client for advanced operations.
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
