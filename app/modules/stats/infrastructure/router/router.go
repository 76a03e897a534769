package statsrouter

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	ledgerevents "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain/events"
	statshandlers "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/handlers"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// StatsRouter subscribes the stats module to ledger events.
type StatsRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewStatsRouter creates a new instance of the router.
func NewStatsRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	prometheusRegistry *prometheus.Registry,
) *StatsRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}

	return &StatsRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the middlewares and registers all module-specific event handlers.
func (r *StatsRouter) Configure(ctx context.Context, handlers statshandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Stats")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          nil,
		}.Middleware,
	)

	return r.RegisterHandlers(ctx, handlers)
}

// RegisterHandlers binds event topics to their handler logic.
func (r *StatsRouter) RegisterHandlers(ctx context.Context, handlers statshandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Stats Event Handlers")

	r.Router.AddNoPublisherHandler(
		"stats."+ledgerevents.GameFinishedV1,
		ledgerevents.GameFinishedV1,
		r.subscriber,
		handlers.HandleGameFinished,
	)

	return nil
}

// Close stops the router and cleans up resources.
func (r *StatsRouter) Close() error {
	return r.Router.Close()
}
