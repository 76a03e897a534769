package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tarok-klub/tarok-backend/api"
	"github.com/tarok-klub/tarok-backend/app/modules/ledger"
	"github.com/tarok-klub/tarok-backend/app/modules/profile"
	"github.com/tarok-klub/tarok-backend/app/modules/stats"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
	"github.com/tarok-klub/tarok-backend/config"
	"github.com/tarok-klub/tarok-backend/db/bundb"
	"github.com/tarok-klub/tarok-backend/pkg/jwt"
)

// App owns every long-lived component of the backend.
type App struct {
	Config          *config.Config
	Logger          *slog.Logger
	DB              *bundb.DBService
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	LedgerModule    *ledger.Module
	StatsModule     *stats.Module
	ProfileModule   *profile.Module
	APIServer       *api.Server

	registry      *prometheus.Registry
	metricsServer *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("service", "tarok-backend"))

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)

	bus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	operationMetrics := metrics.NewPrometheusMetrics(registry)

	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	ledgerModule, err := ledger.NewLedgerModule(ctx, cfg, dbService.GetDB(), bus, logger, operationMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger module: %w", err)
	}

	statsModule, err := stats.NewStatsModule(ctx, dbService.GetDB(), bus, watermillRouter, logger, operationMetrics, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats module: %w", err)
	}

	profileModule, err := profile.NewProfileModule(ctx, dbService.GetDB(), logger, operationMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile module: %w", err)
	}

	var jwtService jwt.Service
	if cfg.JWT.Secret != "" {
		jwtService = jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)
	} else {
		logger.Warn("JWT secret is empty, API authentication is disabled")
	}

	apiServer := api.NewServer(
		cfg,
		logger,
		ledgerModule.LedgerService,
		statsModule.StatsService,
		profileModule.ProfileService,
		jwtService,
		registry,
	)

	return &App{
		Config:          cfg,
		Logger:          logger,
		DB:              dbService,
		EventBus:        bus,
		WatermillRouter: watermillRouter,
		LedgerModule:    ledgerModule,
		StatsModule:     statsModule,
		ProfileModule:   profileModule,
		APIServer:       apiServer,
		registry:        registry,
	}, nil
}

// Run starts every component and blocks until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go app.LedgerModule.Run(ctx, &wg)
	wg.Add(1)
	go app.StatsModule.Run(ctx, &wg)
	wg.Add(1)
	go app.ProfileModule.Run(ctx, &wg)

	errCh := make(chan error, 3)

	go func() {
		if err := app.WatermillRouter.Run(ctx); err != nil {
			errCh <- fmt.Errorf("watermill router stopped: %w", err)
		}
	}()

	go func() {
		if err := app.APIServer.Start(ctx); err != nil {
			errCh <- fmt.Errorf("api server stopped: %w", err)
		}
	}()

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		app.startMetricsServer(addr)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		app.Logger.Error("Component failure, shutting down", slog.Any("error", err))
		wg.Wait()
		return err
	}

	wg.Wait()
	return nil
}

func (app *App) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	app.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		app.Logger.Info("Metrics server listening", slog.String("addr", addr))
		if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Error("Metrics server stopped", slog.Any("error", err))
		}
	}()
}

// Close shuts down every component, most-dependent first.
func (app *App) Close() {
	if app.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("Failed to shut down metrics server", slog.Any("error", err))
		}
		cancel()
	}

	if err := app.StatsModule.Close(); err != nil {
		app.Logger.Error("Failed to close stats module", slog.Any("error", err))
	}
	if err := app.ProfileModule.Close(); err != nil {
		app.Logger.Error("Failed to close profile module", slog.Any("error", err))
	}
	if err := app.LedgerModule.Close(); err != nil {
		app.Logger.Error("Failed to close ledger module", slog.Any("error", err))
	}

	if err := app.EventBus.Close(); err != nil {
		app.Logger.Error("Failed to close event bus", slog.Any("error", err))
	}

	if err := app.DB.GetDB().Close(); err != nil {
		app.Logger.Error("Failed to close database connection", slog.Any("error", err))
	}
}
