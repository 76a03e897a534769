package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	profileservice "github.com/tarok-klub/tarok-backend/app/modules/profile/application"
	statsservice "github.com/tarok-klub/tarok-backend/app/modules/stats/application"
	"github.com/tarok-klub/tarok-backend/config"
	"github.com/tarok-klub/tarok-backend/pkg/jwt"
)

// Server is the HTTP front of the backend.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server

	ledger   ledgerservice.Service
	stats    statsservice.Service
	profiles profileservice.Service
	jwt      jwt.Service
}

// NewServer wires the API routes over the module services.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	ledger ledgerservice.Service,
	stats statsservice.Service,
	profiles profileservice.Service,
	jwtService jwt.Service,
	registry *prometheus.Registry,
) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		ledger:   ledger,
		stats:    stats,
		profiles: profiles,
		jwt:      jwtService,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           s.Routes(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the full route tree.
func (s *Server) Routes(registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(CorrelationIDMiddleware)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JWTAuth(s.jwt))

		r.Route("/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Get("/", s.handleListGames)
			r.Route("/{gameID}", func(r chi.Router) {
				r.Get("/", s.handleGetGame)
				r.Delete("/", s.handleDeleteGame)
				r.Post("/finish", s.handleFinishGame)
				r.Post("/players", s.handleAddPlayers)
				r.Get("/history", s.handleGameHistory)
				r.Post("/tokens", s.handleAddTokenRound)
				r.Get("/standings", s.handleGameStandings)
				r.Get("/chart", s.handleProgressionChart)
				r.Get("/export", s.handleExportStandings)
			})
		})

		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Delete("/", s.handleRemovePlayer)
			r.Post("/scores", s.handleRecordScore)
			r.Get("/history", s.handlePlayerHistory)
			r.Post("/reconcile", s.handleReconcile)
		})

		r.Post("/tokens/{tokenID}/toggle", s.handleToggleToken)

		r.Get("/stats/leaderboard", s.handleLeaderboard)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleGetOrCreateProfile)
			r.Get("/{profileID}", s.handleGetProfile)
		})
	})

	return r
}

// Start runs the HTTP server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
