package ledgerqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// ReconcileTotalsWorker replays the entry ledger against the cached totals
// and repairs any drift it finds.
type ReconcileTotalsWorker struct {
	river.WorkerDefaults[ReconcileTotalsJob]

	service ledgerservice.Service
	logger  *slog.Logger
}

// NewReconcileTotalsWorker creates a new ReconcileTotalsWorker.
func NewReconcileTotalsWorker(logger *slog.Logger, service ledgerservice.Service) *ReconcileTotalsWorker {
	return &ReconcileTotalsWorker{
		service: service,
		logger:  logger,
	}
}

func (w *ReconcileTotalsWorker) Work(ctx context.Context, job *river.Job[ReconcileTotalsJob]) error {
	if job.Args.PlayerID != nil {
		res, err := w.service.RecomputeTotal(ctx, *job.Args.PlayerID, true)
		if err != nil {
			return fmt.Errorf("failed to reconcile player %s: %w", *job.Args.PlayerID, err)
		}
		if res.Drifted {
			w.logger.WarnContext(ctx, "Repaired drifted player total",
				attr.UUID("player_id", res.PlayerID),
				attr.Int("cached_total", res.CachedTotal),
				attr.Int("ledger_total", res.LedgerTotal),
			)
		}
		return nil
	}

	return w.sweep(ctx)
}

func (w *ReconcileTotalsWorker) sweep(ctx context.Context) error {
	games, err := w.service.ListGames(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list games for reconcile sweep: %w", err)
	}

	var checked, drifted int
	for _, game := range games {
		detail, err := w.service.GetGame(ctx, game.ID)
		if err != nil {
			return fmt.Errorf("failed to load game %s for reconcile sweep: %w", game.ID, err)
		}
		for _, player := range detail.Players {
			res, err := w.service.RecomputeTotal(ctx, player.ID, true)
			if err != nil {
				return fmt.Errorf("failed to reconcile player %s: %w", player.ID, err)
			}
			checked++
			if res.Drifted {
				drifted++
				w.logger.WarnContext(ctx, "Repaired drifted player total",
					attr.UUID("player_id", res.PlayerID),
					attr.UUID("game_id", game.ID),
					attr.Int("cached_total", res.CachedTotal),
					attr.Int("ledger_total", res.LedgerTotal),
				)
			}
		}
	}

	w.logger.InfoContext(ctx, "Reconcile sweep finished",
		attr.Int("players_checked", checked),
		attr.Int("totals_repaired", drifted),
	)
	return nil
}
