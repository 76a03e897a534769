package ledgerservice

import (
	"context"

	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// RecomputeTotal re-derives a player's total from the entry ledger and
// compares it against the cached total_score. The ledger sum is
// authoritative; with repair set, a drifted cache is overwritten. Drift
// cannot happen under correct sequential use, so a hit is logged loudly.
func (s *LedgerService) RecomputeTotal(ctx context.Context, playerID uuid.UUID, repair bool) (ReconcileResult, error) {
	return withOperation(s, ctx, "RecomputeTotal", func(ctx context.Context) (ReconcileResult, error) {
		player, err := s.repo.GetPlayer(ctx, s.db, playerID)
		if err != nil {
			return ReconcileResult{}, err
		}
		entries, err := s.repo.ListEntriesByPlayer(ctx, s.db, playerID)
		if err != nil {
			return ReconcileResult{}, err
		}

		ledgerTotal := ledgerdomain.SumPoints(entries)
		result := ReconcileResult{
			PlayerID:    playerID,
			CachedTotal: player.TotalScore,
			LedgerTotal: ledgerTotal,
			Drifted:     ledgerTotal != player.TotalScore,
		}

		if !result.Drifted {
			return result, nil
		}

		s.logger.WarnContext(ctx, "Cached total disagrees with entry ledger",
			attr.UUID("player_id", playerID),
			attr.Int("cached_total", result.CachedTotal),
			attr.Int("ledger_total", result.LedgerTotal),
		)

		if repair {
			if err := s.repo.SetTotalScore(ctx, s.db, playerID, ledgerTotal); err != nil {
				return result, err
			}
			result.Repaired = true
		}
		return result, nil
	})
}
