package statsservice

import (
	"context"
	"time"

	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// Leaderboard returns the cross-session leaderboard, optionally limited to
// games created at or after since. The unfiltered board is served from the
// cached snapshot when one exists.
func (s *StatsService) Leaderboard(ctx context.Context, since *time.Time) (LeaderboardResult, error) {
	return withOperation(s, ctx, "Leaderboard", func(ctx context.Context) (LeaderboardResult, error) {
		if since == nil {
			if snap := s.loadSnapshot(); snap != nil {
				return *snap, nil
			}
		}
		res, err := s.computeLeaderboard(ctx, since)
		if err != nil {
			return LeaderboardResult{}, err
		}
		if since == nil {
			s.storeSnapshot(res)
		}
		return res, nil
	})
}

// RefreshLeaderboard recomputes and stores the all-time snapshot.
func (s *StatsService) RefreshLeaderboard(ctx context.Context) error {
	_, err := withOperation(s, ctx, "RefreshLeaderboard", func(ctx context.Context) (LeaderboardResult, error) {
		res, err := s.computeLeaderboard(ctx, nil)
		if err != nil {
			return LeaderboardResult{}, err
		}
		s.storeSnapshot(res)
		s.logger.InfoContext(ctx, "Leaderboard snapshot refreshed",
			attr.Int("rows", len(res.Rows)),
			attr.Int("games_counted", res.GamesCounted),
		)
		return res, nil
	})
	return err
}

func (s *StatsService) computeLeaderboard(ctx context.Context, since *time.Time) (LeaderboardResult, error) {
	var lower time.Time
	if since != nil {
		lower = *since
	}
	games, err := s.repo.ListFinishedGames(ctx, s.db, lower)
	if err != nil {
		return LeaderboardResult{}, err
	}

	stats := statsdomain.Aggregate(games)
	rows := make([]LeaderboardRow, 0, len(stats))
	for _, ps := range stats {
		rows = append(rows, LeaderboardRow{
			PlayerStats: ps,
			Form:        statsdomain.FormTrend(ps.RecentRanks, statsdomain.DefaultFormWindow),
		})
	}

	return LeaderboardResult{
		Rows:         rows,
		GamesCounted: len(games),
		Since:        since,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
