package statsservice

import (
	"context"
	"sort"

	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
)

// GameStandings ranks one game's players by cached total, live or finished.
func (s *StatsService) GameStandings(ctx context.Context, gameID uuid.UUID) (GameStandingsResult, error) {
	return withOperation(s, ctx, "GameStandings", func(ctx context.Context) (GameStandingsResult, error) {
		board, err := s.repo.GameScoreboard(ctx, s.db, gameID)
		if err != nil {
			return GameStandingsResult{}, err
		}
		return buildStandings(board), nil
	})
}

func buildStandings(board *statsdb.Scoreboard) GameStandingsResult {
	totals := make(map[uuid.UUID]int, len(board.Players))
	for _, p := range board.Players {
		totals[p.ID] = p.TotalScore
	}
	ranks := statsdomain.Rank(totals)

	entriesByPlayer := make(map[uuid.UUID][]ledgerdomain.ScoreEntry)
	for _, e := range board.Entries {
		entriesByPlayer[e.PlayerID] = append(entriesByPlayer[e.PlayerID], e)
	}
	unusedByPlayer := make(map[uuid.UUID]int)
	for _, t := range board.Tokens {
		if !t.IsUsed {
			unusedByPlayer[t.PlayerID]++
		}
	}

	rows := make([]StandingRow, 0, len(board.Players))
	for _, p := range board.Players {
		rows = append(rows, StandingRow{
			Player:       p,
			Rank:         ranks[p.ID],
			Played:       ledgerdomain.CountPlayed(entriesByPlayer[p.ID]),
			UnusedTokens: unusedByPlayer[p.ID],
		})
	}
	// Best rank first; seat order breaks ties since Players comes in
	// position order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})

	return GameStandingsResult{Game: board.Game, Rows: rows}
}
