package statsservice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

// fakeStatsRepo is a programmable stub for the statsdb.Repository interface.
type fakeStatsRepo struct {
	trace []string

	ListFinishedGamesFunc func(ctx context.Context, db bun.IDB, since time.Time) ([]statsdomain.FinishedGame, error)
	GameScoreboardFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*statsdb.Scoreboard, error)
}

func (f *fakeStatsRepo) ListFinishedGames(ctx context.Context, db bun.IDB, since time.Time) ([]statsdomain.FinishedGame, error) {
	f.trace = append(f.trace, "ListFinishedGames")
	if f.ListFinishedGamesFunc != nil {
		return f.ListFinishedGamesFunc(ctx, db, since)
	}
	return nil, nil
}

func (f *fakeStatsRepo) GameScoreboard(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*statsdb.Scoreboard, error) {
	f.trace = append(f.trace, "GameScoreboard")
	if f.GameScoreboardFunc != nil {
		return f.GameScoreboardFunc(ctx, db, gameID)
	}
	return &statsdb.Scoreboard{}, nil
}

var _ statsdb.Repository = (*fakeStatsRepo)(nil)

func newTestStatsService(repo *fakeStatsRepo) *StatsService {
	return NewStatsService(repo, nil, slog.New(slog.DiscardHandler), metrics.NoOpMetrics{})
}

// sampleScoreboard builds a two-player game in progress.
func sampleScoreboard(t *testing.T) *statsdb.Scoreboard {
	t.Helper()

	gameID := uuid.New()
	created := time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC)
	ana := ledgerdomain.Player{ID: uuid.New(), GameID: gameID, Name: "Ana", Position: 0, TotalScore: 15}
	bojan := ledgerdomain.Player{ID: uuid.New(), GameID: gameID, Name: "Bojan", Position: 1, TotalScore: -15}

	return &statsdb.Scoreboard{
		Game:    ledgerdomain.Game{ID: gameID, Name: "7. 3. 2026 Tarok 19:00", IsActive: true, CreatedAt: created},
		Players: []ledgerdomain.Player{ana, bojan},
		Entries: []ledgerdomain.ScoreEntry{
			{ID: uuid.New(), PlayerID: ana.ID, GameID: gameID, Points: 20, Played: true, CreatedAt: created.Add(10 * time.Minute)},
			{ID: uuid.New(), PlayerID: bojan.ID, GameID: gameID, Points: -15, Played: true, CreatedAt: created.Add(20 * time.Minute)},
			{ID: uuid.New(), PlayerID: ana.ID, GameID: gameID, Points: -5, Played: true, CreatedAt: created.Add(30 * time.Minute)},
		},
		Tokens: []ledgerdomain.TallyToken{
			{ID: uuid.New(), PlayerID: ana.ID, GameID: gameID, IsUsed: true, Position: 0},
			{ID: uuid.New(), PlayerID: bojan.ID, GameID: gameID, IsUsed: false, Position: 0},
		},
	}
}
