package statsservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
)

// LeaderboardRow is one identity's aggregate line plus its current form.
type LeaderboardRow struct {
	statsdomain.PlayerStats
	Form statsdomain.FormLabel `json:"form"`
}

// LeaderboardResult is the ranked cross-session leaderboard.
type LeaderboardResult struct {
	Rows         []LeaderboardRow `json:"rows"`
	GamesCounted int              `json:"games_counted"`
	Since        *time.Time       `json:"since,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// StandingRow is one seat's line in a single game's standings.
type StandingRow struct {
	Player       ledgerdomain.Player `json:"player"`
	Rank         int                 `json:"rank"`
	Played       int                 `json:"played"`
	UnusedTokens int                 `json:"unused_tokens"`
}

// GameStandingsResult is the ranked table for one game, finished or live.
type GameStandingsResult struct {
	Game ledgerdomain.Game `json:"game"`
	Rows []StandingRow     `json:"rows"`
}

// ChartResult carries a rendered score-progression chart.
type ChartResult struct {
	GameID      uuid.UUID `json:"game_id"`
	ContentType string    `json:"content_type"`
	PNG         []byte    `json:"-"`
}

// ExportResult carries a rendered spreadsheet of a game's standings.
type ExportResult struct {
	GameID      uuid.UUID `json:"game_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
}

// Service is the stats module's application surface. All operations are
// read-only with respect to the ledger tables.
type Service interface {
	Leaderboard(ctx context.Context, since *time.Time) (LeaderboardResult, error)
	GameStandings(ctx context.Context, gameID uuid.UUID) (GameStandingsResult, error)
	ProgressionChart(ctx context.Context, gameID uuid.UUID) (ChartResult, error)
	ExportStandings(ctx context.Context, gameID uuid.UUID) (ExportResult, error)

	// RefreshLeaderboard recomputes the cached all-time leaderboard. It is
	// wired to the game-finished event so reads stay cheap.
	RefreshLeaderboard(ctx context.Context) error
}
