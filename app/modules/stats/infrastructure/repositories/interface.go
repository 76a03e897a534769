package statsdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
)

// Scoreboard is everything the per-game views need: the game, its players in
// seat order, the full entry sequence oldest first, and the token state.
type Scoreboard struct {
	Game    ledgerdomain.Game
	Players []ledgerdomain.Player
	Entries []ledgerdomain.ScoreEntry
	Tokens  []ledgerdomain.TallyToken
}

// Repository is the stats module's read-only persistence surface.
type Repository interface {
	// ListFinishedGames returns archived games with their player results,
	// newest first. A zero since means no lower bound.
	ListFinishedGames(ctx context.Context, db bun.IDB, since time.Time) ([]statsdomain.FinishedGame, error)
	// GameScoreboard loads one game's full scoreboard, active or finished.
	GameScoreboard(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Scoreboard, error)
}
