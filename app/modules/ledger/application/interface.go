package ledgerservice

import (
	"context"

	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	ledgerevents "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain/events"
	"github.com/tarok-klub/tarok-backend/app/shared/results"
)

// NewSeat describes a player to seat in a game.
type NewSeat struct {
	Name      string
	ProfileID *uuid.UUID
}

// GameDetail is a game together with its players and tokens, the shape the
// in-game screen renders.
type GameDetail struct {
	Game    ledgerdomain.Game        `json:"game"`
	Players []ledgerdomain.Player    `json:"players"`
	Tokens  []ledgerdomain.TallyToken `json:"tokens"`
}

// RecordScoreResult reports an accepted score entry. TallyReset is advisory:
// the player's total landed exactly on zero, which obliges a tally-token
// round under house rules.
type RecordScoreResult struct {
	Entry      ledgerdomain.ScoreEntry `json:"entry"`
	NewTotal   int                     `json:"new_total"`
	TallyReset bool                    `json:"tally_reset"`
}

// RecordScoreFailure is the business-failure payload for a rejected score.
type RecordScoreFailure struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Reason   string    `json:"reason"`
}

// FinishGameResult reports a finished game with its closing standings.
type FinishGameResult struct {
	Game             ledgerdomain.Game             `json:"game"`
	Standings        []ledgerevents.FinalStanding  `json:"standings"`
	PenaltiesApplied int                           `json:"penalties_applied"`
	AlreadyFinished  bool                          `json:"already_finished"`
}

// FinishGameFailure is the business-failure payload for a failed finish.
type FinishGameFailure struct {
	GameID uuid.UUID `json:"game_id"`
	Reason string    `json:"reason"`
}

// ReconcileResult reports a cached-total consistency check for one player.
type ReconcileResult struct {
	PlayerID    uuid.UUID `json:"player_id"`
	CachedTotal int       `json:"cached_total"`
	LedgerTotal int       `json:"ledger_total"`
	Drifted     bool      `json:"drifted"`
	Repaired    bool      `json:"repaired"`
}

// Service is the ledger module's application surface.
type Service interface {
	CreateGame(ctx context.Context, name string) (ledgerdomain.Game, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (GameDetail, error)
	ListGames(ctx context.Context, activeOnly bool) ([]ledgerdomain.Game, error)
	DeleteGame(ctx context.Context, gameID uuid.UUID) error
	FinishGame(ctx context.Context, gameID uuid.UUID) (results.OperationResult[FinishGameResult, FinishGameFailure], error)

	AddPlayers(ctx context.Context, gameID uuid.UUID, seats []NewSeat) ([]ledgerdomain.Player, error)
	RemovePlayer(ctx context.Context, playerID uuid.UUID) error

	RecordScore(ctx context.Context, playerID uuid.UUID, points int, played bool) (results.OperationResult[RecordScoreResult, RecordScoreFailure], error)
	PlayerHistory(ctx context.Context, playerID uuid.UUID) (ledgerdomain.PlayerHistory, error)
	GameHistory(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.PlayerHistory, error)

	AddTokenRound(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error)
	ToggleToken(ctx context.Context, tokenID uuid.UUID) (ledgerdomain.TallyToken, error)

	RecomputeTotal(ctx context.Context, playerID uuid.UUID, repair bool) (ReconcileResult, error)
}
