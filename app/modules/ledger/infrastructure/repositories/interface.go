package ledgerdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
)

// Repository is the ledger persistence surface. Methods take a bun.IDB so
// the service can pass either the pooled DB or an open transaction.
type Repository interface {
	CreateGame(ctx context.Context, db bun.IDB, game *ledgerdomain.Game) error
	GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*ledgerdomain.Game, error)
	ListGames(ctx context.Context, db bun.IDB, activeOnly bool) ([]ledgerdomain.Game, error)
	SetGameActive(ctx context.Context, db bun.IDB, gameID uuid.UUID, active bool) error
	DeleteGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) error

	InsertPlayers(ctx context.Context, db bun.IDB, players []ledgerdomain.Player) ([]ledgerdomain.Player, error)
	GetPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*ledgerdomain.Player, error)
	ListPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.Player, error)
	DeletePlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) error
	IncrementTotalScore(ctx context.Context, db bun.IDB, playerID uuid.UUID, delta int) (int, error)
	SetTotalScore(ctx context.Context, db bun.IDB, playerID uuid.UUID, total int) error

	InsertEntry(ctx context.Context, db bun.IDB, entry *ledgerdomain.ScoreEntry) error
	ListEntriesByPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]ledgerdomain.ScoreEntry, error)
	ListEntriesByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.ScoreEntry, error)

	InsertTokens(ctx context.Context, db bun.IDB, tokens []ledgerdomain.TallyToken) ([]ledgerdomain.TallyToken, error)
	GetToken(ctx context.Context, db bun.IDB, tokenID uuid.UUID) (*ledgerdomain.TallyToken, error)
	ListTokensByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error)
	SetTokenUsed(ctx context.Context, db bun.IDB, tokenID uuid.UUID, used bool) error
	MarkTokensUsed(ctx context.Context, db bun.IDB, tokenIDs []uuid.UUID) error
	MaxTokenPosition(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error)
}
