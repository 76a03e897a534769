package ledgerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
)

// LedgerDB implements Repository on bun.
type LedgerDB struct{}

var _ Repository = (*LedgerDB)(nil)

// NewLedgerDB returns the bun-backed ledger repository.
func NewLedgerDB() *LedgerDB {
	return &LedgerDB{}
}

func (r *LedgerDB) CreateGame(ctx context.Context, db bun.IDB, game *ledgerdomain.Game) error {
	model := gameFromDomain(*game)
	if _, err := db.NewInsert().Model(&model).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	*game = model.ToDomain()
	return nil
}

func (r *LedgerDB) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*ledgerdomain.Game, error) {
	var model Game
	err := db.NewSelect().Model(&model).Where("g.id = ?", gameID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to fetch game %s: %w", gameID, err)
	}
	game := model.ToDomain()
	return &game, nil
}

func (r *LedgerDB) ListGames(ctx context.Context, db bun.IDB, activeOnly bool) ([]ledgerdomain.Game, error) {
	var models []Game
	q := db.NewSelect().Model(&models).Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = TRUE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	games := make([]ledgerdomain.Game, len(models))
	for i := range models {
		games[i] = models[i].ToDomain()
	}
	return games, nil
}

func (r *LedgerDB) SetGameActive(ctx context.Context, db bun.IDB, gameID uuid.UUID, active bool) error {
	res, err := db.NewUpdate().
		Model((*Game)(nil)).
		Set("is_active = ?", active).
		Where("id = ?", gameID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", gameID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (r *LedgerDB) DeleteGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) error {
	// Players, entries and tokens go with it via ON DELETE CASCADE.
	res, err := db.NewDelete().Model((*Game)(nil)).Where("id = ?", gameID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (r *LedgerDB) InsertPlayers(ctx context.Context, db bun.IDB, players []ledgerdomain.Player) ([]ledgerdomain.Player, error) {
	if len(players) == 0 {
		return nil, nil
	}
	models := make([]Player, len(players))
	for i, p := range players {
		models[i] = playerFromDomain(p)
	}
	if _, err := db.NewInsert().Model(&models).Returning("*").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to insert players: %w", err)
	}
	inserted := make([]ledgerdomain.Player, len(models))
	for i := range models {
		inserted[i] = models[i].ToDomain()
	}
	return inserted, nil
}

func (r *LedgerDB) GetPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*ledgerdomain.Player, error) {
	var model Player
	err := db.NewSelect().Model(&model).Where("p.id = ?", playerID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to fetch player %s: %w", playerID, err)
	}
	player := model.ToDomain()
	return &player, nil
}

func (r *LedgerDB) ListPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.Player, error) {
	var models []Player
	err := db.NewSelect().
		Model(&models).
		Where("game_id = ?", gameID).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for game %s: %w", gameID, err)
	}
	players := make([]ledgerdomain.Player, len(models))
	for i := range models {
		players[i] = models[i].ToDomain()
	}
	return players, nil
}

func (r *LedgerDB) DeletePlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) error {
	res, err := db.NewDelete().Model((*Player)(nil)).Where("id = ?", playerID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *LedgerDB) IncrementTotalScore(ctx context.Context, db bun.IDB, playerID uuid.UUID, delta int) (int, error) {
	var newTotal int
	err := db.NewUpdate().
		Model((*Player)(nil)).
		Set("total_score = total_score + ?", delta).
		Where("id = ?", playerID).
		Returning("total_score").
		Scan(ctx, &newTotal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPlayerNotFound
		}
		return 0, fmt.Errorf("failed to increment total for player %s: %w", playerID, err)
	}
	return newTotal, nil
}

func (r *LedgerDB) SetTotalScore(ctx context.Context, db bun.IDB, playerID uuid.UUID, total int) error {
	res, err := db.NewUpdate().
		Model((*Player)(nil)).
		Set("total_score = ?", total).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set total for player %s: %w", playerID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *LedgerDB) InsertEntry(ctx context.Context, db bun.IDB, entry *ledgerdomain.ScoreEntry) error {
	model := entryFromDomain(*entry)
	if _, err := db.NewInsert().Model(&model).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert score entry: %w", err)
	}
	*entry = model.ToDomain()
	return nil
}

func (r *LedgerDB) ListEntriesByPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]ledgerdomain.ScoreEntry, error) {
	var models []ScoreEntry
	err := db.NewSelect().
		Model(&models).
		Where("player_id = ?", playerID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for player %s: %w", playerID, err)
	}
	return entriesToDomain(models), nil
}

func (r *LedgerDB) ListEntriesByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.ScoreEntry, error) {
	var models []ScoreEntry
	err := db.NewSelect().
		Model(&models).
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for game %s: %w", gameID, err)
	}
	return entriesToDomain(models), nil
}

func entriesToDomain(models []ScoreEntry) []ledgerdomain.ScoreEntry {
	entries := make([]ledgerdomain.ScoreEntry, len(models))
	for i := range models {
		entries[i] = models[i].ToDomain()
	}
	return entries
}

func (r *LedgerDB) InsertTokens(ctx context.Context, db bun.IDB, tokens []ledgerdomain.TallyToken) ([]ledgerdomain.TallyToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	models := make([]TallyToken, len(tokens))
	for i, t := range tokens {
		models[i] = tokenFromDomain(t)
	}
	if _, err := db.NewInsert().Model(&models).Returning("*").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to insert tally tokens: %w", err)
	}
	inserted := make([]ledgerdomain.TallyToken, len(models))
	for i := range models {
		inserted[i] = models[i].ToDomain()
	}
	return inserted, nil
}

func (r *LedgerDB) GetToken(ctx context.Context, db bun.IDB, tokenID uuid.UUID) (*ledgerdomain.TallyToken, error) {
	var model TallyToken
	err := db.NewSelect().Model(&model).Where("tt.id = ?", tokenID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to fetch token %s: %w", tokenID, err)
	}
	token := model.ToDomain()
	return &token, nil
}

func (r *LedgerDB) ListTokensByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error) {
	var models []TallyToken
	err := db.NewSelect().
		Model(&models).
		Where("game_id = ?", gameID).
		Order("position ASC", "created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens for game %s: %w", gameID, err)
	}
	tokens := make([]ledgerdomain.TallyToken, len(models))
	for i := range models {
		tokens[i] = models[i].ToDomain()
	}
	return tokens, nil
}

func (r *LedgerDB) SetTokenUsed(ctx context.Context, db bun.IDB, tokenID uuid.UUID, used bool) error {
	res, err := db.NewUpdate().
		Model((*TallyToken)(nil)).
		Set("is_used = ?", used).
		Where("id = ?", tokenID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update token %s: %w", tokenID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *LedgerDB) MarkTokensUsed(ctx context.Context, db bun.IDB, tokenIDs []uuid.UUID) error {
	if len(tokenIDs) == 0 {
		return nil
	}
	_, err := db.NewUpdate().
		Model((*TallyToken)(nil)).
		Set("is_used = TRUE").
		Where("id IN (?)", bun.In(tokenIDs)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark tokens used: %w", err)
	}
	return nil
}

func (r *LedgerDB) MaxTokenPosition(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error) {
	var maxPos sql.NullInt64
	err := db.NewSelect().
		Model((*TallyToken)(nil)).
		ColumnExpr("MAX(position)").
		Where("game_id = ?", gameID).
		Scan(ctx, &maxPos)
	if err != nil {
		return -1, fmt.Errorf("failed to read max token position for game %s: %w", gameID, err)
	}
	if !maxPos.Valid {
		return -1, nil
	}
	return int(maxPos.Int64), nil
}
