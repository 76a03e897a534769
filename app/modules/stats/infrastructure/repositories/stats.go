package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	statsdomain "github.com/tarok-klub/tarok-backend/app/modules/stats/domain"
)

// StatsDB reads the ledger tables through the stats module's own queries. It
// never writes; all mutation goes through the ledger module.
type StatsDB struct{}

// ErrGameNotFound is returned when a scoreboard is requested for an unknown game.
var ErrGameNotFound = errors.New("game not found")

func (s *StatsDB) ListFinishedGames(ctx context.Context, db bun.IDB, since time.Time) ([]statsdomain.FinishedGame, error) {
	var games []ledgerdb.Game
	q := db.NewSelect().
		Model(&games).
		Where("g.is_active = ?", false).
		Order("g.created_at DESC")
	if !since.IsZero() {
		q = q.Where("g.created_at >= ?", since)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list finished games: %w", err)
	}
	if len(games) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}

	var players []ledgerdb.Player
	if err := db.NewSelect().
		Model(&players).
		Where("p.game_id IN (?)", bun.In(ids)).
		Order("p.game_id", "p.position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players for finished games: %w", err)
	}

	byGame := make(map[uuid.UUID][]statsdomain.GameResult, len(games))
	for _, p := range players {
		byGame[p.GameID] = append(byGame[p.GameID], statsdomain.GameResult{
			PlayerID:   p.ID,
			ProfileID:  p.ProfileID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
		})
	}

	finished := make([]statsdomain.FinishedGame, 0, len(games))
	for _, g := range games {
		finished = append(finished, statsdomain.FinishedGame{
			ID:      g.ID,
			Date:    g.CreatedAt,
			Players: byGame[g.ID],
		})
	}
	return finished, nil
}

func (s *StatsDB) GameScoreboard(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Scoreboard, error) {
	var game ledgerdb.Game
	if err := db.NewSelect().
		Model(&game).
		Where("g.id = ?", gameID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}

	board := &Scoreboard{Game: game.ToDomain()}

	var players []ledgerdb.Player
	if err := db.NewSelect().
		Model(&players).
		Where("p.game_id = ?", gameID).
		Order("p.position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, p := range players {
		board.Players = append(board.Players, p.ToDomain())
	}

	var entries []ledgerdb.ScoreEntry
	if err := db.NewSelect().
		Model(&entries).
		Where("se.game_id = ?", gameID).
		Order("se.created_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	for _, e := range entries {
		board.Entries = append(board.Entries, e.ToDomain())
	}

	var tokens []ledgerdb.TallyToken
	if err := db.NewSelect().
		Model(&tokens).
		Where("tt.game_id = ?", gameID).
		Order("tt.position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	for _, t := range tokens {
		board.Tokens = append(board.Tokens, t.ToDomain())
	}

	return board, nil
}
