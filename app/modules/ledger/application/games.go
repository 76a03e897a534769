package ledgerservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	ledgerevents "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain/events"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/results"
)

// CreateGame starts a new active game. An empty name gets the conventional
// "date Tarok time" label the mobile client generates.
func (s *LedgerService) CreateGame(ctx context.Context, name string) (ledgerdomain.Game, error) {
	return withOperation(s, ctx, "CreateGame", func(ctx context.Context) (ledgerdomain.Game, error) {
		if name == "" {
			now := time.Now()
			name = fmt.Sprintf("%s Tarok %s", now.Format("2. 1. 2006"), now.Format("15:04"))
		}

		game := ledgerdomain.Game{Name: name, IsActive: true}
		if err := s.repo.CreateGame(ctx, s.db, &game); err != nil {
			return ledgerdomain.Game{}, err
		}

		s.logger.InfoContext(ctx, "Game created",
			attr.UUID("game_id", game.ID),
			attr.String("name", game.Name),
		)
		return game, nil
	})
}

// GetGame loads a game with its players and tokens.
func (s *LedgerService) GetGame(ctx context.Context, gameID uuid.UUID) (GameDetail, error) {
	return withOperation(s, ctx, "GetGame", func(ctx context.Context) (GameDetail, error) {
		game, err := s.repo.GetGame(ctx, s.db, gameID)
		if err != nil {
			return GameDetail{}, err
		}
		players, err := s.repo.ListPlayers(ctx, s.db, gameID)
		if err != nil {
			return GameDetail{}, err
		}
		tokens, err := s.repo.ListTokensByGame(ctx, s.db, gameID)
		if err != nil {
			return GameDetail{}, err
		}
		return GameDetail{Game: *game, Players: players, Tokens: tokens}, nil
	})
}

// ListGames lists games newest first, optionally only active ones.
func (s *LedgerService) ListGames(ctx context.Context, activeOnly bool) ([]ledgerdomain.Game, error) {
	return withOperation(s, ctx, "ListGames", func(ctx context.Context) ([]ledgerdomain.Game, error) {
		return s.repo.ListGames(ctx, s.db, activeOnly)
	})
}

// DeleteGame removes a game; players, entries and tokens cascade with it.
func (s *LedgerService) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	_, err := withOperation(s, ctx, "DeleteGame", func(ctx context.Context) (struct{}, error) {
		if err := s.repo.DeleteGame(ctx, s.db, gameID); err != nil {
			return struct{}{}, err
		}
		s.logger.InfoContext(ctx, "Game deleted", attr.UUID("game_id", gameID))
		return struct{}{}, nil
	})
	return err
}

// FinishGame converts every unused tally token into one penalty entry per
// player, marks the tokens used, archives the game, and publishes the final
// standings. Safe to retry: a second call finds no unused tokens and an
// already-finished game is a no-op success.
func (s *LedgerService) FinishGame(ctx context.Context, gameID uuid.UUID) (results.OperationResult[FinishGameResult, FinishGameFailure], error) {
	return withOperation(s, ctx, "FinishGame", func(ctx context.Context) (results.OperationResult[FinishGameResult, FinishGameFailure], error) {
		var (
			result    FinishGameResult
			finished  bool
		)

		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			game, err := s.repo.GetGame(ctx, tx, gameID)
			if err != nil {
				return err
			}
			if !game.IsActive {
				result = FinishGameResult{Game: *game, AlreadyFinished: true}
				return nil
			}

			players, err := s.repo.ListPlayers(ctx, tx, gameID)
			if err != nil {
				return err
			}
			tokens, err := s.repo.ListTokensByGame(ctx, tx, gameID)
			if err != nil {
				return err
			}

			unusedByPlayer := make(map[uuid.UUID][]ledgerdomain.TallyToken)
			for _, t := range ledgerdomain.UnusedTokens(tokens) {
				unusedByPlayer[t.PlayerID] = append(unusedByPlayer[t.PlayerID], t)
			}

			standings := make([]ledgerevents.FinalStanding, 0, len(players))
			penalties := 0

			for _, player := range players {
				standing := ledgerevents.FinalStanding{
					PlayerID:   player.ID,
					ProfileID:  player.ProfileID,
					Name:       player.Name,
					TotalScore: player.TotalScore,
				}

				unused := unusedByPlayer[player.ID]
				if len(unused) > 0 {
					penalty := len(unused) * s.tokenPenalty
					entry := ledgerdomain.ScoreEntry{
						PlayerID: player.ID,
						GameID:   gameID,
						Points:   penalty,
						Played:   false,
					}
					if err := s.repo.InsertEntry(ctx, tx, &entry); err != nil {
						return err
					}
					newTotal, err := s.repo.IncrementTotalScore(ctx, tx, player.ID, penalty)
					if err != nil {
						return err
					}
					tokenIDs := make([]uuid.UUID, len(unused))
					for i, t := range unused {
						tokenIDs[i] = t.ID
					}
					if err := s.repo.MarkTokensUsed(ctx, tx, tokenIDs); err != nil {
						return err
					}

					standing.TotalScore = newTotal
					standing.PenaltyPoints = penalty
					penalties++
				}

				standings = append(standings, standing)
			}

			if err := s.repo.SetGameActive(ctx, tx, gameID, false); err != nil {
				return err
			}

			game.IsActive = false
			result = FinishGameResult{
				Game:             *game,
				Standings:        standings,
				PenaltiesApplied: penalties,
			}
			finished = true
			return nil
		})
		if err != nil {
			return results.Fail[FinishGameResult](FinishGameFailure{
				GameID: gameID,
				Reason: err.Error(),
			}), err
		}

		if finished {
			s.logger.InfoContext(ctx, "Game finished",
				attr.UUID("game_id", gameID),
				attr.Int("penalties_applied", result.PenaltiesApplied),
			)
			s.publish(ctx, ledgerevents.GameFinishedV1, ledgerevents.GameFinishedPayloadV1{
				GameID:     gameID,
				FinishedAt: time.Now().UTC(),
				Standings:  result.Standings,
			})
		}

		return results.Ok[FinishGameResult, FinishGameFailure](result), nil
	})
}
