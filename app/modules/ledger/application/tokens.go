package ledgerservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// AddTokenRound hands every seated player one unused tally token at the next
// position index.
func (s *LedgerService) AddTokenRound(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error) {
	return withOperation(s, ctx, "AddTokenRound", func(ctx context.Context) ([]ledgerdomain.TallyToken, error) {
		var inserted []ledgerdomain.TallyToken
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			game, err := s.repo.GetGame(ctx, tx, gameID)
			if err != nil {
				return err
			}
			if !game.IsActive {
				return ErrGameFinished
			}

			players, err := s.repo.ListPlayers(ctx, tx, gameID)
			if err != nil {
				return err
			}
			if len(players) == 0 {
				return ErrNoPlayers
			}

			maxPos, err := s.repo.MaxTokenPosition(ctx, tx, gameID)
			if err != nil {
				return err
			}

			tokens := make([]ledgerdomain.TallyToken, len(players))
			for i, p := range players {
				tokens[i] = ledgerdomain.TallyToken{
					PlayerID: p.ID,
					GameID:   gameID,
					IsUsed:   false,
					Position: maxPos + 1,
				}
			}

			inserted, err = s.repo.InsertTokens(ctx, tx, tokens)
			return err
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Token round added",
			attr.UUID("game_id", gameID),
			attr.Int("tokens", len(inserted)),
		)
		return inserted, nil
	})
}

// ToggleToken flips a token between used and unused while its game is still
// active.
func (s *LedgerService) ToggleToken(ctx context.Context, tokenID uuid.UUID) (ledgerdomain.TallyToken, error) {
	return withOperation(s, ctx, "ToggleToken", func(ctx context.Context) (ledgerdomain.TallyToken, error) {
		var toggled ledgerdomain.TallyToken
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			token, err := s.repo.GetToken(ctx, tx, tokenID)
			if err != nil {
				return err
			}
			game, err := s.repo.GetGame(ctx, tx, token.GameID)
			if err != nil {
				return err
			}
			if !game.IsActive {
				return ErrGameFinished
			}

			if err := s.repo.SetTokenUsed(ctx, tx, tokenID, !token.IsUsed); err != nil {
				return err
			}
			token.IsUsed = !token.IsUsed
			toggled = *token
			return nil
		})
		if err != nil {
			return ledgerdomain.TallyToken{}, err
		}
		return toggled, nil
	})
}
