package ledgerservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// AddPlayers seats the given profiles in a game, appending after the current
// highest position. A profile (or name) already seated is rejected.
func (s *LedgerService) AddPlayers(ctx context.Context, gameID uuid.UUID, seats []NewSeat) ([]ledgerdomain.Player, error) {
	return withOperation(s, ctx, "AddPlayers", func(ctx context.Context) ([]ledgerdomain.Player, error) {
		if len(seats) == 0 {
			return nil, nil
		}

		var inserted []ledgerdomain.Player
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			game, err := s.repo.GetGame(ctx, tx, gameID)
			if err != nil {
				return err
			}
			if !game.IsActive {
				return ErrGameFinished
			}

			existing, err := s.repo.ListPlayers(ctx, tx, gameID)
			if err != nil {
				return err
			}

			seatedNames := make(map[string]bool, len(existing))
			seatedProfiles := make(map[uuid.UUID]bool, len(existing))
			for _, p := range existing {
				seatedNames[p.Name] = true
				if p.ProfileID != nil {
					seatedProfiles[*p.ProfileID] = true
				}
			}

			players := make([]ledgerdomain.Player, 0, len(seats))
			position := len(existing)
			for _, seat := range seats {
				if seatedNames[seat.Name] {
					return ErrDuplicatePlayer
				}
				if seat.ProfileID != nil && seatedProfiles[*seat.ProfileID] {
					return ErrDuplicatePlayer
				}
				players = append(players, ledgerdomain.Player{
					GameID:    gameID,
					ProfileID: seat.ProfileID,
					Name:      seat.Name,
					Position:  position,
				})
				position++
			}

			inserted, err = s.repo.InsertPlayers(ctx, tx, players)
			return err
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "Players added",
			attr.UUID("game_id", gameID),
			attr.Int("count", len(inserted)),
		)
		return inserted, nil
	})
}

// RemovePlayer removes one player; their entries and tokens cascade.
func (s *LedgerService) RemovePlayer(ctx context.Context, playerID uuid.UUID) error {
	_, err := withOperation(s, ctx, "RemovePlayer", func(ctx context.Context) (struct{}, error) {
		if err := s.repo.DeletePlayer(ctx, s.db, playerID); err != nil {
			return struct{}{}, err
		}
		s.logger.InfoContext(ctx, "Player removed", attr.UUID("player_id", playerID))
		return struct{}{}, nil
	})
	return err
}
