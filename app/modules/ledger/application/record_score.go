package ledgerservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	ledgerevents "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain/events"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/results"
)

// RecordScore appends one score entry and bumps the player's cached total in
// the same transaction, so the total always equals the entry sum. A zero
// point value is rejected before any mutation.
func (s *LedgerService) RecordScore(ctx context.Context, playerID uuid.UUID, points int, played bool) (results.OperationResult[RecordScoreResult, RecordScoreFailure], error) {
	return withOperation(s, ctx, "RecordScore", func(ctx context.Context) (results.OperationResult[RecordScoreResult, RecordScoreFailure], error) {
		if points == 0 {
			return results.Fail[RecordScoreResult](RecordScoreFailure{
				PlayerID: playerID,
				Reason:   ErrZeroPoints.Error(),
			}), nil
		}

		var result RecordScoreResult
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			player, err := s.repo.GetPlayer(ctx, tx, playerID)
			if err != nil {
				return err
			}
			game, err := s.repo.GetGame(ctx, tx, player.GameID)
			if err != nil {
				return err
			}
			if !game.IsActive {
				return ErrGameFinished
			}

			entry := ledgerdomain.ScoreEntry{
				PlayerID: playerID,
				GameID:   player.GameID,
				Points:   points,
				Played:   played,
			}
			if err := s.repo.InsertEntry(ctx, tx, &entry); err != nil {
				return err
			}

			newTotal, err := s.repo.IncrementTotalScore(ctx, tx, playerID, points)
			if err != nil {
				return err
			}

			result = RecordScoreResult{
				Entry:    entry,
				NewTotal: newTotal,
				// Landing exactly on zero obliges a tally round ("klop").
				TallyReset: newTotal == 0,
			}
			return nil
		})
		if err != nil {
			if err == ErrGameFinished {
				return results.Fail[RecordScoreResult](RecordScoreFailure{
					PlayerID: playerID,
					Reason:   ErrGameFinished.Error(),
				}), nil
			}
			return results.OperationResult[RecordScoreResult, RecordScoreFailure]{}, err
		}

		s.logger.InfoContext(ctx, "Score recorded",
			attr.UUID("player_id", playerID),
			attr.Int("points", points),
			attr.Bool("played", played),
			attr.Int("new_total", result.NewTotal),
			attr.Bool("tally_reset", result.TallyReset),
		)

		s.publish(ctx, ledgerevents.ScoreRecordedV1, ledgerevents.ScoreRecordedPayloadV1{
			GameID:     result.Entry.GameID,
			PlayerID:   playerID,
			EntryID:    result.Entry.ID,
			Points:     points,
			Played:     played,
			NewTotal:   result.NewTotal,
			TallyReset: result.TallyReset,
			RecordedAt: time.Now().UTC(),
		})

		return results.Ok[RecordScoreResult, RecordScoreFailure](result), nil
	})
}

// PlayerHistory returns one player's entries oldest first, each annotated
// with the running total.
func (s *LedgerService) PlayerHistory(ctx context.Context, playerID uuid.UUID) (ledgerdomain.PlayerHistory, error) {
	return withOperation(s, ctx, "PlayerHistory", func(ctx context.Context) (ledgerdomain.PlayerHistory, error) {
		player, err := s.repo.GetPlayer(ctx, s.db, playerID)
		if err != nil {
			return ledgerdomain.PlayerHistory{}, err
		}
		entries, err := s.repo.ListEntriesByPlayer(ctx, s.db, playerID)
		if err != nil {
			return ledgerdomain.PlayerHistory{}, err
		}
		return ledgerdomain.PlayerHistory{
			Player:      *player,
			Entries:     ledgerdomain.AnnotateHistory(entries),
			PlayedCount: ledgerdomain.CountPlayed(entries),
		}, nil
	})
}

// GameHistory returns every player's annotated ledger for one game, in seat
// order.
func (s *LedgerService) GameHistory(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.PlayerHistory, error) {
	return withOperation(s, ctx, "GameHistory", func(ctx context.Context) ([]ledgerdomain.PlayerHistory, error) {
		players, err := s.repo.ListPlayers(ctx, s.db, gameID)
		if err != nil {
			return nil, err
		}
		entries, err := s.repo.ListEntriesByGame(ctx, s.db, gameID)
		if err != nil {
			return nil, err
		}

		byPlayer := make(map[uuid.UUID][]ledgerdomain.ScoreEntry, len(players))
		for _, e := range entries {
			byPlayer[e.PlayerID] = append(byPlayer[e.PlayerID], e)
		}

		histories := make([]ledgerdomain.PlayerHistory, 0, len(players))
		for _, player := range players {
			playerEntries := byPlayer[player.ID]
			histories = append(histories, ledgerdomain.PlayerHistory{
				Player:      player,
				Entries:     ledgerdomain.AnnotateHistory(playerEntries),
				PlayedCount: ledgerdomain.CountPlayed(playerEntries),
			})
		}
		return histories, nil
	})
}
