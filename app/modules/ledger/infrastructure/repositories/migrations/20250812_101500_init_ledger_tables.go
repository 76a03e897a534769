package ledgermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ledger tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*ledgerdb.Game)(nil)).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*ledgerdb.Player)(nil)).
				IfNotExists().
				ForeignKey(`("game_id") REFERENCES "games" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*ledgerdb.ScoreEntry)(nil)).
				IfNotExists().
				ForeignKey(`("player_id") REFERENCES "players" ("id") ON DELETE CASCADE`).
				ForeignKey(`("game_id") REFERENCES "games" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create score_entries table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*ledgerdb.TallyToken)(nil)).
				IfNotExists().
				ForeignKey(`("player_id") REFERENCES "players" ("id") ON DELETE CASCADE`).
				ForeignKey(`("game_id") REFERENCES "games" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create tally_tokens table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_players_game_id ON players(game_id);
				CREATE INDEX IF NOT EXISTS idx_score_entries_player_created ON score_entries(player_id, created_at);
				CREATE INDEX IF NOT EXISTS idx_score_entries_game_created ON score_entries(game_id, created_at);
				CREATE INDEX IF NOT EXISTS idx_tally_tokens_game_id ON tally_tokens(game_id);
			`); err != nil {
				return fmt.Errorf("failed to create ledger indices: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ledger tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, model := range []any{
				(*ledgerdb.TallyToken)(nil),
				(*ledgerdb.ScoreEntry)(nil),
				(*ledgerdb.Player)(nil),
				(*ledgerdb.Game)(nil),
			} {
				if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
