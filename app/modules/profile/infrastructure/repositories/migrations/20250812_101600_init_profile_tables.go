package profilemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	profiledb "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating profile tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*profiledb.PlayerProfile)(nil)).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create player_profiles table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping profile tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewDropTable().
				Model((*profiledb.PlayerProfile)(nil)).
				IfExists().
				Exec(ctx); err != nil {
				return err
			}
			return nil
		})
	})
}
