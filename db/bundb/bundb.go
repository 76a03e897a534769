package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	profiledb "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/config"
)

// DBService bundles the bun connection with the per-module repositories.
type DBService struct {
	LedgerDB  *ledgerdb.LedgerDB
	ProfileDB *profiledb.ProfileDB
	db        *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*ledgerdb.Game)(nil),
		(*ledgerdb.Player)(nil),
		(*ledgerdb.ScoreEntry)(nil),
		(*ledgerdb.TallyToken)(nil),
		(*profiledb.PlayerProfile)(nil),
	)

	return &DBService{
		LedgerDB:  &ledgerdb.LedgerDB{},
		ProfileDB: &profiledb.ProfileDB{},
		db:        db,
	}, nil
}

// BunDB wraps an already-open sql connection, for callers that manage their
// own pool (integration tests run against a testcontainer this way).
func BunDB(sqldb *sql.DB) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*ledgerdb.Game)(nil),
		(*ledgerdb.Player)(nil),
		(*ledgerdb.ScoreEntry)(nil),
		(*ledgerdb.TallyToken)(nil),
		(*profiledb.PlayerProfile)(nil),
	)
	return db
}

// NewTestDBService builds a DBService over an existing bun connection.
func NewTestDBService(db *bun.DB) (*DBService, error) {
	if db == nil {
		return nil, fmt.Errorf("nil bun.DB")
	}
	return &DBService{
		LedgerDB:  &ledgerdb.LedgerDB{},
		ProfileDB: &profiledb.ProfileDB{},
		db:        db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
