// Package testutils spins up the containers and connections integration
// tests share: Postgres with the schema migrated, NATS with JetStream, and
// the event bus over it.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	_ "github.com/jackc/pgx/v5/stdlib"

	ledgermigrations "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories/migrations"
	profilemigrations "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories/migrations"
	"github.com/tarok-klub/tarok-backend/app/shared/eventbus"
	"github.com/tarok-klub/tarok-backend/config"
	"github.com/tarok-klub/tarok-backend/db/bundb"
	"github.com/tarok-klub/tarok-backend/integration_tests/containers"
)

// SkipIfShort skips container-backed tests under -short or when Docker is
// explicitly opted out via SKIP_INTEGRATION.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("skipping integration test: SKIP_INTEGRATION set")
	}
}

// TestEnvironment holds all resources needed for integration testing.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	DB            *bun.DB
	DBService     *bundb.DBService
	EventBus      eventbus.EventBus
	Config        *config.Config
	T             *testing.T
}

// NewTestEnvironment creates a test environment with Postgres and NATS
// containers. The caller owns Cleanup.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		T:             t,
	}
	if err := env.setupContainers(ctx); err != nil {
		cancel()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setupContainers(ctx context.Context) error {
	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		pgContainer.Terminate(ctx)
		return fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		cleanupContainers(ctx, pgContainer, natsContainer)
		return fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	db := bundb.BunDB(sqlDB)
	env.DB = db

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		cleanupContainers(ctx, pgContainer, natsContainer)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dbService, err := bundb.NewTestDBService(db)
	if err != nil {
		db.Close()
		cleanupContainers(ctx, pgContainer, natsContainer)
		return fmt.Errorf("failed to create DB service: %w", err)
	}
	env.DBService = dbService

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewNATSEventBus(natsURL, watermill.NewSlogLogger(discardLogger))
	if err != nil {
		db.Close()
		cleanupContainers(ctx, pgContainer, natsContainer)
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
	}
	return nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	for _, migrations := range []*migrate.Migrations{
		ledgermigrations.Migrations,
		profilemigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("migrator init: %w", err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// TruncateTables empties the given tables between tests.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE ? RESTART IDENTITY CASCADE", bun.Ident(table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// Cleanup tears down connections and containers.
func (env *TestEnvironment) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
	if env.DB != nil {
		env.DB.Close()
	}
	cleanupContainers(ctx, env.PgContainer, env.NatsContainer)
	env.CancelContext()
}

func cleanupContainers(ctx context.Context, pg *postgres.PostgresContainer, nats testcontainers.Container) {
	if nats != nil {
		if err := nats.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if pg != nil {
		if err := pg.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}
