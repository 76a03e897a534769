package statsintegrationtests

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/integration_tests/testutils"
)

func TestStatsRepository(t *testing.T) {
	testutils.SkipIfShort(t)

	env, err := testutils.NewTestEnvironment(t)
	if err != nil {
		t.Fatalf("test environment: %v", err)
	}
	t.Cleanup(env.Cleanup)

	ledger := ledgerdb.NewLedgerDB()
	stats := &statsdb.StatsDB{}
	gen := testutils.NewTestDataGenerator(7)
	ctx := env.Ctx
	db := env.DB

	// Seed one finished game with scores and one still-active game.
	finished := &ledgerdomain.Game{Name: gen.GameName(), IsActive: true}
	if err := ledger.CreateGame(ctx, db, finished); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	players, err := ledger.InsertPlayers(ctx, db, gen.SeatsFor(finished.ID, 3))
	if err != nil {
		t.Fatalf("InsertPlayers: %v", err)
	}
	scores := []int{40, 10, -50}
	for i, p := range players {
		entry := &ledgerdomain.ScoreEntry{
			PlayerID: p.ID,
			GameID:   finished.ID,
			Points:   scores[i],
			Played:   true,
		}
		if err := ledger.InsertEntry(ctx, db, entry); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
		if err := ledger.SetTotalScore(ctx, db, p.ID, scores[i]); err != nil {
			t.Fatalf("SetTotalScore: %v", err)
		}
	}
	tokens := []ledgerdomain.TallyToken{
		{PlayerID: players[0].ID, GameID: finished.ID, Position: 0},
	}
	if _, err := ledger.InsertTokens(ctx, db, tokens); err != nil {
		t.Fatalf("InsertTokens: %v", err)
	}
	if err := ledger.SetGameActive(ctx, db, finished.ID, false); err != nil {
		t.Fatalf("SetGameActive: %v", err)
	}

	active := &ledgerdomain.Game{Name: gen.GameName(), IsActive: true}
	if err := ledger.CreateGame(ctx, db, active); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	t.Run("list finished games", func(t *testing.T) {
		games, err := stats.ListFinishedGames(ctx, db, time.Time{})
		if err != nil {
			t.Fatalf("ListFinishedGames: %v", err)
		}
		if len(games) != 1 {
			t.Fatalf("listed %d finished games, want 1", len(games))
		}
		got := games[0]
		if got.ID != finished.ID {
			t.Errorf("game ID = %s, want %s", got.ID, finished.ID)
		}
		if len(got.Players) != 3 {
			t.Fatalf("result carries %d players, want 3", len(got.Players))
		}
		totalsByID := make(map[uuid.UUID]int)
		for _, p := range got.Players {
			totalsByID[p.PlayerID] = p.TotalScore
		}
		for i, p := range players {
			if totalsByID[p.ID] != scores[i] {
				t.Errorf("player %s total = %d, want %d", p.Name, totalsByID[p.ID], scores[i])
			}
		}
	})

	t.Run("since filter excludes older games", func(t *testing.T) {
		games, err := stats.ListFinishedGames(ctx, db, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("ListFinishedGames: %v", err)
		}
		if len(games) != 0 {
			t.Errorf("listed %d games after future bound, want 0", len(games))
		}
	})

	t.Run("scoreboard", func(t *testing.T) {
		board, err := stats.GameScoreboard(ctx, db, finished.ID)
		if err != nil {
			t.Fatalf("GameScoreboard: %v", err)
		}
		if board.Game.ID != finished.ID {
			t.Errorf("board game = %s", board.Game.ID)
		}
		if len(board.Players) != 3 || len(board.Entries) != 3 || len(board.Tokens) != 1 {
			t.Errorf("board = %d players, %d entries, %d tokens",
				len(board.Players), len(board.Entries), len(board.Tokens))
		}
		// Players come back in seat order.
		for i, p := range board.Players {
			if p.Position != i {
				t.Errorf("player %d position = %d", i, p.Position)
			}
		}
	})

	t.Run("scoreboard for missing game", func(t *testing.T) {
		if _, err := stats.GameScoreboard(ctx, db, uuid.New()); !errors.Is(err, statsdb.ErrGameNotFound) {
			t.Errorf("expected ErrGameNotFound, got %v", err)
		}
	})
}
