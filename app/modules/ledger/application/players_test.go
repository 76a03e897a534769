package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAddPlayersAssignsPositions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, players := seedGame(t, svc, "Ana", "Bojan")
	for i, p := range players {
		if p.Position != i {
			t.Errorf("player %s at position %d, want %d", p.Name, p.Position, i)
		}
	}

	// Later seats append after the existing ones.
	more, err := svc.AddPlayers(ctx, game.ID, []NewSeat{{Name: "Cene"}})
	if err != nil {
		t.Fatalf("AddPlayers() error: %v", err)
	}
	if more[0].Position != 2 {
		t.Errorf("late seat at position %d, want 2", more[0].Position)
	}
}

func TestAddPlayersRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, _ := seedGame(t, svc, "Ana")

	_, err := svc.AddPlayers(ctx, game.ID, []NewSeat{{Name: "Ana"}})
	if !errors.Is(err, ErrDuplicatePlayer) {
		t.Errorf("AddPlayers(duplicate name) = %v, want ErrDuplicatePlayer", err)
	}
}

func TestAddPlayersRejectsDuplicateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	profileID := uuid.New()
	game, err := svc.CreateGame(ctx, "")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}
	if _, err := svc.AddPlayers(ctx, game.ID, []NewSeat{{Name: "Ana", ProfileID: &profileID}}); err != nil {
		t.Fatalf("AddPlayers() error: %v", err)
	}

	_, err = svc.AddPlayers(ctx, game.ID, []NewSeat{{Name: "Ana K.", ProfileID: &profileID}})
	if !errors.Is(err, ErrDuplicatePlayer) {
		t.Errorf("AddPlayers(duplicate profile) = %v, want ErrDuplicatePlayer", err)
	}
}

func TestAddPlayersOnFinishedGame(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, _ := seedGame(t, svc, "Ana")
	if _, err := svc.FinishGame(ctx, game.ID); err != nil {
		t.Fatalf("FinishGame() error: %v", err)
	}

	_, err := svc.AddPlayers(ctx, game.ID, []NewSeat{{Name: "Bojan"}})
	if !errors.Is(err, ErrGameFinished) {
		t.Errorf("AddPlayers() on finished game = %v, want ErrGameFinished", err)
	}
}

func TestRecomputeTotalDetectsAndRepairsDrift(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, players := seedGame(t, svc, "Ana")
	ana := players[0]
	mustRecord(t, svc, ana.ID, 20)
	mustRecord(t, svc, ana.ID, -5)

	// In sync.
	res, err := svc.RecomputeTotal(ctx, ana.ID, false)
	if err != nil {
		t.Fatalf("RecomputeTotal() error: %v", err)
	}
	if res.Drifted || res.Repaired {
		t.Errorf("RecomputeTotal() = %+v, want no drift", res)
	}

	// Corrupt the cache behind the ledger's back.
	repo.players[ana.ID].TotalScore = 999

	res, err = svc.RecomputeTotal(ctx, ana.ID, false)
	if err != nil {
		t.Fatalf("RecomputeTotal() error: %v", err)
	}
	if !res.Drifted || res.Repaired {
		t.Errorf("dry run = %+v, want drift without repair", res)
	}
	if repo.players[ana.ID].TotalScore != 999 {
		t.Error("dry run modified the cached total")
	}

	res, err = svc.RecomputeTotal(ctx, ana.ID, true)
	if err != nil {
		t.Fatalf("RecomputeTotal(repair) error: %v", err)
	}
	if !res.Repaired || res.LedgerTotal != 15 {
		t.Errorf("repair run = %+v, want repaired ledger total 15", res)
	}
	if repo.players[ana.ID].TotalScore != 15 {
		t.Errorf("cached total after repair = %d, want 15", repo.players[ana.ID].TotalScore)
	}
}
