package ledgerservice

import (
	"context"
	"errors"
	"testing"
)

func TestAddTokenRoundPositions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, players := seedGame(t, svc, "Ana", "Bojan", "Cene")

	first, err := svc.AddTokenRound(ctx, game.ID)
	if err != nil {
		t.Fatalf("AddTokenRound() error: %v", err)
	}
	if len(first) != len(players) {
		t.Fatalf("first round handed out %d tokens, want %d", len(first), len(players))
	}
	for _, tok := range first {
		if tok.Position != 0 {
			t.Errorf("first round token at position %d, want 0", tok.Position)
		}
		if tok.IsUsed {
			t.Error("fresh token is already used")
		}
	}

	second, err := svc.AddTokenRound(ctx, game.ID)
	if err != nil {
		t.Fatalf("AddTokenRound() error: %v", err)
	}
	for _, tok := range second {
		if tok.Position != 1 {
			t.Errorf("second round token at position %d, want 1", tok.Position)
		}
	}
}

func TestAddTokenRoundRequiresPlayers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "empty table")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}

	_, err = svc.AddTokenRound(ctx, game.ID)
	if !errors.Is(err, ErrNoPlayers) {
		t.Errorf("AddTokenRound() on empty game = %v, want ErrNoPlayers", err)
	}
}

func TestToggleTokenFlipsBothWays(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, _ := seedGame(t, svc, "Ana")
	tokens, err := svc.AddTokenRound(ctx, game.ID)
	if err != nil {
		t.Fatalf("AddTokenRound() error: %v", err)
	}
	tok := tokens[0]

	used, err := svc.ToggleToken(ctx, tok.ID)
	if err != nil {
		t.Fatalf("ToggleToken() error: %v", err)
	}
	if !used.IsUsed {
		t.Error("first toggle did not mark the token used")
	}

	unused, err := svc.ToggleToken(ctx, tok.ID)
	if err != nil {
		t.Fatalf("ToggleToken() error: %v", err)
	}
	if unused.IsUsed {
		t.Error("second toggle did not mark the token unused")
	}
}

func TestToggleTokenOnFinishedGame(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	game, _ := seedGame(t, svc, "Ana")
	tokens, err := svc.AddTokenRound(ctx, game.ID)
	if err != nil {
		t.Fatalf("AddTokenRound() error: %v", err)
	}
	if _, err := svc.FinishGame(ctx, game.ID); err != nil {
		t.Fatalf("FinishGame() error: %v", err)
	}

	if _, err := svc.ToggleToken(ctx, tokens[0].ID); !errors.Is(err, ErrGameFinished) {
		t.Errorf("ToggleToken() on finished game = %v, want ErrGameFinished", err)
	}
}
