package ledgerservice

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

// ------------------------
// Fake transaction runner
// ------------------------

// fakeTxRunner satisfies TxRunner without a database. The embedded bun.IDB
// stays nil: the in-memory repository never touches it.
type fakeTxRunner struct {
	bun.IDB
	failTx bool
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, _ *sql.TxOptions, fn func(context.Context, bun.Tx) error) error {
	if f.failTx {
		return sql.ErrConnDone
	}
	return fn(ctx, bun.Tx{})
}

// ------------------------
// Fake event bus
// ------------------------

type fakeEventBus struct {
	published map[string][]*message.Message
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{published: map[string][]*message.Message{}}
}

func (f *fakeEventBus) Publish(topic string, messages ...*message.Message) error {
	f.published[topic] = append(f.published[topic], messages...)
	return nil
}

func (f *fakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *fakeEventBus) Close() error { return nil }

// ------------------------
// In-memory repository
// ------------------------

// fakeRepo is an in-memory ledgerdb.Repository. It keeps insertion order for
// entries and tokens so history ordering matches the real created_at sort.
type fakeRepo struct {
	games   map[uuid.UUID]*ledgerdomain.Game
	players map[uuid.UUID]*ledgerdomain.Player
	entries []*ledgerdomain.ScoreEntry
	tokens  []*ledgerdomain.TallyToken

	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		games:   map[uuid.UUID]*ledgerdomain.Game{},
		players: map[uuid.UUID]*ledgerdomain.Player{},
	}
}

func (r *fakeRepo) CreateGame(_ context.Context, _ bun.IDB, game *ledgerdomain.Game) error {
	if r.failWith != nil {
		return r.failWith
	}
	game.ID = uuid.New()
	game.CreatedAt = time.Now()
	cp := *game
	r.games[game.ID] = &cp
	return nil
}

func (r *fakeRepo) GetGame(_ context.Context, _ bun.IDB, gameID uuid.UUID) (*ledgerdomain.Game, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	game, ok := r.games[gameID]
	if !ok {
		return nil, ledgerdb.ErrGameNotFound
	}
	cp := *game
	return &cp, nil
}

func (r *fakeRepo) ListGames(_ context.Context, _ bun.IDB, activeOnly bool) ([]ledgerdomain.Game, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []ledgerdomain.Game
	for _, g := range r.games {
		if activeOnly && !g.IsActive {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) SetGameActive(_ context.Context, _ bun.IDB, gameID uuid.UUID, active bool) error {
	game, ok := r.games[gameID]
	if !ok {
		return ledgerdb.ErrGameNotFound
	}
	game.IsActive = active
	return nil
}

func (r *fakeRepo) DeleteGame(_ context.Context, _ bun.IDB, gameID uuid.UUID) error {
	if _, ok := r.games[gameID]; !ok {
		return ledgerdb.ErrGameNotFound
	}
	delete(r.games, gameID)
	return nil
}

func (r *fakeRepo) InsertPlayers(_ context.Context, _ bun.IDB, players []ledgerdomain.Player) ([]ledgerdomain.Player, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]ledgerdomain.Player, 0, len(players))
	for _, p := range players {
		p.ID = uuid.New()
		p.CreatedAt = time.Now()
		cp := p
		r.players[p.ID] = &cp
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) GetPlayer(_ context.Context, _ bun.IDB, playerID uuid.UUID) (*ledgerdomain.Player, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	player, ok := r.players[playerID]
	if !ok {
		return nil, ledgerdb.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (r *fakeRepo) ListPlayers(_ context.Context, _ bun.IDB, gameID uuid.UUID) ([]ledgerdomain.Player, error) {
	var out []ledgerdomain.Player
	for _, p := range r.players {
		if p.GameID == gameID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeRepo) DeletePlayer(_ context.Context, _ bun.IDB, playerID uuid.UUID) error {
	if _, ok := r.players[playerID]; !ok {
		return ledgerdb.ErrPlayerNotFound
	}
	delete(r.players, playerID)
	return nil
}

func (r *fakeRepo) IncrementTotalScore(_ context.Context, _ bun.IDB, playerID uuid.UUID, delta int) (int, error) {
	player, ok := r.players[playerID]
	if !ok {
		return 0, ledgerdb.ErrPlayerNotFound
	}
	player.TotalScore += delta
	return player.TotalScore, nil
}

func (r *fakeRepo) SetTotalScore(_ context.Context, _ bun.IDB, playerID uuid.UUID, total int) error {
	player, ok := r.players[playerID]
	if !ok {
		return ledgerdb.ErrPlayerNotFound
	}
	player.TotalScore = total
	return nil
}

func (r *fakeRepo) InsertEntry(_ context.Context, _ bun.IDB, entry *ledgerdomain.ScoreEntry) error {
	if r.failWith != nil {
		return r.failWith
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeRepo) ListEntriesByPlayer(_ context.Context, _ bun.IDB, playerID uuid.UUID) ([]ledgerdomain.ScoreEntry, error) {
	var out []ledgerdomain.ScoreEntry
	for _, e := range r.entries {
		if e.PlayerID == playerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListEntriesByGame(_ context.Context, _ bun.IDB, gameID uuid.UUID) ([]ledgerdomain.ScoreEntry, error) {
	var out []ledgerdomain.ScoreEntry
	for _, e := range r.entries {
		if e.GameID == gameID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) InsertTokens(_ context.Context, _ bun.IDB, tokens []ledgerdomain.TallyToken) ([]ledgerdomain.TallyToken, error) {
	out := make([]ledgerdomain.TallyToken, 0, len(tokens))
	for _, t := range tokens {
		t.ID = uuid.New()
		t.CreatedAt = time.Now()
		cp := t
		r.tokens = append(r.tokens, &cp)
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) GetToken(_ context.Context, _ bun.IDB, tokenID uuid.UUID) (*ledgerdomain.TallyToken, error) {
	for _, t := range r.tokens {
		if t.ID == tokenID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ledgerdb.ErrTokenNotFound
}

func (r *fakeRepo) ListTokensByGame(_ context.Context, _ bun.IDB, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error) {
	var out []ledgerdomain.TallyToken
	for _, t := range r.tokens {
		if t.GameID == gameID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeRepo) SetTokenUsed(_ context.Context, _ bun.IDB, tokenID uuid.UUID, used bool) error {
	for _, t := range r.tokens {
		if t.ID == tokenID {
			t.IsUsed = used
			return nil
		}
	}
	return ledgerdb.ErrTokenNotFound
}

func (r *fakeRepo) MarkTokensUsed(_ context.Context, _ bun.IDB, tokenIDs []uuid.UUID) error {
	want := make(map[uuid.UUID]bool, len(tokenIDs))
	for _, id := range tokenIDs {
		want[id] = true
	}
	for _, t := range r.tokens {
		if want[t.ID] {
			t.IsUsed = true
		}
	}
	return nil
}

func (r *fakeRepo) MaxTokenPosition(_ context.Context, _ bun.IDB, gameID uuid.UUID) (int, error) {
	max := -1
	for _, t := range r.tokens {
		if t.GameID == gameID && t.Position > max {
			max = t.Position
		}
	}
	return max, nil
}

var _ ledgerdb.Repository = (*fakeRepo)(nil)

// ------------------------
// Service under test
// ------------------------

const testTokenPenalty = -50

func newTestService(t *testing.T) (*LedgerService, *fakeRepo, *fakeEventBus) {
	t.Helper()
	repo := newFakeRepo()
	bus := newFakeEventBus()
	svc := NewLedgerService(
		repo,
		&fakeTxRunner{},
		bus,
		slog.New(slog.DiscardHandler),
		metrics.NoOpMetrics{},
		testTokenPenalty,
	)
	return svc, repo, bus
}

// seedGame creates an active game with the given seat names.
func seedGame(t *testing.T, svc *LedgerService, names ...string) (ledgerdomain.Game, []ledgerdomain.Player) {
	t.Helper()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}

	seats := make([]NewSeat, len(names))
	for i, n := range names {
		seats[i] = NewSeat{Name: n}
	}
	players, err := svc.AddPlayers(ctx, game.ID, seats)
	if err != nil {
		t.Fatalf("AddPlayers() error: %v", err)
	}
	return game, players
}
