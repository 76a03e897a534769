package api

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	profileservice "github.com/tarok-klub/tarok-backend/app/modules/profile/application"
	profiledomain "github.com/tarok-klub/tarok-backend/app/modules/profile/domain"
	statsservice "github.com/tarok-klub/tarok-backend/app/modules/stats/application"
	"github.com/tarok-klub/tarok-backend/app/shared/results"
	"github.com/tarok-klub/tarok-backend/config"
	"github.com/tarok-klub/tarok-backend/pkg/jwt"
)

// fakeLedger is a programmable ledger service stub. Unset funcs return zero
// values.
type fakeLedger struct {
	CreateGameFunc    func(ctx context.Context, name string) (ledgerdomain.Game, error)
	GetGameFunc       func(ctx context.Context, gameID uuid.UUID) (ledgerservice.GameDetail, error)
	ListGamesFunc     func(ctx context.Context, activeOnly bool) ([]ledgerdomain.Game, error)
	DeleteGameFunc    func(ctx context.Context, gameID uuid.UUID) error
	FinishGameFunc    func(ctx context.Context, gameID uuid.UUID) (results.OperationResult[ledgerservice.FinishGameResult, ledgerservice.FinishGameFailure], error)
	AddPlayersFunc    func(ctx context.Context, gameID uuid.UUID, seats []ledgerservice.NewSeat) ([]ledgerdomain.Player, error)
	RemovePlayerFunc  func(ctx context.Context, playerID uuid.UUID) error
	RecordScoreFunc   func(ctx context.Context, playerID uuid.UUID, points int, played bool) (results.OperationResult[ledgerservice.RecordScoreResult, ledgerservice.RecordScoreFailure], error)
	PlayerHistoryFunc func(ctx context.Context, playerID uuid.UUID) (ledgerdomain.PlayerHistory, error)
	GameHistoryFunc   func(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.PlayerHistory, error)
	AddTokenRoundFunc func(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error)
	ToggleTokenFunc   func(ctx context.Context, tokenID uuid.UUID) (ledgerdomain.TallyToken, error)
	RecomputeFunc     func(ctx context.Context, playerID uuid.UUID, repair bool) (ledgerservice.ReconcileResult, error)
}

func (f *fakeLedger) CreateGame(ctx context.Context, name string) (ledgerdomain.Game, error) {
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, name)
	}
	return ledgerdomain.Game{}, nil
}

func (f *fakeLedger) GetGame(ctx context.Context, gameID uuid.UUID) (ledgerservice.GameDetail, error) {
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return ledgerservice.GameDetail{}, nil
}

func (f *fakeLedger) ListGames(ctx context.Context, activeOnly bool) ([]ledgerdomain.Game, error) {
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeLedger) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, gameID)
	}
	return nil
}

func (f *fakeLedger) FinishGame(ctx context.Context, gameID uuid.UUID) (results.OperationResult[ledgerservice.FinishGameResult, ledgerservice.FinishGameFailure], error) {
	if f.FinishGameFunc != nil {
		return f.FinishGameFunc(ctx, gameID)
	}
	return results.Ok[ledgerservice.FinishGameResult, ledgerservice.FinishGameFailure](ledgerservice.FinishGameResult{}), nil
}

func (f *fakeLedger) AddPlayers(ctx context.Context, gameID uuid.UUID, seats []ledgerservice.NewSeat) ([]ledgerdomain.Player, error) {
	if f.AddPlayersFunc != nil {
		return f.AddPlayersFunc(ctx, gameID, seats)
	}
	return nil, nil
}

func (f *fakeLedger) RemovePlayer(ctx context.Context, playerID uuid.UUID) error {
	if f.RemovePlayerFunc != nil {
		return f.RemovePlayerFunc(ctx, playerID)
	}
	return nil
}

func (f *fakeLedger) RecordScore(ctx context.Context, playerID uuid.UUID, points int, played bool) (results.OperationResult[ledgerservice.RecordScoreResult, ledgerservice.RecordScoreFailure], error) {
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, playerID, points, played)
	}
	return results.Ok[ledgerservice.RecordScoreResult, ledgerservice.RecordScoreFailure](ledgerservice.RecordScoreResult{}), nil
}

func (f *fakeLedger) PlayerHistory(ctx context.Context, playerID uuid.UUID) (ledgerdomain.PlayerHistory, error) {
	if f.PlayerHistoryFunc != nil {
		return f.PlayerHistoryFunc(ctx, playerID)
	}
	return ledgerdomain.PlayerHistory{}, nil
}

func (f *fakeLedger) GameHistory(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.PlayerHistory, error) {
	if f.GameHistoryFunc != nil {
		return f.GameHistoryFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *fakeLedger) AddTokenRound(ctx context.Context, gameID uuid.UUID) ([]ledgerdomain.TallyToken, error) {
	if f.AddTokenRoundFunc != nil {
		return f.AddTokenRoundFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *fakeLedger) ToggleToken(ctx context.Context, tokenID uuid.UUID) (ledgerdomain.TallyToken, error) {
	if f.ToggleTokenFunc != nil {
		return f.ToggleTokenFunc(ctx, tokenID)
	}
	return ledgerdomain.TallyToken{}, nil
}

func (f *fakeLedger) RecomputeTotal(ctx context.Context, playerID uuid.UUID, repair bool) (ledgerservice.ReconcileResult, error) {
	if f.RecomputeFunc != nil {
		return f.RecomputeFunc(ctx, playerID, repair)
	}
	return ledgerservice.ReconcileResult{}, nil
}

var _ ledgerservice.Service = (*fakeLedger)(nil)

// fakeStats stubs the stats service.
type fakeStats struct {
	LeaderboardFunc     func(ctx context.Context, since *time.Time) (statsservice.LeaderboardResult, error)
	GameStandingsFunc   func(ctx context.Context, gameID uuid.UUID) (statsservice.GameStandingsResult, error)
	ProgressionFunc     func(ctx context.Context, gameID uuid.UUID) (statsservice.ChartResult, error)
	ExportStandingsFunc func(ctx context.Context, gameID uuid.UUID) (statsservice.ExportResult, error)
}

func (f *fakeStats) Leaderboard(ctx context.Context, since *time.Time) (statsservice.LeaderboardResult, error) {
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, since)
	}
	return statsservice.LeaderboardResult{}, nil
}

func (f *fakeStats) GameStandings(ctx context.Context, gameID uuid.UUID) (statsservice.GameStandingsResult, error) {
	if f.GameStandingsFunc != nil {
		return f.GameStandingsFunc(ctx, gameID)
	}
	return statsservice.GameStandingsResult{}, nil
}

func (f *fakeStats) ProgressionChart(ctx context.Context, gameID uuid.UUID) (statsservice.ChartResult, error) {
	if f.ProgressionFunc != nil {
		return f.ProgressionFunc(ctx, gameID)
	}
	return statsservice.ChartResult{}, nil
}

func (f *fakeStats) ExportStandings(ctx context.Context, gameID uuid.UUID) (statsservice.ExportResult, error) {
	if f.ExportStandingsFunc != nil {
		return f.ExportStandingsFunc(ctx, gameID)
	}
	return statsservice.ExportResult{}, nil
}

func (f *fakeStats) RefreshLeaderboard(context.Context) error { return nil }

var _ statsservice.Service = (*fakeStats)(nil)

// fakeProfiles stubs the profile service.
type fakeProfiles struct {
	GetOrCreateFunc func(ctx context.Context, name string) (profiledomain.PlayerProfile, error)
	GetProfileFunc  func(ctx context.Context, profileID uuid.UUID) (profiledomain.PlayerProfile, error)
	ListFunc        func(ctx context.Context) ([]profiledomain.PlayerProfile, error)
	SearchFunc      func(ctx context.Context, query string) ([]profiledomain.PlayerProfile, error)
}

func (f *fakeProfiles) GetOrCreateByName(ctx context.Context, name string) (profiledomain.PlayerProfile, error) {
	if f.GetOrCreateFunc != nil {
		return f.GetOrCreateFunc(ctx, name)
	}
	return profiledomain.PlayerProfile{}, nil
}

func (f *fakeProfiles) GetProfile(ctx context.Context, profileID uuid.UUID) (profiledomain.PlayerProfile, error) {
	if f.GetProfileFunc != nil {
		return f.GetProfileFunc(ctx, profileID)
	}
	return profiledomain.PlayerProfile{}, nil
}

func (f *fakeProfiles) ListProfiles(ctx context.Context) ([]profiledomain.PlayerProfile, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return nil, nil
}

func (f *fakeProfiles) SearchProfiles(ctx context.Context, query string) ([]profiledomain.PlayerProfile, error) {
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query)
	}
	return nil, nil
}

var _ profileservice.Service = (*fakeProfiles)(nil)

// newTestServer builds a server over the fakes with auth disabled.
func newTestServer(ledger *fakeLedger, stats *fakeStats, profiles *fakeProfiles) *httptest.Server {
	return newTestServerWithJWT(ledger, stats, profiles, nil)
}

func newTestServerWithJWT(ledger *fakeLedger, stats *fakeStats, profiles *fakeProfiles, jwtService jwt.Service) *httptest.Server {
	if ledger == nil {
		ledger = &fakeLedger{}
	}
	if stats == nil {
		stats = &fakeStats{}
	}
	if profiles == nil {
		profiles = &fakeProfiles{}
	}
	cfg := &config.Config{}
	cfg.HTTP.Addr = ":0"

	srv := NewServer(cfg, slog.New(slog.DiscardHandler), ledger, stats, profiles, jwtService, nil)
	return httptest.NewServer(srv.Routes(nil))
}
