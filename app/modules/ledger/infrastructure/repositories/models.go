package ledgerdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
)

// Game is the storage model for a scoring session.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,nullzero,notnull,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull"`
	IsActive  bool      `bun:"is_active,notnull,default:true"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Player is the storage model for a seat in one game.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID         uuid.UUID  `bun:"id,pk,type:uuid,nullzero,notnull,default:gen_random_uuid()"`
	GameID     uuid.UUID  `bun:"game_id,type:uuid,notnull"`
	ProfileID  *uuid.UUID `bun:"profile_id,type:uuid,nullzero"`
	Name       string     `bun:"name,notnull"`
	Position   int        `bun:"position,notnull"`
	TotalScore int        `bun:"total_score,notnull,default:0"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ScoreEntry is the storage model for one immutable point event.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:score_entries,alias:se"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,nullzero,notnull,default:gen_random_uuid()"`
	PlayerID  uuid.UUID `bun:"player_id,type:uuid,notnull"`
	GameID    uuid.UUID `bun:"game_id,type:uuid,notnull"`
	Points    int       `bun:"points,notnull"`
	Played    bool      `bun:"played,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// TallyToken is the storage model for a radelc.
type TallyToken struct {
	bun.BaseModel `bun:"table:tally_tokens,alias:tt"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,nullzero,notnull,default:gen_random_uuid()"`
	PlayerID  uuid.UUID `bun:"player_id,type:uuid,notnull"`
	GameID    uuid.UUID `bun:"game_id,type:uuid,notnull"`
	IsUsed    bool      `bun:"is_used,notnull,default:false"`
	Position  int       `bun:"position,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (g *Game) ToDomain() ledgerdomain.Game {
	return ledgerdomain.Game{
		ID:        g.ID,
		Name:      g.Name,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
	}
}

func gameFromDomain(g ledgerdomain.Game) Game {
	return Game{
		ID:        g.ID,
		Name:      g.Name,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
	}
}

func (p *Player) ToDomain() ledgerdomain.Player {
	return ledgerdomain.Player{
		ID:         p.ID,
		GameID:     p.GameID,
		ProfileID:  p.ProfileID,
		Name:       p.Name,
		Position:   p.Position,
		TotalScore: p.TotalScore,
		CreatedAt:  p.CreatedAt,
	}
}

func playerFromDomain(p ledgerdomain.Player) Player {
	return Player{
		ID:         p.ID,
		GameID:     p.GameID,
		ProfileID:  p.ProfileID,
		Name:       p.Name,
		Position:   p.Position,
		TotalScore: p.TotalScore,
		CreatedAt:  p.CreatedAt,
	}
}

func (e *ScoreEntry) ToDomain() ledgerdomain.ScoreEntry {
	return ledgerdomain.ScoreEntry{
		ID:        e.ID,
		PlayerID:  e.PlayerID,
		GameID:    e.GameID,
		Points:    e.Points,
		Played:    e.Played,
		CreatedAt: e.CreatedAt,
	}
}

func entryFromDomain(e ledgerdomain.ScoreEntry) ScoreEntry {
	return ScoreEntry{
		ID:        e.ID,
		PlayerID:  e.PlayerID,
		GameID:    e.GameID,
		Points:    e.Points,
		Played:    e.Played,
		CreatedAt: e.CreatedAt,
	}
}

func (t *TallyToken) ToDomain() ledgerdomain.TallyToken {
	return ledgerdomain.TallyToken{
		ID:        t.ID,
		PlayerID:  t.PlayerID,
		GameID:    t.GameID,
		IsUsed:    t.IsUsed,
		Position:  t.Position,
		CreatedAt: t.CreatedAt,
	}
}

func tokenFromDomain(t ledgerdomain.TallyToken) TallyToken {
	return TallyToken{
		ID:        t.ID,
		PlayerID:  t.PlayerID,
		GameID:    t.GameID,
		IsUsed:    t.IsUsed,
		Position:  t.Position,
		CreatedAt: t.CreatedAt,
	}
}
