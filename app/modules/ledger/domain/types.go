// Package ledgerdomain holds the ledger entities and the pure scoring
// functions the rest of the module builds on.
package ledgerdomain

import (
	"time"

	"github.com/google/uuid"
)

// Game is one scoring session.
type Game struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Player is a participant within a single game. TotalScore caches the sum of
// the player's entry points; the ledger is authoritative.
type Player struct {
	ID         uuid.UUID  `json:"id"`
	GameID     uuid.UUID  `json:"game_id"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty"`
	Name       string     `json:"name"`
	Position   int        `json:"position"`
	TotalScore int        `json:"total_score"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ScoreEntry is one immutable point-delta event. Entries are append-only and
// never reordered; insertion order is the chronological order.
type ScoreEntry struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  uuid.UUID `json:"player_id"`
	GameID    uuid.UUID `json:"game_id"`
	Points    int       `json:"points"`
	Played    bool      `json:"played"`
	CreatedAt time.Time `json:"created_at"`
}

// TallyToken ("radelc") is a per-player counter token. Every token still
// unused when the game finishes converts into a penalty entry.
type TallyToken struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  uuid.UUID `json:"player_id"`
	GameID    uuid.UUID `json:"game_id"`
	IsUsed    bool      `json:"is_used"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is a score entry annotated with the running total up to and
// including it, the shape the history views render.
type HistoryEntry struct {
	Entry        ScoreEntry `json:"entry"`
	RunningTotal int        `json:"running_total"`
}

// PlayerHistory is one player's full annotated ledger.
type PlayerHistory struct {
	Player      Player         `json:"player"`
	Entries     []HistoryEntry `json:"entries"`
	PlayedCount int            `json:"played_count"`
}
