// Package ledgerevents defines the versioned topics and payloads the ledger
// module publishes.
package ledgerevents

import (
	"time"

	"github.com/google/uuid"
)

// Versioned topic constants.
const (
	ScoreRecordedV1 = "ledger.score.recorded.v1"
	GameFinishedV1  = "ledger.game.finished.v1"
)

// ScoreRecordedPayloadV1 is published after every accepted score entry.
type ScoreRecordedPayloadV1 struct {
	GameID     uuid.UUID `json:"game_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	Points     int       `json:"points"`
	Played     bool      `json:"played"`
	NewTotal   int       `json:"new_total"`
	TallyReset bool      `json:"tally_reset"`
	RecordedAt time.Time `json:"recorded_at"`
}

// FinalStanding is one player's closing line in a finished game.
type FinalStanding struct {
	PlayerID      uuid.UUID `json:"player_id"`
	ProfileID     *uuid.UUID `json:"profile_id,omitempty"`
	Name          string    `json:"name"`
	TotalScore    int       `json:"total_score"`
	PenaltyPoints int       `json:"penalty_points"`
}

// GameFinishedPayloadV1 is published once when a game transitions to
// finished, after end-of-game penalties have been applied.
type GameFinishedPayloadV1 struct {
	GameID     uuid.UUID       `json:"game_id"`
	FinishedAt time.Time       `json:"finished_at"`
	Standings  []FinalStanding `json:"standings"`
}
