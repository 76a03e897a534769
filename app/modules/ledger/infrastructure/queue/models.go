package ledgerqueue

import (
	"github.com/google/uuid"
)

// ReconcileTotalsJob re-derives cached player totals from the entry ledger.
// A nil PlayerID sweeps every player in every game.
type ReconcileTotalsJob struct {
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
}

// Kind returns the job type identifier for River.
func (ReconcileTotalsJob) Kind() string { return "ledger_reconcile_totals" }

// JobInfo represents information about a scheduled job (for debugging/monitoring).
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
