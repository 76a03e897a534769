package profiledomain

import (
	"time"

	"github.com/google/uuid"
)

// PlayerProfile is a durable identity that links the same person across
// games. Seats without a profile are matched by exact name only.
type PlayerProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
