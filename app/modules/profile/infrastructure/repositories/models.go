package profiledb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	profiledomain "github.com/tarok-klub/tarok-backend/app/modules/profile/domain"
)

// PlayerProfile is the storage model for a durable player identity.
type PlayerProfile struct {
	bun.BaseModel `bun:"table:player_profiles,alias:pp"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,nullzero,notnull,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (p *PlayerProfile) ToDomain() profiledomain.PlayerProfile {
	return profiledomain.PlayerProfile{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}
