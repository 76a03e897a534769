package profiledb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	profiledomain "github.com/tarok-klub/tarok-backend/app/modules/profile/domain"
)

// ErrProfileNotFound is returned when a profile lookup matches nothing.
var ErrProfileNotFound = errors.New("profile not found")

// Repository handles database operations for player profiles.
type Repository interface {
	// GetOrCreateByName returns the profile with the exact name, creating
	// it when none exists.
	GetOrCreateByName(ctx context.Context, db bun.IDB, name string) (profiledomain.PlayerProfile, error)
	GetProfile(ctx context.Context, db bun.IDB, profileID uuid.UUID) (profiledomain.PlayerProfile, error)
	ListProfiles(ctx context.Context, db bun.IDB) ([]profiledomain.PlayerProfile, error)
	// SearchProfiles matches names containing the query, case-insensitive.
	SearchProfiles(ctx context.Context, db bun.IDB, query string) ([]profiledomain.PlayerProfile, error)
}
