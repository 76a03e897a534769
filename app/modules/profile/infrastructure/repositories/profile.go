package profiledb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	profiledomain "github.com/tarok-klub/tarok-backend/app/modules/profile/domain"
)

// ProfileDB implements the Repository interface using bun.
type ProfileDB struct{}

func (p *ProfileDB) GetOrCreateByName(ctx context.Context, db bun.IDB, name string) (profiledomain.PlayerProfile, error) {
	profile := &PlayerProfile{Name: name}
	err := db.NewInsert().
		Model(profile).
		On("CONFLICT (name) DO NOTHING").
		Returning("*").
		Scan(ctx)
	if err == nil {
		return profile.ToDomain(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return profiledomain.PlayerProfile{}, fmt.Errorf("failed to insert profile: %w", err)
	}

	// Conflict: the name already exists, fetch the winning row.
	var existing PlayerProfile
	if err := db.NewSelect().
		Model(&existing).
		Where("pp.name = ?", name).
		Scan(ctx); err != nil {
		return profiledomain.PlayerProfile{}, fmt.Errorf("failed to fetch existing profile: %w", err)
	}
	return existing.ToDomain(), nil
}

func (p *ProfileDB) GetProfile(ctx context.Context, db bun.IDB, profileID uuid.UUID) (profiledomain.PlayerProfile, error) {
	var profile PlayerProfile
	err := db.NewSelect().
		Model(&profile).
		Where("pp.id = ?", profileID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiledomain.PlayerProfile{}, ErrProfileNotFound
		}
		return profiledomain.PlayerProfile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile.ToDomain(), nil
}

func (p *ProfileDB) ListProfiles(ctx context.Context, db bun.IDB) ([]profiledomain.PlayerProfile, error) {
	var rows []PlayerProfile
	if err := db.NewSelect().
		Model(&rows).
		Order("pp.name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	profiles := make([]profiledomain.PlayerProfile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.ToDomain())
	}
	return profiles, nil
}

func (p *ProfileDB) SearchProfiles(ctx context.Context, db bun.IDB, query string) ([]profiledomain.PlayerProfile, error) {
	var rows []PlayerProfile
	if err := db.NewSelect().
		Model(&rows).
		Where("pp.name ILIKE ?", "%"+query+"%").
		Order("pp.name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	profiles := make([]profiledomain.PlayerProfile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.ToDomain())
	}
	return profiles, nil
}

var _ Repository = (*ProfileDB)(nil)
