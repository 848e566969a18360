package inmemdb

import (
	"context"

	"github.com/iljicevs/eduportal/core/profile"
)

type profileRepository struct {
	db *DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) GetProfile(ctx context.Context, userID, role string) (*profile.Profile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	p, ok := repo.db.profiles[userID]
	if !ok || p.Role() != role {
		return nil, profile.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (repo *profileRepository) UpsertProfile(ctx context.Context, p *profile.Profile) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp := *p
	repo.db.profiles[p.UserID] = &cp
	return nil
}
