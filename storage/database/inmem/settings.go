package inmemdb

import (
	"context"

	"github.com/iljicevs/eduportal/core/settings"
)

type settingsRepository struct {
	db *DB
}

var _ settings.Repository = (*settingsRepository)(nil)

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSiteSettings(ctx context.Context) (settings.SiteSettings, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.db.site == nil {
		return settings.SiteSettings{}, settings.ErrNotFound
	}
	return *repo.db.site, nil
}

func (repo *settingsRepository) SaveSiteSettings(ctx context.Context, ss *settings.SiteSettings) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cp := *ss
	repo.db.site = &cp
	return nil
}

func (repo *settingsRepository) GetDisplayOverrides(ctx context.Context, role string) (fields, sections map[string]bool, err error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	set, ok := repo.db.overrides[role]
	if !ok {
		return nil, nil, settings.ErrNotFound
	}
	fields = make(map[string]bool, len(set.fields))
	for k, v := range set.fields {
		fields[k] = v
	}
	sections = make(map[string]bool, len(set.sections))
	for k, v := range set.sections {
		sections[k] = v
	}
	return fields, sections, nil
}

func (repo *settingsRepository) SaveDisplayOverrides(ctx context.Context, role string, fields, sections map[string]bool) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	set, ok := repo.db.overrides[role]
	if !ok {
		set = overrideSet{fields: make(map[string]bool), sections: make(map[string]bool)}
	}
	for k, v := range fields {
		set.fields[k] = v
	}
	for k, v := range sections {
		set.sections[k] = v
	}
	repo.db.overrides[role] = set
	return nil
}
