package settings

import (
	"context"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/profile"
)

// ErrNotFound is returned by repositories when no settings row exists
// yet. The service treats it as "use defaults", never as a failure.
var ErrNotFound = errors.New("settings not found")

type (
	Repository interface {
		GetSiteSettings(ctx context.Context) (SiteSettings, error)
		SaveSiteSettings(ctx context.Context, ss *SiteSettings) error
		// Display overrides are per-role visibility toggles keyed by
		// field or section key. Keys absent from the maps keep their
		// catalog default.
		GetDisplayOverrides(ctx context.Context, role string) (fields, sections map[string]bool, err error)
		SaveDisplayOverrides(ctx context.Context, role string, fields, sections map[string]bool) error
	}

	Service interface {
		SiteSettings(ctx context.Context) SiteSettings
		UpdateSiteSettings(ctx context.Context, v *validator.Validate, ss SiteSettings) (SiteSettings, error)
		SetMaintenanceMode(ctx context.Context, on bool) error
		ProfileDisplay(ctx context.Context, role string) (profile.DisplayConfig, error)
		UpdateProfileDisplay(ctx context.Context, role string, fields, sections map[string]bool) error
		InvalidateCache()
	}

	service struct {
		repo   Repository
		logger core.Logger
		ttl    time.Duration

		mu       sync.RWMutex
		cached   *SiteSettings
		cachedAt time.Time
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger, conf *core.Config) Service {
	return &service{
		repo:   repo,
		logger: logger,
		ttl:    conf.SettingsCacheTTL,
	}
}

// SiteSettings returns the current portal settings. Reads are served
// from an in-process cache for the configured TTL; a missing row or a
// storage failure degrades to the built-in defaults so page rendering
// never depends on the settings table being reachable.
func (s *service) SiteSettings(ctx context.Context) SiteSettings {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.cachedAt) < s.ttl {
		ss := *s.cached
		s.mu.RUnlock()
		return ss
	}
	s.mu.RUnlock()

	ss, err := s.repo.GetSiteSettings(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		ss = Default()
	default:
		s.logger.Error("settings: falling back to defaults", err)
		return Default() // transient failure, do not cache
	}

	if ss.EnableCaching {
		s.mu.Lock()
		s.cached = &ss
		s.cachedAt = time.Now()
		s.mu.Unlock()
	}
	return ss
}

// UpdateSiteSettings validates and persists new settings, then drops
// the cache so the next read observes them.
func (s *service) UpdateSiteSettings(ctx context.Context, v *validator.Validate, ss SiteSettings) (SiteSettings, error) {
	if err := ss.Validate(v); err != nil {
		return SiteSettings{}, err
	}
	ss.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveSiteSettings(ctx, &ss); err != nil {
		return SiteSettings{}, errors.Wrap(err, "saving site settings")
	}
	s.InvalidateCache()
	return ss, nil
}

func (s *service) SetMaintenanceMode(ctx context.Context, on bool) error {
	ss, err := s.repo.GetSiteSettings(ctx)
	if errors.Is(err, ErrNotFound) {
		ss = Default()
	} else if err != nil {
		return errors.Wrap(err, "loading site settings")
	}
	ss.MaintenanceMode = on
	ss.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveSiteSettings(ctx, &ss); err != nil {
		return errors.Wrap(err, "saving maintenance mode")
	}
	s.InvalidateCache()
	return nil
}

// ProfileDisplay returns the role's presentation catalog with the
// administrator's visibility overrides applied on top of the built-in
// defaults. Unknown override keys are ignored.
func (s *service) ProfileDisplay(ctx context.Context, role string) (profile.DisplayConfig, error) {
	dc := profile.DefaultDisplayConfig(role)
	fields, sections, err := s.repo.GetDisplayOverrides(ctx, role)
	if errors.Is(err, ErrNotFound) {
		return dc, nil
	} else if err != nil {
		return profile.DisplayConfig{}, errors.Wrapf(err, "loading %s display overrides", role)
	}
	for i, fc := range dc.Fields {
		if visible, ok := fields[fc.Key]; ok {
			dc.Fields[i].Visible = visible
		}
	}
	for i, sc := range dc.Sections {
		if visible, ok := sections[sc.Key]; ok {
			dc.Sections[i].Visible = visible
		}
	}
	return dc, nil
}

func (s *service) UpdateProfileDisplay(ctx context.Context, role string, fields, sections map[string]bool) error {
	dc := profile.DefaultDisplayConfig(role)
	for key := range fields {
		if _, ok := dc.FieldByKey(key); !ok {
			return core.NewValidationError(
				errors.Errorf("unknown %s profile field: %s", role, key),
				core.FieldError{Field: "fields", Error: "unknown field key: " + key},
			)
		}
	}
	for key := range sections {
		if _, ok := dc.SectionByKey(key); !ok {
			return core.NewValidationError(
				errors.Errorf("unknown %s profile section: %s", role, key),
				core.FieldError{Field: "sections", Error: "unknown section key: " + key},
			)
		}
	}
	if err := s.repo.SaveDisplayOverrides(ctx, role, fields, sections); err != nil {
		return errors.Wrapf(err, "saving %s display overrides", role)
	}
	return nil
}

func (s *service) InvalidateCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
