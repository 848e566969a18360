package settings

import (
	"context"
	"testing"
	"time"

	localeEN "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/user"
)

var validate = validator.New()

func init() {
	en := localeEN.New()
	translator, _ := ut.New(en, en).GetTranslator("en")
	core.InitValidators(validate, translator)
}

type fakeRepo struct {
	site     *SiteSettings
	fields   map[string]map[string]bool
	sections map[string]map[string]bool
	getCalls int
	failGet  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		fields:   make(map[string]map[string]bool),
		sections: make(map[string]map[string]bool),
	}
}

func (r *fakeRepo) GetSiteSettings(ctx context.Context) (SiteSettings, error) {
	r.getCalls++
	if r.failGet {
		return SiteSettings{}, context.DeadlineExceeded
	}
	if r.site == nil {
		return SiteSettings{}, ErrNotFound
	}
	return *r.site, nil
}

func (r *fakeRepo) SaveSiteSettings(ctx context.Context, ss *SiteSettings) error {
	cp := *ss
	r.site = &cp
	return nil
}

func (r *fakeRepo) GetDisplayOverrides(ctx context.Context, role string) (map[string]bool, map[string]bool, error) {
	f, fok := r.fields[role]
	s, sok := r.sections[role]
	if !fok && !sok {
		return nil, nil, ErrNotFound
	}
	return f, s, nil
}

func (r *fakeRepo) SaveDisplayOverrides(ctx context.Context, role string, fields, sections map[string]bool) error {
	r.fields[role] = fields
	r.sections[role] = sections
	return nil
}

func newTestService(repo Repository) Service {
	conf := &core.Config{SettingsCacheTTL: time.Minute}
	return NewService(repo, core.NopLogger{}, conf)
}

func TestServiceSiteSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenEmpty", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		ss := svc.SiteSettings(ctx)
		assert.Equal(t, "EduPortal", ss.SiteName)
		assert.Equal(t, DefaultPrimaryColor, ss.PrimaryColor)
		assert.Equal(t, DefaultSecondaryColor, ss.SecondaryColor)
		assert.False(t, ss.MaintenanceMode)
	})

	t.Run("DefaultsOnStorageFailure", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failGet = true
		svc := newTestService(repo)
		ss := svc.SiteSettings(ctx)
		assert.Equal(t, "EduPortal", ss.SiteName)
	})

	t.Run("CachedWithinTTL", func(t *testing.T) {
		repo := newFakeRepo()
		saved := Default()
		saved.SiteName = "Night Campus"
		repo.site = &saved
		svc := newTestService(repo)

		svc.SiteSettings(ctx)
		svc.SiteSettings(ctx)
		svc.SiteSettings(ctx)
		assert.Equal(t, 1, repo.getCalls)
	})

	t.Run("CachingDisabled", func(t *testing.T) {
		repo := newFakeRepo()
		saved := Default()
		saved.EnableCaching = false
		repo.site = &saved
		svc := newTestService(repo)

		svc.SiteSettings(ctx)
		svc.SiteSettings(ctx)
		assert.Equal(t, 2, repo.getCalls)
	})

	t.Run("UpdateInvalidatesCache", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)
		svc.SiteSettings(ctx)

		ns := Default()
		ns.SiteName = "Evening School"
		ns.PrimaryColor = "#112233"
		_, err := svc.UpdateSiteSettings(ctx, validate, ns)
		require.NoError(t, err)

		got := svc.SiteSettings(ctx)
		assert.Equal(t, "Evening School", got.SiteName)
		assert.Equal(t, "#112233", got.PrimaryColor)
	})

	t.Run("UpdateRejectsBadColor", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		ns := Default()
		ns.PrimaryColor = "blue-ish"
		_, err := svc.UpdateSiteSettings(ctx, validate, ns)
		require.Error(t, err)
	})

	t.Run("MaintenanceModeRoundTrip", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		require.NoError(t, svc.SetMaintenanceMode(ctx, true))
		assert.True(t, svc.SiteSettings(ctx).MaintenanceMode)

		require.NoError(t, svc.SetMaintenanceMode(ctx, false))
		assert.False(t, svc.SiteSettings(ctx).MaintenanceMode)
	})
}

func TestServiceProfileDisplay(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenNoOverrides", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		dc, err := svc.ProfileDisplay(ctx, user.RoleStudent)
		require.NoError(t, err)
		for _, fc := range dc.Fields {
			assert.True(t, fc.Visible, fc.Key)
		}
		assert.True(t, dc.ShowStatistics())
	})

	t.Run("OverridesApplied", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)
		err := svc.UpdateProfileDisplay(ctx, user.RoleStudent,
			map[string]bool{"student_id": false},
			map[string]bool{"statistics": false},
		)
		require.NoError(t, err)

		dc, err := svc.ProfileDisplay(ctx, user.RoleStudent)
		require.NoError(t, err)
		fc, ok := dc.FieldByKey("student_id")
		require.True(t, ok)
		assert.False(t, fc.Visible)
		assert.False(t, dc.ShowStatistics())

		// other fields keep their catalog default
		other, _ := dc.FieldByKey("group.name")
		assert.True(t, other.Visible)
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		err := svc.UpdateProfileDisplay(ctx, user.RoleStudent,
			map[string]bool{"shoe_size": false}, nil)
		require.Error(t, err)
		assert.IsType(t, &core.ValidationError{}, err)
	})
}
