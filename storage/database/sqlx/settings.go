package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/settings"
)

// site_settings is a singleton table: one row, id always true.

type settingsRepository struct {
	db *sqlx.DB
}

var _ settings.Repository = (*settingsRepository)(nil)

func NewSettingsRepository(db *sqlx.DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSiteSettings(ctx context.Context) (settings.SiteSettings, error) {
	var ss settings.SiteSettings
	err := repo.db.GetContext(ctx, &ss, `
		SELECT site_name, site_description, site_keywords, logo_url, favicon_url,
			footer_text, contact_email, contact_phone, social_vk, social_telegram,
			social_instagram, social_youtube, primary_color, secondary_color,
			enable_caching, maintenance_mode, created_at, updated_at
		FROM site_settings WHERE id = TRUE`)
	if err == sql.ErrNoRows {
		return settings.SiteSettings{}, settings.ErrNotFound
	} else if err != nil {
		return settings.SiteSettings{}, errors.Wrap(err, "getting site settings")
	}
	return ss, nil
}

func (repo *settingsRepository) SaveSiteSettings(ctx context.Context, ss *settings.SiteSettings) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO site_settings (id, site_name, site_description, site_keywords,
			logo_url, favicon_url, footer_text, contact_email, contact_phone,
			social_vk, social_telegram, social_instagram, social_youtube,
			primary_color, secondary_color, enable_caching, maintenance_mode,
			created_at, updated_at)
		VALUES (TRUE, :site_name, :site_description, :site_keywords, :logo_url,
			:favicon_url, :footer_text, :contact_email, :contact_phone, :social_vk,
			:social_telegram, :social_instagram, :social_youtube, :primary_color,
			:secondary_color, :enable_caching, :maintenance_mode, NOW(), :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			site_description = EXCLUDED.site_description,
			site_keywords = EXCLUDED.site_keywords,
			logo_url = EXCLUDED.logo_url, favicon_url = EXCLUDED.favicon_url,
			footer_text = EXCLUDED.footer_text,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			social_vk = EXCLUDED.social_vk,
			social_telegram = EXCLUDED.social_telegram,
			social_instagram = EXCLUDED.social_instagram,
			social_youtube = EXCLUDED.social_youtube,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			enable_caching = EXCLUDED.enable_caching,
			maintenance_mode = EXCLUDED.maintenance_mode,
			updated_at = EXCLUDED.updated_at`, ss)
	return errors.Wrap(err, "saving site settings")
}

type overrideRow struct {
	Kind    string `db:"kind"`
	Key     string `db:"key"`
	Visible bool   `db:"visible"`
}

func (repo *settingsRepository) GetDisplayOverrides(ctx context.Context, role string) (map[string]bool, map[string]bool, error) {
	var rows []overrideRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT kind, key, visible FROM profile_display_override WHERE role = $1`, role)
	if err != nil {
		return nil, nil, errors.Wrap(err, "getting display overrides")
	}
	if len(rows) == 0 {
		return nil, nil, settings.ErrNotFound
	}
	fields := make(map[string]bool)
	sections := make(map[string]bool)
	for _, r := range rows {
		switch r.Kind {
		case "field":
			fields[r.Key] = r.Visible
		case "section":
			sections[r.Key] = r.Visible
		}
	}
	return fields, sections, nil
}

func (repo *settingsRepository) SaveDisplayOverrides(ctx context.Context, role string, fields, sections map[string]bool) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning override tx")
	}
	defer func() { _ = tx.Rollback() }()

	save := func(kind string, overrides map[string]bool) error {
		for key, visible := range overrides {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO profile_display_override (role, kind, key, visible)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (role, kind, key) DO UPDATE SET visible = EXCLUDED.visible`,
				role, kind, key, visible); err != nil {
				return errors.Wrapf(err, "saving %s override %s", kind, key)
			}
		}
		return nil
	}
	if err := save("field", fields); err != nil {
		return err
	}
	if err := save("section", sections); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing overrides")
}
