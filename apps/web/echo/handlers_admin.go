package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iljicevs/eduportal/core/settings"
	"github.com/iljicevs/eduportal/core/user"
)

func (s *Server) settingsForm(ctx echo.Context) error {
	data := s.newPageData(ctx)
	data["Form"] = s.deps.SettingsSvc.SiteSettings(ctx.Request().Context())
	return ctx.Render(http.StatusOK, "admin_settings", data)
}

func (s *Server) updateSettings(ctx echo.Context) error {
	ss := settings.SiteSettings{
		SiteName:        ctx.FormValue("site_name"),
		SiteDescription: ctx.FormValue("site_description"),
		SiteKeywords:    ctx.FormValue("site_keywords"),
		LogoURL:         ctx.FormValue("logo_url"),
		FaviconURL:      ctx.FormValue("favicon_url"),
		FooterText:      ctx.FormValue("footer_text"),
		ContactEmail:    ctx.FormValue("contact_email"),
		ContactPhone:    ctx.FormValue("contact_phone"),
		SocialVK:        ctx.FormValue("social_vk"),
		SocialTelegram:  ctx.FormValue("social_telegram"),
		SocialInstagram: ctx.FormValue("social_instagram"),
		SocialYoutube:   ctx.FormValue("social_youtube"),
		PrimaryColor:    ctx.FormValue("primary_color"),
		SecondaryColor:  ctx.FormValue("secondary_color"),
		EnableCaching:   ctx.FormValue("enable_caching") != "",
		MaintenanceMode: ctx.FormValue("maintenance_mode") != "",
	}
	if _, err := s.deps.SettingsSvc.UpdateSiteSettings(ctx.Request().Context(), s.deps.Validate, ss); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin/settings")
}

func (s *Server) displayForm(ctx echo.Context) error {
	role := ctx.Param("role")
	if !user.IsValidRole(role) {
		return errHTTPNotFound
	}
	cfg, err := s.deps.SettingsSvc.ProfileDisplay(ctx.Request().Context(), role)
	if err != nil {
		return err
	}
	data := s.newPageData(ctx)
	data["Role"] = role
	data["RoleDisplay"] = user.RoleDisplay(role)
	data["Config"] = cfg
	data["Roles"] = user.Roles
	return ctx.Render(http.StatusOK, "admin_display", data)
}

// updateDisplay saves the per-role visibility toggles. Every catalog
// key is submitted, so an unchecked box reads as hidden.
func (s *Server) updateDisplay(ctx echo.Context) error {
	role := ctx.Param("role")
	if !user.IsValidRole(role) {
		return errHTTPNotFound
	}
	reqCtx := ctx.Request().Context()

	cfg, err := s.deps.SettingsSvc.ProfileDisplay(reqCtx, role)
	if err != nil {
		return err
	}
	fields := make(map[string]bool, len(cfg.Fields))
	for _, fc := range cfg.Fields {
		fields[fc.Key] = ctx.FormValue("field_"+fc.Key) != ""
	}
	sections := make(map[string]bool, len(cfg.Sections))
	for _, sc := range cfg.Sections {
		sections[sc.Key] = ctx.FormValue("section_"+sc.Key) != ""
	}

	if err := s.deps.SettingsSvc.UpdateProfileDisplay(reqCtx, role, fields, sections); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin/display/"+role)
}
