package echoweb

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/iljicevs/eduportal/core/user"
)

func Test_adminSettings(t *testing.T) {
	admin := createUser(t, "Root", "rootadm", "rootadm@test.cd", user.RoleAdmin, true)
	student := createUser(t, "Plain", "plain", "plain@test.cd", user.RoleStudent, true)

	t.Run("admin required", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/admin/settings", student, nil))
		checkCode(t, rec, http.StatusForbidden)
		checkContains(t, rec, "permission denied")
	})

	t.Run("form shows current settings", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/admin/settings", admin, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, `name="site_name"`, `name="primary_color"`, `name="maintenance_mode"`)
	})

	t.Run("update is applied portal wide", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/admin/settings", admin, url.Values{
			"site_name":       {"Night School"},
			"footer_text":     {"All rights reserved"},
			"primary_color":   {"#112233"},
			"secondary_color": {"#445566"},
			"enable_caching":  {"on"},
		}))
		checkRedirect(t, rec, "/admin/settings")

		// the public login page now carries the new branding and theme
		rec = serve(newRequest(http.MethodGet, "/login", nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Night School", "All rights reserved", "--primary-color: #112233")
	})

	t.Run("bad color is rejected", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/admin/settings", admin, url.Values{
			"site_name":     {"Night School"},
			"primary_color": {"not-a-color"},
		}))
		checkCode(t, rec, http.StatusBadRequest)
	})
}

func Test_adminDisplay(t *testing.T) {
	admin := createUser(t, "Curator", "curator", "curator@test.cd", user.RoleAdmin, true)

	t.Run("unknown role", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/admin/display/wizard", admin, nil))
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("form lists the role catalog", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/admin/display/teacher", admin, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec,
			`name="field_position"`,
			`name="field_office_hours"`,
			`name="section_bio"`,
		)
	})

	t.Run("unchecked keys become hidden", func(t *testing.T) {
		// submit the full teacher catalog with office hours left out
		form := url.Values{}
		for _, key := range []string{
			"field_department.name", "field_position", "field_academic_degree",
			"field_academic_title", "field_employment_type", "field_specialization",
			"field_hire_date", "field_office_location",
			"section_bio", "section_courses", "section_publications",
		} {
			form.Set(key, "on")
		}
		rec := serve(newAuthRequest(t, http.MethodPost, "/admin/display/teacher", admin, form))
		checkRedirect(t, rec, "/admin/display/teacher")

		cfg, err := settingsSvc.ProfileDisplay(context.Background(), user.RoleTeacher)
		if err != nil {
			t.Fatalf("ProfileDisplay(): %v", err)
		}
		fc, ok := cfg.FieldByKey("office_hours")
		if !ok || fc.Visible {
			t.Errorf("office_hours still visible: %+v", fc)
		}
		if fc, _ := cfg.FieldByKey("position"); !fc.Visible {
			t.Error("position should stay visible")
		}
	})
}

func Test_maintenanceMode(t *testing.T) {
	admin := createUser(t, "Keeper", "keeper", "keeper@test.cd", user.RoleAdmin, true)
	student := createUser(t, "Locked", "locked", "locked@test.cd", user.RoleStudent, true)

	if err := settingsSvc.SetMaintenanceMode(context.Background(), true); err != nil {
		t.Fatalf("SetMaintenanceMode(): %v", err)
	}
	defer func() {
		if err := settingsSvc.SetMaintenanceMode(context.Background(), false); err != nil {
			t.Fatalf("SetMaintenanceMode(): %v", err)
		}
	}()

	t.Run("students get the maintenance page", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile", student, nil))
		checkCode(t, rec, http.StatusServiceUnavailable)
		checkContains(t, rec, "We will be right back")
	})

	t.Run("administrators pass through", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile", admin, nil))
		checkCode(t, rec, http.StatusOK)
	})

	t.Run("the login page stays reachable", func(t *testing.T) {
		rec := serve(newRequest(http.MethodGet, "/login", nil))
		checkCode(t, rec, http.StatusOK)
	})
}

func Test_favicon(t *testing.T) {
	rec := serve(newRequest(http.MethodGet, "/favicon.ico", nil))
	checkCode(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/static/img/favicon.svg" {
		t.Errorf("Location = %q; want the embedded fallback", loc)
	}
}

func Test_mobileMenu(t *testing.T) {
	t.Run("closed by default", func(t *testing.T) {
		rec := serve(newRequest(http.MethodGet, "/login", nil))
		checkContains(t, rec, `class="nav" id="site-nav"`)
	})

	t.Run("?menu=open renders the drawer open", func(t *testing.T) {
		rec := serve(newRequest(http.MethodGet, "/login?menu=open", nil))
		checkContains(t, rec, `class="nav nav--open" id="site-nav"`)
	})
}
