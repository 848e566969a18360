package echoweb

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/user"
)

func (s *Server) ownProfile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	return s.renderProfile(ctx, usr)
}

func (s *Server) userProfile(ctx echo.Context) error {
	usr, err := s.deps.UserSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHTTPNotFound
		}
		return err
	}
	return s.renderProfile(ctx, usr)
}

// renderProfile composes and renders the profile page for an account.
// The ?tab= query selects the active tab; unknown values leave the
// selection on the first tab.
func (s *Server) renderProfile(ctx echo.Context, usr user.User) error {
	reqCtx := ctx.Request().Context()

	cfg, err := s.deps.SettingsSvc.ProfileDisplay(reqCtx, usr.Role)
	if err != nil {
		return err
	}

	prof, err := s.deps.ProfileRepo.GetProfile(reqCtx, usr.ID, usr.Role)
	if err != nil {
		if errors.Cause(err) != profile.ErrNotFound {
			return err
		}
		prof = &profile.Profile{UserID: usr.ID}
	}

	extra := make(map[string]string)
	if cfg.ShowStatistics() {
		summary, err := s.deps.AcademicSvc.Statistics(reqCtx, usr.ID)
		if err != nil {
			return err
		}
		extra["statistics"] = summary.Describe()
	}
	if sc, ok := cfg.SectionByKey("courses"); ok && sc.Visible {
		subjects, err := s.courseList(reqCtx, usr, prof)
		if err != nil {
			return err
		}
		extra["courses"] = strings.Join(subjects, ", ")
	}

	view := s.deps.Composer.Compose(usr, prof, cfg, extra)
	if tab := ctx.QueryParam("tab"); tab != "" {
		view.Tabs.Activate(tab)
	}

	data := s.newPageData(ctx)
	data["View"] = view
	data["Profile"] = prof
	return ctx.Render(http.StatusOK, "profile", data)
}

// courseList resolves the subjects behind the courses tab from the
// timetable: a student's group's subjects, an employee's own classes.
func (s *Server) courseList(ctx context.Context, usr user.User, prof *profile.Profile) ([]string, error) {
	filter := schedule.Filter{TeacherID: usr.ID}
	if usr.Role == user.RoleStudent {
		if prof.Student == nil || prof.Student.Group == nil {
			return nil, nil
		}
		filter = schedule.Filter{GroupID: prof.Student.Group.ID}
	}
	return s.deps.ScheduleSvc.Subjects(ctx, filter)
}
