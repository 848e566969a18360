package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/user"
)

// schedulePage renders the week timetable: a student sees their
// group's classes, a teacher sees their own. ?week= selects the
// parity (odd/even), defaulting to every.
func (s *Server) schedulePage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	weekType := ctx.QueryParam("week")
	switch weekType {
	case schedule.WeekOdd, schedule.WeekEven:
	default:
		weekType = schedule.WeekEvery
	}

	var week schedule.Week
	switch usr.Role {
	case user.RoleStudent:
		prof, err := s.deps.ProfileRepo.GetProfile(reqCtx, usr.ID, usr.Role)
		if err != nil {
			if errors.Cause(err) == profile.ErrNotFound {
				return s.renderScheduleEmpty(ctx, weekType)
			}
			return err
		}
		if prof.Student == nil || prof.Student.Group == nil {
			return s.renderScheduleEmpty(ctx, weekType)
		}
		week, err = s.deps.ScheduleSvc.WeekForGroup(reqCtx, prof.Student.Group.ID, weekType)
		if err != nil {
			return err
		}
	default:
		week, err = s.deps.ScheduleSvc.WeekForTeacher(reqCtx, usr.ID, weekType)
		if err != nil {
			return err
		}
	}

	slots, err := s.deps.ScheduleSvc.TimeSlots(reqCtx)
	if err != nil {
		return err
	}

	data := s.newPageData(ctx)
	data["Week"] = week
	data["Slots"] = slots
	return ctx.Render(http.StatusOK, "schedule", data)
}

func (s *Server) renderScheduleEmpty(ctx echo.Context, weekType string) error {
	data := s.newPageData(ctx)
	data["Week"] = schedule.Week{WeekType: weekType}
	data["Slots"] = []schedule.TimeSlot(nil)
	return ctx.Render(http.StatusOK, "schedule", data)
}
