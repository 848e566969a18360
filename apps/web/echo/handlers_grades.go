package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/academic"
	"github.com/iljicevs/eduportal/core/user"
)

// gradesPage shows a student their own grades with summary
// statistics; teaching staff see the grades they have given.
func (s *Server) gradesPage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	data := s.newPageData(ctx)

	if usr.Role == user.RoleStudent {
		grades, err := s.deps.AcademicSvc.StudentGrades(reqCtx, usr.ID)
		if err != nil {
			return err
		}
		summary, err := s.deps.AcademicSvc.Statistics(reqCtx, usr.ID)
		if err != nil {
			return err
		}
		data["Grades"] = grades
		data["Summary"] = summary
	} else {
		grades, err := s.deps.AcademicSvc.TeacherGrades(reqCtx, usr.ID)
		if err != nil {
			return err
		}
		data["Grades"] = grades
		data["CanRecord"] = usr.Role == user.RoleTeacher || usr.Role == user.RoleAdmin
		data["Kinds"] = academic.Kinds
	}
	return ctx.Render(http.StatusOK, "grades", data)
}

func (s *Server) recordGrade(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(ctx.FormValue("value"), 64)
	if err != nil {
		return core.NewValidationError(err,
			core.FieldError{Field: "value", Error: "must be a number"})
	}
	g := academic.Grade{
		StudentID: ctx.FormValue("student_id"),
		TeacherID: usr.ID,
		Subject:   ctx.FormValue("subject"),
		Kind:      ctx.FormValue("kind"),
		Value:     value,
		Comment:   ctx.FormValue("comment"),
	}
	if _, err := s.deps.AcademicSvc.Record(ctx.Request().Context(), s.deps.Validate, g); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/grades")
}
