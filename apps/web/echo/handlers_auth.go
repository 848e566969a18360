package echoweb

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/user"
)

func (s *Server) loginForm(ctx echo.Context) error {
	data := s.newPageData(ctx)
	data["Next"] = ctx.QueryParam("next")
	return ctx.Render(http.StatusOK, "login", data)
}

func (s *Server) login(ctx echo.Context) error {
	uname := strings.TrimSpace(ctx.FormValue("username"))
	pwd := ctx.FormValue("password")

	usr, err := authenticate(ctx.Request().Context(), uname, pwd, s.deps.UserSvc)
	if err != nil {
		data := s.newPageData(ctx)
		data["Error"] = "Invalid username or password."
		data["Username"] = uname
		return ctx.Render(http.StatusBadRequest, "login", data)
	}

	token, err := GenerateToken(s.deps.Conf, GetUserClaims(s.deps.Conf, usr))
	if err != nil {
		return err
	}
	setSessionCookie(ctx, s.deps.Conf, token)

	next := ctx.FormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/profile"
	}
	return ctx.Redirect(http.StatusSeeOther, next)
}

func (s *Server) logout(ctx echo.Context) error {
	clearSessionCookie(ctx, s.deps.Conf)
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) passwordResetForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "password_reset", s.newPageData(ctx))
}

func (s *Server) passwordResetRequest(ctx echo.Context) error {
	email := strings.TrimSpace(ctx.FormValue("email"))

	// an unknown address gets the same confirmation as a known one
	err := s.deps.UserSvc.RequestPasswordReset(ctx.Request().Context(), email)
	if err != nil && errors.Cause(err) != user.ErrNotFound {
		return err
	}

	data := s.newPageData(ctx)
	data["Sent"] = true
	return ctx.Render(http.StatusOK, "password_reset", data)
}

func (s *Server) passwordResetConfirmForm(ctx echo.Context) error {
	data := s.newPageData(ctx)
	data["UID"] = ctx.Param("uid")
	data["Token"] = ctx.Param("token")
	return ctx.Render(http.StatusOK, "password_reset_confirm", data)
}

func (s *Server) passwordResetConfirm(ctx echo.Context) error {
	rp := user.ResetUserPassword{
		UID:             ctx.Param("uid"),
		Token:           ctx.Param("token"),
		Password:        ctx.FormValue("password"),
		PasswordConfirm: ctx.FormValue("password_confirm"),
	}
	if err := rp.Validate(s.deps.Validate); err != nil {
		return err
	}
	if err := s.deps.UserSvc.ResetPassword(ctx.Request().Context(), rp); err != nil {
		return err
	}

	data := s.newPageData(ctx)
	data["Done"] = true
	return ctx.Render(http.StatusOK, "password_reset_confirm", data)
}
