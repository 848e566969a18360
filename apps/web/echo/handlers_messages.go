package echoweb

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/messaging"
	"github.com/iljicevs/eduportal/core/user"
)

func (s *Server) inbox(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	msgs, err := s.deps.MessagingSvc.Inbox(ctx.Request().Context(), usr.ID)
	if err != nil {
		return err
	}
	data := s.newPageData(ctx)
	data["Messages"] = msgs
	data["Box"] = "inbox"
	return ctx.Render(http.StatusOK, "messages", data)
}

func (s *Server) sentMessages(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	msgs, err := s.deps.MessagingSvc.Sent(ctx.Request().Context(), usr.ID)
	if err != nil {
		return err
	}
	data := s.newPageData(ctx)
	data["Messages"] = msgs
	data["Box"] = "sent"
	return ctx.Render(http.StatusOK, "messages", data)
}

func (s *Server) composeForm(ctx echo.Context) error {
	data := s.newPageData(ctx)
	data["To"] = ctx.QueryParam("to")
	return ctx.Render(http.StatusOK, "message_compose", data)
}

func (s *Server) composeMessage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	recipient, err := s.deps.UserSvc.GetByUsernameOrEmail(
		reqCtx, strings.TrimSpace(ctx.FormValue("recipient")))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(err,
				core.FieldError{Field: "recipient", Error: "no such user"})
		}
		return err
	}

	m := messaging.Message{
		SenderID:      usr.ID,
		SenderName:    usr.FullName(),
		RecipientID:   recipient.ID,
		RecipientName: recipient.FullName(),
		Subject:       ctx.FormValue("subject"),
		Body:          ctx.FormValue("body"),
	}
	if _, err := s.deps.MessagingSvc.Compose(reqCtx, s.deps.Validate, m, recipient.Email); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/messages/sent")
}

func (s *Server) readMessage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	m, err := s.deps.MessagingSvc.Read(ctx.Request().Context(), usr.ID, ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case messaging.ErrNotFound, messaging.ErrNotAParty:
			return errHTTPNotFound
		}
		return err
	}
	data := s.newPageData(ctx)
	data["Message"] = m
	data["IsRecipient"] = m.RecipientID == usr.ID
	if m.RecipientID == usr.ID {
		if sender, err := s.deps.UserSvc.GetByID(ctx.Request().Context(), m.SenderID); err == nil {
			data["ReplyTo"] = sender.Username
		}
	}
	return ctx.Render(http.StatusOK, "message_detail", data)
}

func (s *Server) starMessage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	starred := ctx.FormValue("starred") != "false"
	err = s.deps.MessagingSvc.SetStarred(ctx.Request().Context(), usr.ID, ctx.Param("id"), starred)
	if err != nil {
		switch errors.Cause(err) {
		case messaging.ErrNotFound, messaging.ErrNotAParty:
			return errHTTPNotFound
		}
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/messages/"+ctx.Param("id"))
}

func (s *Server) deleteMessage(ctx echo.Context) error {
	usr, err := getContextUser(ctx, s.deps.UserSvc)
	if err != nil {
		return err
	}
	err = s.deps.MessagingSvc.Delete(ctx.Request().Context(), usr.ID, ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case messaging.ErrNotFound, messaging.ErrNotAParty:
			return errHTTPNotFound
		}
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/messages")
}
