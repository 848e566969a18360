package echoweb

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/user"
)

var (
	errUnauthenticated      = echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "invalid username or password")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHTTPNotFound         = echo.NewHTTPError(http.StatusNotFound, "page not found")
)

// newHTTPErrorHandler renders error pages for a browser audience.
// Validation failures surface as field messages; anything unexpected
// is logged with the session user attached and rendered as a plain
// 500 page. signalShutdown is called when a shutdown error is caught.
func (s *Server) newHTTPErrorHandler(signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			for _, vErr := range origErr {
				message = vErr.Translate(s.deps.Translator)
				break
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				message = origErr.Fields[0].Error
			} else {
				message = origErr.Error()
			}
		default:
			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
				usr.Email = claims.Email
			}
			s.deps.Logger.Error(message, errors.Wrap(err, message), usr)

			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
			return
		}

		data := s.newPageData(ctx)
		data["Code"] = code
		data["Message"] = message
		if rErr := ctx.Render(code, "error", data); rErr != nil {
			_ = ctx.String(code, message)
		}
	}
}
