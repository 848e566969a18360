package echoweb

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/academic"
	"github.com/iljicevs/eduportal/core/messaging"
	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/settings"
	"github.com/iljicevs/eduportal/core/user"
	appfs "github.com/iljicevs/eduportal/fs"
)

type (
	// ServerDeps carries everything the portal server needs.
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        user.Service
		SettingsSvc    settings.Service
		ScheduleSvc    schedule.Service
		AcademicSvc    academic.Service
		MessagingSvc   messaging.Service
		ProfileRepo    profile.Repository
		Composer       *profile.Composer
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	// Server is the portal's HTTP front: echo wired with the session
	// middleware, the template renderer and all page handlers.
	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) (*Server, error) {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	if err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setup() error {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	s.app.Renderer = renderer
	s.app.HTTPErrorHandler = s.newHTTPErrorHandler(s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	staticFS, err := fs.Sub(appfs.FS, "assets/static")
	if err != nil {
		return err
	}

	s.app.GET("/healthz", s.healthz)
	s.app.GET("/favicon.ico", s.favicon)
	s.app.GET("/static/*", echo.WrapHandler(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	s.app.GET("/login", s.loginForm)
	s.app.POST("/login", s.login)
	s.app.POST("/logout", s.logout)
	s.app.GET("/password-reset", s.passwordResetForm)
	s.app.POST("/password-reset", s.passwordResetRequest)
	s.app.GET("/password-reset/:uid/:token", s.passwordResetConfirmForm)
	s.app.POST("/password-reset/:uid/:token", s.passwordResetConfirm)

	session := middleware.JWTWithConfig(newSessionConfig(conf))
	auth := s.app.Group("", session, s.maintenanceMiddleware)

	// registered after the group: echo's Group("") re-registers "/",
	// so the home route must come later to win
	s.app.GET("/", s.home)

	auth.GET("/profile", s.ownProfile)
	auth.GET("/users/:id", s.userProfile)
	auth.GET("/schedule", s.schedulePage)
	auth.GET("/grades", s.gradesPage)
	auth.POST("/grades", s.recordGrade,
		roleMiddleware(user.RoleTeacher, user.RoleAdmin))

	auth.GET("/messages", s.inbox)
	auth.GET("/messages/sent", s.sentMessages)
	auth.GET("/messages/compose", s.composeForm)
	auth.POST("/messages", s.composeMessage)
	auth.GET("/messages/:id", s.readMessage)
	auth.POST("/messages/:id/star", s.starMessage)
	auth.POST("/messages/:id/delete", s.deleteMessage)

	admin := auth.Group("/admin", roleMiddleware(user.RoleAdmin))
	admin.GET("/settings", s.settingsForm)
	admin.POST("/settings", s.updateSettings)
	admin.GET("/display/:role", s.displayForm)
	admin.POST("/display/:role", s.updateDisplay)

	return nil
}

// Start runs the listener in the background; failures land on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s.errs <- s.app.Start(s.deps.Conf.Server.Addr)
	}()
}

func (s *Server) Errors() <-chan error             { return s.errs }
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown requests a graceful stop from the main goroutine.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }
func (s *Server) Close() error                       { return s.app.Close() }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// newPageData assembles the base template context shared by every
// page: site settings (theming, meta), the session user when present,
// their unread message count and the mobile menu state.
func (s *Server) newPageData(ctx echo.Context) echo.Map {
	reqCtx := ctx.Request().Context()

	menu := new(profile.Menu)
	if ctx.QueryParam("menu") == "open" {
		menu.Open()
	}

	data := echo.Map{
		"Settings": s.deps.SettingsSvc.SiteSettings(reqCtx),
		"Menu":     menu,
		"Unread":   0,
	}
	if usr, err := getContextUser(ctx, s.deps.UserSvc); err == nil {
		data["User"] = &usr
		if n, err := s.deps.MessagingSvc.UnreadCount(reqCtx, usr.ID); err == nil {
			data["Unread"] = n
		}
	}
	return data
}

// maintenanceMiddleware serves the maintenance page to everyone but
// administrators while maintenance mode is on.
func (s *Server) maintenanceMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ss := s.deps.SettingsSvc.SiteSettings(ctx.Request().Context())
		if !ss.MaintenanceMode {
			return next(ctx)
		}
		if claims, err := getContextClaims(ctx); err == nil && claims.Role == user.RoleAdmin {
			return next(ctx)
		}
		return ctx.Render(http.StatusServiceUnavailable, "maintenance", s.newPageData(ctx))
	}
}

func (s *Server) home(ctx echo.Context) error {
	if _, err := ctx.Cookie(s.deps.Conf.Server.SessionCookie); err == nil {
		return ctx.Redirect(http.StatusSeeOther, "/profile")
	}
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) healthz(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

// favicon redirects to the configured icon, falling back to the
// embedded static one.
func (s *Server) favicon(ctx echo.Context) error {
	ss := s.deps.SettingsSvc.SiteSettings(ctx.Request().Context())
	if ss.FaviconURL != "" {
		return ctx.Redirect(http.StatusFound, ss.FaviconURL)
	}
	return ctx.Redirect(http.StatusFound, "/static/img/favicon.svg")
}
