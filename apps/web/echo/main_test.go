package echoweb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/academic"
	"github.com/iljicevs/eduportal/core/messaging"
	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/settings"
	"github.com/iljicevs/eduportal/core/user"
	emailsvc "github.com/iljicevs/eduportal/services/email"
	inmemdb "github.com/iljicevs/eduportal/storage/database/inmem"
)

var (
	conf *core.Config
	app  *Server

	usrRepo     user.Repository
	profRepo    profile.Repository
	usrSvc      user.Service
	settingsSvc settings.Service
	scheduleSvc schedule.Service
	academicSvc academic.Service
	msgSvc      messaging.Service
	validate    *validator.Validate
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.TestMode = true
	conf.SettingsCacheTTL = 0 // settings reads always hit the repo

	logger := core.NopLogger{}

	// set up storage
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	profRepo = inmemdb.NewProfileRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewServiceMock(usrRepo, mailSvc, conf)
	settingsSvc = settings.NewService(inmemdb.NewSettingsRepository(db), logger, conf)
	scheduleSvc = schedule.NewService(inmemdb.NewScheduleRepository(db))
	academicSvc = academic.NewService(inmemdb.NewAcademicRepository(db))
	msgSvc = messaging.NewServiceMock(inmemdb.NewMessagingRepository(db), mailSvc, conf)

	validate = validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)
	user.LoadCommonPasswords(logger)

	// set up server
	var err error
	app, err = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		UserSvc:        usrSvc,
		SettingsSvc:    settingsSvc,
		ScheduleSvc:    scheduleSvc,
		AcademicSvc:    academicSvc,
		MessagingSvc:   msgSvc,
		ProfileRepo:    profRepo,
		Composer:       profile.NewComposer(),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	if err != nil {
		fmt.Printf("NewServer(): %v", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

const testPassword = "LeP@ssw0rd"

func createUser(t *testing.T, firstName, uname, email, role string, isActive bool) user.User {
	t.Helper()
	usr := user.User{
		Username:  uname,
		Email:     email,
		FirstName: firstName,
		LastName:  "Doe",
		Role:      role,
		IsActive:  isActive,
	}
	if err := usr.SetPassword(testPassword); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func sessionCookie(t *testing.T, usr user.User) *http.Cookie {
	t.Helper()
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	return &http.Cookie{Name: conf.Server.SessionCookie, Value: token}
}

func newRequest(method, path string, form url.Values) *http.Request {
	var body string
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func newAuthRequest(t *testing.T, method, path string, usr user.User, form url.Values) *http.Request {
	req := newRequest(method, path, form)
	req.AddCookie(sessionCookie(t, usr))
	return req
}

func serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("code = %v; want %v\nbody: %v", rec.Code, want, rec.Body.String())
	}
}

func checkRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	checkCode(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != location {
		t.Errorf("Location = %q; want %q", loc, location)
	}
}

func checkContains(t *testing.T, rec *httptest.ResponseRecorder, elems ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, elem := range elems {
		if !strings.Contains(body, elem) {
			t.Errorf("body does not contain %q", elem)
		}
	}
}

func checkNotContains(t *testing.T, rec *httptest.ResponseRecorder, elems ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, elem := range elems {
		if strings.Contains(body, elem) {
			t.Errorf("body contains %q", elem)
		}
	}
}
