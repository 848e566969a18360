package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/iljicevs/eduportal/core"
)

// Roles
const (
	RoleAdmin     = "admin"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
	RoleMethodist = "methodist"
	RoleDean      = "dean"
)

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleMethodist, RoleDean}

	rolePriorities = map[string]int{
		RoleAdmin:     50,
		RoleDean:      40,
		RoleMethodist: 30,
		RoleTeacher:   20,
		RoleStudent:   10,
	}

	roleNames = map[string]string{
		RoleAdmin:     "Administrator",
		RoleTeacher:   "Teacher",
		RoleStudent:   "Student",
		RoleMethodist: "Methodist",
		RoleDean:      "Dean / Head of Department",
	}

	Roles = []Role{
		{Name: roleNames[RoleStudent], Value: RoleStudent},
		{Name: roleNames[RoleTeacher], Value: RoleTeacher},
		{Name: roleNames[RoleMethodist], Value: RoleMethodist},
		{Name: roleNames[RoleDean], Value: RoleDean},
		{Name: roleNames[RoleAdmin], Value: RoleAdmin},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func RoleDisplay(role string) string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	return role
}

func IsValidRole(role string) bool {
	_, ok := rolePriorities[role]
	return ok
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Patronymic        string    `json:"patronymic"`
	Role              string    `json:"role"`
	PhoneNumber       string    `json:"phone_number"`
	DateOfBirth       time.Time `json:"date_of_birth"` // zero when not provided
	ProfilePictureURL string    `json:"profile_picture_url"`
	PreferredLanguage string    `json:"preferred_language"`
	IsActive          bool      `json:"is_active"`
	PasswordHash      []byte    `json:"-"`
	CreatedAt         time.Time `json:"created_at"` // UTC
	UpdatedAt         time.Time `json:"updated_at"` // UTC
	LastLogin         time.Time `json:"last_login"` // UTC
}

// FullName returns "LastName FirstName Patronymic", patronymic included only when set.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.LastName + " " + u.FirstName)
	if u.Patronymic != "" {
		full = full + " " + u.Patronymic
	}
	return strings.TrimSpace(full)
}

func (u *User) RoleDisplay() string { return RoleDisplay(u.Role) }

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool   { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool   { return u.Role == RoleStudent }
func (u *User) IsMethodist() bool { return u.Role == RoleMethodist }
func (u *User) IsDean() bool      { return u.Role == RoleDean }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username        string `json:"username" validate:"omitempty,min=4,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Patronymic      string `json:"patronymic"`
	Role            string `json:"role" validate:"required,role"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(v *validator.Validate, svc Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Patronymic = core.CleanString(nu.Patronymic)

	if err := v.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Username        string `json:"username" validate:"omitempty,min=4,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Patronymic      string `json:"patronymic"`
	Role            string `json:"role" validate:"omitempty,role"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone"`
	IsActive        *bool  `json:"is_active"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, v *validator.Validate, svc Service) error {
	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}
	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := v.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token" validate:"required"`
	UID             string `json:"uid" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(v *validator.Validate) error { return v.Struct(rp) }

type QueryFilter struct {
	Search      string    `query:"search"`
	Role        string    `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
