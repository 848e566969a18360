package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/user"
)

type userRow struct {
	ID                string      `db:"id"`
	Username          string      `db:"username"`
	Email             string      `db:"email"`
	FirstName         string      `db:"first_name"`
	LastName          string      `db:"last_name"`
	Patronymic        string      `db:"patronymic"`
	Role              string      `db:"role"`
	PhoneNumber       string      `db:"phone_number"`
	DateOfBirth       null.Time   `db:"date_of_birth"`
	ProfilePictureURL null.String `db:"profile_picture_url"`
	PreferredLanguage string      `db:"preferred_language"`
	IsActive          bool        `db:"is_active"`
	PasswordHash      []byte      `db:"password_hash"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
	LastLogin         null.Time   `db:"last_login"`
}

func newUserRow(usr user.User) userRow {
	return userRow{
		ID:                usr.ID,
		Username:          usr.Username,
		Email:             usr.Email,
		FirstName:         usr.FirstName,
		LastName:          usr.LastName,
		Patronymic:        usr.Patronymic,
		Role:              usr.Role,
		PhoneNumber:       usr.PhoneNumber,
		DateOfBirth:       nullTime(usr.DateOfBirth),
		ProfilePictureURL: null.NewString(usr.ProfilePictureURL, usr.ProfilePictureURL != ""),
		PreferredLanguage: usr.PreferredLanguage,
		IsActive:          usr.IsActive,
		PasswordHash:      usr.PasswordHash,
		CreatedAt:         usr.CreatedAt,
		UpdatedAt:         usr.UpdatedAt,
		LastLogin:         nullTime(usr.LastLogin),
	}
}

func (r userRow) toCore() user.User {
	return user.User{
		ID:                r.ID,
		Username:          r.Username,
		Email:             r.Email,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Patronymic:        r.Patronymic,
		Role:              r.Role,
		PhoneNumber:       r.PhoneNumber,
		DateOfBirth:       r.DateOfBirth.Time,
		ProfilePictureURL: r.ProfilePictureURL.String,
		PreferredLanguage: r.PreferredLanguage,
		IsActive:          r.IsActive,
		PasswordHash:      r.PasswordHash,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		LastLogin:         r.LastLogin.Time,
	}
}

func nullTime(t time.Time) null.Time {
	return null.NewTime(t, !t.IsZero())
}

const userColumns = `id, username, email, first_name, last_name, patronymic, role,
	phone_number, date_of_birth, profile_picture_url, preferred_language,
	is_active, password_hash, created_at, updated_at, last_login`

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	q := `SELECT username, email FROM app_user WHERE (username = $1 OR email = $2)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		var err error
		q, args, err = sqlx.In(
			`SELECT username, email FROM app_user WHERE (username = ? OR email = ?) AND id NOT IN (?)`,
			username, email, ids,
		)
		if err != nil {
			return errors.Wrap(err, "binding uniqueness query")
		}
		q = repo.db.Rebind(q)
	}

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	for _, r := range rows {
		if r.Username == username {
			return user.ErrUsernameExists
		}
		if r.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	row := newUserRow(usr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO app_user (`+userColumns+`)
		VALUES (:id, :username, :email, :first_name, :last_name, :patronymic, :role,
			:phone_number, :date_of_birth, :profile_picture_url, :preferred_language,
			:is_active, :password_hash, :created_at, :updated_at, :last_login)`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.getBy(ctx, "id = $1", id)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.getBy(ctx, "username = $1", username)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.getBy(ctx, "email = $1", email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	return repo.getBy(ctx, "(username = $1 OR email = $1)", username)
}

func (repo *userRepository) getBy(ctx context.Context, cond string, args ...interface{}) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM app_user WHERE `+cond, args...)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	} else if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toCore(), nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	conds := []string{"TRUE"}
	args := make([]interface{}, 0, 8)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conds = append(conds, `(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?
			OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if filter.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, filter.CreatedTo)
	}

	q := `SELECT ` + userColumns + ` FROM app_user WHERE ` + strings.Join(conds, " AND ")
	if len(ordering) > 0 {
		ords := make([]string, 0, len(ordering))
		for _, o := range ordering {
			ords = append(ords, o.String())
		}
		q += " ORDER BY " + strings.Join(ords, ", ")
	} else {
		q += " ORDER BY created_at DESC"
	}
	q = repo.db.Rebind(q)

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toCore())
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	orig, err := repo.GetUserByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, err
	}

	// only save set fields
	if usr.Username != "" {
		orig.Username = usr.Username
	}
	if usr.Email != "" {
		orig.Email = usr.Email
	}
	if usr.FirstName != "" {
		orig.FirstName = usr.FirstName
	}
	if usr.LastName != "" {
		orig.LastName = usr.LastName
	}
	if usr.Patronymic != "" {
		orig.Patronymic = usr.Patronymic
	}
	if usr.Role != "" {
		orig.Role = usr.Role
	}
	if usr.PhoneNumber != "" {
		orig.PhoneNumber = usr.PhoneNumber
	}
	if !usr.DateOfBirth.IsZero() {
		orig.DateOfBirth = usr.DateOfBirth
	}
	if usr.ProfilePictureURL != "" {
		orig.ProfilePictureURL = usr.ProfilePictureURL
	}
	if usr.PreferredLanguage != "" {
		orig.PreferredLanguage = usr.PreferredLanguage
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if !usr.LastLogin.IsZero() {
		orig.LastLogin = usr.LastLogin
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.UpdatedAt = time.Now().UTC()

	row := newUserRow(orig)
	_, err = repo.db.NamedExecContext(ctx, `
		UPDATE app_user SET
			username = :username, email = :email, first_name = :first_name,
			last_name = :last_name, patronymic = :patronymic, role = :role,
			phone_number = :phone_number, date_of_birth = :date_of_birth,
			profile_picture_url = :profile_picture_url,
			preferred_language = :preferred_language, is_active = :is_active,
			password_hash = :password_hash, updated_at = :updated_at,
			last_login = :last_login
		WHERE id = :id`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return orig, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr)
	}
	updated, err := repo.UpdateUser(ctx, usr, &usr.IsActive)
	if errors.Cause(err) == user.ErrNotFound {
		return repo.CreateUser(ctx, usr)
	}
	return updated, err
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM app_user WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "binding delete query")
	}
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
