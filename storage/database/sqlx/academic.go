package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/academic"
)

type academicRepository struct {
	db *sqlx.DB
}

var _ academic.Repository = (*academicRepository)(nil)

func NewAcademicRepository(db *sqlx.DB) academic.Repository {
	return &academicRepository{db: db}
}

func (repo *academicRepository) CreateGrade(ctx context.Context, g *academic.Grade) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.GradedAt.IsZero() {
		g.GradedAt = time.Now().UTC()
	}
	g.CreatedAt = time.Now().UTC()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO grade (id, student_id, teacher_id, subject, kind, value,
			comment, graded_at, created_at)
		VALUES (:id, :student_id, :teacher_id, :subject, :kind, :value,
			:comment, :graded_at, :created_at)`, g)
	return errors.Wrap(err, "inserting grade")
}

func (repo *academicRepository) FilterGrades(ctx context.Context, filter academic.Filter) ([]academic.Grade, error) {
	conds := []string{"TRUE"}
	args := make([]interface{}, 0, 4)

	if filter.StudentID != "" {
		conds = append(conds, "g.student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.TeacherID != "" {
		conds = append(conds, "g.teacher_id = ?")
		args = append(args, filter.TeacherID)
	}
	if filter.Subject != "" {
		conds = append(conds, "g.subject = ?")
		args = append(args, filter.Subject)
	}
	if filter.Kind != "" {
		conds = append(conds, "g.kind = ?")
		args = append(args, filter.Kind)
	}

	q := repo.db.Rebind(`
		SELECT g.id, g.student_id, g.teacher_id, g.subject, g.kind, g.value,
			g.comment, g.graded_at, g.created_at,
			COALESCE(NULLIF(TRIM(u.last_name || ' ' || u.first_name), ''), u.username) AS teacher_name
		FROM grade g
		JOIN app_user u ON u.id = g.teacher_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY g.graded_at DESC`)

	var grades []academic.Grade
	if err := repo.db.SelectContext(ctx, &grades, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering grades")
	}
	return grades, nil
}

func (repo *academicRepository) DeleteGrade(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM grade WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return academic.ErrNotFound
	}
	return nil
}
