package academic

import (
	"context"
	"testing"
	"time"

	localeEN "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iljicevs/eduportal/core"
)

var validate = validator.New()

func init() {
	en := localeEN.New()
	translator, _ := ut.New(en, en).GetTranslator("en")
	core.InitValidators(validate, translator)
}

type fakeRepo struct {
	grades []Grade
}

func (r *fakeRepo) CreateGrade(ctx context.Context, g *Grade) error {
	g.ID = uuid.New().String()
	r.grades = append(r.grades, *g)
	return nil
}

func (r *fakeRepo) FilterGrades(ctx context.Context, filter Filter) ([]Grade, error) {
	var out []Grade
	for _, g := range r.grades {
		if filter.StudentID != "" && g.StudentID != filter.StudentID {
			continue
		}
		if filter.TeacherID != "" && g.TeacherID != filter.TeacherID {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeRepo) DeleteGrade(ctx context.Context, id string) error {
	for i, g := range r.grades {
		if g.ID == id {
			r.grades = append(r.grades[:i], r.grades[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestServiceRecord(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})
	studentID := uuid.New().String()
	teacherID := uuid.New().String()

	t.Run("Valid", func(t *testing.T) {
		g, err := svc.Record(ctx, validate, Grade{
			StudentID: studentID,
			TeacherID: teacherID,
			Subject:   "  Calculus ",
			Kind:      KindExam,
			Value:     5,
			GradedAt:  time.Now(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, g.ID)
		assert.Equal(t, "Calculus", g.Subject)
	})

	t.Run("ValueOutOfScale", func(t *testing.T) {
		_, err := svc.Record(ctx, validate, Grade{
			StudentID: studentID,
			TeacherID: teacherID,
			Subject:   "Calculus",
			Kind:      KindExam,
			Value:     7,
		})
		require.Error(t, err)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := svc.Record(ctx, validate, Grade{
			StudentID: studentID,
			TeacherID: teacherID,
			Subject:   "Calculus",
			Kind:      "vibes",
			Value:     4,
		})
		require.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	grades := []Grade{
		{Subject: "Calculus", Kind: KindExam, Value: 5},
		{Subject: "Calculus", Kind: KindHomework, Value: 3},
		{Subject: "Physics", Kind: KindTest, Value: 2},
		{Subject: "Physics", Kind: KindExam, Value: 4},
	}

	sum := Summarize(grades)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 3.5, sum.Average)
	assert.Equal(t, 0.75, sum.PassRate)

	require.Len(t, sum.Subjects, 2)
	calc := sum.Subjects[0]
	assert.Equal(t, "Calculus", calc.Subject)
	assert.Equal(t, 4.0, calc.Average)
	// exam weighs 0.35, homework 0.1: (5*0.35 + 3*0.1) / 0.45
	assert.Equal(t, 4.56, calc.Final)

	phys := sum.Subjects[1]
	assert.Equal(t, 3.0, phys.Average)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, 0, sum.Count)
	assert.Equal(t, "No graded works yet.", sum.Describe())
}

func TestStudentGradesOrdering(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	studentID := uuid.New().String()
	teacherID := uuid.New().String()

	old := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, g := range []Grade{
		{StudentID: studentID, TeacherID: teacherID, Subject: "Calculus", Kind: KindTest, Value: 4, GradedAt: old},
		{StudentID: studentID, TeacherID: teacherID, Subject: "Calculus", Kind: KindExam, Value: 5, GradedAt: recent},
	} {
		_, err := svc.Record(ctx, validate, g)
		require.NoError(t, err)
	}

	grades, err := svc.StudentGrades(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, recent, grades[0].GradedAt)
}
