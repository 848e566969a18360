package academic

import (
	"context"
	"fmt"
	"math"
	"sort"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("grade not found")

type (
	// Filter narrows grade queries. Zero values mean "any".
	Filter struct {
		StudentID string
		TeacherID string
		Subject   string
		Kind      string
	}

	Repository interface {
		CreateGrade(ctx context.Context, g *Grade) error
		FilterGrades(ctx context.Context, filter Filter) ([]Grade, error)
		DeleteGrade(ctx context.Context, id string) error
	}

	Service interface {
		Record(ctx context.Context, v *validator.Validate, g Grade) (Grade, error)
		StudentGrades(ctx context.Context, studentID string) ([]Grade, error)
		TeacherGrades(ctx context.Context, teacherID string) ([]Grade, error)
		Statistics(ctx context.Context, studentID string) (Summary, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, v *validator.Validate, g Grade) (Grade, error) {
	if err := g.Validate(v); err != nil {
		return Grade{}, err
	}
	if err := s.repo.CreateGrade(ctx, &g); err != nil {
		return Grade{}, errors.Wrap(err, "recording grade")
	}
	return g, nil
}

// StudentGrades returns a student's grades, most recent first.
func (s *service) StudentGrades(ctx context.Context, studentID string) ([]Grade, error) {
	grades, err := s.repo.FilterGrades(ctx, Filter{StudentID: studentID})
	if err != nil {
		return nil, errors.Wrap(err, "listing student grades")
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].GradedAt.After(grades[j].GradedAt) })
	return grades, nil
}

func (s *service) TeacherGrades(ctx context.Context, teacherID string) ([]Grade, error) {
	grades, err := s.repo.FilterGrades(ctx, Filter{TeacherID: teacherID})
	if err != nil {
		return nil, errors.Wrap(err, "listing teacher grades")
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].GradedAt.After(grades[j].GradedAt) })
	return grades, nil
}

// Statistics aggregates a student's grades into the profile's
// statistics block: overall average, pass rate, and per-subject
// averages with a kind-weighted final mark.
func (s *service) Statistics(ctx context.Context, studentID string) (Summary, error) {
	grades, err := s.repo.FilterGrades(ctx, Filter{StudentID: studentID})
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading grades for statistics")
	}
	return Summarize(grades), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return errors.Wrapf(s.repo.DeleteGrade(ctx, id), "deleting grade %s", id)
}

// Summarize folds grades into a Summary. Pure so handlers and tests
// can aggregate without storage.
func Summarize(grades []Grade) Summary {
	sum := Summary{Count: len(grades)}
	if len(grades) == 0 {
		return sum
	}

	var total float64
	var passing int
	bySubject := make(map[string][]Grade)
	for _, g := range grades {
		total += g.Value
		if g.IsPassing() {
			passing++
		}
		bySubject[g.Subject] = append(bySubject[g.Subject], g)
	}
	sum.Average = round2(total / float64(len(grades)))
	sum.PassRate = round2(float64(passing) / float64(len(grades)))

	for subject, gs := range bySubject {
		var subjTotal, weighted, weightSum float64
		for _, g := range gs {
			subjTotal += g.Value
			w := KindWeights[g.Kind]
			weighted += g.Value * w
			weightSum += w
		}
		ss := SubjectSummary{
			Subject: subject,
			Count:   len(gs),
			Average: round2(subjTotal / float64(len(gs))),
		}
		if weightSum > 0 {
			ss.Final = round2(weighted / weightSum)
		}
		sum.Subjects = append(sum.Subjects, ss)
	}
	sort.Slice(sum.Subjects, func(i, j int) bool { return sum.Subjects[i].Subject < sum.Subjects[j].Subject })
	return sum
}

// Describe renders the summary as the one-paragraph statistics section
// content.
func (sum Summary) Describe() string {
	if sum.Count == 0 {
		return "No graded works yet."
	}
	return fmt.Sprintf("%d graded works, average %.2f, %.0f%% passing.",
		sum.Count, sum.Average, sum.PassRate*100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
