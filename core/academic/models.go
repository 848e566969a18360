package academic

import (
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/iljicevs/eduportal/core"
)

// Grade kinds, in increasing weight toward the final mark.
const (
	KindHomework = "homework"
	KindTest     = "test"
	KindLab      = "lab"
	KindCourse   = "coursework"
	KindExam     = "exam"
)

// Kind is a grade kind choice for forms.
type Kind struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Kinds lists the grade kinds in form order, lightest first.
var Kinds = []Kind{
	{KindHomework, "Homework"},
	{KindTest, "Test"},
	{KindLab, "Lab Work"},
	{KindCourse, "Coursework"},
	{KindExam, "Exam"},
}

var KindWeights = map[string]float64{
	KindHomework: 0.1,
	KindTest:     0.15,
	KindLab:      0.15,
	KindCourse:   0.25,
	KindExam:     0.35,
}

var kindNames = map[string]string{
	KindHomework: "Homework",
	KindTest:     "Test",
	KindLab:      "Lab Work",
	KindCourse:   "Coursework",
	KindExam:     "Exam",
}

// KindDisplay returns the label a grade kind renders with.
func KindDisplay(kind string) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return kind
}

// Grade is one graded work of a student in a subject, on a five-point
// scale.
type Grade struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id" validate:"required,uuid4"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id" validate:"required,uuid4"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Subject     string    `db:"subject" json:"subject" validate:"required,max=150"`
	Kind        string    `db:"kind" json:"kind" validate:"required,oneof=homework test lab coursework exam"`
	Value       float64   `db:"value" json:"value" validate:"min=2,max=5"`
	Comment     string    `db:"comment" json:"comment"`
	GradedAt    time.Time `db:"graded_at" json:"graded_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (g *Grade) Validate(v *validator.Validate) error {
	g.Subject = core.CleanString(g.Subject)
	g.Comment = core.CleanString(g.Comment)
	return v.Struct(g)
}

// IsPassing reports whether the grade clears the five-point passing
// bar.
func (g Grade) IsPassing() bool { return g.Value >= 3 }

// KindDisplay returns the label of the grade's kind.
func (g Grade) KindDisplay() string { return KindDisplay(g.Kind) }

type (
	// SubjectSummary aggregates a student's grades within one subject.
	SubjectSummary struct {
		Subject string
		Count   int
		Average float64
		Final   float64 // kind-weighted average
	}

	// Summary is the statistics block of the student profile.
	Summary struct {
		Count    int
		Average  float64
		PassRate float64 // share of passing grades, 0..1
		Subjects []SubjectSummary
	}
)
