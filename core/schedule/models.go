package schedule

import (
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/iljicevs/eduportal/core"
)

// Weekdays are 1-based, Monday through Saturday. Sunday carries no
// classes and is not part of the timetable.
const (
	Monday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = map[int]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// WeekdayName returns the display name for a timetable weekday.
func WeekdayName(weekday int) string { return weekdayNames[weekday] }

// Week alternation types. Items marked WeekEvery occur on both.
const (
	WeekEvery = "every"
	WeekOdd   = "odd"
	WeekEven  = "even"
)

// timeLayout is the wall-clock format slots are stored and shown in.
const timeLayout = "15:04"

type (
	// TimeSlot is a numbered teaching period within the day.
	TimeSlot struct {
		ID         string `db:"id" json:"id"`
		Number     int    `db:"number" json:"number" validate:"required,min=1,max=10"`
		StartTime  string `db:"start_time" json:"start_time" validate:"required"`
		EndTime    string `db:"end_time" json:"end_time" validate:"required"`
		BreakAfter int    `db:"break_after" json:"break_after" validate:"min=0,max=120"`
	}

	// ClassType categorizes a class (lecture, seminar, lab) and carries
	// the color its cell renders with.
	ClassType struct {
		ID        string `db:"id" json:"id"`
		Name      string `db:"name" json:"name" validate:"required,max=100"`
		ShortName string `db:"short_name" json:"short_name" validate:"required,max=10"`
		Color     string `db:"color" json:"color" validate:"required,hexcolor_"`
	}

	// Item is one recurring timetable entry: a subject taught by a
	// teacher to one or more groups in a room, at a fixed slot and
	// weekday, possibly alternating by week parity.
	Item struct {
		ID          string    `db:"id" json:"id"`
		Subject     string    `db:"subject" json:"subject" validate:"required,max=150"`
		TeacherID   string    `db:"teacher_id" json:"teacher_id" validate:"required,uuid4"`
		TeacherName string    `db:"teacher_name" json:"teacher_name"`
		ClassType   ClassType `db:"-" json:"class_type"`
		GroupIDs    []string  `db:"-" json:"group_ids" validate:"required,min=1,dive,uuid4"`
		GroupNames  []string  `db:"-" json:"group_names"`
		Room        string    `db:"room" json:"room" validate:"required,max=50"`
		TimeSlot    TimeSlot  `db:"-" json:"time_slot"`
		Weekday     int       `db:"weekday" json:"weekday" validate:"required,min=1,max=6"`
		WeekType    string    `db:"week_type" json:"week_type" validate:"required,oneof=every odd even"`
		Comment     string    `db:"comment" json:"comment"`
		CreatedAt   time.Time `db:"created_at" json:"created_at"`
		UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	}
)

// TimeRange renders the slot bounds for timetable cells.
func (ts TimeSlot) TimeRange() string {
	return fmt.Sprintf("%s–%s", ts.StartTime, ts.EndTime)
}

func (ts *TimeSlot) Validate(v *validator.Validate) error {
	ts.StartTime = core.CleanString(ts.StartTime)
	ts.EndTime = core.CleanString(ts.EndTime)
	if err := v.Struct(ts); err != nil {
		return err
	}
	start, err := time.Parse(timeLayout, ts.StartTime)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "start_time", Error: "must be HH:MM"})
	}
	end, err := time.Parse(timeLayout, ts.EndTime)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "end_time", Error: "must be HH:MM"})
	}
	if !end.After(start) {
		return core.NewValidationError(
			fmt.Errorf("slot %d ends before it starts", ts.Number),
			core.FieldError{Field: "end_time", Error: "must be after start time"},
		)
	}
	return nil
}

func (it *Item) Validate(v *validator.Validate) error {
	it.Subject = core.CleanString(it.Subject)
	it.Room = core.CleanString(it.Room)
	it.Comment = core.CleanString(it.Comment)
	return v.Struct(it)
}

// OccursOn reports whether the item runs on a week of the given
// alternation type.
func (it Item) OccursOn(weekType string) bool {
	return it.WeekType == WeekEvery || weekType == WeekEvery || it.WeekType == weekType
}
