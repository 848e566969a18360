package schedule

import (
	"context"
	"sort"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("schedule item not found")

type (
	// Filter narrows timetable queries. Zero values mean "any".
	Filter struct {
		GroupID   string
		TeacherID string
		Weekday   int
		WeekType  string
	}

	// Day is one weekday column of the timetable, items ordered by
	// slot number.
	Day struct {
		Weekday int
		Name    string
		Items   []Item
	}

	// Week is the rendered timetable: six day columns, Monday first,
	// filtered to one week alternation type.
	Week struct {
		WeekType string
		Days     []Day
	}

	Repository interface {
		ListTimeSlots(ctx context.Context) ([]TimeSlot, error)
		ListClassTypes(ctx context.Context) ([]ClassType, error)
		CreateTimeSlot(ctx context.Context, ts *TimeSlot) error
		CreateClassType(ctx context.Context, ct *ClassType) error
		CreateItem(ctx context.Context, it *Item) error
		FilterItems(ctx context.Context, filter Filter) ([]Item, error)
	}

	Service interface {
		TimeSlots(ctx context.Context) ([]TimeSlot, error)
		ClassTypes(ctx context.Context) ([]ClassType, error)
		CreateTimeSlot(ctx context.Context, v *validator.Validate, ts TimeSlot) (TimeSlot, error)
		CreateClassType(ctx context.Context, v *validator.Validate, ct ClassType) (ClassType, error)
		CreateItem(ctx context.Context, v *validator.Validate, it Item) (Item, error)
		WeekForGroup(ctx context.Context, groupID, weekType string) (Week, error)
		WeekForTeacher(ctx context.Context, teacherID, weekType string) (Week, error)
		Subjects(ctx context.Context, filter Filter) ([]string, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) TimeSlots(ctx context.Context) ([]TimeSlot, error) {
	slots, err := s.repo.ListTimeSlots(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing time slots")
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Number < slots[j].Number })
	return slots, nil
}

func (s *service) ClassTypes(ctx context.Context) ([]ClassType, error) {
	types, err := s.repo.ListClassTypes(ctx)
	return types, errors.Wrap(err, "listing class types")
}

func (s *service) CreateTimeSlot(ctx context.Context, v *validator.Validate, ts TimeSlot) (TimeSlot, error) {
	if err := ts.Validate(v); err != nil {
		return TimeSlot{}, err
	}
	if err := s.repo.CreateTimeSlot(ctx, &ts); err != nil {
		return TimeSlot{}, errors.Wrap(err, "creating time slot")
	}
	return ts, nil
}

func (s *service) CreateClassType(ctx context.Context, v *validator.Validate, ct ClassType) (ClassType, error) {
	if err := v.Struct(&ct); err != nil {
		return ClassType{}, err
	}
	if err := s.repo.CreateClassType(ctx, &ct); err != nil {
		return ClassType{}, errors.Wrap(err, "creating class type")
	}
	return ct, nil
}

func (s *service) CreateItem(ctx context.Context, v *validator.Validate, it Item) (Item, error) {
	if err := it.Validate(v); err != nil {
		return Item{}, err
	}
	if err := s.repo.CreateItem(ctx, &it); err != nil {
		return Item{}, errors.Wrap(err, "creating schedule item")
	}
	return it, nil
}

// WeekForGroup assembles the week view a student's group sees.
func (s *service) WeekForGroup(ctx context.Context, groupID, weekType string) (Week, error) {
	return s.week(ctx, Filter{GroupID: groupID}, weekType)
}

// WeekForTeacher assembles the week view of a teacher's own classes.
func (s *service) WeekForTeacher(ctx context.Context, teacherID, weekType string) (Week, error) {
	return s.week(ctx, Filter{TeacherID: teacherID}, weekType)
}

// Subjects lists the distinct subject names on a timetable, sorted.
// Profile pages use it to show the courses a group or teacher carries.
func (s *service) Subjects(ctx context.Context, filter Filter) ([]string, error) {
	items, err := s.repo.FilterItems(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering schedule items")
	}
	seen := make(map[string]bool, len(items))
	var subjects []string
	for _, it := range items {
		if !seen[it.Subject] {
			seen[it.Subject] = true
			subjects = append(subjects, it.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (s *service) week(ctx context.Context, filter Filter, weekType string) (Week, error) {
	if weekType == "" {
		weekType = WeekEvery
	}
	items, err := s.repo.FilterItems(ctx, filter)
	if err != nil {
		return Week{}, errors.Wrap(err, "filtering schedule items")
	}

	week := Week{WeekType: weekType}
	for weekday := Monday; weekday <= Saturday; weekday++ {
		day := Day{Weekday: weekday, Name: WeekdayName(weekday)}
		for _, it := range items {
			if it.Weekday == weekday && it.OccursOn(weekType) {
				day.Items = append(day.Items, it)
			}
		}
		sort.Slice(day.Items, func(i, j int) bool {
			return day.Items[i].TimeSlot.Number < day.Items[j].TimeSlot.Number
		})
		week.Days = append(week.Days, day)
	}
	return week, nil
}
