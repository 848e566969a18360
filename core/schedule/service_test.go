package schedule

import (
	"context"
	"testing"

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
	slots []TimeSlot
	types []ClassType
	items []Item
}

func (r *fakeRepo) ListTimeSlots(ctx context.Context) ([]TimeSlot, error)   { return r.slots, nil }
func (r *fakeRepo) ListClassTypes(ctx context.Context) ([]ClassType, error) { return r.types, nil }

func (r *fakeRepo) CreateTimeSlot(ctx context.Context, ts *TimeSlot) error {
	ts.ID = uuid.New().String()
	r.slots = append(r.slots, *ts)
	return nil
}

func (r *fakeRepo) CreateClassType(ctx context.Context, ct *ClassType) error {
	ct.ID = uuid.New().String()
	r.types = append(r.types, *ct)
	return nil
}

func (r *fakeRepo) CreateItem(ctx context.Context, it *Item) error {
	it.ID = uuid.New().String()
	r.items = append(r.items, *it)
	return nil
}

func (r *fakeRepo) FilterItems(ctx context.Context, filter Filter) ([]Item, error) {
	var out []Item
	for _, it := range r.items {
		if filter.TeacherID != "" && it.TeacherID != filter.TeacherID {
			continue
		}
		if filter.GroupID != "" && !contains(it.GroupIDs, filter.GroupID) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func newItem(teacherID, groupID string, weekday, slotNumber int, weekType string) Item {
	return Item{
		Subject:    "Discrete Mathematics",
		TeacherID:  teacherID,
		GroupIDs:   []string{groupID},
		GroupNames: []string{"CS-201"},
		Room:       "A-112",
		TimeSlot:   TimeSlot{Number: slotNumber, StartTime: "08:30", EndTime: "10:00"},
		Weekday:    weekday,
		WeekType:   weekType,
		ClassType:  ClassType{Name: "Lecture", ShortName: "LEC", Color: "#3498db"},
	}
}

func TestServiceWeek(t *testing.T) {
	ctx := context.Background()
	teacherID := uuid.New().String()
	groupID := uuid.New().String()
	otherGroup := uuid.New().String()

	repo := &fakeRepo{}
	svc := NewService(repo)

	for _, it := range []Item{
		newItem(teacherID, groupID, Monday, 2, WeekEvery),
		newItem(teacherID, groupID, Monday, 1, WeekEvery),
		newItem(teacherID, groupID, Wednesday, 3, WeekOdd),
		newItem(teacherID, groupID, Wednesday, 3, WeekEven),
		newItem(teacherID, otherGroup, Friday, 1, WeekEvery),
	} {
		_, err := svc.CreateItem(ctx, validate, it)
		require.NoError(t, err)
	}

	t.Run("GroupWeekOrderedBySlot", func(t *testing.T) {
		week, err := svc.WeekForGroup(ctx, groupID, WeekEvery)
		require.NoError(t, err)
		require.Len(t, week.Days, 6)

		monday := week.Days[0]
		assert.Equal(t, "Monday", monday.Name)
		require.Len(t, monday.Items, 2)
		assert.Equal(t, 1, monday.Items[0].TimeSlot.Number)
		assert.Equal(t, 2, monday.Items[1].TimeSlot.Number)

		// other group's friday class not included
		assert.Empty(t, week.Days[4].Items)
	})

	t.Run("WeekParityFilter", func(t *testing.T) {
		week, err := svc.WeekForGroup(ctx, groupID, WeekOdd)
		require.NoError(t, err)

		wednesday := week.Days[2]
		require.Len(t, wednesday.Items, 1)
		assert.Equal(t, WeekOdd, wednesday.Items[0].WeekType)
	})

	t.Run("EveryWeekIncludesBothParities", func(t *testing.T) {
		week, err := svc.WeekForGroup(ctx, groupID, WeekEvery)
		require.NoError(t, err)
		assert.Len(t, week.Days[2].Items, 2)
	})

	t.Run("TeacherWeek", func(t *testing.T) {
		week, err := svc.WeekForTeacher(ctx, teacherID, WeekEvery)
		require.NoError(t, err)

		var total int
		for _, day := range week.Days {
			total += len(day.Items)
		}
		assert.Equal(t, 5, total)
	})
}

func TestServiceSubjects(t *testing.T) {
	ctx := context.Background()
	teacherID := uuid.New().String()
	groupID := uuid.New().String()
	otherGroup := uuid.New().String()

	repo := &fakeRepo{}
	svc := NewService(repo)

	named := func(subject string, groupID string, weekday int) Item {
		it := newItem(teacherID, groupID, weekday, 1, WeekEvery)
		it.Subject = subject
		return it
	}
	for _, it := range []Item{
		named("Databases", groupID, Monday),
		named("Databases", groupID, Thursday), // second slot, same subject
		named("Compilers", groupID, Tuesday),
		named("Statistics", otherGroup, Friday),
	} {
		_, err := svc.CreateItem(ctx, validate, it)
		require.NoError(t, err)
	}

	t.Run("DistinctAndSorted", func(t *testing.T) {
		subjects, err := svc.Subjects(ctx, Filter{GroupID: groupID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Compilers", "Databases"}, subjects)
	})

	t.Run("TeacherScope", func(t *testing.T) {
		subjects, err := svc.Subjects(ctx, Filter{TeacherID: teacherID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Compilers", "Databases", "Statistics"}, subjects)
	})

	t.Run("EmptyTimetable", func(t *testing.T) {
		subjects, err := svc.Subjects(ctx, Filter{GroupID: uuid.New().String()})
		require.NoError(t, err)
		assert.Empty(t, subjects)
	})
}

func TestTimeSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    TimeSlot
		wantErr string
	}{
		{
			name: "Valid",
			slot: TimeSlot{Number: 1, StartTime: "08:30", EndTime: "10:00", BreakAfter: 10},
		},
		{
			name:    "EndBeforeStart",
			slot:    TimeSlot{Number: 2, StartTime: "10:00", EndTime: "08:30"},
			wantErr: "must be after start time",
		},
		{
			name:    "BadFormat",
			slot:    TimeSlot{Number: 3, StartTime: "8h30", EndTime: "10:00"},
			wantErr: "must be HH:MM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate(validate)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*core.ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.wantErr, verr.Fields[0].Error)
		})
	}
}
