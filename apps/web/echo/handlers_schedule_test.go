package echoweb

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/schedule"
	"github.com/iljicevs/eduportal/core/user"
)

func Test_schedule(t *testing.T) {
	teacher := createUser(t, "Igor", "igor", "igor@test.cd", user.RoleTeacher, true)
	student := createUser(t, "Sofia", "sofia", "sofia@test.cd", user.RoleStudent, true)
	loner := createUser(t, "Luka", "luka", "luka@test.cd", user.RoleStudent, true)

	reqCtx := context.Background()
	groupID := uuid.New().String()

	err := profRepo.UpsertProfile(reqCtx, &profile.Profile{
		UserID: student.ID,
		Student: &profile.StudentProfile{
			UserID: student.ID,
			Group:  &profile.Group{ID: groupID, Name: "SE-22-3"},
		},
	})
	if err != nil {
		t.Fatalf("UpsertProfile(): %v", err)
	}

	slot, err := scheduleSvc.CreateTimeSlot(reqCtx, validate, schedule.TimeSlot{
		Number: 1, StartTime: "08:30", EndTime: "10:00", BreakAfter: 10,
	})
	if err != nil {
		t.Fatalf("CreateTimeSlot(): %v", err)
	}
	lecture, err := scheduleSvc.CreateClassType(reqCtx, validate, schedule.ClassType{
		Name: "Lecture", ShortName: "LEC", Color: "#3498db",
	})
	if err != nil {
		t.Fatalf("CreateClassType(): %v", err)
	}

	newItem := func(subject string, weekday int, weekType string) schedule.Item {
		return schedule.Item{
			Subject:     subject,
			TeacherID:   teacher.ID,
			TeacherName: teacher.FullName(),
			ClassType:   lecture,
			GroupIDs:    []string{groupID},
			GroupNames:  []string{"SE-22-3"},
			Room:        "304",
			TimeSlot:    slot,
			Weekday:     weekday,
			WeekType:    weekType,
		}
	}
	if _, err := scheduleSvc.CreateItem(reqCtx, validate, newItem("Databases", schedule.Monday, schedule.WeekEvery)); err != nil {
		t.Fatalf("CreateItem(): %v", err)
	}
	if _, err := scheduleSvc.CreateItem(reqCtx, validate, newItem("Compilers", schedule.Tuesday, schedule.WeekOdd)); err != nil {
		t.Fatalf("CreateItem(): %v", err)
	}

	t.Run("student sees the group timetable", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/schedule", student, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Databases", "Compilers", "304", "08:30–10:00", "LEC")
	})

	t.Run("week parity filters items", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/schedule?week=even", student, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Databases")
		checkNotContains(t, rec, "Compilers")

		rec = serve(newAuthRequest(t, http.MethodGet, "/schedule?week=odd", student, nil))
		checkContains(t, rec, "Databases", "Compilers")
	})

	t.Run("unknown parity falls back to every", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/schedule?week=blue", student, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, `<a href="/schedule" class="active">`)
	})

	t.Run("teacher sees their own classes", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/schedule", teacher, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Databases", "Compilers")
	})

	t.Run("student without a group gets the empty page", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/schedule", loner, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Schedule")
		checkNotContains(t, rec, "Databases")
	})
}
