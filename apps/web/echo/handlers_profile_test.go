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

func createStudentProfile(t *testing.T, usr user.User) {
	t.Helper()
	faculty := &profile.Faculty{ID: "f1", Name: "Informatics", ShortName: "INF"}
	dept := &profile.Department{ID: "d1", Name: "Software Engineering", Faculty: faculty}
	spec := &profile.Specialization{ID: "s1", Code: "09.03.04", Name: "Software Engineering", Department: dept}
	group := &profile.Group{ID: "g1", Name: "SE-21-1", Specialization: spec}

	err := profRepo.UpsertProfile(context.Background(), &profile.Profile{
		UserID: usr.ID,
		Student: &profile.StudentProfile{
			UserID:            usr.ID,
			StudentID:         "20210042",
			Group:             group,
			EducationForm:     "full_time",
			EducationBasis:    "budget",
			EnrollmentYear:    2021,
			CurrentSemester:   6,
			AcademicStatus:    "active",
			ScholarshipStatus: "regular",
			HasDormitory:      false,
			PersonalInfo:      "Fond of robotics.",
		},
	})
	if err != nil {
		t.Fatalf("UpsertProfile(): %v", err)
	}
}

func Test_ownProfile(t *testing.T) {
	usr := createUser(t, "Elena", "elena", "elena@test.cd", user.RoleStudent, true)
	createStudentProfile(t, usr)

	rec := serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
	checkCode(t, rec, http.StatusOK)
	checkContains(t, rec,
		"Doe Elena",
		"Student",
		// every tab is bound to its panel by the shared identifier
		`data-tab="info"`,
		`id="info-content"`,
		`data-tab="personal_info"`,
		`id="personal_info-content"`,
		`data-tab="statistics"`,
		`id="statistics-content"`,
		// resolved fields, enumerated codes as labels
		"SE-21-1",
		"Informatics",
		"20210042",
		"Full-time",
		"State-funded",
		"Enrolled",
		// the section content
		"Fond of robotics.",
	)
	checkNotContains(t, rec, "full_time", "budget")
}

func Test_ownProfile_tabSelection(t *testing.T) {
	usr := createUser(t, "Boris", "boris", "boris@test.cd", user.RoleStudent, true)
	createStudentProfile(t, usr)

	infoActive := `data-tab="info" aria-selected="true"`
	personalActive := `data-tab="personal_info" aria-selected="true"`
	infoPanelActive := `id="info-content" class="tab-panel active"`
	personalPanelActive := `id="personal_info-content" class="tab-panel active"`

	t.Run("first tab starts active", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, infoActive, infoPanelActive)
		checkNotContains(t, rec, personalActive, personalPanelActive)
	})

	t.Run("?tab= moves the selection", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile?tab=personal_info", usr, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, personalActive, personalPanelActive)
		checkNotContains(t, rec, infoActive, infoPanelActive)
	})

	t.Run("unknown tab leaves it on the first", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile?tab=bogus", usr, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, infoActive, infoPanelActive)
	})
}

func Test_ownProfile_booleanField(t *testing.T) {
	usr := createUser(t, "Dorm", "dormer", "dormer@test.cd", user.RoleStudent, true)
	createStudentProfile(t, usr)

	rec := serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
	checkCode(t, rec, http.StatusOK)
	checkContains(t, rec, "Lives in Dormitory", "<dd>No</dd>")
}

func Test_ownProfile_sections(t *testing.T) {
	teacher := createUser(t, "Pavel", "pavel", "pavel@test.cd", user.RoleTeacher, true)
	student := createUser(t, "Marta", "marta", "marta@test.cd", user.RoleStudent, true)

	reqCtx := context.Background()
	groupID := uuid.New().String()

	err := profRepo.UpsertProfile(reqCtx, &profile.Profile{
		UserID: student.ID,
		Student: &profile.StudentProfile{
			UserID:       student.ID,
			Group:        &profile.Group{ID: groupID, Name: "SE-23-2"},
			Skills:       "Go, SQL, LaTeX",
			Achievements: "ICPC regional finalist",
		},
	})
	if err != nil {
		t.Fatalf("UpsertProfile(): %v", err)
	}
	err = profRepo.UpsertProfile(reqCtx, &profile.Profile{
		UserID: teacher.ID,
		Teacher: &profile.TeacherProfile{
			UserID:       teacher.ID,
			Bio:          "Teaching since 2012.",
			Publications: "Query planners revisited, 2020",
		},
	})
	if err != nil {
		t.Fatalf("UpsertProfile(): %v", err)
	}

	slot, err := scheduleSvc.CreateTimeSlot(reqCtx, validate, schedule.TimeSlot{
		Number: 2, StartTime: "10:15", EndTime: "11:45", BreakAfter: 20,
	})
	if err != nil {
		t.Fatalf("CreateTimeSlot(): %v", err)
	}
	seminar, err := scheduleSvc.CreateClassType(reqCtx, validate, schedule.ClassType{
		Name: "Seminar", ShortName: "SEM", Color: "#2ecc71",
	})
	if err != nil {
		t.Fatalf("CreateClassType(): %v", err)
	}
	for _, subject := range []string{"Operating Systems", "Algorithms"} {
		_, err := scheduleSvc.CreateItem(reqCtx, validate, schedule.Item{
			Subject:     subject,
			TeacherID:   teacher.ID,
			TeacherName: teacher.FullName(),
			ClassType:   seminar,
			GroupIDs:    []string{groupID},
			GroupNames:  []string{"SE-23-2"},
			Room:        "211",
			TimeSlot:    slot,
			Weekday:     schedule.Wednesday,
			WeekType:    schedule.WeekEvery,
		})
		if err != nil {
			t.Fatalf("CreateItem(): %v", err)
		}
	}

	t.Run("student stored sections and courses", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile", student, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec,
			`id="skills-content"`,
			"Go, SQL, LaTeX",
			`id="achievements-content"`,
			"ICPC regional finalist",
			// the group's timetable feeds the courses tab
			`id="courses-content"`,
			"Algorithms, Operating Systems",
		)
	})

	t.Run("teacher publications and own classes", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/profile", teacher, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec,
			`id="bio-content"`,
			"Teaching since 2012.",
			`id="publications-content"`,
			"Query planners revisited, 2020",
			"Algorithms, Operating Systems",
		)
	})
}

func Test_ownProfile_missingProfile(t *testing.T) {
	// an account without a stored profile still gets its page
	usr := createUser(t, "Fresh", "fresh", "fresh@test.cd", user.RoleTeacher, true)

	rec := serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
	checkCode(t, rec, http.StatusOK)
	checkContains(t, rec, "Doe Fresh", `data-tab="info"`, `data-tab="bio"`)
}

func Test_userProfile(t *testing.T) {
	owner := createUser(t, "Olga", "olga", "olga@test.cd", user.RoleStudent, true)
	createStudentProfile(t, owner)
	viewer := createUser(t, "Viktor", "viktor", "viktor@test.cd", user.RoleTeacher, true)

	rec := serve(newAuthRequest(t, http.MethodGet, "/users/"+owner.ID, viewer, nil))
	checkCode(t, rec, http.StatusOK)
	checkContains(t, rec, "Doe Olga", "SE-21-1")

	t.Run("unknown account", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/users/missing", viewer, nil))
		checkCode(t, rec, http.StatusNotFound)
	})
}

func Test_ownProfile_displayOverrides(t *testing.T) {
	usr := createUser(t, "Hidden", "hidden", "hidden@test.cd", user.RoleDean, true)
	err := profRepo.UpsertProfile(context.Background(), &profile.Profile{
		UserID: usr.ID,
		Dean: &profile.DeanProfile{
			UserID:            usr.ID,
			EmployeeID:        "EMP-77",
			Position:          "dean",
			AcademicDegree:    "doctor",
			AcademicTitle:     "professor",
			HasTeachingDuties: true,
		},
	})
	if err != nil {
		t.Fatalf("UpsertProfile(): %v", err)
	}

	rec := serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
	checkCode(t, rec, http.StatusOK)
	checkContains(t, rec, "Doctor of Sciences", "Teaching Duties", "<dd>Yes</dd>")

	// hide the degree for the whole role
	err = settingsSvc.UpdateProfileDisplay(context.Background(), user.RoleDean,
		map[string]bool{"academic_degree": false}, nil)
	if err != nil {
		t.Fatalf("UpdateProfileDisplay(): %v", err)
	}

	rec = serve(newAuthRequest(t, http.MethodGet, "/profile", usr, nil))
	checkCode(t, rec, http.StatusOK)
	checkNotContains(t, rec, "Doctor of Sciences")
	checkContains(t, rec, "Teaching Duties")
}
