package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iljicevs/eduportal/core/user"
)

func studentFixture() (user.User, *Profile) {
	usr := user.User{
		ID:                "6a2f41a3-c54c-fce8-32d2-0324e1c32e22",
		Username:          "jdoe",
		Email:             "jdoe@example.edu",
		FirstName:         "John",
		LastName:          "Doe",
		Role:              user.RoleStudent,
		PreferredLanguage: "en",
	}
	prof := &Profile{
		UserID: usr.ID,
		Student: &StudentProfile{
			UserID:    usr.ID,
			StudentID: "ST-0042",
			Group: &Group{
				Name: "CS-201",
				Specialization: &Specialization{
					Name: "Computer Science",
					Department: &Department{
						Name:    "Software Engineering",
						Faculty: &Faculty{Name: "Faculty of Informatics"},
					},
				},
			},
			EducationForm:     "full_time",
			EducationBasis:    "budget",
			EnrollmentYear:    2023,
			CurrentSemester:   4,
			AcademicStatus:    "active",
			ScholarshipStatus: "regular",
			HasDormitory:      false,
			PersonalInfo:      "Erasmus exchange in 2024.",
		},
	}
	return usr, prof
}

func TestComposerCompose(t *testing.T) {
	comp := NewComposer()

	t.Run("StudentFields", func(t *testing.T) {
		usr, prof := studentFixture()
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		want := map[string]string{
			"group.specialization.department.faculty.name": "Faculty of Informatics",
			"group.specialization.name":                    "Computer Science",
			"group.name":                                   "CS-201",
			"student_id":                                   "ST-0042",
			"education_form":                               "Full-time",
			"education_basis":                              "State-funded",
			"enrollment_year":                              "2023",
			"current_semester":                             "4",
			"academic_status":                              "Enrolled",
			"scholarship_status":                           "Regular",
			"has_dormitory":                                "No",
		}
		require.Len(t, view.Fields, len(want))
		for _, fv := range view.Fields {
			assert.Equal(t, want[fv.Key], fv.Value, fv.Key)
		}
	})

	t.Run("BooleanFalseRendersNo", func(t *testing.T) {
		usr, prof := studentFixture()
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		fv := fieldByKey(t, view, "has_dormitory")
		assert.True(t, fv.IsBoolean)
		assert.Equal(t, "No", fv.Value)
	})

	t.Run("BooleanLocalized", func(t *testing.T) {
		usr, prof := studentFixture()
		usr.PreferredLanguage = "ru"
		prof.Student.HasDormitory = true
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		assert.Equal(t, "Да", fieldByKey(t, view, "has_dormitory").Value)
	})

	t.Run("HiddenFieldOmitted", func(t *testing.T) {
		usr, prof := studentFixture()
		cfg := DefaultDisplayConfig(usr.Role)
		for i := range cfg.Fields {
			if cfg.Fields[i].Key == "student_id" {
				cfg.Fields[i].Visible = false
			}
		}
		view := comp.Compose(usr, prof, cfg, nil)

		for _, fv := range view.Fields {
			assert.NotEqual(t, "student_id", fv.Key)
		}
	})

	t.Run("BrokenPathOmitted", func(t *testing.T) {
		usr, prof := studentFixture()
		prof.Student.Group = nil
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		for _, fv := range view.Fields {
			assert.NotContains(t, fv.Key, "group")
		}
	})

	t.Run("SectionsAndTabs", func(t *testing.T) {
		usr, prof := studentFixture()
		extra := map[string]string{"statistics": "GPA 4.6 over 24 graded works"}
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), extra)

		require.NotEmpty(t, view.Sections)
		assert.Equal(t, "personal_info", view.Sections[0].Key)
		assert.Equal(t, "Erasmus exchange in 2024.", view.Sections[0].Value)
		assert.True(t, view.ShowStatistics)

		var stats SectionValue
		for _, s := range view.Sections {
			if s.Key == "statistics" {
				stats = s
			}
		}
		assert.Equal(t, "GPA 4.6 over 24 graded works", stats.Value)

		// one tab per section plus the leading info tab, each with a panel
		require.Len(t, view.Tabs.Tabs(), len(view.Sections)+1)
		assert.True(t, view.Tabs.IsActive(TabInfo))
		assert.True(t, view.Tabs.IsVisible(PanelID(TabInfo)))
		assert.Empty(t, view.Tabs.MissingPanels())
	})

	t.Run("HiddenSectionDropsTab", func(t *testing.T) {
		usr, prof := studentFixture()
		cfg := DefaultDisplayConfig(usr.Role)
		for i := range cfg.Sections {
			if cfg.Sections[i].Key == "statistics" {
				cfg.Sections[i].Visible = false
			}
		}
		view := comp.Compose(usr, prof, cfg, nil)

		assert.False(t, view.ShowStatistics)
		for _, tab := range view.Tabs.Tabs() {
			assert.NotEqual(t, "statistics", tab.ID)
		}
	})

	t.Run("StoredSections", func(t *testing.T) {
		usr, prof := studentFixture()
		prof.Student.Skills = "Go, SQL, LaTeX"
		prof.Student.Certificates = "IELTS 7.5"
		prof.Student.Achievements = "ICPC regional finalist"
		prof.Student.Activity = "Robotics club"
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		want := map[string]string{
			"skills":       "Go, SQL, LaTeX",
			"certificates": "IELTS 7.5",
			"achievements": "ICPC regional finalist",
			"activity":     "Robotics club",
		}
		for key, value := range want {
			assert.Equal(t, value, sectionByKey(t, view, key).Value, key)
		}
	})

	t.Run("CoursesOverlay", func(t *testing.T) {
		usr, prof := studentFixture()
		extra := map[string]string{"courses": "Compilers, Databases"}
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), extra)

		assert.Equal(t, "Compilers, Databases", sectionByKey(t, view, "courses").Value)
	})

	t.Run("TeacherChoicesAndDates", func(t *testing.T) {
		usr := user.User{
			ID:                "b2c3d4e5-1111-2222-3333-444455556666",
			Role:              user.RoleTeacher,
			PreferredLanguage: "en",
		}
		prof := &Profile{
			UserID: usr.ID,
			Teacher: &TeacherProfile{
				UserID:         usr.ID,
				Department:     &Department{Name: "Applied Mathematics"},
				Position:       "docent",
				AcademicDegree: "candidate",
				AcademicTitle:  "docent",
				EmploymentType: "full_time",
				Specialization: "Numerical methods",
				HireDate:       time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
				OfficeLocation: "B-304",
				OfficeHours:    "Tue 14:00-16:00",
				Bio:            "Teaching since 2015.",
				Publications:   "Sparse solvers survey, 2021",
			},
		}
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		assert.Equal(t, "Docent", fieldByKey(t, view, "position").Value)
		assert.Equal(t, "Candidate of Sciences", fieldByKey(t, view, "academic_degree").Value)
		assert.Equal(t, "Staff", fieldByKey(t, view, "employment_type").Value)
		assert.Equal(t, "01.09.2015", fieldByKey(t, view, "hire_date").Value)
		assert.Equal(t, "Sparse solvers survey, 2021", sectionByKey(t, view, "publications").Value)
	})

	t.Run("MethodistSections", func(t *testing.T) {
		usr := user.User{
			ID:                "c3d4e5f6-aaaa-bbbb-cccc-ddddeeeeffff",
			Role:              user.RoleMethodist,
			PreferredLanguage: "en",
		}
		prof := &Profile{
			UserID: usr.ID,
			Methodist: &MethodistProfile{
				UserID:           usr.ID,
				EmployeeID:       "EMP-007",
				Department:       &Department{Name: "Dean's Office"},
				Responsibilities: "Curriculum coordination",
				ManagedGroups: []NamedEntity{
					{Name: "CS-201"}, {Name: "CS-202"},
				},
			},
		}
		view := comp.Compose(usr, prof, DefaultDisplayConfig(usr.Role), nil)

		var groups SectionValue
		for _, s := range view.Sections {
			if s.Key == "managed_groups" {
				groups = s
			}
		}
		assert.Equal(t, "CS-201, CS-202", groups.Value)
	})
}

func fieldByKey(t *testing.T, view *View, key string) FieldValue {
	t.Helper()
	for _, fv := range view.Fields {
		if fv.Key == key {
			return fv
		}
	}
	t.Fatalf("field %q not composed", key)
	return FieldValue{}
}

func sectionByKey(t *testing.T, view *View, key string) SectionValue {
	t.Helper()
	for _, sv := range view.Sections {
		if sv.Key == key {
			return sv
		}
	}
	t.Fatalf("section %q not composed", key)
	return SectionValue{}
}
