package profile

import "github.com/iljicevs/eduportal/core/user"

type (
	// FieldConfig describes one profile field's presentation: the
	// resolution path into the profile, its label, whether it is
	// currently shown, and how its value renders.
	FieldConfig struct {
		Key         string `db:"key" json:"key"`
		DisplayName string `db:"display_name" json:"display_name"`
		Visible     bool   `db:"visible" json:"visible"`
		IsChoice    bool   `db:"is_choice" json:"is_choice"`
		IsBoolean   bool   `db:"is_boolean" json:"is_boolean"`
	}

	// SectionConfig describes one tabbed profile section.
	SectionConfig struct {
		Key         string `db:"key" json:"key"`
		DisplayName string `db:"display_name" json:"display_name"`
		Visible     bool   `db:"visible" json:"visible"`
	}

	// DisplayConfig is the full per-role presentation catalog, in
	// render order.
	DisplayConfig struct {
		Role     string
		Fields   []FieldConfig
		Sections []SectionConfig
	}
)

// FieldByKey returns the config entry for a field key.
func (dc DisplayConfig) FieldByKey(key string) (FieldConfig, bool) {
	for _, f := range dc.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// SectionByKey returns the config entry for a section key.
func (dc DisplayConfig) SectionByKey(key string) (SectionConfig, bool) {
	for _, s := range dc.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// ShowStatistics reports whether the statistics section is enabled.
func (dc DisplayConfig) ShowStatistics() bool {
	s, ok := dc.SectionByKey("statistics")
	return ok && s.Visible
}

// DefaultDisplayConfig returns the built-in presentation catalog for a
// role, with every field and section visible. Administrators curate
// visibility on top of it; keys and flags are fixed.
func DefaultDisplayConfig(role string) DisplayConfig {
	dc := DisplayConfig{Role: role}
	switch role {
	case user.RoleStudent:
		dc.Fields = []FieldConfig{
			{Key: "group.specialization.department.faculty.name", DisplayName: "Faculty", Visible: true},
			{Key: "group.specialization.name", DisplayName: "Degree Programme", Visible: true},
			{Key: "group.name", DisplayName: "Group", Visible: true},
			{Key: "student_id", DisplayName: "Student ID", Visible: true},
			{Key: "education_form", DisplayName: "Mode of Study", Visible: true, IsChoice: true},
			{Key: "education_basis", DisplayName: "Funding Basis", Visible: true, IsChoice: true},
			{Key: "enrollment_year", DisplayName: "Year of Enrollment", Visible: true},
			{Key: "current_semester", DisplayName: "Current Semester", Visible: true},
			{Key: "academic_status", DisplayName: "Status", Visible: true, IsChoice: true},
			{Key: "scholarship_status", DisplayName: "Scholarship", Visible: true, IsChoice: true},
			{Key: "has_dormitory", DisplayName: "Lives in Dormitory", Visible: true, IsBoolean: true},
		}
		dc.Sections = []SectionConfig{
			{Key: "personal_info", DisplayName: "Additional Information", Visible: true},
			{Key: "skills", DisplayName: "Skills", Visible: true},
			{Key: "certificates", DisplayName: "Certificates", Visible: true},
			{Key: "achievements", DisplayName: "Achievements", Visible: true},
			{Key: "courses", DisplayName: "Courses", Visible: true},
			{Key: "activity", DisplayName: "Activity", Visible: true},
			{Key: "statistics", DisplayName: "Statistics", Visible: true},
		}
	case user.RoleTeacher:
		dc.Fields = []FieldConfig{
			{Key: "department.name", DisplayName: "Department", Visible: true},
			{Key: "position", DisplayName: "Position", Visible: true, IsChoice: true},
			{Key: "academic_degree", DisplayName: "Academic Degree", Visible: true, IsChoice: true},
			{Key: "academic_title", DisplayName: "Academic Title", Visible: true, IsChoice: true},
			{Key: "employment_type", DisplayName: "Employment Type", Visible: true, IsChoice: true},
			{Key: "specialization", DisplayName: "Specialization", Visible: true},
			{Key: "hire_date", DisplayName: "Hire Date", Visible: true},
			{Key: "office_location", DisplayName: "Office", Visible: true},
			{Key: "office_hours", DisplayName: "Office Hours", Visible: true},
		}
		dc.Sections = []SectionConfig{
			{Key: "bio", DisplayName: "Biography", Visible: true},
			{Key: "courses", DisplayName: "Courses", Visible: true},
			{Key: "publications", DisplayName: "Publications", Visible: true},
		}
	case user.RoleAdmin:
		dc.Fields = []FieldConfig{
			{Key: "position", DisplayName: "Position", Visible: true},
			{Key: "department.name", DisplayName: "Division", Visible: true},
			{Key: "access_level", DisplayName: "Access Level", Visible: true, IsChoice: true},
		}
		dc.Sections = []SectionConfig{
			{Key: "responsibility_area", DisplayName: "Area of Responsibility", Visible: true},
		}
	case user.RoleMethodist:
		dc.Fields = []FieldConfig{
			{Key: "department.name", DisplayName: "Department", Visible: true},
			{Key: "employee_id", DisplayName: "Employee ID", Visible: true},
		}
		dc.Sections = []SectionConfig{
			{Key: "responsibilities", DisplayName: "Responsibilities", Visible: true},
			{Key: "managed_specializations", DisplayName: "Curated Programmes", Visible: true},
			{Key: "managed_groups", DisplayName: "Curated Groups", Visible: true},
		}
	case user.RoleDean:
		dc.Fields = []FieldConfig{
			{Key: "position", DisplayName: "Position", Visible: true, IsChoice: true},
			{Key: "faculty.name", DisplayName: "Faculty", Visible: true},
			{Key: "department.name", DisplayName: "Department", Visible: true},
			{Key: "academic_degree", DisplayName: "Academic Degree", Visible: true, IsChoice: true},
			{Key: "academic_title", DisplayName: "Academic Title", Visible: true, IsChoice: true},
			{Key: "appointment_date", DisplayName: "Appointment Date", Visible: true},
			{Key: "term_end_date", DisplayName: "End of Term", Visible: true},
			{Key: "has_teaching_duties", DisplayName: "Teaching Duties", Visible: true, IsBoolean: true},
		}
	}
	return dc
}
