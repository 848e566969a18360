package profile

import (
	"strconv"
	"strings"
	"time"

	"github.com/iljicevs/eduportal/core/user"
)

// Choices maps stored codes to display labels for enumerated fields.
type Choices map[string]string

// Display returns the label for a code, or the code itself when it is
// not part of the set.
func (c Choices) Display(code string) string {
	if label, ok := c[code]; ok {
		return label
	}
	return code
}

var (
	TeacherPositions = Choices{
		"assistant":          "Assistant",
		"lecturer":           "Lecturer",
		"senior_lecturer":    "Senior Lecturer",
		"docent":             "Docent",
		"professor":          "Professor",
		"head_of_department": "Head of Department",
	}
	AcademicDegrees = Choices{
		"none":      "None",
		"candidate": "Candidate of Sciences",
		"doctor":    "Doctor of Sciences",
	}
	AcademicTitles = Choices{
		"none":      "None",
		"docent":    "Docent",
		"professor": "Professor",
	}
	EmploymentTypes = Choices{
		"full_time": "Staff",
		"part_time": "Adjunct",
		"contract":  "Contract",
	}
	EducationForms = Choices{
		"full_time": "Full-time",
		"part_time": "Part-time",
		"evening":   "Evening",
		"distance":  "Distance",
	}
	EducationBases = Choices{
		"budget":   "State-funded",
		"contract": "Contract",
		"targeted": "Targeted",
	}
	AcademicStatuses = Choices{
		"active":         "Enrolled",
		"academic_leave": "Academic leave",
		"expelled":       "Expelled",
		"graduated":      "Graduated",
	}
	ScholarshipStatuses = Choices{
		"none":     "None",
		"regular":  "Regular",
		"elevated": "Elevated",
		"special":  "Named",
	}
	DeanPositions = Choices{
		"dean":               "Dean",
		"vice_dean":          "Vice Dean",
		"head_of_department": "Head of Department",
	}
	AccessLevels = Choices{
		"1": "Operator",
		"2": "Manager",
		"3": "Full access",
	}
)

// YesNo renders a boolean field value for the given preferred language.
func YesNo(lang string, v bool) string {
	if lang == "ru" {
		if v {
			return "Да"
		}
		return "Нет"
	}
	if v {
		return "Yes"
	}
	return "No"
}

type (
	// NamedEntity is the minimal shape of an organizational reference
	// (a group, a specialization) when only its name matters.
	NamedEntity struct {
		ID   string `db:"id" json:"id"`
		Name string `db:"name" json:"name"`
	}

	Faculty struct {
		ID        string `db:"id" json:"id"`
		Name      string `db:"name" json:"name"`
		ShortName string `db:"short_name" json:"short_name"`
	}

	Department struct {
		ID        string   `db:"id" json:"id"`
		Name      string   `db:"name" json:"name"`
		ShortName string   `db:"short_name" json:"short_name"`
		Faculty   *Faculty `db:"-" json:"faculty,omitempty"`
	}

	Specialization struct {
		ID         string      `db:"id" json:"id"`
		Code       string      `db:"code" json:"code"`
		Name       string      `db:"name" json:"name"`
		Department *Department `db:"-" json:"department,omitempty"`
	}

	Group struct {
		ID             string          `db:"id" json:"id"`
		Name           string          `db:"name" json:"name"`
		Specialization *Specialization `db:"-" json:"specialization,omitempty"`
	}
)

type (
	StudentProfile struct {
		UserID            string    `db:"user_id" json:"user_id"`
		StudentID         string    `db:"student_id" json:"student_id"`
		Group             *Group    `db:"-" json:"group,omitempty"`
		EducationForm     string    `db:"education_form" json:"education_form"`
		EducationBasis    string    `db:"education_basis" json:"education_basis"`
		EnrollmentYear    int       `db:"enrollment_year" json:"enrollment_year"`
		CurrentSemester   int       `db:"current_semester" json:"current_semester"`
		AcademicStatus    string    `db:"academic_status" json:"academic_status"`
		ScholarshipStatus string    `db:"scholarship_status" json:"scholarship_status"`
		HasDormitory      bool      `db:"has_dormitory" json:"has_dormitory"`
		PersonalInfo      string    `db:"personal_info" json:"personal_info"`
		Skills            string    `db:"skills" json:"skills"`
		Certificates      string    `db:"certificates" json:"certificates"`
		Achievements      string    `db:"achievements" json:"achievements"`
		Activity          string    `db:"activity" json:"activity"`
		CreatedAt         time.Time `db:"created_at" json:"created_at"`
		UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
	}

	TeacherProfile struct {
		UserID         string      `db:"user_id" json:"user_id"`
		EmployeeID     string      `db:"employee_id" json:"employee_id"`
		Department     *Department `db:"-" json:"department,omitempty"`
		Position       string      `db:"position" json:"position"`
		AcademicDegree string      `db:"academic_degree" json:"academic_degree"`
		AcademicTitle  string      `db:"academic_title" json:"academic_title"`
		EmploymentType string      `db:"employment_type" json:"employment_type"`
		Specialization string      `db:"specialization" json:"specialization"`
		HireDate       time.Time   `db:"hire_date" json:"hire_date"`
		OfficeLocation string      `db:"office_location" json:"office_location"`
		OfficeHours    string      `db:"office_hours" json:"office_hours"`
		Bio            string      `db:"bio" json:"bio"`
		Publications   string      `db:"publications" json:"publications"`
		CreatedAt      time.Time   `db:"created_at" json:"created_at"`
		UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
	}

	AdminProfile struct {
		UserID             string      `db:"user_id" json:"user_id"`
		Position           string      `db:"position" json:"position"`
		Department         *Department `db:"-" json:"department,omitempty"`
		AccessLevel        int         `db:"access_level" json:"access_level"`
		ResponsibilityArea string      `db:"responsibility_area" json:"responsibility_area"`
		CreatedAt          time.Time   `db:"created_at" json:"created_at"`
		UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
	}

	MethodistProfile struct {
		UserID                 string        `db:"user_id" json:"user_id"`
		EmployeeID             string        `db:"employee_id" json:"employee_id"`
		Department             *Department   `db:"-" json:"department,omitempty"`
		Responsibilities       string        `db:"responsibilities" json:"responsibilities"`
		ManagedSpecializations []NamedEntity `db:"-" json:"managed_specializations,omitempty"`
		ManagedGroups          []NamedEntity `db:"-" json:"managed_groups,omitempty"`
		CreatedAt              time.Time     `db:"created_at" json:"created_at"`
		UpdatedAt              time.Time     `db:"updated_at" json:"updated_at"`
	}

	DeanProfile struct {
		UserID            string      `db:"user_id" json:"user_id"`
		EmployeeID        string      `db:"employee_id" json:"employee_id"`
		Position          string      `db:"position" json:"position"`
		Faculty           *Faculty    `db:"-" json:"faculty,omitempty"`
		Department        *Department `db:"-" json:"department,omitempty"`
		AcademicDegree    string      `db:"academic_degree" json:"academic_degree"`
		AcademicTitle     string      `db:"academic_title" json:"academic_title"`
		AppointmentDate   time.Time   `db:"appointment_date" json:"appointment_date"`
		TermEndDate       time.Time   `db:"term_end_date" json:"term_end_date"`
		HasTeachingDuties bool        `db:"has_teaching_duties" json:"has_teaching_duties"`
		CreatedAt         time.Time   `db:"created_at" json:"created_at"`
		UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
	}
)

// Profile is the role-specific profile attached to a user account.
// Exactly one of the role pointers is set.
type Profile struct {
	UserID    string
	Student   *StudentProfile
	Teacher   *TeacherProfile
	Admin     *AdminProfile
	Methodist *MethodistProfile
	Dean      *DeanProfile
}

// Role returns the role the attached profile belongs to.
func (p *Profile) Role() string {
	switch {
	case p.Student != nil:
		return user.RoleStudent
	case p.Teacher != nil:
		return user.RoleTeacher
	case p.Admin != nil:
		return user.RoleAdmin
	case p.Methodist != nil:
		return user.RoleMethodist
	case p.Dean != nil:
		return user.RoleDean
	}
	return ""
}

// FieldValue resolves a field path from the display configuration to
// its value. Paths may be dotted to reach through organizational
// references ("group.specialization.department.faculty.name"); a nil
// link anywhere along the path resolves to absent. Enumerated fields
// resolve to their display label.
func (p *Profile) FieldValue(path string) (interface{}, bool) {
	switch {
	case p.Student != nil:
		return p.Student.fieldValue(path)
	case p.Teacher != nil:
		return p.Teacher.fieldValue(path)
	case p.Admin != nil:
		return p.Admin.fieldValue(path)
	case p.Methodist != nil:
		return p.Methodist.fieldValue(path)
	case p.Dean != nil:
		return p.Dean.fieldValue(path)
	}
	return nil, false
}

// SectionValue resolves a content section key to its free-form text.
// Sections whose content lives elsewhere (courses, statistics) are not
// resolved here; the view composer overlays those.
func (p *Profile) SectionValue(key string) (string, bool) {
	switch key {
	case "personal_info":
		if p.Student != nil {
			return p.Student.PersonalInfo, true
		}
	case "skills":
		if p.Student != nil {
			return p.Student.Skills, true
		}
	case "certificates":
		if p.Student != nil {
			return p.Student.Certificates, true
		}
	case "achievements":
		if p.Student != nil {
			return p.Student.Achievements, true
		}
	case "activity":
		if p.Student != nil {
			return p.Student.Activity, true
		}
	case "bio":
		if p.Teacher != nil {
			return p.Teacher.Bio, true
		}
	case "publications":
		if p.Teacher != nil {
			return p.Teacher.Publications, true
		}
	case "responsibility_area":
		if p.Admin != nil {
			return p.Admin.ResponsibilityArea, true
		}
	case "responsibilities":
		if p.Methodist != nil {
			return p.Methodist.Responsibilities, true
		}
	case "managed_specializations":
		if p.Methodist != nil {
			return joinNames(p.Methodist.ManagedSpecializations), true
		}
	case "managed_groups":
		if p.Methodist != nil {
			return joinNames(p.Methodist.ManagedGroups), true
		}
	}
	return "", false
}

// ManagedGroups returns the methodist's curated groups, if any.
func (p *Profile) ManagedGroups() []NamedEntity {
	if p.Methodist != nil {
		return p.Methodist.ManagedGroups
	}
	return nil
}

// ManagedSpecializations returns the methodist's curated
// specializations, if any.
func (p *Profile) ManagedSpecializations() []NamedEntity {
	if p.Methodist != nil {
		return p.Methodist.ManagedSpecializations
	}
	return nil
}

func joinNames(entities []NamedEntity) string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}

func (sp *StudentProfile) fieldValue(path string) (interface{}, bool) {
	switch path {
	case "student_id":
		return sp.StudentID, true
	case "group.name":
		if sp.Group == nil {
			return nil, false
		}
		return sp.Group.Name, true
	case "group.specialization.name":
		if sp.Group == nil || sp.Group.Specialization == nil {
			return nil, false
		}
		return sp.Group.Specialization.Name, true
	case "group.specialization.department.faculty.name":
		spec := sp.Group.specialization()
		if spec == nil || spec.Department == nil || spec.Department.Faculty == nil {
			return nil, false
		}
		return spec.Department.Faculty.Name, true
	case "education_form":
		return EducationForms.Display(sp.EducationForm), true
	case "education_basis":
		return EducationBases.Display(sp.EducationBasis), true
	case "enrollment_year":
		return sp.EnrollmentYear, true
	case "current_semester":
		return sp.CurrentSemester, true
	case "academic_status":
		return AcademicStatuses.Display(sp.AcademicStatus), true
	case "scholarship_status":
		return ScholarshipStatuses.Display(sp.ScholarshipStatus), true
	case "has_dormitory":
		return sp.HasDormitory, true
	}
	return nil, false
}

func (g *Group) specialization() *Specialization {
	if g == nil {
		return nil
	}
	return g.Specialization
}

func (tp *TeacherProfile) fieldValue(path string) (interface{}, bool) {
	switch path {
	case "employee_id":
		return tp.EmployeeID, true
	case "department.name":
		if tp.Department == nil {
			return nil, false
		}
		return tp.Department.Name, true
	case "position":
		return TeacherPositions.Display(tp.Position), true
	case "academic_degree":
		return AcademicDegrees.Display(tp.AcademicDegree), true
	case "academic_title":
		return AcademicTitles.Display(tp.AcademicTitle), true
	case "employment_type":
		return EmploymentTypes.Display(tp.EmploymentType), true
	case "specialization":
		return tp.Specialization, true
	case "hire_date":
		if tp.HireDate.IsZero() {
			return nil, false
		}
		return tp.HireDate, true
	case "office_location":
		return tp.OfficeLocation, true
	case "office_hours":
		return tp.OfficeHours, true
	}
	return nil, false
}

func (ap *AdminProfile) fieldValue(path string) (interface{}, bool) {
	switch path {
	case "position":
		return ap.Position, true
	case "department.name":
		if ap.Department == nil {
			return nil, false
		}
		return ap.Department.Name, true
	case "access_level":
		return AccessLevels.Display(strconv.Itoa(ap.AccessLevel)), true
	}
	return nil, false
}

func (mp *MethodistProfile) fieldValue(path string) (interface{}, bool) {
	switch path {
	case "employee_id":
		return mp.EmployeeID, true
	case "department.name":
		if mp.Department == nil {
			return nil, false
		}
		return mp.Department.Name, true
	}
	return nil, false
}

func (dp *DeanProfile) fieldValue(path string) (interface{}, bool) {
	switch path {
	case "employee_id":
		return dp.EmployeeID, true
	case "position":
		return DeanPositions.Display(dp.Position), true
	case "faculty.name":
		if dp.Faculty == nil {
			return nil, false
		}
		return dp.Faculty.Name, true
	case "department.name":
		if dp.Department == nil {
			return nil, false
		}
		return dp.Department.Name, true
	case "academic_degree":
		return AcademicDegrees.Display(dp.AcademicDegree), true
	case "academic_title":
		return AcademicTitles.Display(dp.AcademicTitle), true
	case "appointment_date":
		if dp.AppointmentDate.IsZero() {
			return nil, false
		}
		return dp.AppointmentDate, true
	case "term_end_date":
		if dp.TermEndDate.IsZero() {
			return nil, false
		}
		return dp.TermEndDate, true
	case "has_teaching_duties":
		return dp.HasTeachingDuties, true
	}
	return nil, false
}
