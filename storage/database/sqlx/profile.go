package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iljicevs/eduportal/core/profile"
	"github.com/iljicevs/eduportal/core/user"
)

// The organizational tree (faculty > department > specialization >
// group) is small and read-heavy; each profile read joins it flat and
// rebuilds the references in Go.

type (
	studentRow struct {
		UserID            string      `db:"user_id"`
		StudentID         string      `db:"student_id"`
		GroupID           null.String `db:"group_id"`
		GroupName         null.String `db:"group_name"`
		SpecID            null.String `db:"spec_id"`
		SpecName          null.String `db:"spec_name"`
		DeptID            null.String `db:"dept_id"`
		DeptName          null.String `db:"dept_name"`
		FacultyID         null.String `db:"faculty_id"`
		FacultyName       null.String `db:"faculty_name"`
		EducationForm     string      `db:"education_form"`
		EducationBasis    string      `db:"education_basis"`
		EnrollmentYear    int         `db:"enrollment_year"`
		CurrentSemester   int         `db:"current_semester"`
		AcademicStatus    string      `db:"academic_status"`
		ScholarshipStatus string      `db:"scholarship_status"`
		HasDormitory      bool        `db:"has_dormitory"`
		PersonalInfo      string      `db:"personal_info"`
		Skills            string      `db:"skills"`
		Certificates      string      `db:"certificates"`
		Achievements      string      `db:"achievements"`
		Activity          string      `db:"activity"`
		CreatedAt         time.Time   `db:"created_at"`
		UpdatedAt         time.Time   `db:"updated_at"`
	}

	employeeRow struct {
		UserID         string      `db:"user_id"`
		EmployeeID     string      `db:"employee_id"`
		Position       string      `db:"position"`
		DeptID         null.String `db:"dept_id"`
		DeptName       null.String `db:"dept_name"`
		FacultyID      null.String `db:"faculty_id"`
		FacultyName    null.String `db:"faculty_name"`
		AcademicDegree string      `db:"academic_degree"`
		AcademicTitle  string      `db:"academic_title"`
		EmploymentType string      `db:"employment_type"`
		Specialization string      `db:"specialization"`
		HireDate       null.Time   `db:"hire_date"`
		OfficeLocation string      `db:"office_location"`
		OfficeHours    string      `db:"office_hours"`
		Bio            string      `db:"bio"`
		Publications   string      `db:"publications"`
		AccessLevel    int         `db:"access_level"`
		Responsibility string      `db:"responsibility_area"`
		AppointmentAt  null.Time   `db:"appointment_date"`
		TermEndAt      null.Time   `db:"term_end_date"`
		Teaches        bool        `db:"has_teaching_duties"`
		CreatedAt      time.Time   `db:"created_at"`
		UpdatedAt      time.Time   `db:"updated_at"`
	}

	namedRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
)

func (r studentRow) group() *profile.Group {
	if !r.GroupID.Valid {
		return nil
	}
	g := &profile.Group{ID: r.GroupID.String, Name: r.GroupName.String}
	if r.SpecID.Valid {
		g.Specialization = &profile.Specialization{ID: r.SpecID.String, Name: r.SpecName.String}
		if r.DeptID.Valid {
			g.Specialization.Department = &profile.Department{ID: r.DeptID.String, Name: r.DeptName.String}
			if r.FacultyID.Valid {
				g.Specialization.Department.Faculty = &profile.Faculty{ID: r.FacultyID.String, Name: r.FacultyName.String}
			}
		}
	}
	return g
}

func (r employeeRow) department() *profile.Department {
	if !r.DeptID.Valid {
		return nil
	}
	return &profile.Department{ID: r.DeptID.String, Name: r.DeptName.String}
}

func (r employeeRow) faculty() *profile.Faculty {
	if !r.FacultyID.Valid {
		return nil
	}
	return &profile.Faculty{ID: r.FacultyID.String, Name: r.FacultyName.String}
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) profile.Repository {
	return &profileRepository{db: db}
}

const studentProfileQuery = `
	SELECT sp.user_id, sp.student_id, sp.education_form, sp.education_basis,
		sp.enrollment_year, sp.current_semester, sp.academic_status,
		sp.scholarship_status, sp.has_dormitory, sp.personal_info,
		sp.skills, sp.certificates, sp.achievements, sp.activity,
		sp.created_at, sp.updated_at,
		g.id AS group_id, g.name AS group_name,
		s.id AS spec_id, s.name AS spec_name,
		d.id AS dept_id, d.name AS dept_name,
		f.id AS faculty_id, f.name AS faculty_name
	FROM student_profile sp
	LEFT JOIN study_group g ON g.id = sp.group_id
	LEFT JOIN specialization s ON s.id = g.specialization_id
	LEFT JOIN department d ON d.id = s.department_id
	LEFT JOIN faculty f ON f.id = d.faculty_id
	WHERE sp.user_id = $1`

const employeeProfileQuery = `
	SELECT ep.user_id, ep.employee_id, ep.position, ep.academic_degree,
		ep.academic_title, ep.employment_type, ep.specialization,
		ep.hire_date, ep.office_location, ep.office_hours, ep.bio,
		ep.publications, ep.access_level, ep.responsibility_area, ep.appointment_date,
		ep.term_end_date, ep.has_teaching_duties,
		ep.created_at, ep.updated_at,
		d.id AS dept_id, d.name AS dept_name,
		f.id AS faculty_id, f.name AS faculty_name
	FROM employee_profile ep
	LEFT JOIN department d ON d.id = ep.department_id
	LEFT JOIN faculty f ON f.id = ep.faculty_id
	WHERE ep.user_id = $1`

func (repo *profileRepository) GetProfile(ctx context.Context, userID, role string) (*profile.Profile, error) {
	if role == user.RoleStudent {
		return repo.getStudent(ctx, userID)
	}
	return repo.getEmployee(ctx, userID, role)
}

func (repo *profileRepository) getStudent(ctx context.Context, userID string) (*profile.Profile, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, studentProfileQuery, userID)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "getting student profile")
	}
	return &profile.Profile{
		UserID: userID,
		Student: &profile.StudentProfile{
			UserID:            row.UserID,
			StudentID:         row.StudentID,
			Group:             row.group(),
			EducationForm:     row.EducationForm,
			EducationBasis:    row.EducationBasis,
			EnrollmentYear:    row.EnrollmentYear,
			CurrentSemester:   row.CurrentSemester,
			AcademicStatus:    row.AcademicStatus,
			ScholarshipStatus: row.ScholarshipStatus,
			HasDormitory:      row.HasDormitory,
			PersonalInfo:      row.PersonalInfo,
			Skills:            row.Skills,
			Certificates:      row.Certificates,
			Achievements:      row.Achievements,
			Activity:          row.Activity,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		},
	}, nil
}

func (repo *profileRepository) getEmployee(ctx context.Context, userID, role string) (*profile.Profile, error) {
	var row employeeRow
	err := repo.db.GetContext(ctx, &row, employeeProfileQuery, userID)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "getting employee profile")
	}

	p := &profile.Profile{UserID: userID}
	switch role {
	case user.RoleTeacher:
		p.Teacher = &profile.TeacherProfile{
			UserID:         row.UserID,
			EmployeeID:     row.EmployeeID,
			Department:     row.department(),
			Position:       row.Position,
			AcademicDegree: row.AcademicDegree,
			AcademicTitle:  row.AcademicTitle,
			EmploymentType: row.EmploymentType,
			Specialization: row.Specialization,
			HireDate:       row.HireDate.Time,
			OfficeLocation: row.OfficeLocation,
			OfficeHours:    row.OfficeHours,
			Bio:            row.Bio,
			Publications:   row.Publications,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		}
	case user.RoleAdmin:
		p.Admin = &profile.AdminProfile{
			UserID:             row.UserID,
			Position:           row.Position,
			Department:         row.department(),
			AccessLevel:        row.AccessLevel,
			ResponsibilityArea: row.Responsibility,
			CreatedAt:          row.CreatedAt,
			UpdatedAt:          row.UpdatedAt,
		}
	case user.RoleMethodist:
		mp := &profile.MethodistProfile{
			UserID:           row.UserID,
			EmployeeID:       row.EmployeeID,
			Department:       row.department(),
			Responsibilities: row.Responsibility,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		}
		var err error
		if mp.ManagedSpecializations, err = repo.managed(ctx, userID, "specialization"); err != nil {
			return nil, err
		}
		if mp.ManagedGroups, err = repo.managed(ctx, userID, "group"); err != nil {
			return nil, err
		}
		p.Methodist = mp
	case user.RoleDean:
		p.Dean = &profile.DeanProfile{
			UserID:            row.UserID,
			EmployeeID:        row.EmployeeID,
			Position:          row.Position,
			Faculty:           row.faculty(),
			Department:        row.department(),
			AcademicDegree:    row.AcademicDegree,
			AcademicTitle:     row.AcademicTitle,
			AppointmentDate:   row.AppointmentAt.Time,
			TermEndDate:       row.TermEndAt.Time,
			HasTeachingDuties: row.Teaches,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		}
	default:
		return nil, profile.ErrNotFound
	}
	return p, nil
}

func (repo *profileRepository) managed(ctx context.Context, userID, kind string) ([]profile.NamedEntity, error) {
	var table, join string
	switch kind {
	case "specialization":
		table, join = "specialization", "managed_specialization"
	case "group":
		table, join = "study_group", "managed_group"
	}
	var rows []namedRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.name FROM `+table+` t
		JOIN `+join+` m ON m.entity_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.name`, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing managed %ss", kind)
	}
	entities := make([]profile.NamedEntity, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, profile.NamedEntity{ID: r.ID, Name: r.Name})
	}
	return entities, nil
}

func (repo *profileRepository) UpsertProfile(ctx context.Context, p *profile.Profile) error {
	switch {
	case p.Student != nil:
		return repo.upsertStudent(ctx, p.Student)
	case p.Teacher != nil:
		return repo.upsertEmployee(ctx, employeeRow{
			UserID:         p.Teacher.UserID,
			EmployeeID:     p.Teacher.EmployeeID,
			Position:       p.Teacher.Position,
			DeptID:         deptID(p.Teacher.Department),
			AcademicDegree: p.Teacher.AcademicDegree,
			AcademicTitle:  p.Teacher.AcademicTitle,
			EmploymentType: p.Teacher.EmploymentType,
			Specialization: p.Teacher.Specialization,
			HireDate:       null.NewTime(p.Teacher.HireDate, !p.Teacher.HireDate.IsZero()),
			OfficeLocation: p.Teacher.OfficeLocation,
			OfficeHours:    p.Teacher.OfficeHours,
			Bio:            p.Teacher.Bio,
			Publications:   p.Teacher.Publications,
		})
	case p.Admin != nil:
		return repo.upsertEmployee(ctx, employeeRow{
			UserID:         p.Admin.UserID,
			Position:       p.Admin.Position,
			DeptID:         deptID(p.Admin.Department),
			AccessLevel:    p.Admin.AccessLevel,
			Responsibility: p.Admin.ResponsibilityArea,
		})
	case p.Methodist != nil:
		return repo.upsertEmployee(ctx, employeeRow{
			UserID:         p.Methodist.UserID,
			EmployeeID:     p.Methodist.EmployeeID,
			DeptID:         deptID(p.Methodist.Department),
			Responsibility: p.Methodist.Responsibilities,
		})
	case p.Dean != nil:
		return repo.upsertEmployee(ctx, employeeRow{
			UserID:         p.Dean.UserID,
			EmployeeID:     p.Dean.EmployeeID,
			Position:       p.Dean.Position,
			DeptID:         deptID(p.Dean.Department),
			FacultyID:      facultyID(p.Dean.Faculty),
			AcademicDegree: p.Dean.AcademicDegree,
			AcademicTitle:  p.Dean.AcademicTitle,
			AppointmentAt:  null.NewTime(p.Dean.AppointmentDate, !p.Dean.AppointmentDate.IsZero()),
			TermEndAt:      null.NewTime(p.Dean.TermEndDate, !p.Dean.TermEndDate.IsZero()),
			Teaches:        p.Dean.HasTeachingDuties,
		})
	}
	return errors.New("empty profile")
}

func deptID(d *profile.Department) null.String {
	if d == nil {
		return null.String{}
	}
	return null.StringFrom(d.ID)
}

func facultyID(f *profile.Faculty) null.String {
	if f == nil {
		return null.String{}
	}
	return null.StringFrom(f.ID)
}

func (repo *profileRepository) upsertStudent(ctx context.Context, sp *profile.StudentProfile) error {
	var groupID null.String
	if sp.Group != nil {
		groupID = null.StringFrom(sp.Group.ID)
	}
	now := time.Now().UTC()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO student_profile (user_id, student_id, group_id, education_form,
			education_basis, enrollment_year, current_semester, academic_status,
			scholarship_status, has_dormitory, personal_info, skills,
			certificates, achievements, activity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT (user_id) DO UPDATE SET
			student_id = EXCLUDED.student_id, group_id = EXCLUDED.group_id,
			education_form = EXCLUDED.education_form,
			education_basis = EXCLUDED.education_basis,
			enrollment_year = EXCLUDED.enrollment_year,
			current_semester = EXCLUDED.current_semester,
			academic_status = EXCLUDED.academic_status,
			scholarship_status = EXCLUDED.scholarship_status,
			has_dormitory = EXCLUDED.has_dormitory,
			personal_info = EXCLUDED.personal_info,
			skills = EXCLUDED.skills,
			certificates = EXCLUDED.certificates,
			achievements = EXCLUDED.achievements,
			activity = EXCLUDED.activity,
			updated_at = EXCLUDED.updated_at`,
		sp.UserID, sp.StudentID, groupID, sp.EducationForm, sp.EducationBasis,
		sp.EnrollmentYear, sp.CurrentSemester, sp.AcademicStatus,
		sp.ScholarshipStatus, sp.HasDormitory, sp.PersonalInfo,
		sp.Skills, sp.Certificates, sp.Achievements, sp.Activity, now)
	return errors.Wrap(err, "upserting student profile")
}

func (repo *profileRepository) upsertEmployee(ctx context.Context, row employeeRow) error {
	now := time.Now().UTC()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO employee_profile (user_id, employee_id, position, department_id,
			faculty_id, academic_degree, academic_title, employment_type,
			specialization, hire_date, office_location, office_hours, bio,
			publications, access_level, responsibility_area, appointment_date,
			term_end_date, has_teaching_duties, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $20)
		ON CONFLICT (user_id) DO UPDATE SET
			employee_id = EXCLUDED.employee_id, position = EXCLUDED.position,
			department_id = EXCLUDED.department_id, faculty_id = EXCLUDED.faculty_id,
			academic_degree = EXCLUDED.academic_degree,
			academic_title = EXCLUDED.academic_title,
			employment_type = EXCLUDED.employment_type,
			specialization = EXCLUDED.specialization,
			hire_date = EXCLUDED.hire_date,
			office_location = EXCLUDED.office_location,
			office_hours = EXCLUDED.office_hours, bio = EXCLUDED.bio,
			publications = EXCLUDED.publications,
			access_level = EXCLUDED.access_level,
			responsibility_area = EXCLUDED.responsibility_area,
			appointment_date = EXCLUDED.appointment_date,
			term_end_date = EXCLUDED.term_end_date,
			has_teaching_duties = EXCLUDED.has_teaching_duties,
			updated_at = EXCLUDED.updated_at`,
		row.UserID, row.EmployeeID, row.Position, row.DeptID, row.FacultyID,
		row.AcademicDegree, row.AcademicTitle, row.EmploymentType,
		row.Specialization, row.HireDate, row.OfficeLocation, row.OfficeHours,
		row.Bio, row.Publications, row.AccessLevel, row.Responsibility,
		row.AppointmentAt, row.TermEndAt, row.Teaches, now)
	return errors.Wrap(err, "upserting employee profile")
}
