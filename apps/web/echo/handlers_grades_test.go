package echoweb

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/iljicevs/eduportal/core/user"
)

func Test_grades(t *testing.T) {
	teacher := createUser(t, "Marta", "marta", "marta@test.cd", user.RoleTeacher, true)
	student := createUser(t, "Pavel", "pavel", "pavel@test.cd", user.RoleStudent, true)

	gradeForm := func(studentID, subject, kind, value string) url.Values {
		return url.Values{
			"student_id": {studentID},
			"subject":    {subject},
			"kind":       {kind},
			"value":      {value},
			"comment":    {"Good work"},
		}
	}

	t.Run("students may not record", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/grades", student,
			gradeForm(student.ID, "Algebra", "test", "5")))
		checkCode(t, rec, http.StatusForbidden)
	})

	t.Run("teacher records a grade", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/grades", teacher,
			gradeForm(student.ID, "Algebra", "exam", "4.5")))
		checkRedirect(t, rec, "/grades")
	})

	t.Run("value must be a number", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/grades", teacher,
			gradeForm(student.ID, "Algebra", "exam", "five")))
		checkCode(t, rec, http.StatusBadRequest)
		checkContains(t, rec, "must be a number")
	})

	t.Run("value out of range", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodPost, "/grades", teacher,
			gradeForm(student.ID, "Algebra", "exam", "7")))
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("student sees their grades and summary", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/grades", student, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Algebra", "Exam", "4.5", `class="grades__summary"`)
		// students get no recording form
		checkNotContains(t, rec, "Record a grade")
	})

	t.Run("teacher sees given grades and the form", func(t *testing.T) {
		rec := serve(newAuthRequest(t, http.MethodGet, "/grades", teacher, nil))
		checkCode(t, rec, http.StatusOK)
		checkContains(t, rec, "Algebra", "Record a grade", `<option value="exam">Exam</option>`)
	})
}
