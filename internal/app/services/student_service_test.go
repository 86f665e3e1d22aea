package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/auth"
)

func TestRegisterAssignsYearSequence(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()

	first, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)
	second, err := f.students.Register(ctx, registerRequest("22222222222"))
	require.NoError(t, err)

	assert.Equal(t, "20250001", first.StudentNo)
	assert.Equal(t, "20250002", second.StudentNo)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, 0.0, first.GPA)
	assert.NotEqual(t, "123456", first.Password)
	assert.Equal(t, fixedNow, first.CreatedAt)
}

func TestRegisterDuplicateTCNoKeepsOneRecord(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()

	_, err := f.students.Register(ctx, registerRequest("1"))
	require.NoError(t, err)

	_, err = f.students.Register(ctx, registerRequest("1"))
	assert.ErrorIs(t, err, apperrors.ErrTCNoExists)
	assert.ErrorIs(t, err, apperrors.ErrIdentifierExists)

	all, err := f.repos.StudentRepository.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, s := range all {
		if s.TCNo == "1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRegisterRetriesOnNumberCollision(t *testing.T) {
	f := newFixture(t, StudentOptions{NumberAttempts: 3})
	ctx := context.Background()

	// a gap in the sequence makes count+1 land on a taken number
	require.NoError(t, f.repos.StudentRepository.Create(ctx, &models.Student{ID: "y", StudentNo: "20250002", TCNo: "y"}))

	// count == 1, so the first try is 20250002 which is taken
	s, err := f.students.Register(ctx, registerRequest("33333333333"))
	require.NoError(t, err)
	assert.Equal(t, "20250003", s.StudentNo)
}

func TestRegisterContinuesAfterHighestNumber(t *testing.T) {
	f := newFixture(t, StudentOptions{NumberAttempts: 2})
	ctx := context.Background()
	for i, no := range []string{"20250002", "20250003", "20250004"} {
		require.NoError(t, f.repos.StudentRepository.Create(ctx, &models.Student{ID: fmt.Sprint(i), StudentNo: no, TCNo: fmt.Sprint("t", i)}))
	}

	// count == 3: 20250004 is taken, the highest in use is 4
	s, err := f.students.Register(ctx, registerRequest("44444444444"))
	require.NoError(t, err)
	assert.Equal(t, "20250005", s.StudentNo)
}

func TestRegisterAfterDeletingStudents(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()

	var registered []*models.Student
	for i := 0; i < 20; i++ {
		s, err := f.students.Register(ctx, registerRequest(fmt.Sprintf("%011d", i+1)))
		require.NoError(t, err)
		registered = append(registered, s)
	}
	for _, s := range registered[:5] {
		require.NoError(t, f.students.Delete(ctx, s.ID))
	}

	// count == 15 while 20250016..20250020 are still in use
	s, err := f.students.Register(ctx, registerRequest("99999999999"))
	require.NoError(t, err)
	assert.Equal(t, "20250021", s.StudentNo)

	next, err := f.students.Register(ctx, registerRequest("88888888888"))
	require.NoError(t, err)
	assert.Equal(t, "20250022", next.StudentNo)
}

// collidingStudents reports every student number as taken
type collidingStudents struct {
	repositories.IStudentRepository
	creates int
}

func (c *collidingStudents) Create(context.Context, *models.Student) error {
	c.creates++
	return repositories.ErrStudentNoTaken
}

func TestRegisterGivesUpAfterAttempts(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	students := &collidingStudents{IStudentRepository: f.repos.StudentRepository}
	svc := NewStudentService(students, f.repos.GradeRepository, f.repos.AttendanceRepository, f.hasher, f.jwt,
		StudentOptions{NumberAttempts: 3}, func() time.Time { return fixedNow }, zerolog.Nop())

	_, err := svc.Register(context.Background(), registerRequest("55555555555"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 3, students.creates)
}

func TestStudentNumberFormat(t *testing.T) {
	assert.Equal(t, "20250001", StudentNumber(2025, 1))
	assert.Equal(t, "20261234", StudentNumber(2026, 1234))
	assert.Len(t, StudentNumber(2025, 42), 8)
	assert.Equal(t, "202510000", StudentNumber(2025, 10000))
}

func TestLoginRequiresApproval(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)

	// pending fails even with the right password
	_, err = f.students.Login(ctx, &dto.StudentLoginRequest{StudentNo: s.StudentNo, Password: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotApproved)

	require.NoError(t, f.students.Approve(ctx, s.ID, "admin"))

	resp, err := f.students.Login(ctx, &dto.StudentLoginRequest{StudentNo: s.StudentNo, Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, s.StudentNo, resp.Student.StudentNo)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeStudent, claims.Type)
	assert.Equal(t, s.StudentNo, claims.Subject)

	_, err = f.students.Login(ctx, &dto.StudentLoginRequest{StudentNo: s.StudentNo, Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.students.Login(ctx, &dto.StudentLoginRequest{StudentNo: "20259999", Password: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectedFails(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)

	require.NoError(t, f.students.Approve(ctx, s.ID, "admin"))
	require.NoError(t, f.students.Reject(ctx, s.ID))

	_, err = f.students.Login(ctx, &dto.StudentLoginRequest{StudentNo: s.StudentNo, Password: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotApproved)

	// the earlier approval stamp survives the rejection
	got, err := f.students.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, "admin", *got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.Equal(t, fixedNow, *got.ApprovedAt)
}

func TestApproveOverwritesWithoutStrictMode(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)

	require.NoError(t, f.students.Reject(ctx, s.ID))
	require.NoError(t, f.students.Approve(ctx, s.ID, "second"))

	got, err := f.students.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "second", *got.ApprovedBy)

	assert.ErrorIs(t, f.students.Approve(ctx, "missing", "admin"), apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, f.students.Reject(ctx, "missing"), apperrors.ErrResourceNotFound)
}

func TestStrictApprovalOnlyFromPending(t *testing.T) {
	f := newFixture(t, StudentOptions{StrictApproval: true})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)

	require.NoError(t, f.students.Approve(ctx, s.ID, "admin"))
	assert.ErrorIs(t, f.students.Approve(ctx, s.ID, "admin"), apperrors.ErrInvalidStatus)
	assert.ErrorIs(t, f.students.Reject(ctx, s.ID), apperrors.ErrConflict)

	back := models.StatusPending
	_, err = f.students.Update(ctx, s.ID, models.StudentPatch{Status: &back})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateStudentPatch(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)

	dept := "Yazılım Mühendisliği"
	updated, err := f.students.Update(ctx, s.ID, models.StudentPatch{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, dept, updated.Department)
	assert.Equal(t, "Ayşe", updated.FirstName)
	assert.Equal(t, s.StudentNo, updated.StudentNo)

	bogus := models.StudentStatus("archived")
	_, err = f.students.Update(ctx, s.ID, models.StudentPatch{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.students.Update(ctx, "missing", models.StudentPatch{Department: &dept})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentCascades(t *testing.T) {
	f := newFixture(t, StudentOptions{})
	ctx := context.Background()
	s, err := f.students.Register(ctx, registerRequest("11111111111"))
	require.NoError(t, err)
	other, err := f.students.Register(ctx, registerRequest("22222222222"))
	require.NoError(t, err)

	for _, id := range []string{s.ID, other.ID} {
		_, err = f.grades.Create(ctx, &dto.CreateGradeRequest{StudentID: id, CourseName: "Matematik", CourseCode: "MAT101", Credit: 4, Grade: letter("AA"), Semester: "Güz 2025"})
		require.NoError(t, err)
		_, err = f.attendance.Create(ctx, &dto.CreateAttendanceRequest{StudentID: id, CourseName: "Matematik", TotalHours: 56, AttendedHours: 52})
		require.NoError(t, err)
	}

	require.NoError(t, f.students.Delete(ctx, s.ID))

	grades, err := f.repos.GradeRepository.ListByStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, grades)
	attendance, err := f.repos.AttendanceRepository.ListByStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, attendance)

	otherGrades, err := f.repos.GradeRepository.ListByStudent(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherGrades, 1)

	assert.ErrorIs(t, f.students.Delete(ctx, s.ID), apperrors.ErrStudentNotFound)
}
