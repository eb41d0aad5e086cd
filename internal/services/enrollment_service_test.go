package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

func newEnrollmentService(t *testing.T, repo *mockRepository) EnrollmentService {
	t.Helper()
	return NewEnrollmentService(repo, slog.Default(), validator.New())
}

func TestEnrollmentService_Enroll_Success(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	resp, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	require.NoError(t, err)

	assert.Equal(t, uint(200), resp.Student.ID)
	assert.Equal(t, "Juan Pérez", resp.Student.Name)
	assert.Equal(t, "Programación I", resp.Subject.Name)
	assert.Equal(t, models.EnrollmentEnrolled, resp.Status)
	assert.Equal(t, int64(29), resp.SlotsRemaining)

	require.Len(t, repo.enrollments, 1)
	for _, e := range repo.enrollments {
		assert.Equal(t, models.EnrollmentEnrolled, e.Status)
		assert.Nil(t, e.Grade)
	}
}

func TestEnrollmentService_Enroll_DuplicateConflicts(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Len(t, repo.enrollments, 1)
}

func TestEnrollmentService_Enroll_InactiveStudent(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusSuspended, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	assert.ErrorIs(t, err, ErrStudentNotActive)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentService_Enroll_MissingProfile(t *testing.T) {
	repo := newMockRepository()
	student := repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	student.StudentProfile = nil
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	assert.ErrorIs(t, err, ErrStudentProfileMissing)
}

func TestEnrollmentService_Enroll_StudentNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 999, SubjectID: 1})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestEnrollmentService_Enroll_SubjectNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 404})
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestEnrollmentService_Enroll_CareerMismatch(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(7, 2, "Anatomía I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 7})
	assert.ErrorIs(t, err, ErrSubjectCareerMismatch)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentService_Enroll_CapacityBoundary(t *testing.T) {
	repo := newMockRepository()
	repo.addSubject(1, 1, "Programación I", 1)

	// 29 other students already enrolled
	for i := uint(1); i <= 29; i++ {
		repo.addStudent(i, models.StatusActive, 1, "Relleno", "relleno@example.com")
		repo.addEnrollment(i, 1, nil)
	}
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addStudent(201, models.StatusActive, 1, "María López", "maria.lopez@example.com")
	svc := newEnrollmentService(t, repo)

	// 30th seat succeeds with zero slots remaining
	resp, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: 200, SubjectID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.SlotsRemaining)

	// 31st fails
	_, err = svc.Enroll(context.Background(), &EnrollRequest{StudentID: 201, SubjectID: 1})
	assert.ErrorIs(t, err, ErrSubjectFull)
	assert.Equal(t, int64(30), repo.countBySubject(1))
}

func TestEnrollmentService_EnrollBulk_PartialSuccess(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	repo.addSubject(2, 1, "Matemática Discreta", 1)
	repo.addEnrollment(200, 2, nil) // already enrolled in subject 2
	svc := newEnrollmentService(t, repo)

	resp, err := svc.EnrollBulk(context.Background(), &BulkEnrollRequest{
		StudentID:  200,
		SubjectIDs: []uint{1, 2, 404},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalRequested)
	assert.Equal(t, 1, resp.TotalEnrolled)
	assert.Equal(t, 2, resp.TotalFailed)
	require.Len(t, resp.Enrollments, 1)
	assert.Equal(t, uint(1), resp.Enrollments[0].Subject.ID)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, uint(2), resp.Errors[0].SubjectID)
	assert.Equal(t, uint(404), resp.Errors[1].SubjectID)
}

func TestEnrollmentService_EnrollBulk_TotalFailureAborts(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(2, 1, "Matemática Discreta", 1)
	repo.addEnrollment(200, 2, nil)
	svc := newEnrollmentService(t, repo)

	before := len(repo.enrollments)
	_, err := svc.EnrollBulk(context.Background(), &BulkEnrollRequest{
		StudentID:  200,
		SubjectIDs: []uint{2, 404},
	})
	assert.ErrorIs(t, err, ErrBulkEnrollmentFailed)
	assert.Len(t, repo.enrollments, before)
}

func TestEnrollmentService_EnrollBulk_InvalidStudentAborts(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusInactive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	svc := newEnrollmentService(t, repo)

	_, err := svc.EnrollBulk(context.Background(), &BulkEnrollRequest{
		StudentID:  200,
		SubjectIDs: []uint{1},
	})
	assert.ErrorIs(t, err, ErrStudentNotActive)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentService_Cancel_Success(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	enrollment := repo.addEnrollment(200, 1, nil)
	svc := newEnrollmentService(t, repo)

	resp, err := svc.Cancel(context.Background(), enrollment.ID)
	require.NoError(t, err)

	assert.Equal(t, enrollment.ID, resp.EnrollmentID)
	assert.Equal(t, "Juan Pérez", resp.StudentName)
	assert.Equal(t, "Programación I", resp.SubjectName)
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentService_Cancel_GradedIsImmutable(t *testing.T) {
	repo := newMockRepository()
	repo.addStudent(200, models.StatusActive, 1, "Juan Pérez", "juan.perez@example.com")
	repo.addSubject(1, 1, "Programación I", 1)
	grade := 8.5
	enrollment := repo.addEnrollment(200, 1, &grade)
	svc := newEnrollmentService(t, repo)

	_, err := svc.Cancel(context.Background(), enrollment.ID)
	assert.ErrorIs(t, err, ErrEnrollmentGraded)
	assert.Len(t, repo.enrollments, 1)
}

func TestEnrollmentService_Cancel_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newEnrollmentService(t, repo)

	_, err := svc.Cancel(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
