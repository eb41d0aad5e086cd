package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

type teacherMockRepo struct {
	*mockRepository
	teachers *teacherStore
}

func newTeacherMockRepo() *teacherMockRepo {
	return &teacherMockRepo{
		mockRepository: newMockRepository(),
		teachers:       &teacherStore{},
	}
}

func (m *teacherMockRepo) Teacher() repositories.TeacherRepository { return m.teachers }

// teacherStore serves canned multiple-subject rows, slicing them the way the
// real repository paginates.
type teacherStore struct {
	multiRows []repositories.TeacherWithSubjectsRow
}

func (s *teacherStore) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	return nil, errors.New("not implemented")
}

func (s *teacherStore) GetProfileByUserID(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	return nil, errors.New("not implemented")
}

func (s *teacherStore) List(ctx context.Context, filters repositories.TeacherFilters) ([]*models.UserReference, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *teacherStore) ListWithMultipleSubjects(ctx context.Context, limit, offset int) ([]repositories.TeacherWithSubjectsRow, int64, error) {
	total := int64(len(s.multiRows))
	if offset >= len(s.multiRows) {
		return []repositories.TeacherWithSubjectsRow{}, total, nil
	}
	end := len(s.multiRows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return s.multiRows[offset:end], total, nil
}

func (s *teacherStore) Update(ctx context.Context, ref *models.UserReference) error { return nil }
func (s *teacherStore) UpdateProfile(ctx context.Context, profile *models.TeacherProfile) error {
	return nil
}
func (s *teacherStore) Delete(ctx context.Context, id uint) error { return nil }

func (s *teacherStore) AssignSubject(ctx context.Context, assignment *models.SubjectAssignment) error {
	return nil
}
func (s *teacherStore) UnassignSubject(ctx context.Context, teacherProfileID, subjectID uint) error {
	return nil
}
func (s *teacherStore) AssignmentExists(ctx context.Context, teacherProfileID, subjectID uint) (bool, error) {
	return false, nil
}
func (s *teacherStore) ListAssignments(ctx context.Context, teacherProfileID uint) ([]*models.SubjectAssignment, error) {
	return nil, nil
}

func multiSubjectRow(id uint, name string, count int64) repositories.TeacherWithSubjectsRow {
	return repositories.TeacherWithSubjectsRow{
		Teacher: &models.UserReference{
			ID:     id,
			Name:   name,
			RoleID: models.RoleIDTeacher,
			Status: models.StatusActive,
		},
		SubjectsCount: count,
	}
}

func TestTeacherService_WithMultipleSubjects(t *testing.T) {
	repo := newTeacherMockRepo()
	repo.teachers.multiRows = []repositories.TeacherWithSubjectsRow{
		multiSubjectRow(100, "Dr. Carlos Méndez", 3),
		multiSubjectRow(101, "Ing. María López", 2),
	}
	svc := NewTeacherService(repo, slog.Default(), validator.New())

	resp, err := svc.WithMultipleSubjects(context.Background(), 10, 0)
	require.NoError(t, err)

	require.Len(t, resp.Teachers, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Size)

	// Most-loaded teacher first, count carried alongside the reference.
	assert.Equal(t, uint(100), resp.Teachers[0].Teacher.ID)
	assert.Equal(t, int64(3), resp.Teachers[0].SubjectsCount)
	assert.Equal(t, int64(2), resp.Teachers[1].SubjectsCount)
}

func TestTeacherService_WithMultipleSubjectsPagination(t *testing.T) {
	repo := newTeacherMockRepo()
	repo.teachers.multiRows = []repositories.TeacherWithSubjectsRow{
		multiSubjectRow(100, "Dr. Carlos Méndez", 5),
		multiSubjectRow(101, "Ing. María López", 3),
		multiSubjectRow(102, "Dr. Luis Torres", 2),
	}
	svc := NewTeacherService(repo, slog.Default(), validator.New())

	resp, err := svc.WithMultipleSubjects(context.Background(), 2, 2)
	require.NoError(t, err)

	require.Len(t, resp.Teachers, 1)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, uint(102), resp.Teachers[0].Teacher.ID)
}

func TestTeacherService_WithMultipleSubjectsEmpty(t *testing.T) {
	repo := newTeacherMockRepo()
	svc := NewTeacherService(repo, slog.Default(), validator.New())

	resp, err := svc.WithMultipleSubjects(context.Background(), 10, 0)
	require.NoError(t, err)

	assert.Empty(t, resp.Teachers)
	assert.Equal(t, int64(0), resp.Total)
}
