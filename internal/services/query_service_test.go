package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

func studentWithEnrollments(id uint, cycle int, subjectCycles ...int) *models.UserReference {
	profile := &models.StudentProfile{
		ID:           id,
		UserID:       id,
		CareerID:     1,
		CurrentCicle: cycle,
	}
	for i, sc := range subjectCycles {
		profile.StudentSubjects = append(profile.StudentSubjects, models.StudentSubject{
			ID:               uint(i + 1),
			StudentProfileID: id,
			SubjectID:        uint(i + 1),
			Status:           models.EnrollmentEnrolled,
			Subject:          models.SubjectReference{ID: uint(i + 1), CicleNumber: sc},
		})
	}
	return &models.UserReference{
		ID:             id,
		Name:           "Student",
		RoleID:         models.RoleIDStudent,
		Status:         models.StatusActive,
		StudentProfile: profile,
	}
}

func TestQueryService_StudentsWithFilters_CyclePostFilter(t *testing.T) {
	repo := newMockRepository()
	repo.filterResult = []*models.UserReference{
		studentWithEnrollments(1, 1, 1, 2),
		studentWithEnrollments(2, 1, 2),
		studentWithEnrollments(3, 1),
	}
	svc := NewQueryService(repo, slog.Default())

	status := models.StatusActive
	careerID := uint(1)
	cycle := 1
	resp, err := svc.StudentsWithFilters(context.Background(), StudentQueryFilters{
		CareerID:    &careerID,
		CycleNumber: &cycle,
		Status:      &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Summary.TotalMatching)
	assert.Equal(t, 1, resp.Summary.WithEnrollments)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, uint(1), resp.Students[0].ID)

	sql, args := repo.lastFilter.ToSQL()
	assert.Contains(t, sql, "user_reference.role_id = ?")
	assert.Contains(t, sql, "user_reference.status = ?")
	assert.Contains(t, sql, "sp.career_id = ?")
	assert.Contains(t, args, models.RoleIDStudent)
	assert.Contains(t, args, models.StatusActive)
}

func TestQueryService_StudentsByCycles_BuildsOrExpression(t *testing.T) {
	repo := newMockRepository()
	repo.filterResult = []*models.UserReference{studentWithEnrollments(1, 2, 2)}
	svc := NewQueryService(repo, slog.Default())

	resp, err := svc.StudentsByCycles(context.Background(), []int{1, 2, 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.TotalMatching)
	assert.Equal(t, 1, resp.Summary.WithEnrollments)

	sql, args := repo.lastFilter.ToSQL()
	assert.Contains(t, sql, "(sp.current_cicle = ?) OR (sp.current_cicle = ?) OR (sp.current_cicle = ?)")
	assert.Contains(t, args, 1)
	assert.Contains(t, args, 2)
	assert.Contains(t, args, 3)
}

func TestQueryService_StudentsExcludingStatuses_BuildsNegation(t *testing.T) {
	repo := newMockRepository()
	repo.filterResult = nil
	svc := NewQueryService(repo, slog.Default())

	careerID := uint(5)
	_, err := svc.StudentsExcludingStatuses(context.Background(),
		[]models.UserStatus{models.StatusSuspended, models.StatusInactive}, &careerID)
	require.NoError(t, err)

	sql, args := repo.lastFilter.ToSQL()
	assert.Contains(t, sql, "NOT ((user_reference.status = ?) OR (user_reference.status = ?))")
	assert.Contains(t, sql, "sp.career_id = ?")
	assert.Contains(t, args, models.StatusSuspended)
	assert.Contains(t, args, models.StatusInactive)
	assert.Contains(t, args, uint(5))
}

func TestQueryService_StudentsComplexFilter(t *testing.T) {
	repo := newMockRepository()
	repo.filterResult = []*models.UserReference{
		studentWithEnrollments(1, 1, 1),
		studentWithEnrollments(2, 2),
	}
	svc := NewQueryService(repo, slog.Default())

	status := models.StatusActive
	resp, err := svc.StudentsComplexFilter(context.Background(), ComplexQueryFilters{
		CareerIDs:     []uint{1, 2},
		ExcludeCycles: []int{5, 6},
		Status:        &status,
	})
	require.NoError(t, err)

	// Student 2 has no enrollments and is dropped by the post-filter.
	assert.Equal(t, 2, resp.Summary.TotalMatching)
	assert.Equal(t, 1, resp.Summary.WithEnrollments)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, uint(1), resp.Students[0].ID)

	sql, _ := repo.lastFilter.ToSQL()
	assert.Contains(t, sql, "(sp.career_id = ?) OR (sp.career_id = ?)")
	assert.Contains(t, sql, "NOT ((sp.current_cicle = ?) OR (sp.current_cicle = ?))")
}
