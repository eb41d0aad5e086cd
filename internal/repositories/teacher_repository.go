package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// TeacherWithSubjectsRow pairs a teacher reference with the number of
// subjects assigned to its profile.
type TeacherWithSubjectsRow struct {
	Teacher       *models.UserReference `json:"teacher"`
	SubjectsCount int64                 `json:"subjects_count"`
}

// TeacherRepository interface for teacher operations (profiles database)
type TeacherRepository interface {
	// Basic read operations
	GetByID(ctx context.Context, id uint) (*models.UserReference, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.TeacherProfile, error)

	// Query operations
	List(ctx context.Context, filters TeacherFilters) ([]*models.UserReference, int64, error)
	ListWithMultipleSubjects(ctx context.Context, limit, offset int) ([]TeacherWithSubjectsRow, int64, error)

	// Mutations
	Update(ctx context.Context, ref *models.UserReference) error
	UpdateProfile(ctx context.Context, profile *models.TeacherProfile) error
	Delete(ctx context.Context, id uint) error

	// Subject assignments
	AssignSubject(ctx context.Context, assignment *models.SubjectAssignment) error
	UnassignSubject(ctx context.Context, teacherProfileID, subjectID uint) error
	AssignmentExists(ctx context.Context, teacherProfileID, subjectID uint) (bool, error)
	ListAssignments(ctx context.Context, teacherProfileID uint) ([]*models.SubjectAssignment, error)
}
