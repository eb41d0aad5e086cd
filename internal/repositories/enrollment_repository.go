package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// EnrollmentRepository interface for enrollment operations (profiles database).
// Capacity checks and creation must run inside WithProfilesTransaction so that
// concurrent enrollments cannot oversubscribe a subject.
type EnrollmentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, enrollment *models.StudentSubject) error
	GetByID(ctx context.Context, id uint) (*models.StudentSubject, error)
	Update(ctx context.Context, enrollment *models.StudentSubject) error
	Delete(ctx context.Context, id uint) error

	// Workflow lookups
	GetByStudentAndSubject(ctx context.Context, studentProfileID, subjectID uint) (*models.StudentSubject, error)
	GetSubjectReference(ctx context.Context, subjectID uint) (*models.SubjectReference, error)
	CountActiveBySubject(ctx context.Context, subjectID uint) (int64, error)

	// Query operations
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.StudentSubject, int64, error)
	ListByStudent(ctx context.Context, studentProfileID uint) ([]*models.StudentSubject, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]*models.StudentSubject, error)
}
