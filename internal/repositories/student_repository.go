package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// StudentRepository interface for student operations (profiles database)
type StudentRepository interface {
	// Basic read operations (profile plus synchronized user reference)
	GetByID(ctx context.Context, id uint) (*models.UserReference, error)
	GetWithEnrollments(ctx context.Context, id uint, cycle *int) (*models.UserReference, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.StudentProfile, error)

	// Query operations
	List(ctx context.Context, filters StudentFilters) ([]*models.UserReference, int64, error)
	FindByFilter(ctx context.Context, expr FilterExpr) ([]*models.UserReference, error)

	// Mutations
	Update(ctx context.Context, ref *models.UserReference) error
	UpdateProfile(ctx context.Context, profile *models.StudentProfile) error
	Delete(ctx context.Context, id uint) error

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error)
}
