package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// SubjectRepository interface for subject operations (academic database)
type SubjectRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context, filters SubjectFilters) ([]*models.Subject, int64, error)
	GetByCareer(ctx context.Context, careerID uint, filters SubjectFilters) ([]*models.Subject, int64, error)
	GetByCareerAndCycle(ctx context.Context, careerID uint, cicleNumber int) ([]*models.Subject, error)

	// Validation and checks
	ExistsDuplicate(ctx context.Context, name string, careerID uint, cicleNumber int, excludeID *uint) (bool, error)
}
