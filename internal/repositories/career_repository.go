package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// CareerRepository interface for career, speciality and cycle operations
// (academic database)
type CareerRepository interface {
	// Career CRUD
	Create(ctx context.Context, career *models.Career) error
	GetByID(ctx context.Context, id uint) (*models.Career, error)
	List(ctx context.Context, limit, offset int) ([]*models.Career, int64, error)
	Update(ctx context.Context, career *models.Career) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error)

	// Specialities
	GetSpeciality(ctx context.Context, id uint) (*models.Speciality, error)
	ListSpecialities(ctx context.Context) ([]*models.Speciality, error)

	// Academic cycles
	GetActiveCycle(ctx context.Context) (*models.Cycle, error)
	ListCycles(ctx context.Context) ([]*models.Cycle, error)
}
