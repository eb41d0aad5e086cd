package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type CareerPostgreSQL struct {
	db *gorm.DB
}

func NewCareerPostgreSQL(db *gorm.DB) repositories.CareerRepository {
	return &CareerPostgreSQL{db: db}
}

// ===== CAREER CRUD =====

func (r *CareerPostgreSQL) Create(ctx context.Context, career *models.Career) error {
	if err := r.db.WithContext(ctx).Create(career).Error; err != nil {
		return fmt.Errorf("failed to create career: %w", err)
	}
	return nil
}

func (r *CareerPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Career, error) {
	var career models.Career
	if err := r.db.WithContext(ctx).First(&career, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get career %d: %w", id, err)
	}
	return &career, nil
}

func (r *CareerPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.Career, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Career{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count careers: %w", err)
	}

	query := r.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var careers []*models.Career
	if err := query.Find(&careers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list careers: %w", err)
	}

	return careers, total, nil
}

func (r *CareerPostgreSQL) Update(ctx context.Context, career *models.Career) error {
	if err := r.db.WithContext(ctx).Save(career).Error; err != nil {
		return fmt.Errorf("failed to update career %d: %w", career.ID, err)
	}
	return nil
}

func (r *CareerPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Career{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete career %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("career %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CareerPostgreSQL) ExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Career{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check career name: %w", err)
	}
	return count > 0, nil
}

// ===== SPECIALITIES =====

func (r *CareerPostgreSQL) GetSpeciality(ctx context.Context, id uint) (*models.Speciality, error) {
	var speciality models.Speciality
	if err := r.db.WithContext(ctx).First(&speciality, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get speciality %d: %w", id, err)
	}
	return &speciality, nil
}

func (r *CareerPostgreSQL) ListSpecialities(ctx context.Context) ([]*models.Speciality, error) {
	var specialities []*models.Speciality
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&specialities).Error; err != nil {
		return nil, fmt.Errorf("failed to list specialities: %w", err)
	}
	return specialities, nil
}

// ===== ACADEMIC CYCLES =====

func (r *CareerPostgreSQL) GetActiveCycle(ctx context.Context) (*models.Cycle, error) {
	var cycle models.Cycle
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("year DESC, period DESC").
		First(&cycle).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active cycle: %w", err)
	}
	return &cycle, nil
}

func (r *CareerPostgreSQL) ListCycles(ctx context.Context) ([]*models.Cycle, error) {
	var cycles []*models.Cycle
	err := r.db.WithContext(ctx).
		Order("year DESC, period DESC").
		Find(&cycles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}
