package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type SubjectPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *SubjectPostgreSQL) Create(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (r *SubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.WithContext(ctx).
		Preload("Career").
		Preload("Cycle").
		First(&subject, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subject %d: %w", id, err)
	}
	return &subject, nil
}

func (r *SubjectPostgreSQL) Update(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Save(subject).Error; err != nil {
		return fmt.Errorf("failed to update subject %d: %w", subject.ID, err)
	}
	return nil
}

func (r *SubjectPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subject %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subject %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *SubjectPostgreSQL) List(ctx context.Context, filters repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})

	if filters.CareerID != nil {
		query = query.Where("career_id = ?", *filters.CareerID)
	}
	if filters.CicleNumber != nil {
		query = query.Where("cicle_number = ?", *filters.CicleNumber)
	}
	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subjects: %w", err)
	}

	var subjects []*models.Subject
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Career").Find(&subjects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, total, nil
}

func (r *SubjectPostgreSQL) GetByCareer(ctx context.Context, careerID uint, filters repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	filters.CareerID = &careerID
	return r.List(ctx, filters)
}

func (r *SubjectPostgreSQL) GetByCareerAndCycle(ctx context.Context, careerID uint, cicleNumber int) ([]*models.Subject, error) {
	var subjects []*models.Subject
	err := r.db.WithContext(ctx).
		Where("career_id = ? AND cicle_number = ?", careerID, cicleNumber).
		Order("name ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects for career %d cycle %d: %w", careerID, cicleNumber, err)
	}
	return subjects, nil
}

// ===== VALIDATION AND CHECKS =====

func (r *SubjectPostgreSQL) ExistsDuplicate(ctx context.Context, name string, careerID uint, cicleNumber int, excludeID *uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("name = ? AND career_id = ? AND cicle_number = ?", name, careerID, cicleNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check duplicate subject: %w", err)
	}
	return count > 0, nil
}
