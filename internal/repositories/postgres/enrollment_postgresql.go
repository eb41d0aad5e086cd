package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.StudentSubject) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.StudentSubject, error) {
	var enrollment models.StudentSubject
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("StudentProfile.User").
		Preload("Subject").
		First(&enrollment, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment %d: %w", id, err)
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) Update(ctx context.Context, enrollment *models.StudentSubject) error {
	if err := r.db.WithContext(ctx).Save(enrollment).Error; err != nil {
		return fmt.Errorf("failed to update enrollment %d: %w", enrollment.ID, err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.StudentSubject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete enrollment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("enrollment %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== WORKFLOW LOOKUPS =====

func (r *EnrollmentPostgreSQL) GetByStudentAndSubject(ctx context.Context, studentProfileID, subjectID uint) (*models.StudentSubject, error) {
	var enrollment models.StudentSubject
	err := r.db.WithContext(ctx).
		Where("student_profile_id = ? AND subject_id = ?", studentProfileID, subjectID).
		First(&enrollment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment for student=%d subject=%d: %w", studentProfileID, subjectID, err)
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) GetSubjectReference(ctx context.Context, subjectID uint) (*models.SubjectReference, error) {
	var ref models.SubjectReference
	err := r.db.WithContext(ctx).
		Preload("Career").
		First(&ref, subjectID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subject reference %d: %w", subjectID, err)
	}
	return &ref, nil
}

// CountActiveBySubject counts enrolled rows for capacity checks. Must run
// inside the enrollment transaction to be authoritative.
func (r *EnrollmentPostgreSQL) CountActiveBySubject(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StudentSubject{}).
		Where("subject_id = ? AND status = ?", subjectID, models.EnrollmentEnrolled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments for subject %d: %w", subjectID, err)
	}
	return count, nil
}

// ===== QUERY OPERATIONS =====

func (r *EnrollmentPostgreSQL) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.StudentSubject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentSubject{})

	if filters.StudentProfileID != nil {
		query = query.Where("student_profile_id = ?", *filters.StudentProfileID)
	}
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Graded != nil {
		if *filters.Graded {
			query = query.Where("grade IS NOT NULL")
		} else {
			query = query.Where("grade IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	var enrollments []*models.StudentSubject
	query = r.helpers.ApplyPaginationAndSort(query, "enrolled_at", "asc", filters.Limit, filters.Offset)
	err := query.
		Preload("StudentProfile").
		Preload("StudentProfile.User").
		Preload("Subject").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, total, nil
}

func (r *EnrollmentPostgreSQL) ListByStudent(ctx context.Context, studentProfileID uint) ([]*models.StudentSubject, error) {
	var enrollments []*models.StudentSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Subject.Career").
		Where("student_profile_id = ?", studentProfileID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments for student %d: %w", studentProfileID, err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) ListBySubject(ctx context.Context, subjectID uint) ([]*models.StudentSubject, error) {
	var enrollments []*models.StudentSubject
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("StudentProfile.User").
		Where("subject_id = ?", subjectID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments for subject %d: %w", subjectID, err)
	}
	return enrollments, nil
}
