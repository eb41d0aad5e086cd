package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *StudentPostgreSQL) studentScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.UserReference{}).
		Where("role_id = ?", models.RoleIDStudent)
}

// ===== BASIC READ OPERATIONS =====

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	var ref models.UserReference
	err := r.studentScope(ctx).
		Preload("StudentProfile").
		Preload("StudentProfile.Career").
		First(&ref, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	return &ref, nil
}

// GetWithEnrollments loads a student together with active enrollments and
// their subjects, optionally restricted to subjects of a single cycle.
func (r *StudentPostgreSQL) GetWithEnrollments(ctx context.Context, id uint, cycle *int) (*models.UserReference, error) {
	var ref models.UserReference
	err := r.studentScope(ctx).
		Preload("StudentProfile").
		Preload("StudentProfile.Career").
		Preload("StudentProfile.StudentSubjects", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.EnrollmentEnrolled).Order("enrolled_at ASC")
		}).
		Preload("StudentProfile.StudentSubjects.Subject").
		First(&ref, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student %d with enrollments: %w", id, err)
	}

	if cycle != nil && ref.StudentProfile != nil {
		filtered := make([]models.StudentSubject, 0, len(ref.StudentProfile.StudentSubjects))
		for _, ss := range ref.StudentProfile.StudentSubjects {
			if ss.Subject.CicleNumber == *cycle {
				filtered = append(filtered, ss)
			}
		}
		ref.StudentProfile.StudentSubjects = filtered
	}

	return &ref, nil
}

func (r *StudentPostgreSQL) GetProfileByUserID(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("Career").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// ===== QUERY OPERATIONS =====

func (r *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.UserReference, int64, error) {
	query := r.studentScope(ctx)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CareerID != nil || filters.Cycle != nil {
		query = query.Joins("JOIN student_profile sp ON sp.user_id = user_reference.id")
		if filters.CareerID != nil {
			query = query.Where("sp.career_id = ?", *filters.CareerID)
		}
		if filters.Cycle != nil {
			query = query.Where("sp.current_cicle = ?", *filters.Cycle)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var refs []*models.UserReference
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("StudentProfile").
		Preload("StudentProfile.Career").
		Find(&refs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return refs, total, nil
}

// FindByFilter runs an expression-tree filter against the student scope.
// Columns in the expression refer to user_reference and the joined
// student_profile (aliased sp).
func (r *StudentPostgreSQL) FindByFilter(ctx context.Context, expr repositories.FilterExpr) ([]*models.UserReference, error) {
	query := r.studentScope(ctx).
		Joins("JOIN student_profile sp ON sp.user_id = user_reference.id")
	query = r.helpers.ApplyFilterExpr(query, expr)

	var refs []*models.UserReference
	err := query.
		Preload("StudentProfile").
		Preload("StudentProfile.Career").
		Preload("StudentProfile.StudentSubjects", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.EnrollmentEnrolled)
		}).
		Preload("StudentProfile.StudentSubjects.Subject").
		Find(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter students: %w", err)
	}
	return refs, nil
}

// ===== MUTATIONS =====

func (r *StudentPostgreSQL) Update(ctx context.Context, ref *models.UserReference) error {
	if err := r.db.WithContext(ctx).Save(ref).Error; err != nil {
		return fmt.Errorf("failed to update student %d: %w", ref.ID, err)
	}
	return nil
}

func (r *StudentPostgreSQL) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update student profile %d: %w", profile.ID, err)
	}
	return nil
}

// Delete removes the student's enrollments, profile and reference row.
// Callers run this inside a profiles transaction.
func (r *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	var profile models.StudentProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&profile).Error
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).
			Where("student_profile_id = ?", profile.ID).
			Delete(&models.StudentSubject{}).Error; err != nil {
			return fmt.Errorf("failed to delete enrollments for student %d: %w", id, err)
		}
		if err := r.db.WithContext(ctx).Delete(&profile).Error; err != nil {
			return fmt.Errorf("failed to delete student profile %d: %w", profile.ID, err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to load student profile for %d: %w", id, err)
	}

	result := r.db.WithContext(ctx).
		Where("role_id = ?", models.RoleIDStudent).
		Delete(&models.UserReference{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete student %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("student %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== VALIDATION AND CHECKS =====

func (r *StudentPostgreSQL) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.UserReference{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
