package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type ReferencePostgreSQL struct {
	db *gorm.DB
}

func NewReferencePostgreSQL(db *gorm.DB) repositories.ReferenceRepository {
	return &ReferencePostgreSQL{db: db}
}

// ===== USER REFERENCES =====

func (r *ReferencePostgreSQL) CreateUserReference(ctx context.Context, ref *models.UserReference) error {
	if err := r.db.WithContext(ctx).Create(ref).Error; err != nil {
		return fmt.Errorf("failed to create user reference: %w", err)
	}
	return nil
}

func (r *ReferencePostgreSQL) UpsertUserReference(ctx context.Context, ref *models.UserReference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role_id", "status"}),
		}).
		Create(ref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user reference %d: %w", ref.ID, err)
	}
	return nil
}

func (r *ReferencePostgreSQL) DeleteUserReference(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.UserReference{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user reference %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user reference %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== PROFILES =====

func (r *ReferencePostgreSQL) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create student profile: %w", err)
	}
	return nil
}

func (r *ReferencePostgreSQL) CreateTeacherProfile(ctx context.Context, profile *models.TeacherProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create teacher profile: %w", err)
	}
	return nil
}

// ===== ACADEMIC REFERENCES =====

func (r *ReferencePostgreSQL) UpsertCareerReference(ctx context.Context, ref *models.CareerReference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "total_cicles"}),
		}).
		Create(ref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert career reference %d: %w", ref.ID, err)
	}
	return nil
}

func (r *ReferencePostgreSQL) DeleteCareerReference(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CareerReference{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete career reference %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("career reference %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *ReferencePostgreSQL) UpsertSpecialityReference(ctx context.Context, ref *models.SpecialityReference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(ref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert speciality reference %d: %w", ref.ID, err)
	}
	return nil
}

func (r *ReferencePostgreSQL) UpsertSubjectReference(ctx context.Context, ref *models.SubjectReference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "career_id", "cicle_number"}),
		}).
		Create(ref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subject reference %d: %w", ref.ID, err)
	}
	return nil
}

func (r *ReferencePostgreSQL) DeleteSubjectReference(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SubjectReference{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subject reference %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subject reference %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== LOOKUPS =====

func (r *ReferencePostgreSQL) GetCareerReference(ctx context.Context, id uint) (*models.CareerReference, error) {
	var ref models.CareerReference
	if err := r.db.WithContext(ctx).First(&ref, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get career reference %d: %w", id, err)
	}
	return &ref, nil
}

func (r *ReferencePostgreSQL) GetSubjectReference(ctx context.Context, id uint) (*models.SubjectReference, error) {
	var ref models.SubjectReference
	if err := r.db.WithContext(ctx).Preload("Career").First(&ref, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get subject reference %d: %w", id, err)
	}
	return &ref, nil
}
