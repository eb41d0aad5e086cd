package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type TeacherPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *TeacherPostgreSQL) teacherScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.UserReference{}).
		Where("role_id = ?", models.RoleIDTeacher)
}

// ===== BASIC READ OPERATIONS =====

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	var ref models.UserReference
	err := r.teacherScope(ctx).
		Preload("TeacherProfile").
		Preload("TeacherProfile.Assignments").
		Preload("TeacherProfile.Assignments.Subject").
		First(&ref, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher %d: %w", id, err)
	}
	return &ref, nil
}

func (r *TeacherPostgreSQL) GetProfileByUserID(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	var profile models.TeacherProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// ===== QUERY OPERATIONS =====

func (r *TeacherPostgreSQL) List(ctx context.Context, filters repositories.TeacherFilters) ([]*models.UserReference, int64, error) {
	query := r.teacherScope(ctx)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.SpecialityID != nil || filters.CareerID != nil {
		query = query.Joins("JOIN teacher_profile tp ON tp.user_id = user_reference.id")
		if filters.SpecialityID != nil {
			query = query.Where("tp.speciality_id = ?", *filters.SpecialityID)
		}
		if filters.CareerID != nil {
			query = query.Where("tp.career_id = ?", *filters.CareerID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	var refs []*models.UserReference
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("TeacherProfile").
		Preload("TeacherProfile.Assignments").
		Find(&refs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teachers: %w", err)
	}

	return refs, total, nil
}

// ListWithMultipleSubjects returns teachers whose profile carries more than
// one subject assignment, most-loaded first.
func (r *TeacherPostgreSQL) ListWithMultipleSubjects(ctx context.Context, limit, offset int) ([]repositories.TeacherWithSubjectsRow, int64, error) {
	type assignmentCount struct {
		UserID uint  `gorm:"column:user_id"`
		Total  int64 `gorm:"column:total"`
	}

	var counts []assignmentCount
	err := r.db.WithContext(ctx).
		Model(&models.SubjectAssignment{}).
		Select("tp.user_id AS user_id, COUNT(*) AS total").
		Joins("JOIN teacher_profile tp ON tp.id = subject_assignment.teacher_profile_id").
		Group("tp.user_id").
		Having("COUNT(*) > 1").
		Order("total DESC, user_id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count teacher assignments: %w", err)
	}

	total := int64(len(counts))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(counts) {
		return []repositories.TeacherWithSubjectsRow{}, total, nil
	}
	end := len(counts)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := counts[offset:end]

	ids := make([]uint, 0, len(page))
	countByID := make(map[uint]int64, len(page))
	for _, c := range page {
		ids = append(ids, c.UserID)
		countByID[c.UserID] = c.Total
	}

	var refs []*models.UserReference
	err = r.teacherScope(ctx).
		Preload("TeacherProfile").
		Preload("TeacherProfile.Speciality").
		Preload("TeacherProfile.Career").
		Preload("TeacherProfile.Assignments").
		Preload("TeacherProfile.Assignments.Subject").
		Where("id IN ?", ids).
		Find(&refs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load teachers with multiple subjects: %w", err)
	}

	// Keep the count ordering; IN does not preserve it.
	position := make(map[uint]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}
	sort.Slice(refs, func(i, j int) bool {
		return position[refs[i].ID] < position[refs[j].ID]
	})

	rows := make([]repositories.TeacherWithSubjectsRow, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, repositories.TeacherWithSubjectsRow{
			Teacher:       ref,
			SubjectsCount: countByID[ref.ID],
		})
	}
	return rows, total, nil
}

// ===== MUTATIONS =====

func (r *TeacherPostgreSQL) Update(ctx context.Context, ref *models.UserReference) error {
	if err := r.db.WithContext(ctx).Save(ref).Error; err != nil {
		return fmt.Errorf("failed to update teacher %d: %w", ref.ID, err)
	}
	return nil
}

func (r *TeacherPostgreSQL) UpdateProfile(ctx context.Context, profile *models.TeacherProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update teacher profile %d: %w", profile.ID, err)
	}
	return nil
}

// Delete removes the teacher's assignments, profile and reference row.
// Callers run this inside a profiles transaction.
func (r *TeacherPostgreSQL) Delete(ctx context.Context, id uint) error {
	var profile models.TeacherProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&profile).Error
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).
			Where("teacher_profile_id = ?", profile.ID).
			Delete(&models.SubjectAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments for teacher %d: %w", id, err)
		}
		if err := r.db.WithContext(ctx).Delete(&profile).Error; err != nil {
			return fmt.Errorf("failed to delete teacher profile %d: %w", profile.ID, err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to load teacher profile for %d: %w", id, err)
	}

	result := r.db.WithContext(ctx).
		Where("role_id = ?", models.RoleIDTeacher).
		Delete(&models.UserReference{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete teacher %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("teacher %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ===== SUBJECT ASSIGNMENTS =====

func (r *TeacherPostgreSQL) AssignSubject(ctx context.Context, assignment *models.SubjectAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to assign subject: %w", err)
	}
	return nil
}

func (r *TeacherPostgreSQL) UnassignSubject(ctx context.Context, teacherProfileID, subjectID uint) error {
	result := r.db.WithContext(ctx).
		Where("teacher_profile_id = ? AND subject_id = ?", teacherProfileID, subjectID).
		Delete(&models.SubjectAssignment{})
	if result.Error != nil {
		return fmt.Errorf("failed to unassign subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("assignment teacher=%d subject=%d: %w", teacherProfileID, subjectID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *TeacherPostgreSQL) AssignmentExists(ctx context.Context, teacherProfileID, subjectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubjectAssignment{}).
		Where("teacher_profile_id = ? AND subject_id = ?", teacherProfileID, subjectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return count > 0, nil
}

func (r *TeacherPostgreSQL) ListAssignments(ctx context.Context, teacherProfileID uint) ([]*models.SubjectAssignment, error) {
	var assignments []*models.SubjectAssignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_profile_id = ?", teacherProfileID).
		Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}
