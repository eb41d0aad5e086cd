package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== READ OPERATIONS =====

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return &StudentListResponse{
		Students: students,
		Total:    total,
		Page:     pageFromOffset(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

// ListActive narrows the listing to active students regardless of what the
// caller passed as status filter.
func (s *studentService) ListActive(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	active := models.StatusActive
	filters.Status = &active
	return s.List(ctx, filters)
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %d: %w", id, ErrStudentNotFound)
		}
		return nil, fmt.Errorf("student lookup failed: %w", err)
	}
	return student, nil
}

// GetEnrollments returns the student's active enrollments, optionally limited
// to subjects taught in one curriculum cycle.
func (s *studentService) GetEnrollments(ctx context.Context, id uint, cycle *int) (*StudentEnrollmentsResponse, error) {
	student, err := s.repo.Student().GetWithEnrollments(ctx, id, cycle)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %d: %w", id, ErrStudentNotFound)
		}
		return nil, fmt.Errorf("student lookup failed: %w", err)
	}
	if student.StudentProfile == nil {
		return nil, fmt.Errorf("student %d: %w", id, ErrStudentProfileMissing)
	}

	profile := student.StudentProfile
	enrollments := make([]*models.StudentSubject, 0, len(profile.StudentSubjects))
	for i := range profile.StudentSubjects {
		enrollments = append(enrollments, &profile.StudentSubjects[i])
	}

	return &StudentEnrollmentsResponse{
		Student: StudentSummary{
			ID:           student.ID,
			Name:         student.Name,
			Email:        student.Email,
			Career:       profile.Career.Name,
			CurrentCicle: profile.CurrentCicle,
		},
		Cycle:       cycle,
		Enrollments: enrollments,
		Total:       len(enrollments),
	}, nil
}

// ===== MUTATIONS =====

// Update applies the provided fields to the student's reference row and
// academic profile. An email change must not collide with another student.
func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.UserReference, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *models.UserReference
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		student, err := txRepo.Student().GetByID(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return fmt.Errorf("student %d: %w", id, ErrStudentNotFound)
			}
			return fmt.Errorf("student lookup failed: %w", err)
		}

		if req.Email != nil && *req.Email != student.Email {
			taken, err := txRepo.Student().ExistsByEmail(ctx, *req.Email, &id)
			if err != nil {
				return fmt.Errorf("email check failed: %w", err)
			}
			if taken {
				return fmt.Errorf("email %q: %w", *req.Email, ErrEmailTaken)
			}
			student.Email = *req.Email
		}
		if req.Name != nil {
			student.Name = *req.Name
		}
		if req.Status != nil {
			student.Status = models.UserStatus(*req.Status)
		}

		if err := txRepo.Student().Update(ctx, student); err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}

		if req.CareerID != nil || req.CurrentCicle != nil {
			if student.StudentProfile == nil {
				return fmt.Errorf("student %d: %w", id, ErrStudentProfileMissing)
			}
			profile := student.StudentProfile
			if req.CareerID != nil {
				profile.CareerID = *req.CareerID
			}
			if req.CurrentCicle != nil {
				profile.CurrentCicle = *req.CurrentCicle
			}
			if err := txRepo.Student().UpdateProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to update student profile: %w", err)
			}
		}

		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student updated", "student_id", id)

	return updated, nil
}

// Delete removes the profile, its enrollments and the reference row in one
// transaction, then deactivates the owning users row. The users schema keeps
// the record for audit purposes.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Student().Delete(ctx, id)
	})
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("student %d: %w", id, ErrStudentNotFound)
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	deactivateUser(ctx, s.repo, s.logger, id)

	s.logger.Info("Student deleted", "student_id", id)

	return nil
}

// pageFromOffset converts offset/limit pagination to a 1-based page number.
func pageFromOffset(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}
