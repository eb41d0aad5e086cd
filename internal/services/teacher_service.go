package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== READ OPERATIONS =====

func (s *teacherService) List(ctx context.Context, filters repositories.TeacherFilters) (*TeacherListResponse, error) {
	teachers, total, err := s.repo.Teacher().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return &TeacherListResponse{
		Teachers: teachers,
		Total:    total,
		Page:     pageFromOffset(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

// WithMultipleSubjects lists teachers assigned to more than one subject,
// with their assignment counts.
func (s *teacherService) WithMultipleSubjects(ctx context.Context, limit, offset int) (*TeachersWithSubjectsResponse, error) {
	rows, total, err := s.repo.Teacher().ListWithMultipleSubjects(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers with multiple subjects: %w", err)
	}
	return &TeachersWithSubjectsResponse{
		Teachers: rows,
		Total:    total,
		Page:     pageFromOffset(offset, limit),
		Size:     limit,
	}, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("teacher %d: %w", id, ErrTeacherNotFound)
		}
		return nil, fmt.Errorf("teacher lookup failed: %w", err)
	}
	return teacher, nil
}

// ===== MUTATIONS =====

func (s *teacherService) Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.UserReference, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *models.UserReference
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		teacher, err := txRepo.Teacher().GetByID(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return fmt.Errorf("teacher %d: %w", id, ErrTeacherNotFound)
			}
			return fmt.Errorf("teacher lookup failed: %w", err)
		}

		if req.Email != nil && *req.Email != teacher.Email {
			taken, err := txRepo.Student().ExistsByEmail(ctx, *req.Email, &id)
			if err != nil {
				return fmt.Errorf("email check failed: %w", err)
			}
			if taken {
				return fmt.Errorf("email %q: %w", *req.Email, ErrEmailTaken)
			}
			teacher.Email = *req.Email
		}
		if req.Name != nil {
			teacher.Name = *req.Name
		}
		if req.Status != nil {
			teacher.Status = models.UserStatus(*req.Status)
		}

		if err := txRepo.Teacher().Update(ctx, teacher); err != nil {
			return fmt.Errorf("failed to update teacher: %w", err)
		}

		if req.SpecialityID != nil || req.CareerID != nil {
			if teacher.TeacherProfile == nil {
				return fmt.Errorf("teacher %d: %w", id, ErrTeacherProfileMissing)
			}
			profile := teacher.TeacherProfile
			if req.SpecialityID != nil {
				profile.SpecialityID = *req.SpecialityID
			}
			if req.CareerID != nil {
				profile.CareerID = *req.CareerID
			}
			if err := txRepo.Teacher().UpdateProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to update teacher profile: %w", err)
			}
		}

		updated = teacher
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Teacher updated", "teacher_id", id)

	return updated, nil
}

// Delete removes the profile, its assignments and the reference row in one
// transaction, then deactivates the owning users row.
func (s *teacherService) Delete(ctx context.Context, id uint) error {
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Teacher().Delete(ctx, id)
	})
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("teacher %d: %w", id, ErrTeacherNotFound)
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	deactivateUser(ctx, s.repo, s.logger, id)

	s.logger.Info("Teacher deleted", "teacher_id", id)

	return nil
}

// ===== SUBJECT ASSIGNMENTS =====

// AssignSubject links a teacher to a subject reference. The pair is unique;
// assigning twice is a conflict.
func (s *teacherService) AssignSubject(ctx context.Context, teacherID, subjectID uint) error {
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		profile, err := s.loadTeacherProfile(ctx, txRepo, teacherID)
		if err != nil {
			return err
		}

		if _, err := txRepo.Enrollment().GetSubjectReference(ctx, subjectID); err != nil {
			if isRecordNotFound(err) {
				return fmt.Errorf("subject %d: %w", subjectID, ErrSubjectNotFound)
			}
			return fmt.Errorf("subject lookup failed: %w", err)
		}

		exists, err := txRepo.Teacher().AssignmentExists(ctx, profile.ID, subjectID)
		if err != nil {
			return fmt.Errorf("assignment check failed: %w", err)
		}
		if exists {
			return fmt.Errorf("teacher %d subject %d: %w", teacherID, subjectID, ErrAssignmentAlreadyExists)
		}

		assignment := &models.SubjectAssignment{
			TeacherProfileID: profile.ID,
			SubjectID:        subjectID,
		}
		if err := txRepo.Teacher().AssignSubject(ctx, assignment); err != nil {
			return fmt.Errorf("failed to assign subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Subject assigned", "teacher_id", teacherID, "subject_id", subjectID)

	return nil
}

func (s *teacherService) UnassignSubject(ctx context.Context, teacherID, subjectID uint) error {
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		profile, err := s.loadTeacherProfile(ctx, txRepo, teacherID)
		if err != nil {
			return err
		}

		exists, err := txRepo.Teacher().AssignmentExists(ctx, profile.ID, subjectID)
		if err != nil {
			return fmt.Errorf("assignment check failed: %w", err)
		}
		if !exists {
			return fmt.Errorf("teacher %d subject %d: %w", teacherID, subjectID, ErrAssignmentNotFound)
		}

		if err := txRepo.Teacher().UnassignSubject(ctx, profile.ID, subjectID); err != nil {
			return fmt.Errorf("failed to unassign subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Subject unassigned", "teacher_id", teacherID, "subject_id", subjectID)

	return nil
}

func (s *teacherService) loadTeacherProfile(ctx context.Context, txRepo repositories.Repository, teacherID uint) (*models.TeacherProfile, error) {
	teacher, err := txRepo.Teacher().GetByID(ctx, teacherID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("teacher %d: %w", teacherID, ErrTeacherNotFound)
		}
		return nil, fmt.Errorf("teacher lookup failed: %w", err)
	}
	if teacher.TeacherProfile == nil {
		return nil, fmt.Errorf("teacher %d: %w", teacherID, ErrTeacherProfileMissing)
	}
	return teacher.TeacherProfile, nil
}
