package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== SINGLE ENROLLMENT =====

// Enroll performs one student-to-subject enrollment as a single transaction
// against the profiles schema. Business-rule failures abort the transaction
// and surface unchanged; no partial row is ever committed.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest) (*EnrollmentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("Enrolling student", "student_id", req.StudentID, "subject_id", req.SubjectID)

	var response *EnrollmentResponse
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		student, profile, err := s.loadActiveStudent(ctx, txRepo, req.StudentID)
		if err != nil {
			return err
		}

		subject, err := txRepo.Enrollment().GetSubjectReference(ctx, req.SubjectID)
		if err != nil {
			if isRecordNotFound(err) {
				return fmt.Errorf("subject %d: %w", req.SubjectID, ErrSubjectNotFound)
			}
			return fmt.Errorf("subject lookup failed: %w", err)
		}

		if subject.CareerID != profile.CareerID {
			return fmt.Errorf("subject %d belongs to career %d, student is in career %d: %w",
				subject.ID, subject.CareerID, profile.CareerID, ErrSubjectCareerMismatch)
		}

		count, err := txRepo.Enrollment().CountActiveBySubject(ctx, subject.ID)
		if err != nil {
			return fmt.Errorf("capacity check failed: %w", err)
		}
		if count >= models.MaxStudentsPerSubject {
			return fmt.Errorf("subject %d has %d enrollments: %w", subject.ID, count, ErrSubjectFull)
		}

		if _, err := txRepo.Enrollment().GetByStudentAndSubject(ctx, profile.ID, subject.ID); err == nil {
			return fmt.Errorf("student %d subject %d: %w", req.StudentID, subject.ID, ErrAlreadyEnrolled)
		} else if !isRecordNotFound(err) {
			return fmt.Errorf("duplicate check failed: %w", err)
		}

		enrollment := &models.StudentSubject{
			StudentProfileID: profile.ID,
			SubjectID:        subject.ID,
			Status:           models.EnrollmentEnrolled,
		}
		if err := txRepo.Enrollment().Create(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		// Advisory only; no persisted seat counter exists.
		response = buildEnrollmentResponse(enrollment, student, profile, subject, models.MaxStudentsPerSubject-count-1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enrollment created",
		"enrollment_id", response.EnrollmentID,
		"student_id", req.StudentID,
		"subject_id", req.SubjectID,
		"slots_remaining", response.SlotsRemaining)

	return response, nil
}

// ===== BULK ENROLLMENT =====

// EnrollBulk validates the student once, then processes each subject
// independently with per-item error reporting. The transaction is aborted
// only when every subject failed and at least one error was recorded.
func (s *enrollmentService) EnrollBulk(ctx context.Context, req *BulkEnrollRequest) (*BulkEnrollmentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("Bulk enrolling student", "student_id", req.StudentID, "subjects", len(req.SubjectIDs))

	response := &BulkEnrollmentResponse{
		StudentID:      req.StudentID,
		TotalRequested: len(req.SubjectIDs),
	}

	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		student, profile, err := s.loadActiveStudent(ctx, txRepo, req.StudentID)
		if err != nil {
			return err
		}

		for _, subjectID := range req.SubjectIDs {
			item, itemErr := s.enrollOne(ctx, txRepo, student, profile, subjectID)
			if itemErr != nil {
				response.Errors = append(response.Errors, BulkEnrollmentError{
					SubjectID: subjectID,
					Reason:    itemErr.Error(),
				})
				continue
			}
			response.Enrollments = append(response.Enrollments, *item)
		}

		response.TotalEnrolled = len(response.Enrollments)
		response.TotalFailed = len(response.Errors)

		if response.TotalEnrolled == 0 && response.TotalFailed > 0 {
			return fmt.Errorf("%d subjects, %d errors: %w",
				response.TotalRequested, response.TotalFailed, ErrBulkEnrollmentFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bulk enrollment finished",
		"student_id", req.StudentID,
		"enrolled", response.TotalEnrolled,
		"failed", response.TotalFailed)

	return response, nil
}

// enrollOne applies the single-enrollment checks for one subject inside the
// bulk transaction. Returned errors become per-item entries, not aborts.
func (s *enrollmentService) enrollOne(ctx context.Context, txRepo repositories.Repository, student *models.UserReference, profile *models.StudentProfile, subjectID uint) (*EnrollmentResponse, error) {
	subject, err := txRepo.Enrollment().GetSubjectReference(ctx, subjectID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d not found", subjectID)
		}
		return nil, fmt.Errorf("subject lookup failed")
	}

	if subject.CareerID != profile.CareerID {
		return nil, fmt.Errorf("subject %d does not belong to the student's career", subjectID)
	}

	count, err := txRepo.Enrollment().CountActiveBySubject(ctx, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("capacity check failed")
	}
	if count >= models.MaxStudentsPerSubject {
		return nil, fmt.Errorf("subject %d has no remaining slots", subjectID)
	}

	if _, err := txRepo.Enrollment().GetByStudentAndSubject(ctx, profile.ID, subject.ID); err == nil {
		return nil, fmt.Errorf("already enrolled in subject %d", subjectID)
	} else if !isRecordNotFound(err) {
		return nil, fmt.Errorf("duplicate check failed")
	}

	enrollment := &models.StudentSubject{
		StudentProfileID: profile.ID,
		SubjectID:        subject.ID,
		Status:           models.EnrollmentEnrolled,
	}
	if err := txRepo.Enrollment().Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment for subject %d", subjectID)
	}

	return buildEnrollmentResponse(enrollment, student, profile, subject, models.MaxStudentsPerSubject-count-1), nil
}

// ===== CANCELLATION =====

// Cancel deletes an ungraded enrollment. A graded enrollment is immutable.
func (s *enrollmentService) Cancel(ctx context.Context, enrollmentID uint) (*CancellationResponse, error) {
	s.logger.Info("Cancelling enrollment", "enrollment_id", enrollmentID)

	var response *CancellationResponse
	err := s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		enrollment, err := txRepo.Enrollment().GetByID(ctx, enrollmentID)
		if err != nil {
			if isRecordNotFound(err) {
				return fmt.Errorf("enrollment %d: %w", enrollmentID, ErrEnrollmentNotFound)
			}
			return fmt.Errorf("enrollment lookup failed: %w", err)
		}

		if enrollment.Grade != nil {
			return fmt.Errorf("enrollment %d has grade %.2f: %w", enrollmentID, *enrollment.Grade, ErrEnrollmentGraded)
		}

		if err := txRepo.Enrollment().Delete(ctx, enrollmentID); err != nil {
			return fmt.Errorf("failed to delete enrollment: %w", err)
		}

		response = &CancellationResponse{
			EnrollmentID: enrollmentID,
			SubjectName:  enrollment.Subject.Name,
		}
		if enrollment.StudentProfile != nil && enrollment.StudentProfile.User != nil {
			response.StudentName = enrollment.StudentProfile.User.Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enrollment cancelled",
		"enrollment_id", enrollmentID,
		"student", response.StudentName,
		"subject", response.SubjectName)

	return response, nil
}

// ===== HELPERS =====

// loadActiveStudent loads and validates the student once: must exist with the
// student role, be active, and carry an academic profile.
func (s *enrollmentService) loadActiveStudent(ctx context.Context, txRepo repositories.Repository, studentID uint) (*models.UserReference, *models.StudentProfile, error) {
	student, err := txRepo.Student().GetByID(ctx, studentID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, nil, fmt.Errorf("student %d: %w", studentID, ErrStudentNotFound)
		}
		return nil, nil, fmt.Errorf("student lookup failed: %w", err)
	}

	if student.Status != models.StatusActive {
		return nil, nil, fmt.Errorf("student %d has status %q: %w", studentID, student.Status, ErrStudentNotActive)
	}

	if student.StudentProfile == nil {
		return nil, nil, fmt.Errorf("student %d: %w", studentID, ErrStudentProfileMissing)
	}

	return student, student.StudentProfile, nil
}

func buildEnrollmentResponse(enrollment *models.StudentSubject, student *models.UserReference, profile *models.StudentProfile, subject *models.SubjectReference, slotsRemaining int64) *EnrollmentResponse {
	return &EnrollmentResponse{
		EnrollmentID: enrollment.ID,
		Student: StudentSummary{
			ID:           student.ID,
			Name:         student.Name,
			Email:        student.Email,
			Career:       profile.Career.Name,
			CurrentCicle: profile.CurrentCicle,
		},
		Subject: SubjectSummary{
			ID:          subject.ID,
			Name:        subject.Name,
			CicleNumber: subject.CicleNumber,
			Career:      subject.Career.Name,
		},
		Status:         enrollment.Status,
		EnrolledAt:     enrollment.EnrolledAt,
		SlotsRemaining: slotsRemaining,
	}
}

// isRecordNotFound reports whether err stems from an empty result set.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
