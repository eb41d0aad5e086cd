package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SIS-2025/academic-records-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Student specific errors
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentNotActive      = errors.New("student is not active")
	ErrStudentProfileMissing = errors.New("student has no academic profile")

	// Subject specific errors
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrSubjectCareerMismatch = errors.New("subject does not belong to the student's career")
	ErrSubjectFull           = errors.New("subject has no remaining slots")
	ErrSubjectDuplicate      = errors.New("subject already exists for this career and cycle")

	// Enrollment specific errors
	ErrAlreadyEnrolled     = errors.New("student is already enrolled in this subject")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrEnrollmentGraded    = errors.New("enrollment already has a grade and cannot be cancelled")
	ErrBulkEnrollmentFailed = errors.New("bulk enrollment failed for every subject")

	// Teacher specific errors
	ErrTeacherNotFound         = errors.New("teacher not found")
	ErrTeacherProfileMissing   = errors.New("teacher has no academic profile")
	ErrAssignmentAlreadyExists = errors.New("teacher is already assigned to this subject")
	ErrAssignmentNotFound      = errors.New("subject assignment not found")

	// Career specific errors
	ErrCareerNotFound      = errors.New("career not found")
	ErrCareerDuplicateName = errors.New("career name already exists")
	ErrSpecialityNotFound  = errors.New("speciality not found")
	ErrNoActiveCycle       = errors.New("no active academic cycle")

	// User/auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid user role")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrCareerNotFound) ||
		errors.Is(err, ErrSpecialityNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidCredentials) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	if errors.Is(err, ErrStudentNotActive) ||
		errors.Is(err, ErrStudentProfileMissing) ||
		errors.Is(err, ErrTeacherProfileMissing) ||
		errors.Is(err, ErrSubjectCareerMismatch) ||
		errors.Is(err, ErrSubjectFull) ||
		errors.Is(err, ErrEnrollmentGraded) ||
		errors.Is(err, ErrBulkEnrollmentFailed) ||
		errors.Is(err, ErrNoActiveCycle) {
		return true
	}
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrSubjectDuplicate) ||
		errors.Is(err, ErrAssignmentAlreadyExists) ||
		errors.Is(err, ErrCareerDuplicateName) ||
		errors.Is(err, ErrEmailTaken)
}
