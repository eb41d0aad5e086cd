package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("career_id", "is required", nil)

	if err.Field != "career_id" {
		t.Errorf("Expected field to be 'career_id', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'career_id': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("student_id", "is required", nil))
	expected := "validation failed: student_id is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("subject_id", "must be a number", "x"))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("status", "must be active, suspended, or inactive", "user_status", "frozen")

	if err.Rule != "user_status" {
		t.Errorf("Expected rule to be 'user_status', got '%s'", err.Rule)
	}

	if err.Value != "frozen" {
		t.Errorf("Expected value to be 'frozen', got '%v'", err.Value)
	}
}
