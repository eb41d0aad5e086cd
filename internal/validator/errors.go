package validator

import (
	"github.com/SIS-2025/academic-records-service/internal/errors"
)

// Use shared validation errors from errors package
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type
var ToValidationErrors = errors.ToValidationErrors
