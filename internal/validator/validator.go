package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SIS-2025/academic-records-service/internal/errors"
	"github.com/SIS-2025/academic-records-service/internal/models"
)

// Validator wraps the struct validator with the domain's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs validation and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := errors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("user_status", validateUserStatus)
	validate.RegisterValidation("enrollment_status", validateEnrollmentStatus)
	validate.RegisterValidation("cycle_number", validateCycleNumber)
	validate.RegisterValidation("grade_range", validateGradeRange)

	// Use json field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleTeacher,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func validateUserStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.UserStatus{
		models.StatusActive,
		models.StatusSuspended,
		models.StatusInactive,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func validateEnrollmentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.EnrollmentEnrolled) || value == string(models.EnrollmentWithdrawn)
}

func validateCycleNumber(fl validator.FieldLevel) bool {
	cycle := fl.Field().Int()
	return cycle >= 1 && cycle <= 12
}

func validateGradeRange(fl validator.FieldLevel) bool {
	grade := fl.Field().Float()
	return grade >= 0 && grade <= 10
}
