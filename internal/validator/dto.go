package validator

// Request DTOs validated at the service boundary.

// EnrollmentRequest enrolls one student into one subject.
type EnrollmentRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	SubjectID uint `json:"subject_id" validate:"required"`
}

// BulkEnrollmentRequest enrolls one student into several subjects with
// per-item error reporting.
type BulkEnrollmentRequest struct {
	StudentID  uint   `json:"student_id" validate:"required"`
	SubjectIDs []uint `json:"subject_ids" validate:"required,min=1,dive,required"`
}

type StudentUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Status       *string `json:"status" validate:"omitempty,user_status"`
	CareerID     *uint   `json:"career_id" validate:"omitempty,required"`
	CurrentCicle *int    `json:"current_cicle" validate:"omitempty,cycle_number"`
}

type TeacherUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Status       *string `json:"status" validate:"omitempty,user_status"`
	SpecialityID *uint   `json:"speciality_id" validate:"omitempty,required"`
	CareerID     *uint   `json:"career_id" validate:"omitempty,required"`
}

type SubjectCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=150"`
	CareerID    uint   `json:"career_id" validate:"required"`
	CicleNumber int    `json:"cicle_number" validate:"required,cycle_number"`
	CycleID     *uint  `json:"cycle_id"`
}

type SubjectUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	CareerID    *uint   `json:"career_id" validate:"omitempty,required"`
	CicleNumber *int    `json:"cicle_number" validate:"omitempty,cycle_number"`
	CycleID     *uint   `json:"cycle_id"`
}

type CareerCreateRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=150"`
	TotalCicles   int    `json:"total_cicles" validate:"required,min=1,max=12"`
	DurationYears int    `json:"duration_years" validate:"omitempty,min=1,max=8"`
}

type CareerUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=150"`
	TotalCicles   *int    `json:"total_cicles" validate:"omitempty,min=1,max=12"`
	DurationYears *int    `json:"duration_years" validate:"omitempty,min=1,max=8"`
}

// RegisterRequest creates a user in the users schema plus its reference row
// and role profile in the profiles schema.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,user_role"`

	// Profile fields. Both roles carry a career; admins carry neither.
	CareerID     *uint `json:"career_id" validate:"required_unless=Role admin"`
	CurrentCicle *int  `json:"current_cicle" validate:"omitempty,cycle_number"`

	// Teacher profile fields, required when role is teacher.
	SpecialityID *uint `json:"speciality_id" validate:"required_if=Role teacher"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
