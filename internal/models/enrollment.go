package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// MaxStudentsPerSubject is the seat ceiling enforced by the enrollment
// workflow. The data model carries no per-subject capacity field, so the
// ceiling is a compile-time constant.
const MaxStudentsPerSubject = 30

// StudentSubject is an enrollment: one student profile in one subject,
// with a status and an optional grade. A graded enrollment is immutable.
type StudentSubject struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	StudentProfileID uint             `json:"student_profile_id" gorm:"not null;uniqueIndex:idx_student_subject"`
	SubjectID        uint             `json:"subject_id" gorm:"not null;uniqueIndex:idx_student_subject"`
	Status           EnrollmentStatus `json:"status" gorm:"default:enrolled;size:20;index"`
	Grade            *float64         `json:"grade"`
	EnrolledAt       time.Time        `json:"enrolled_at" gorm:"autoCreateTime"`

	StudentProfile *StudentProfile  `json:"student_profile,omitempty" gorm:"foreignKey:StudentProfileID"`
	Subject        SubjectReference `json:"subject" gorm:"foreignKey:SubjectID"`
}

func (StudentSubject) TableName() string {
	return "student_subject"
}
