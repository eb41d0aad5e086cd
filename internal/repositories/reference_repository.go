package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// ReferenceRepository interface for the synchronized read models kept in the
// profiles database. Rows here mirror owner data from the users and academic
// databases and are written by the sync paths, never by request handlers.
type ReferenceRepository interface {
	// User references
	CreateUserReference(ctx context.Context, ref *models.UserReference) error
	UpsertUserReference(ctx context.Context, ref *models.UserReference) error
	DeleteUserReference(ctx context.Context, id uint) error

	// Profile rows created alongside a fresh user reference
	CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	CreateTeacherProfile(ctx context.Context, profile *models.TeacherProfile) error

	// Academic references
	UpsertCareerReference(ctx context.Context, ref *models.CareerReference) error
	DeleteCareerReference(ctx context.Context, id uint) error
	UpsertSpecialityReference(ctx context.Context, ref *models.SpecialityReference) error
	UpsertSubjectReference(ctx context.Context, ref *models.SubjectReference) error
	DeleteSubjectReference(ctx context.Context, id uint) error

	// Lookups
	GetCareerReference(ctx context.Context, id uint) (*models.CareerReference, error)
	GetSubjectReference(ctx context.Context, id uint) (*models.SubjectReference, error)
}
