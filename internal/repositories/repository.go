package repositories

import "context"

// Repository aggregates every domain repository. Implementations are bound
// to the three logical schemas: users, profiles and academic.
type Repository interface {
	// Users schema
	User() UserRepository

	// Profiles schema
	Student() StudentRepository
	Teacher() TeacherRepository
	Enrollment() EnrollmentRepository
	Reference() ReferenceRepository
	Report() ReportRepository

	// Academic schema
	Subject() SubjectRepository
	Career() CareerRepository

	// WithProfilesTransaction runs fn against a repository bound to a single
	// profiles-schema transaction, serializable isolation. The enrollment
	// workflow runs entirely inside one of these.
	WithProfilesTransaction(ctx context.Context, fn func(Repository) error) error

	// WithUsersTransaction runs fn against a users-schema transaction.
	WithUsersTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
