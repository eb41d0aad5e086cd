package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface over the
// three logical databases.
type PostgreSQLRepository struct {
	usersDB     *gorm.DB
	profilesDB  *gorm.DB
	academicDB  *gorm.DB
	redisClient *redis.Client

	// Repository instances
	user       repositories.UserRepository
	student    repositories.StudentRepository
	teacher    repositories.TeacherRepository
	enrollment repositories.EnrollmentRepository
	reference  repositories.ReferenceRepository
	report     repositories.ReportRepository
	subject    repositories.SubjectRepository
	career     repositories.CareerRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	UsersDB     *gorm.DB
	ProfilesDB  *gorm.DB
	AcademicDB  *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		usersDB:     config.UsersDB,
		profilesDB:  config.ProfilesDB,
		academicDB:  config.AcademicDB,
		redisClient: config.RedisClient,
	}
	repo.initSubRepositories(config.UsersDB, config.ProfilesDB, config.AcademicDB)
	return repo
}

func (r *PostgreSQLRepository) initSubRepositories(usersDB, profilesDB, academicDB *gorm.DB) {
	r.user = NewUserPostgreSQL(usersDB)
	r.student = NewStudentPostgreSQL(profilesDB)
	r.teacher = NewTeacherPostgreSQL(profilesDB)
	r.enrollment = NewEnrollmentPostgreSQL(profilesDB)
	r.reference = NewReferencePostgreSQL(profilesDB)
	r.report = NewReportPostgreSQL(profilesDB)
	r.subject = NewSubjectPostgreSQL(academicDB)
	r.career = NewCareerPostgreSQL(academicDB)
}

func (r *PostgreSQLRepository) User() repositories.UserRepository             { return r.user }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository       { return r.student }
func (r *PostgreSQLRepository) Teacher() repositories.TeacherRepository       { return r.teacher }
func (r *PostgreSQLRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }
func (r *PostgreSQLRepository) Reference() repositories.ReferenceRepository   { return r.reference }
func (r *PostgreSQLRepository) Report() repositories.ReportRepository         { return r.report }
func (r *PostgreSQLRepository) Subject() repositories.SubjectRepository       { return r.subject }
func (r *PostgreSQLRepository) Career() repositories.CareerRepository         { return r.career }

// WithProfilesTransaction executes fn within a serializable profiles-schema
// transaction. The repository handed to fn routes profiles-schema operations
// through the transaction; users and academic operations keep their own
// connections.
func (r *PostgreSQLRepository) WithProfilesTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.profilesDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			usersDB:     r.usersDB,
			profilesDB:  tx,
			academicDB:  r.academicDB,
			redisClient: r.redisClient,
		}
		txRepo.initSubRepositories(r.usersDB, tx, r.academicDB)
		return fn(txRepo)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// WithUsersTransaction executes fn within a users-schema transaction.
func (r *PostgreSQLRepository) WithUsersTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.usersDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			usersDB:     tx,
			profilesDB:  r.profilesDB,
			academicDB:  r.academicDB,
			redisClient: r.redisClient,
		}
		txRepo.initSubRepositories(tx, r.profilesDB, r.academicDB)
		return fn(txRepo)
	})
}

// Ping checks the health of all database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	for name, db := range map[string]*gorm.DB{
		"users":    r.usersDB,
		"profiles": r.profilesDB,
		"academic": r.academicDB,
	} {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get %s database instance: %w", name, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("%s database ping failed: %w", name, err)
		}
	}

	if r.redisClient != nil {
		if _, err := r.redisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	for name, db := range map[string]*gorm.DB{
		"users":    r.usersDB,
		"profiles": r.profilesDB,
		"academic": r.academicDB,
	} {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get %s database instance: %w", name, err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close %s database: %w", name, err)
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize validates connections and builds the repository
func (rm *RepositoryManager) Initialize() error {
	for name, db := range map[string]*gorm.DB{
		"users":    rm.config.UsersDB,
		"profiles": rm.config.ProfilesDB,
		"academic": rm.config.AcademicDB,
	} {
		if db == nil {
			return fmt.Errorf("%s database connection is required", name)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rm.repo = NewPostgreSQLRepository(rm.config)
	if err := rm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

// Shutdown closes all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}
