package services

import (
	"context"
	"time"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use validated request types from the validator package
type EnrollRequest = validator.EnrollmentRequest
type BulkEnrollRequest = validator.BulkEnrollmentRequest
type UpdateStudentRequest = validator.StudentUpdateRequest
type UpdateTeacherRequest = validator.TeacherUpdateRequest
type CreateSubjectRequest = validator.SubjectCreateRequest
type UpdateSubjectRequest = validator.SubjectUpdateRequest
type CreateCareerRequest = validator.CareerCreateRequest
type UpdateCareerRequest = validator.CareerUpdateRequest
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest

// ===== ENROLLMENT DTOs =====

type StudentSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Career       string `json:"career"`
	CurrentCicle int    `json:"current_cicle"`
}

type SubjectSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CicleNumber int    `json:"cicle_number"`
	Career      string `json:"career,omitempty"`
}

type EnrollmentResponse struct {
	EnrollmentID   uint                    `json:"enrollment_id"`
	Student        StudentSummary          `json:"student"`
	Subject        SubjectSummary          `json:"subject"`
	Status         models.EnrollmentStatus `json:"status"`
	EnrolledAt     time.Time               `json:"enrolled_at"`
	SlotsRemaining int64                   `json:"slots_remaining"`
}

type BulkEnrollmentError struct {
	SubjectID uint   `json:"subject_id"`
	Reason    string `json:"reason"`
}

type BulkEnrollmentResponse struct {
	StudentID      uint                  `json:"student_id"`
	TotalRequested int                   `json:"total_requested"`
	TotalEnrolled  int                   `json:"total_enrolled"`
	TotalFailed    int                   `json:"total_failed"`
	Enrollments    []EnrollmentResponse  `json:"enrollments"`
	Errors         []BulkEnrollmentError `json:"errors,omitempty"`
}

type CancellationResponse struct {
	EnrollmentID uint   `json:"enrollment_id"`
	StudentName  string `json:"student_name"`
	SubjectName  string `json:"subject_name"`
}

// ===== STUDENT / TEACHER DTOs =====

type StudentListResponse struct {
	Students []*models.UserReference `json:"students"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	Size     int                     `json:"size"`
}

type TeacherListResponse struct {
	Teachers []*models.UserReference `json:"teachers"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	Size     int                     `json:"size"`
}

type TeachersWithSubjectsResponse struct {
	Teachers []repositories.TeacherWithSubjectsRow `json:"teachers"`
	Total    int64                                 `json:"total"`
	Page     int                                   `json:"page"`
	Size     int                                   `json:"size"`
}

type StudentEnrollmentsResponse struct {
	Student     StudentSummary           `json:"student"`
	Cycle       *int                     `json:"cycle,omitempty"`
	Enrollments []*models.StudentSubject `json:"enrollments"`
	Total       int                      `json:"total"`
}

// ===== SUBJECT / CAREER DTOs =====

type SubjectListResponse struct {
	Subjects []*models.Subject `json:"subjects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

type CareerListResponse struct {
	Careers []*models.Career `json:"careers"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

// ===== QUERY DTOs =====

type StudentQueryFilters struct {
	CareerID    *uint              `json:"career_id"`
	CycleNumber *int               `json:"cycle_number"`
	Status      *models.UserStatus `json:"status"`
}

type ComplexQueryFilters struct {
	CareerIDs     []uint             `json:"career_ids"`
	ExcludeCycles []int              `json:"exclude_cycles"`
	Status        *models.UserStatus `json:"status"`
}

type QuerySummary struct {
	TotalMatching   int `json:"total_matching"`
	WithEnrollments int `json:"with_enrollments"`
}

type StudentQueryResponse struct {
	Students []*models.UserReference `json:"students"`
	Summary  QuerySummary            `json:"summary"`
}

// ===== REPORT DTOs =====

type EnrollmentReportSummary struct {
	TotalStudents      int   `json:"total_students"`
	WithEnrollments    int   `json:"with_enrollments"`
	WithoutEnrollments int   `json:"without_enrollments"`
	MaxSubjects        int64 `json:"max_subjects"`
}

type StudentEnrollmentReport struct {
	Rows    []repositories.StudentEnrollmentRow `json:"rows"`
	Summary EnrollmentReportSummary             `json:"summary"`
}

type CareerReport struct {
	Rows []repositories.CareerDistributionRow `json:"rows"`
}

type TeacherWorkloadReport struct {
	Rows []repositories.TeacherWorkloadRow `json:"rows"`
}

type SystemStatsReport struct {
	Stats repositories.SystemStats `json:"stats"`
}

// ===== AUTH DTOs =====

type AuthUser struct {
	ID     uint              `json:"id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   models.UserRole   `json:"role"`
	Status models.UserStatus `json:"status"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}

// ===== SERVICE INTERFACES =====

type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest) (*EnrollmentResponse, error)
	EnrollBulk(ctx context.Context, req *BulkEnrollRequest) (*BulkEnrollmentResponse, error)
	Cancel(ctx context.Context, enrollmentID uint) (*CancellationResponse, error)
}

type StudentService interface {
	List(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	ListActive(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.UserReference, error)
	GetEnrollments(ctx context.Context, id uint, cycle *int) (*StudentEnrollmentsResponse, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.UserReference, error)
	Delete(ctx context.Context, id uint) error
}

type TeacherService interface {
	List(ctx context.Context, filters repositories.TeacherFilters) (*TeacherListResponse, error)
	WithMultipleSubjects(ctx context.Context, limit, offset int) (*TeachersWithSubjectsResponse, error)
	GetByID(ctx context.Context, id uint) (*models.UserReference, error)
	Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.UserReference, error)
	Delete(ctx context.Context, id uint) error
	AssignSubject(ctx context.Context, teacherID, subjectID uint) error
	UnassignSubject(ctx context.Context, teacherID, subjectID uint) error
}

type SubjectService interface {
	Create(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error)
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context, filters repositories.SubjectFilters) (*SubjectListResponse, error)
	GetByCareer(ctx context.Context, careerID uint, filters repositories.SubjectFilters) (*SubjectListResponse, error)
	GetByCareerAndCycle(ctx context.Context, careerID uint, cicleNumber int) ([]*models.Subject, error)
	Update(ctx context.Context, id uint, req *UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id uint) error
}

type CareerService interface {
	Create(ctx context.Context, req *CreateCareerRequest) (*models.Career, error)
	GetByID(ctx context.Context, id uint) (*models.Career, error)
	List(ctx context.Context, limit, offset int) (*CareerListResponse, error)
	ListCycles(ctx context.Context) ([]*models.Cycle, error)
	Update(ctx context.Context, id uint, req *UpdateCareerRequest) (*models.Career, error)
	Delete(ctx context.Context, id uint) error
}

type QueryService interface {
	StudentsWithFilters(ctx context.Context, filters StudentQueryFilters) (*StudentQueryResponse, error)
	StudentsByCycles(ctx context.Context, cycles []int, careerID *uint) (*StudentQueryResponse, error)
	StudentsExcludingStatuses(ctx context.Context, statuses []models.UserStatus, careerID *uint) (*StudentQueryResponse, error)
	StudentsComplexFilter(ctx context.Context, filters ComplexQueryFilters) (*StudentQueryResponse, error)
}

type ReportService interface {
	StudentEnrollments(ctx context.Context) (*StudentEnrollmentReport, error)
	Careers(ctx context.Context) (*CareerReport, error)
	TeacherWorkload(ctx context.Context) (*TeacherWorkloadReport, error)
	Statistics(ctx context.Context) (*SystemStatsReport, error)
	ExportStudentEnrollments(ctx context.Context) ([]byte, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Enrollment() EnrollmentService
	Student() StudentService
	Teacher() TeacherService
	Subject() SubjectService
	Career() CareerService
	Query() QueryService
	Report() ReportService
	User() UserService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
