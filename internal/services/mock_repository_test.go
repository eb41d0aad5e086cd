package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

// mockRepository is an in-memory Repository used by the service tests. The
// profiles transaction snapshots enrollment state and restores it when the
// callback fails, mirroring a rollback.
type mockRepository struct {
	students    map[uint]*models.UserReference
	subjects    map[uint]*models.SubjectReference
	enrollments map[uint]*models.StudentSubject
	nextID      uint

	// canned data for query/report repositories
	filterResult []*models.UserReference
	lastFilter   repositories.FilterExpr
	reportRows   []repositories.StudentEnrollmentRow
	careerRows   []repositories.CareerDistributionRow
	workloadRows []repositories.TeacherWorkloadRow
	systemStats  repositories.SystemStats
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		students:    make(map[uint]*models.UserReference),
		subjects:    make(map[uint]*models.SubjectReference),
		enrollments: make(map[uint]*models.StudentSubject),
		nextID:      1,
	}
}

func (m *mockRepository) addStudent(id uint, status models.UserStatus, careerID uint, name, email string) *models.UserReference {
	ref := &models.UserReference{
		ID:     id,
		Name:   name,
		Email:  email,
		RoleID: models.RoleIDStudent,
		Status: status,
		StudentProfile: &models.StudentProfile{
			ID:           id,
			UserID:       id,
			CareerID:     careerID,
			CurrentCicle: 1,
			Career:       models.CareerReference{ID: careerID, Name: "Ingeniería de Sistemas"},
		},
	}
	m.students[id] = ref
	return ref
}

func (m *mockRepository) addSubject(id uint, careerID uint, name string, cycle int) *models.SubjectReference {
	ref := &models.SubjectReference{
		ID:          id,
		Name:        name,
		CareerID:    careerID,
		CicleNumber: cycle,
		Career:      models.CareerReference{ID: careerID, Name: "Ingeniería de Sistemas"},
	}
	m.subjects[id] = ref
	return ref
}

func (m *mockRepository) addEnrollment(studentProfileID, subjectID uint, grade *float64) *models.StudentSubject {
	id := m.nextID
	m.nextID++
	enrollment := &models.StudentSubject{
		ID:               id,
		StudentProfileID: studentProfileID,
		SubjectID:        subjectID,
		Status:           models.EnrollmentEnrolled,
		Grade:            grade,
	}
	if subject, ok := m.subjects[subjectID]; ok {
		enrollment.Subject = *subject
	}
	if student, ok := m.students[studentProfileID]; ok {
		profile := *student.StudentProfile
		profile.User = student
		enrollment.StudentProfile = &profile
	}
	m.enrollments[id] = enrollment
	return enrollment
}

func (m *mockRepository) countBySubject(subjectID uint) int64 {
	var count int64
	for _, e := range m.enrollments {
		if e.SubjectID == subjectID && e.Status == models.EnrollmentEnrolled {
			count++
		}
	}
	return count
}

// ===== Repository interface =====

func (m *mockRepository) User() repositories.UserRepository             { return nil }
func (m *mockRepository) Student() repositories.StudentRepository       { return &mockStudentRepo{m} }
func (m *mockRepository) Teacher() repositories.TeacherRepository       { return nil }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return &mockEnrollmentRepo{m} }
func (m *mockRepository) Reference() repositories.ReferenceRepository   { return nil }
func (m *mockRepository) Report() repositories.ReportRepository         { return &mockReportRepo{m} }
func (m *mockRepository) Subject() repositories.SubjectRepository       { return nil }
func (m *mockRepository) Career() repositories.CareerRepository         { return nil }

func (m *mockRepository) WithProfilesTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	snapshot := make(map[uint]*models.StudentSubject, len(m.enrollments))
	for id, e := range m.enrollments {
		copied := *e
		snapshot[id] = &copied
	}
	savedNext := m.nextID

	if err := fn(m); err != nil {
		m.enrollments = snapshot
		m.nextID = savedNext
		return err
	}
	return nil
}

func (m *mockRepository) WithUsersTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== StudentRepository =====

type mockStudentRepo struct{ m *mockRepository }

func (r *mockStudentRepo) GetByID(ctx context.Context, id uint) (*models.UserReference, error) {
	student, ok := r.m.students[id]
	if !ok || student.RoleID != models.RoleIDStudent {
		return nil, fmt.Errorf("student %d: %w", id, gorm.ErrRecordNotFound)
	}
	return student, nil
}

func (r *mockStudentRepo) GetWithEnrollments(ctx context.Context, id uint, cycle *int) (*models.UserReference, error) {
	return r.GetByID(ctx, id)
}

func (r *mockStudentRepo) GetProfileByUserID(ctx context.Context, userID uint) (*models.StudentProfile, error) {
	student, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.StudentProfile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return student.StudentProfile, nil
}

func (r *mockStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.UserReference, int64, error) {
	var out []*models.UserReference
	for _, s := range r.m.students {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *mockStudentRepo) FindByFilter(ctx context.Context, expr repositories.FilterExpr) ([]*models.UserReference, error) {
	r.m.lastFilter = expr
	return r.m.filterResult, nil
}

func (r *mockStudentRepo) Update(ctx context.Context, ref *models.UserReference) error { return nil }
func (r *mockStudentRepo) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	return nil
}
func (r *mockStudentRepo) Delete(ctx context.Context, id uint) error { return nil }
func (r *mockStudentRepo) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	return false, nil
}

// ===== EnrollmentRepository =====

type mockEnrollmentRepo struct{ m *mockRepository }

func (r *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.StudentSubject) error {
	enrollment.ID = r.m.nextID
	r.m.nextID++
	r.m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *mockEnrollmentRepo) GetByID(ctx context.Context, id uint) (*models.StudentSubject, error) {
	enrollment, ok := r.m.enrollments[id]
	if !ok {
		return nil, fmt.Errorf("enrollment %d: %w", id, gorm.ErrRecordNotFound)
	}
	return enrollment, nil
}

func (r *mockEnrollmentRepo) Update(ctx context.Context, enrollment *models.StudentSubject) error {
	r.m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *mockEnrollmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.enrollments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.enrollments, id)
	return nil
}

func (r *mockEnrollmentRepo) GetByStudentAndSubject(ctx context.Context, studentProfileID, subjectID uint) (*models.StudentSubject, error) {
	for _, e := range r.m.enrollments {
		if e.StudentProfileID == studentProfileID && e.SubjectID == subjectID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockEnrollmentRepo) GetSubjectReference(ctx context.Context, subjectID uint) (*models.SubjectReference, error) {
	subject, ok := r.m.subjects[subjectID]
	if !ok {
		return nil, fmt.Errorf("subject %d: %w", subjectID, gorm.ErrRecordNotFound)
	}
	return subject, nil
}

func (r *mockEnrollmentRepo) CountActiveBySubject(ctx context.Context, subjectID uint) (int64, error) {
	return r.m.countBySubject(subjectID), nil
}

func (r *mockEnrollmentRepo) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.StudentSubject, int64, error) {
	var out []*models.StudentSubject
	for _, e := range r.m.enrollments {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentProfileID uint) ([]*models.StudentSubject, error) {
	var out []*models.StudentSubject
	for _, e := range r.m.enrollments {
		if e.StudentProfileID == studentProfileID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *mockEnrollmentRepo) ListBySubject(ctx context.Context, subjectID uint) ([]*models.StudentSubject, error) {
	var out []*models.StudentSubject
	for _, e := range r.m.enrollments {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ===== ReportRepository =====

type mockReportRepo struct{ m *mockRepository }

func (r *mockReportRepo) StudentEnrollmentReport(ctx context.Context) ([]repositories.StudentEnrollmentRow, error) {
	return r.m.reportRows, nil
}

func (r *mockReportRepo) CareerDistributionReport(ctx context.Context) ([]repositories.CareerDistributionRow, error) {
	return r.m.careerRows, nil
}

func (r *mockReportRepo) TeacherWorkloadReport(ctx context.Context) ([]repositories.TeacherWorkloadRow, error) {
	return r.m.workloadRows, nil
}

func (r *mockReportRepo) SystemStatistics(ctx context.Context) (*repositories.SystemStats, error) {
	stats := r.m.systemStats
	return &stats, nil
}
