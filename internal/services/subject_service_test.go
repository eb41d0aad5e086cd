package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/events"
	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

// subjectMockRepo layers subject and career stores on top of the shared mock
// so subject creation can exercise the academic schema end to end.
type subjectMockRepo struct {
	*mockRepository
	subjects *subjectStore
	careers  *careerStore
	refs     *refStore
}

func newSubjectMockRepo() *subjectMockRepo {
	return &subjectMockRepo{
		mockRepository: newMockRepository(),
		subjects:       &subjectStore{},
		careers:        &careerStore{},
		refs:           &refStore{},
	}
}

func (m *subjectMockRepo) Subject() repositories.SubjectRepository     { return m.subjects }
func (m *subjectMockRepo) Career() repositories.CareerRepository       { return m.careers }
func (m *subjectMockRepo) Reference() repositories.ReferenceRepository { return m.refs }

type subjectStore struct {
	subjects []*models.Subject
	nextID   uint
}

func (s *subjectStore) Create(ctx context.Context, subject *models.Subject) error {
	s.nextID++
	subject.ID = s.nextID
	s.subjects = append(s.subjects, subject)
	return nil
}

func (s *subjectStore) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	for _, subject := range s.subjects {
		if subject.ID == id {
			return subject, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *subjectStore) Update(ctx context.Context, subject *models.Subject) error {
	return errors.New("not implemented")
}
func (s *subjectStore) Delete(ctx context.Context, id uint) error {
	return errors.New("not implemented")
}
func (s *subjectStore) List(ctx context.Context, filters repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (s *subjectStore) GetByCareer(ctx context.Context, careerID uint, filters repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (s *subjectStore) GetByCareerAndCycle(ctx context.Context, careerID uint, cicleNumber int) ([]*models.Subject, error) {
	return nil, errors.New("not implemented")
}
func (s *subjectStore) ExistsDuplicate(ctx context.Context, name string, careerID uint, cicleNumber int, excludeID *uint) (bool, error) {
	return false, nil
}

type careerStore struct {
	careers     []*models.Career
	activeCycle *models.Cycle
}

func (s *careerStore) Create(ctx context.Context, career *models.Career) error {
	s.careers = append(s.careers, career)
	return nil
}

func (s *careerStore) GetByID(ctx context.Context, id uint) (*models.Career, error) {
	for _, career := range s.careers {
		if career.ID == id {
			return career, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *careerStore) List(ctx context.Context, limit, offset int) ([]*models.Career, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (s *careerStore) Update(ctx context.Context, career *models.Career) error {
	return errors.New("not implemented")
}
func (s *careerStore) Delete(ctx context.Context, id uint) error {
	return errors.New("not implemented")
}
func (s *careerStore) ExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error) {
	return false, nil
}
func (s *careerStore) GetSpeciality(ctx context.Context, id uint) (*models.Speciality, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *careerStore) ListSpecialities(ctx context.Context) ([]*models.Speciality, error) {
	return nil, errors.New("not implemented")
}

func (s *careerStore) GetActiveCycle(ctx context.Context) (*models.Cycle, error) {
	if s.activeCycle == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.activeCycle, nil
}

func (s *careerStore) ListCycles(ctx context.Context) ([]*models.Cycle, error) {
	if s.activeCycle == nil {
		return nil, nil
	}
	return []*models.Cycle{s.activeCycle}, nil
}

func newTestSubjectService(repo repositories.Repository) SubjectService {
	return NewSubjectService(repo, slog.Default(), validator.New(), events.NewMockEventPublisher(nil), nil)
}

func TestSubjectService_CreateAttachesActiveCycle(t *testing.T) {
	repo := newSubjectMockRepo()
	repo.careers.careers = append(repo.careers.careers, &models.Career{ID: 1, Name: "Ingeniería de Sistemas", TotalCicles: 10})
	repo.careers.activeCycle = &models.Cycle{ID: 3, Name: "2025-2", Year: 2025, Period: 2, IsActive: true}
	svc := newTestSubjectService(repo)

	subject, err := svc.Create(context.Background(), &CreateSubjectRequest{
		Name:        "Bases de Datos",
		CareerID:    1,
		CicleNumber: 4,
	})
	require.NoError(t, err)

	require.NotNil(t, subject.CycleID)
	assert.Equal(t, uint(3), *subject.CycleID)
	assert.NotZero(t, subject.ID)
}

func TestSubjectService_CreateKeepsExplicitCycle(t *testing.T) {
	repo := newSubjectMockRepo()
	repo.careers.careers = append(repo.careers.careers, &models.Career{ID: 1, Name: "Ingeniería de Sistemas", TotalCicles: 10})
	// No active cycle: the explicit id must not trigger the lookup.
	svc := newTestSubjectService(repo)

	subject, err := svc.Create(context.Background(), &CreateSubjectRequest{
		Name:        "Redes I",
		CareerID:    1,
		CicleNumber: 5,
		CycleID:     careerIDPtr(7),
	})
	require.NoError(t, err)

	require.NotNil(t, subject.CycleID)
	assert.Equal(t, uint(7), *subject.CycleID)
}

func TestSubjectService_CreateNoActiveCycle(t *testing.T) {
	repo := newSubjectMockRepo()
	repo.careers.careers = append(repo.careers.careers, &models.Career{ID: 1, Name: "Ingeniería de Sistemas", TotalCicles: 10})
	svc := newTestSubjectService(repo)

	_, err := svc.Create(context.Background(), &CreateSubjectRequest{
		Name:        "Compiladores",
		CareerID:    1,
		CicleNumber: 8,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveCycle)
	assert.True(t, IsBusinessRule(err))
	assert.Empty(t, repo.subjects.subjects)
}
