package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/events"
	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

const testSecret = "test-secret"

// authMockRepo layers user and reference stores on top of the shared mock
// so registration can run its two transactions end to end.
type authMockRepo struct {
	*mockRepository
	users *userStore
	refs  *refStore
}

func newAuthMockRepo() *authMockRepo {
	return &authMockRepo{
		mockRepository: newMockRepository(),
		users:          &userStore{byEmail: map[string]*models.User{}},
		refs:           &refStore{},
	}
}

func (m *authMockRepo) User() repositories.UserRepository           { return m.users }
func (m *authMockRepo) Reference() repositories.ReferenceRepository { return m.refs }

func (m *authMockRepo) WithUsersTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *authMockRepo) WithProfilesTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

type userStore struct {
	byEmail map[string]*models.User
	outbox  []*models.SyncOutbox
	nextID  uint
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	s.byEmail[user.Email] = user
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *userStore) Update(ctx context.Context, user *models.User) error { return nil }
func (s *userStore) Delete(ctx context.Context, id uint) error           { return nil }

func (s *userStore) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}


func (s *userStore) AppendOutbox(ctx context.Context, entry *models.SyncOutbox) error {
	entry.ID = uint(len(s.outbox) + 1)
	s.outbox = append(s.outbox, entry)
	return nil
}

func (s *userStore) PendingOutbox(ctx context.Context, limit int) ([]*models.SyncOutbox, error) {
	return s.outbox, nil
}

func (s *userStore) MarkOutboxPublished(ctx context.Context, ids []uint) error { return nil }

type refStore struct {
	userRefs        []*models.UserReference
	studentProfiles []*models.StudentProfile
	teacherProfiles []*models.TeacherProfile
}

func (s *refStore) CreateUserReference(ctx context.Context, ref *models.UserReference) error {
	s.userRefs = append(s.userRefs, ref)
	return nil
}

func (s *refStore) UpsertUserReference(ctx context.Context, ref *models.UserReference) error {
	return nil
}
func (s *refStore) DeleteUserReference(ctx context.Context, id uint) error { return nil }

func (s *refStore) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	s.studentProfiles = append(s.studentProfiles, profile)
	return nil
}

func (s *refStore) CreateTeacherProfile(ctx context.Context, profile *models.TeacherProfile) error {
	s.teacherProfiles = append(s.teacherProfiles, profile)
	return nil
}

func (s *refStore) UpsertCareerReference(ctx context.Context, ref *models.CareerReference) error {
	return nil
}
func (s *refStore) DeleteCareerReference(ctx context.Context, id uint) error { return nil }
func (s *refStore) UpsertSpecialityReference(ctx context.Context, ref *models.SpecialityReference) error {
	return nil
}
func (s *refStore) UpsertSubjectReference(ctx context.Context, ref *models.SubjectReference) error {
	return nil
}
func (s *refStore) DeleteSubjectReference(ctx context.Context, id uint) error { return nil }

func (s *refStore) GetCareerReference(ctx context.Context, id uint) (*models.CareerReference, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *refStore) GetSubjectReference(ctx context.Context, id uint) (*models.SubjectReference, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestUserService(repo repositories.Repository, publisher events.EventPublisher) UserService {
	return NewUserService(repo, slog.Default(), validator.New(), publisher, testSecret)
}

func careerIDPtr(id uint) *uint { return &id }

func TestUserService_RegisterStudent(t *testing.T) {
	repo := newAuthMockRepo()
	publisher := events.NewMockEventPublisher(nil)
	svc := newTestUserService(repo, publisher)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Juan Pérez",
		Email:    "juan.perez@sudamericano.edu.ec",
		Password: "student123",
		Role:     "student",
		CareerID: careerIDPtr(1),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Equal(t, models.StatusActive, resp.User.Status)

	// Reference copy and profile land in the profiles store.
	require.Len(t, repo.refs.userRefs, 1)
	require.Len(t, repo.refs.studentProfiles, 1)
	assert.Equal(t, uint(1), repo.refs.studentProfiles[0].CareerID)
	assert.Equal(t, 1, repo.refs.studentProfiles[0].CurrentCicle)

	// Outbox row written in the users transaction, event published after.
	require.Len(t, repo.users.outbox, 1)
	assert.Equal(t, string(events.EventUserCreated), repo.users.outbox[0].EventType)
	require.Len(t, publisher.GetPublishedEvents(), 1)

	// Password is stored hashed.
	stored := repo.users.byEmail["juan.perez@sudamericano.edu.ec"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("student123")))
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))

	req := &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password1",
		Role:     "student",
		CareerID: careerIDPtr(1),
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_RegisterInvalidRole(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password1",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestUserService_LoginRoundTrip(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Pedro",
		Email:    "pedro@example.com",
		Password: "student123",
		Role:     "student",
		CareerID: careerIDPtr(1),
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginRequest{Email: "pedro@example.com", Password: "student123"})
	require.NoError(t, err)

	claims, err := ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "pedro@example.com", claims.Subject)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Pedro",
		Email:    "pedro@example.com",
		Password: "student123",
		Role:     "student",
		CareerID: careerIDPtr(1),
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "pedro@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "student123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_LoginSuspendedUser(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "student123",
		Role:     "student",
		CareerID: careerIDPtr(1),
	})
	require.NoError(t, err)

	repo.users.byEmail["ana@example.com"].Status = models.StatusSuspended

	_, err = svc.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "student123"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestParseToken_RejectsTampered(t *testing.T) {
	repo := newAuthMockRepo()
	svc := newTestUserService(repo, events.NewMockEventPublisher(nil))
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "student123",
		Role:     "student",
		CareerID: careerIDPtr(1),
	})
	require.NoError(t, err)

	_, err = ParseToken(resp.Token, "other-secret")
	assert.Error(t, err)

	_, err = ParseToken(resp.Token+"x", testSecret)
	assert.Error(t, err)
}
