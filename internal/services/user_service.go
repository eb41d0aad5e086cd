package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/SIS-2025/academic-records-service/internal/events"
	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload issued at login and checked by the auth
// middleware.
type Claims struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	jwtSecret []byte
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, jwtSecret string) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		jwtSecret: []byte(jwtSecret),
	}
}

// ===== REGISTRATION =====

// Register creates the user in the users schema together with its outbox row,
// then writes the reference row and role profile into the profiles schema and
// publishes the sync event. The event publication is best-effort; the outbox
// row keeps it replayable.
func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	roleID, err := roleIDForName(req.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.User().ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("email check failed: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("email %q: %w", req.Email, ErrEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		RoleID:   roleID,
		Status:   models.StatusActive,
	}

	err = s.repo.WithUsersTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		payload, err := json.Marshal(events.UserSyncEvent{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			RoleID: user.RoleID,
			Status: user.Status,
		})
		if err != nil {
			return fmt.Errorf("failed to encode outbox payload: %w", err)
		}

		entry := &models.SyncOutbox{
			EventType: string(events.EventUserCreated),
			Payload:   datatypes.JSON(payload),
		}
		if err := txRepo.User().AppendOutbox(ctx, entry); err != nil {
			return fmt.Errorf("failed to append outbox entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, user, req); err != nil {
		return nil, err
	}

	s.publishUserEvent(ctx, user)

	s.logger.Info("User registered", "user_id", user.ID, "role", req.Role)

	return s.buildAuthResponse(user)
}

// createProfile writes the reference row plus the role profile into the
// profiles schema as one transaction.
func (s *userService) createProfile(ctx context.Context, user *models.User, req *RegisterRequest) error {
	return s.repo.WithProfilesTransaction(ctx, func(txRepo repositories.Repository) error {
		ref := &models.UserReference{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			RoleID: user.RoleID,
			Status: user.Status,
		}
		if err := txRepo.Reference().CreateUserReference(ctx, ref); err != nil {
			return fmt.Errorf("failed to create user reference: %w", err)
		}

		switch user.RoleID {
		case models.RoleIDStudent:
			cycle := 1
			if req.CurrentCicle != nil {
				cycle = *req.CurrentCicle
			}
			profile := &models.StudentProfile{
				UserID:       user.ID,
				CareerID:     *req.CareerID,
				CurrentCicle: cycle,
			}
			if err := txRepo.Reference().CreateStudentProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to create student profile: %w", err)
			}
		case models.RoleIDTeacher:
			profile := &models.TeacherProfile{
				UserID:       user.ID,
				SpecialityID: *req.SpecialityID,
				CareerID:     *req.CareerID,
			}
			if err := txRepo.Reference().CreateTeacherProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to create teacher profile: %w", err)
			}
		}
		return nil
	})
}

// ===== LOGIN =====

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.StatusActive {
		return nil, fmt.Errorf("user %d has status %q: %w", user.ID, user.Status, ErrForbidden)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return s.buildAuthResponse(user)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}

// ===== HELPERS =====

func (s *userService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	role := models.RoleForID(user.RoleID)
	expiresAt := time.Now().Add(tokenTTL)

	claims := &Claims{
		UserID: user.ID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: AuthUser{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   role,
			Status: user.Status,
		},
	}, nil
}

func (s *userService) publishUserEvent(ctx context.Context, user *models.User) {
	if s.publisher == nil {
		return
	}
	event := events.NewSyncEvent(events.EventUserCreated, events.UserSyncEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RoleID: user.RoleID,
		Status: user.Status,
	})
	if err := s.publisher.PublishSyncEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish user event", "user_id", user.ID, "error", err)
	}
}

func roleIDForName(role string) (uint, error) {
	switch models.UserRole(role) {
	case models.RoleAdmin:
		return models.RoleIDAdmin, nil
	case models.RoleTeacher:
		return models.RoleIDTeacher, nil
	case models.RoleStudent:
		return models.RoleIDStudent, nil
	default:
		return 0, fmt.Errorf("role %q: %w", role, ErrInvalidRole)
	}
}

// ParseToken validates a signed token and returns its claims. Used by the
// HTTP auth middleware.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// deactivateUser marks the owning users row inactive after a profile
// delete. Best effort: the reference row is already gone, so a failure
// here only leaves a stale status flag in the users schema.
func deactivateUser(ctx context.Context, repo repositories.Repository, logger *slog.Logger, id uint) {
	user, err := repo.User().GetByID(ctx, id)
	if err != nil {
		logger.Warn("Failed to load user for deactivation", "user_id", id, "error", err)
		return
	}
	user.Status = models.StatusInactive
	if err := repo.User().Update(ctx, user); err != nil {
		logger.Warn("Failed to deactivate user", "user_id", id, "error", err)
	}
}
