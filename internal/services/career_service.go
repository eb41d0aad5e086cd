package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SIS-2025/academic-records-service/internal/cache"
	"github.com/SIS-2025/academic-records-service/internal/events"
	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

type careerService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager
}

func NewCareerService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheManager *cache.CacheManager) CareerService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &careerService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		cacheManager: cacheManager,
	}
}

// Create inserts the career into the academic schema and copies it into the
// profiles schema as a reference row, same dual-write as subjects.
func (s *careerService) Create(ctx context.Context, req *CreateCareerRequest) (*models.Career, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	dup, err := s.repo.Career().ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		return nil, fmt.Errorf("career %q: %w", req.Name, ErrCareerDuplicateName)
	}

	career := &models.Career{
		Name:          req.Name,
		TotalCicles:   req.TotalCicles,
		DurationYears: req.DurationYears,
	}
	if err := s.repo.Career().Create(ctx, career); err != nil {
		return nil, fmt.Errorf("failed to create career: %w", err)
	}

	s.syncCareerReference(ctx, career, events.EventCareerCreated)

	s.logger.Info("Career created", "career_id", career.ID, "name", career.Name)

	return career, nil
}

func (s *careerService) GetByID(ctx context.Context, id uint) (*models.Career, error) {
	career, err := s.repo.Career().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("career %d: %w", id, ErrCareerNotFound)
		}
		return nil, fmt.Errorf("career lookup failed: %w", err)
	}
	return career, nil
}

func (s *careerService) List(ctx context.Context, limit, offset int) (*CareerListResponse, error) {
	careers, total, err := s.repo.Career().List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	return &CareerListResponse{
		Careers: careers,
		Total:   total,
		Page:    pageFromOffset(offset, limit),
		Size:    limit,
	}, nil
}

// ListCycles returns every academic cycle, newest term first.
func (s *careerService) ListCycles(ctx context.Context) ([]*models.Cycle, error) {
	cycles, err := s.repo.Career().ListCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}

func (s *careerService) Update(ctx context.Context, id uint, req *UpdateCareerRequest) (*models.Career, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	career, err := s.repo.Career().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("career %d: %w", id, ErrCareerNotFound)
		}
		return nil, fmt.Errorf("career lookup failed: %w", err)
	}

	if req.Name != nil && *req.Name != career.Name {
		dup, err := s.repo.Career().ExistsByName(ctx, *req.Name, &id)
		if err != nil {
			return nil, fmt.Errorf("duplicate check failed: %w", err)
		}
		if dup {
			return nil, fmt.Errorf("career %q: %w", *req.Name, ErrCareerDuplicateName)
		}
		career.Name = *req.Name
	}
	if req.TotalCicles != nil {
		career.TotalCicles = *req.TotalCicles
	}
	if req.DurationYears != nil {
		career.DurationYears = *req.DurationYears
	}

	if err := s.repo.Career().Update(ctx, career); err != nil {
		return nil, fmt.Errorf("failed to update career: %w", err)
	}

	s.syncCareerReference(ctx, career, events.EventCareerUpdated)

	s.logger.Info("Career updated", "career_id", id)

	return career, nil
}

func (s *careerService) Delete(ctx context.Context, id uint) error {
	career, err := s.repo.Career().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("career %d: %w", id, ErrCareerNotFound)
		}
		return fmt.Errorf("career lookup failed: %w", err)
	}

	if err := s.repo.Career().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete career: %w", err)
	}

	if err := s.repo.Reference().DeleteCareerReference(ctx, id); err != nil {
		s.logger.Warn("Failed to delete career reference", "career_id", id, "error", err)
	}
	s.publishCareerEvent(ctx, career, events.EventCareerDeleted)
	s.invalidateReportCaches(ctx)

	s.logger.Info("Career deleted", "career_id", id)

	return nil
}

// syncCareerReference copies the career into the profiles schema and emits
// the matching sync event. Failures are logged, not returned.
func (s *careerService) syncCareerReference(ctx context.Context, career *models.Career, eventType events.EventType) {
	ref := &models.CareerReference{
		ID:          career.ID,
		Name:        career.Name,
		TotalCicles: career.TotalCicles,
	}
	if err := s.repo.Reference().UpsertCareerReference(ctx, ref); err != nil {
		s.logger.Warn("Failed to sync career reference", "career_id", career.ID, "error", err)
	}
	s.publishCareerEvent(ctx, career, eventType)
	s.invalidateReportCaches(ctx)
}

func (s *careerService) publishCareerEvent(ctx context.Context, career *models.Career, eventType events.EventType) {
	if s.publisher == nil {
		return
	}
	event := events.NewSyncEvent(eventType, events.CareerSyncEvent{
		CareerID:    career.ID,
		Name:        career.Name,
		TotalCicles: career.TotalCicles,
	})
	if err := s.publisher.PublishSyncEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish career event", "career_id", career.ID, "type", eventType, "error", err)
	}
}

func (s *careerService) invalidateReportCaches(ctx context.Context) {
	if err := s.cacheManager.InvalidateReports(ctx); err != nil {
		s.logger.Warn("Failed to invalidate report caches", "error", err)
	}
}
