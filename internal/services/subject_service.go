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

type subjectService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager
}

func NewSubjectService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheManager *cache.CacheManager) SubjectService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &subjectService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		cacheManager: cacheManager,
	}
}

// ===== CREATE =====

// Create inserts the subject into the academic schema, then copies it into
// the profiles schema as a reference row and emits a sync event. The copy and
// the event are best-effort; a failure there does not undo the subject.
func (s *subjectService) Create(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	career, err := s.repo.Career().GetByID(ctx, req.CareerID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("career %d: %w", req.CareerID, ErrCareerNotFound)
		}
		return nil, fmt.Errorf("career lookup failed: %w", err)
	}
	if req.CicleNumber > career.TotalCicles {
		return nil, NewBusinessRuleError("cycle_within_career",
			fmt.Sprintf("cycle %d exceeds the career's %d cycles", req.CicleNumber, career.TotalCicles),
			map[string]interface{}{"career_id": career.ID, "cicle_number": req.CicleNumber})
	}

	dup, err := s.repo.Subject().ExistsDuplicate(ctx, req.Name, req.CareerID, req.CicleNumber, nil)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		return nil, fmt.Errorf("subject %q career %d cycle %d: %w", req.Name, req.CareerID, req.CicleNumber, ErrSubjectDuplicate)
	}

	// New subjects belong to an academic term: an explicit cycle id wins,
	// otherwise the currently active cycle is attached.
	cycleID := req.CycleID
	if cycleID == nil {
		cycle, err := s.repo.Career().GetActiveCycle(ctx)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, ErrNoActiveCycle
			}
			return nil, fmt.Errorf("active cycle lookup failed: %w", err)
		}
		cycleID = &cycle.ID
	}

	subject := &models.Subject{
		Name:        req.Name,
		CareerID:    req.CareerID,
		CicleNumber: req.CicleNumber,
		CycleID:     cycleID,
	}
	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.syncSubjectReference(ctx, subject, events.EventSubjectCreated)
	s.invalidateSubjectCaches(ctx, subject.ID)

	s.logger.Info("Subject created", "subject_id", subject.ID, "career_id", subject.CareerID)

	return subject, nil
}

// ===== READ OPERATIONS =====

func (s *subjectService) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	key := fmt.Sprintf("id:%d", id)
	err := s.cacheManager.Subject.CacheOrExecute(ctx, key, &subject, cache.SubjectCacheConfig.TTL, func() (interface{}, error) {
		found, err := s.repo.Subject().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return found, nil
	})
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d: %w", id, ErrSubjectNotFound)
		}
		return nil, fmt.Errorf("subject lookup failed: %w", err)
	}
	return &subject, nil
}

func (s *subjectService) List(ctx context.Context, filters repositories.SubjectFilters) (*SubjectListResponse, error) {
	subjects, total, err := s.repo.Subject().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return &SubjectListResponse{
		Subjects: subjects,
		Total:    total,
		Page:     pageFromOffset(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

func (s *subjectService) GetByCareer(ctx context.Context, careerID uint, filters repositories.SubjectFilters) (*SubjectListResponse, error) {
	if _, err := s.repo.Career().GetByID(ctx, careerID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("career %d: %w", careerID, ErrCareerNotFound)
		}
		return nil, fmt.Errorf("career lookup failed: %w", err)
	}

	subjects, total, err := s.repo.Subject().GetByCareer(ctx, careerID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list career subjects: %w", err)
	}
	return &SubjectListResponse{
		Subjects: subjects,
		Total:    total,
		Page:     pageFromOffset(filters.Offset, filters.Limit),
		Size:     filters.Limit,
	}, nil
}

func (s *subjectService) GetByCareerAndCycle(ctx context.Context, careerID uint, cicleNumber int) ([]*models.Subject, error) {
	if _, err := s.repo.Career().GetByID(ctx, careerID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("career %d: %w", careerID, ErrCareerNotFound)
		}
		return nil, fmt.Errorf("career lookup failed: %w", err)
	}

	subjects, err := s.repo.Subject().GetByCareerAndCycle(ctx, careerID, cicleNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycle subjects: %w", err)
	}
	return subjects, nil
}

// ===== MUTATIONS =====

func (s *subjectService) Update(ctx context.Context, id uint, req *UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d: %w", id, ErrSubjectNotFound)
		}
		return nil, fmt.Errorf("subject lookup failed: %w", err)
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.CareerID != nil {
		subject.CareerID = *req.CareerID
	}
	if req.CicleNumber != nil {
		subject.CicleNumber = *req.CicleNumber
	}
	if req.CycleID != nil {
		subject.CycleID = req.CycleID
	}

	dup, err := s.repo.Subject().ExistsDuplicate(ctx, subject.Name, subject.CareerID, subject.CicleNumber, &id)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		return nil, fmt.Errorf("subject %q career %d cycle %d: %w", subject.Name, subject.CareerID, subject.CicleNumber, ErrSubjectDuplicate)
	}

	if err := s.repo.Subject().Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}

	s.syncSubjectReference(ctx, subject, events.EventSubjectUpdated)
	s.invalidateSubjectCaches(ctx, subject.ID)

	s.logger.Info("Subject updated", "subject_id", id)

	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	subject, err := s.repo.Subject().GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("subject %d: %w", id, ErrSubjectNotFound)
		}
		return fmt.Errorf("subject lookup failed: %w", err)
	}

	if err := s.repo.Subject().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	if err := s.repo.Reference().DeleteSubjectReference(ctx, id); err != nil {
		s.logger.Warn("Failed to delete subject reference", "subject_id", id, "error", err)
	}
	s.publishSubjectEvent(ctx, subject, events.EventSubjectDeleted)
	s.invalidateSubjectCaches(ctx, subject.ID)

	s.logger.Info("Subject deleted", "subject_id", id)

	return nil
}

// ===== SYNC HELPERS =====

// syncSubjectReference copies the subject into the profiles schema and emits
// the matching sync event. Failures are logged, not returned.
func (s *subjectService) syncSubjectReference(ctx context.Context, subject *models.Subject, eventType events.EventType) {
	ref := &models.SubjectReference{
		ID:          subject.ID,
		Name:        subject.Name,
		CareerID:    subject.CareerID,
		CicleNumber: subject.CicleNumber,
	}
	if err := s.repo.Reference().UpsertSubjectReference(ctx, ref); err != nil {
		s.logger.Warn("Failed to sync subject reference", "subject_id", subject.ID, "error", err)
	}
	s.publishSubjectEvent(ctx, subject, eventType)
}

func (s *subjectService) publishSubjectEvent(ctx context.Context, subject *models.Subject, eventType events.EventType) {
	if s.publisher == nil {
		return
	}
	event := events.NewSyncEvent(eventType, events.SubjectSyncEvent{
		SubjectID:   subject.ID,
		Name:        subject.Name,
		CareerID:    subject.CareerID,
		CicleNumber: subject.CicleNumber,
	})
	if err := s.publisher.PublishSyncEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish subject event", "subject_id", subject.ID, "type", eventType, "error", err)
	}
}

func (s *subjectService) invalidateSubjectCaches(ctx context.Context, subjectID uint) {
	if err := s.cacheManager.InvalidateSubject(ctx, subjectID); err != nil {
		s.logger.Warn("Failed to invalidate subject cache", "error", err)
	}
	if err := s.cacheManager.InvalidateReports(ctx); err != nil {
		s.logger.Warn("Failed to invalidate report caches", "error", err)
	}
}
