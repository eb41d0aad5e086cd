package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type queryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewQueryService(repo repositories.Repository, logger *slog.Logger) QueryService {
	return &queryService{
		repo:   repo,
		logger: logger,
	}
}

// StudentsWithFilters selects students by status and career, then keeps only
// those with at least one active enrollment in the requested cycle. The
// summary reports counts before and after that post-filter.
func (s *queryService) StudentsWithFilters(ctx context.Context, filters StudentQueryFilters) (*StudentQueryResponse, error) {
	exprs := []repositories.FilterExpr{
		repositories.Eq("user_reference.role_id", models.RoleIDStudent),
	}
	if filters.Status != nil {
		exprs = append(exprs, repositories.Eq("user_reference.status", *filters.Status))
	}
	if filters.CareerID != nil {
		exprs = append(exprs, repositories.Eq("sp.career_id", *filters.CareerID))
	}

	students, err := s.repo.Student().FindByFilter(ctx, repositories.And(exprs...))
	if err != nil {
		return nil, fmt.Errorf("student filter query failed: %w", err)
	}

	matching := len(students)
	if filters.CycleNumber != nil {
		students = keepStudentsEnrolledInCycle(students, *filters.CycleNumber)
	}

	s.logger.Debug("Student filter query",
		"matching", matching,
		"after_post_filter", len(students))

	return &StudentQueryResponse{
		Students: students,
		Summary: QuerySummary{
			TotalMatching:   matching,
			WithEnrollments: len(students),
		},
	}, nil
}

// StudentsByCycles matches students whose current cycle is any of the given
// values, optionally restricted to one career.
func (s *queryService) StudentsByCycles(ctx context.Context, cycles []int, careerID *uint) (*StudentQueryResponse, error) {
	cycleExprs := make([]repositories.FilterExpr, 0, len(cycles))
	for _, cycle := range cycles {
		cycleExprs = append(cycleExprs, repositories.Eq("sp.current_cicle", cycle))
	}

	exprs := []repositories.FilterExpr{
		repositories.Eq("user_reference.role_id", models.RoleIDStudent),
		repositories.Or(cycleExprs...),
	}
	if careerID != nil {
		exprs = append(exprs, repositories.Eq("sp.career_id", *careerID))
	}

	students, err := s.repo.Student().FindByFilter(ctx, repositories.And(exprs...))
	if err != nil {
		return nil, fmt.Errorf("students-by-cycles query failed: %w", err)
	}

	return &StudentQueryResponse{
		Students: students,
		Summary: QuerySummary{
			TotalMatching:   len(students),
			WithEnrollments: countStudentsWithEnrollments(students),
		},
	}, nil
}

// StudentsExcludingStatuses matches students whose status is none of the
// given values.
func (s *queryService) StudentsExcludingStatuses(ctx context.Context, statuses []models.UserStatus, careerID *uint) (*StudentQueryResponse, error) {
	statusExprs := make([]repositories.FilterExpr, 0, len(statuses))
	for _, status := range statuses {
		statusExprs = append(statusExprs, repositories.Eq("user_reference.status", status))
	}

	exprs := []repositories.FilterExpr{
		repositories.Eq("user_reference.role_id", models.RoleIDStudent),
		repositories.Not(repositories.Or(statusExprs...)),
	}
	if careerID != nil {
		exprs = append(exprs, repositories.Eq("sp.career_id", *careerID))
	}

	students, err := s.repo.Student().FindByFilter(ctx, repositories.And(exprs...))
	if err != nil {
		return nil, fmt.Errorf("students-excluding-statuses query failed: %w", err)
	}

	return &StudentQueryResponse{
		Students: students,
		Summary: QuerySummary{
			TotalMatching:   len(students),
			WithEnrollments: countStudentsWithEnrollments(students),
		},
	}, nil
}

// StudentsComplexFilter combines role, status, an OR over careers and a
// negated OR over current cycles, then keeps only students that carry at
// least one active enrollment.
func (s *queryService) StudentsComplexFilter(ctx context.Context, filters ComplexQueryFilters) (*StudentQueryResponse, error) {
	exprs := []repositories.FilterExpr{
		repositories.Eq("user_reference.role_id", models.RoleIDStudent),
	}
	if filters.Status != nil {
		exprs = append(exprs, repositories.Eq("user_reference.status", *filters.Status))
	}
	if len(filters.CareerIDs) > 0 {
		careerExprs := make([]repositories.FilterExpr, 0, len(filters.CareerIDs))
		for _, id := range filters.CareerIDs {
			careerExprs = append(careerExprs, repositories.Eq("sp.career_id", id))
		}
		exprs = append(exprs, repositories.Or(careerExprs...))
	}
	if len(filters.ExcludeCycles) > 0 {
		cycleExprs := make([]repositories.FilterExpr, 0, len(filters.ExcludeCycles))
		for _, cycle := range filters.ExcludeCycles {
			cycleExprs = append(cycleExprs, repositories.Eq("sp.current_cicle", cycle))
		}
		exprs = append(exprs, repositories.Not(repositories.Or(cycleExprs...)))
	}

	students, err := s.repo.Student().FindByFilter(ctx, repositories.And(exprs...))
	if err != nil {
		return nil, fmt.Errorf("complex student query failed: %w", err)
	}

	matching := len(students)
	withEnrollments := make([]*models.UserReference, 0, len(students))
	for _, student := range students {
		if studentHasEnrollments(student) {
			withEnrollments = append(withEnrollments, student)
		}
	}

	return &StudentQueryResponse{
		Students: withEnrollments,
		Summary: QuerySummary{
			TotalMatching:   matching,
			WithEnrollments: len(withEnrollments),
		},
	}, nil
}

// ===== POST-FILTER HELPERS =====

func studentHasEnrollments(student *models.UserReference) bool {
	return student.StudentProfile != nil && len(student.StudentProfile.StudentSubjects) > 0
}

func countStudentsWithEnrollments(students []*models.UserReference) int {
	count := 0
	for _, student := range students {
		if studentHasEnrollments(student) {
			count++
		}
	}
	return count
}

func keepStudentsEnrolledInCycle(students []*models.UserReference, cycle int) []*models.UserReference {
	out := make([]*models.UserReference, 0, len(students))
	for _, student := range students {
		if student.StudentProfile == nil {
			continue
		}
		for _, enrollment := range student.StudentProfile.StudentSubjects {
			if enrollment.Subject.CicleNumber == cycle {
				out = append(out, student)
				break
			}
		}
	}
	return out
}
