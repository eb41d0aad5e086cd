package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/SIS-2025/academic-records-service/internal/cache"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type reportService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewReportService(repo repositories.Repository, logger *slog.Logger, cacheManager *cache.CacheManager) ReportService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &reportService{
		repo:         repo,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

// StudentEnrollments builds the per-student enrollment count report, busiest
// students first. Cached for the report TTL.
func (s *reportService) StudentEnrollments(ctx context.Context) (*StudentEnrollmentReport, error) {
	var report StudentEnrollmentReport
	err := s.cacheManager.Report.CacheOrExecute(ctx, "student-enrollments", &report, cache.ReportCacheConfig.TTL, func() (interface{}, error) {
		rows, err := s.repo.Report().StudentEnrollmentReport(ctx)
		if err != nil {
			return nil, err
		}

		summary := EnrollmentReportSummary{TotalStudents: len(rows)}
		for _, row := range rows {
			if row.TotalSubjects > 0 {
				summary.WithEnrollments++
			} else {
				summary.WithoutEnrollments++
			}
			if row.TotalSubjects > summary.MaxSubjects {
				summary.MaxSubjects = row.TotalSubjects
			}
		}

		return &StudentEnrollmentReport{Rows: rows, Summary: summary}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("student enrollment report failed: %w", err)
	}
	return &report, nil
}

// Careers builds the per-career distribution report with grade averages
// rounded to 2 decimals.
func (s *reportService) Careers(ctx context.Context) (*CareerReport, error) {
	var report CareerReport
	err := s.cacheManager.Report.CacheOrExecute(ctx, "careers", &report, cache.ReportCacheConfig.TTL, func() (interface{}, error) {
		rows, err := s.repo.Report().CareerDistributionReport(ctx)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].AverageGrade = round2(rows[i].AverageGrade)
		}
		return &CareerReport{Rows: rows}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("career report failed: %w", err)
	}
	return &report, nil
}

// TeacherWorkload builds the per-teacher assignment count report.
func (s *reportService) TeacherWorkload(ctx context.Context) (*TeacherWorkloadReport, error) {
	var report TeacherWorkloadReport
	err := s.cacheManager.Report.CacheOrExecute(ctx, "teacher-workload", &report, cache.ReportCacheConfig.TTL, func() (interface{}, error) {
		rows, err := s.repo.Report().TeacherWorkloadReport(ctx)
		if err != nil {
			return nil, err
		}
		return &TeacherWorkloadReport{Rows: rows}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("teacher workload report failed: %w", err)
	}
	return &report, nil
}

// Statistics collects service-wide totals with the overall grade average
// rounded to 2 decimals.
func (s *reportService) Statistics(ctx context.Context) (*SystemStatsReport, error) {
	var report SystemStatsReport
	err := s.cacheManager.Stats.CacheOrExecute(ctx, "system", &report, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		stats, err := s.repo.Report().SystemStatistics(ctx)
		if err != nil {
			return nil, err
		}
		stats.AverageGrade = round2(stats.AverageGrade)
		return &SystemStatsReport{Stats: *stats}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("system statistics failed: %w", err)
	}
	return &report, nil
}

// ExportStudentEnrollments renders the enrollment report as an xlsx workbook.
func (s *reportService) ExportStudentEnrollments(ctx context.Context) ([]byte, error) {
	report, err := s.StudentEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Student Enrollments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Student ID", "Name", "Email", "Career", "Current Cycle", "Total Subjects"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, row := range report.Rows {
		values := []interface{}{
			row.StudentID,
			row.StudentName,
			row.StudentEmail,
			row.CareerName,
			row.CurrentCicle,
			row.TotalSubjects,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Exported student enrollment report", "rows", len(report.Rows))

	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
