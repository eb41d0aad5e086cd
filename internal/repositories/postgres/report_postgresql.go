package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

type ReportPostgreSQL struct {
	db *gorm.DB
}

func NewReportPostgreSQL(db *gorm.DB) repositories.ReportRepository {
	return &ReportPostgreSQL{db: db}
}

// StudentEnrollmentReport tallies active enrollments per active student,
// busiest students first, ties broken by name.
func (r *ReportPostgreSQL) StudentEnrollmentReport(ctx context.Context) ([]repositories.StudentEnrollmentRow, error) {
	var rows []repositories.StudentEnrollmentRow
	err := r.db.WithContext(ctx).
		Model(&models.UserReference{}).
		Select("user_reference.id as student_id, "+
			"user_reference.name as student_name, "+
			"user_reference.email as student_email, "+
			"career_reference.name as career_name, "+
			"sp.current_cicle as current_cicle, "+
			"COUNT(ss.id) as total_subjects").
		Joins("JOIN student_profile sp ON sp.user_id = user_reference.id").
		Joins("JOIN career_reference ON career_reference.id = sp.career_id").
		Joins("LEFT JOIN student_subject ss ON ss.student_profile_id = sp.id AND ss.status = ?", models.EnrollmentEnrolled).
		Where("user_reference.role_id = ? AND user_reference.status = ?", models.RoleIDStudent, models.StatusActive).
		Group("user_reference.id, user_reference.name, user_reference.email, career_reference.name, sp.current_cicle").
		Order("total_subjects DESC, student_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build student enrollment report: %w", err)
	}
	return rows, nil
}

// CareerDistributionReport aggregates student and enrollment counts plus the
// average grade per career.
func (r *ReportPostgreSQL) CareerDistributionReport(ctx context.Context) ([]repositories.CareerDistributionRow, error) {
	var rows []repositories.CareerDistributionRow
	err := r.db.WithContext(ctx).
		Model(&models.CareerReference{}).
		Select("career_reference.id as career_id, "+
			"career_reference.name as career_name, "+
			"COUNT(DISTINCT sp.id) as total_students, "+
			"COUNT(ss.id) as total_enrollments, "+
			"COALESCE(AVG(ss.grade), 0) as average_grade").
		Joins("LEFT JOIN student_profile sp ON sp.career_id = career_reference.id").
		Joins("LEFT JOIN student_subject ss ON ss.student_profile_id = sp.id AND ss.status = ?", models.EnrollmentEnrolled).
		Group("career_reference.id, career_reference.name").
		Order("total_students DESC, career_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build career distribution report: %w", err)
	}
	return rows, nil
}

// TeacherWorkloadReport counts subject assignments per teacher.
func (r *ReportPostgreSQL) TeacherWorkloadReport(ctx context.Context) ([]repositories.TeacherWorkloadRow, error) {
	var rows []repositories.TeacherWorkloadRow
	err := r.db.WithContext(ctx).
		Model(&models.UserReference{}).
		Select("user_reference.id as teacher_id, "+
			"user_reference.name as teacher_name, "+
			"user_reference.email as teacher_email, "+
			"career_reference.name as career_name, "+
			"COUNT(sa.id) as total_subjects, "+
			"COUNT(DISTINCT sa.subject_id) as unique_subjects").
		Joins("JOIN teacher_profile tp ON tp.user_id = user_reference.id").
		Joins("JOIN career_reference ON career_reference.id = tp.career_id").
		Joins("LEFT JOIN subject_assignment sa ON sa.teacher_profile_id = tp.id").
		Where("user_reference.role_id = ?", models.RoleIDTeacher).
		Group("user_reference.id, user_reference.name, user_reference.email, career_reference.name").
		Order("total_subjects DESC, teacher_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build teacher workload report: %w", err)
	}
	return rows, nil
}

// SystemStatistics collects service-wide totals in a handful of scans.
func (r *ReportPostgreSQL) SystemStatistics(ctx context.Context) (*repositories.SystemStats, error) {
	stats := &repositories.SystemStats{}
	db := r.db.WithContext(ctx)

	type roleCount struct {
		Total  int64
		Active int64
	}
	var students roleCount
	err := db.Model(&models.UserReference{}).
		Select("COUNT(*) as total, COUNT(*) FILTER (WHERE status = ?) as active", models.StatusActive).
		Where("role_id = ?", models.RoleIDStudent).
		Scan(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	stats.TotalStudents = students.Total
	stats.ActiveStudents = students.Active

	if err := db.Model(&models.UserReference{}).
		Where("role_id = ?", models.RoleIDTeacher).
		Count(&stats.TotalTeachers).Error; err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}

	if err := db.Model(&models.SubjectReference{}).
		Count(&stats.TotalSubjects).Error; err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}

	type enrollmentTotals struct {
		Total   int64
		Graded  int64
		Average float64
	}
	var enrollments enrollmentTotals
	err = db.Model(&models.StudentSubject{}).
		Select("COUNT(*) as total, "+
			"COUNT(grade) as graded, "+
			"COALESCE(AVG(grade), 0) as average").
		Where("status = ?", models.EnrollmentEnrolled).
		Scan(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate enrollments: %w", err)
	}
	stats.TotalEnrollments = enrollments.Total
	stats.GradedEnrollments = enrollments.Graded
	stats.AverageGrade = enrollments.Average

	return stats, nil
}
