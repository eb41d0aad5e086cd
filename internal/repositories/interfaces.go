package repositories

import (
	"github.com/SIS-2025/academic-records-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Status    *models.UserStatus `json:"status"`
	CareerID  *uint              `json:"career_id"`
	Cycle     *int               `json:"cycle"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`    // "name", "email", "created_at"
	SortOrder string             `json:"sort_order"` // "asc", "desc"
}

type TeacherFilters struct {
	Status       *models.UserStatus `json:"status"`
	SpecialityID *uint              `json:"speciality_id"`
	CareerID     *uint              `json:"career_id"`
	Limit        int                `json:"limit"`
	Offset       int                `json:"offset"`
	SortBy       string             `json:"sort_by"`
	SortOrder    string             `json:"sort_order"`
}

type SubjectFilters struct {
	CareerID    *uint  `json:"career_id"`
	CicleNumber *int   `json:"cicle_number"`
	Name        string `json:"name"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	SortBy      string `json:"sort_by"`
	SortOrder   string `json:"sort_order"`
}

type EnrollmentFilters struct {
	StudentProfileID *uint                    `json:"student_profile_id"`
	SubjectID        *uint                    `json:"subject_id"`
	Status           *models.EnrollmentStatus `json:"status"`
	Graded           *bool                    `json:"graded"`
	Limit            int                      `json:"limit"`
	Offset           int                      `json:"offset"`
}

// ===== REPORT ROW STRUCTS =====

type StudentEnrollmentRow struct {
	StudentID     uint   `json:"student_id"`
	StudentName   string `json:"student_name"`
	StudentEmail  string `json:"student_email"`
	CareerName    string `json:"career_name"`
	CurrentCicle  int    `json:"current_cicle"`
	TotalSubjects int64  `json:"total_subjects"`
}

type CareerDistributionRow struct {
	CareerID         uint    `json:"career_id"`
	CareerName       string  `json:"career_name"`
	TotalStudents    int64   `json:"total_students"`
	TotalEnrollments int64   `json:"total_enrollments"`
	AverageGrade     float64 `json:"average_grade"`
}

type TeacherWorkloadRow struct {
	TeacherID      uint   `json:"teacher_id"`
	TeacherName    string `json:"teacher_name"`
	TeacherEmail   string `json:"teacher_email"`
	CareerName     string `json:"career_name"`
	TotalSubjects  int64  `json:"total_subjects"`
	UniqueSubjects int64  `json:"unique_subjects"`
}

type SystemStats struct {
	TotalStudents     int64   `json:"total_students"`
	ActiveStudents    int64   `json:"active_students"`
	TotalTeachers     int64   `json:"total_teachers"`
	TotalSubjects     int64   `json:"total_subjects"`
	TotalEnrollments  int64   `json:"total_enrollments"`
	GradedEnrollments int64   `json:"graded_enrollments"`
	AverageGrade      float64 `json:"average_grade"`
}
