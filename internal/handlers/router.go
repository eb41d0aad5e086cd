package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type HandlerManager struct {
	enrollmentHandler *EnrollmentHandler
	studentHandler    *StudentHandler
	teacherHandler    *TeacherHandler
	subjectHandler    *SubjectHandler
	careerHandler     *CareerHandler
	queryHandler      *QueryHandler
	reportHandler     *ReportHandler
	authHandler       *AuthHandler
	authMiddleware    *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
) *HandlerManager {
	return &HandlerManager{
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		teacherHandler:    NewTeacherHandler(serviceManager.Teacher(), logger),
		subjectHandler:    NewSubjectHandler(serviceManager.Subject(), logger),
		careerHandler:     NewCareerHandler(serviceManager.Career(), logger),
		queryHandler:      NewQueryHandler(serviceManager.Query(), logger),
		reportHandler:     NewReportHandler(serviceManager.Report(), logger),
		authHandler:       NewAuthHandler(serviceManager.User(), logger),
		authMiddleware:    NewJWTAuthMiddleware(jwtSecret),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	staff := hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin)
	admin := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
	studentOrAdmin := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent, models.RoleAdmin)

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
	}

	// Everything below requires a valid token
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Enrollment workflow
		enrollments := v1.Group("/enrollments")
		{
			enrollments.POST("", studentOrAdmin, hm.enrollmentHandler.Enroll)
			enrollments.POST("/bulk", studentOrAdmin, hm.enrollmentHandler.EnrollBulk)
			enrollments.DELETE("/:id", studentOrAdmin, hm.enrollmentHandler.Cancel)
		}

		// Student routes
		students := v1.Group("/students")
		{
			students.GET("", staff, hm.studentHandler.List)
			students.GET("/active", staff, hm.studentHandler.ListActive)
			students.GET("/:id", hm.studentHandler.Get)
			students.GET("/:id/enrollments", hm.studentHandler.GetEnrollments)
			students.PUT("/:id", admin, hm.studentHandler.Update)
			students.DELETE("/:id", admin, hm.studentHandler.Delete)
		}

		// Teacher routes
		teachers := v1.Group("/teachers")
		{
			teachers.GET("", staff, hm.teacherHandler.List)
			teachers.GET("/multiple-subjects", staff, hm.teacherHandler.WithMultipleSubjects)
			teachers.GET("/:id", staff, hm.teacherHandler.Get)
			teachers.PUT("/:id", admin, hm.teacherHandler.Update)
			teachers.DELETE("/:id", admin, hm.teacherHandler.Delete)
			teachers.POST("/:id/subjects/:subject_id", admin, hm.teacherHandler.AssignSubject)
			teachers.DELETE("/:id/subjects/:subject_id", admin, hm.teacherHandler.UnassignSubject)
		}

		// Subject routes - mutations are admin only
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", hm.subjectHandler.List)
			subjects.GET("/:id", hm.subjectHandler.Get)
			subjects.GET("/career/:career_id", hm.subjectHandler.GetByCareer)
			subjects.GET("/career/:career_id/cycle/:cycle", hm.subjectHandler.GetByCareerAndCycle)
			subjects.POST("", admin, hm.subjectHandler.Create)
			subjects.PUT("/:id", admin, hm.subjectHandler.Update)
			subjects.DELETE("/:id", admin, hm.subjectHandler.Delete)
		}

		// Career routes - mutations are admin only
		careers := v1.Group("/careers")
		{
			careers.GET("", hm.careerHandler.List)
			careers.GET("/cycles", hm.careerHandler.ListCycles)
			careers.GET("/:id", hm.careerHandler.Get)
			careers.POST("", admin, hm.careerHandler.Create)
			careers.PUT("/:id", admin, hm.careerHandler.Update)
			careers.DELETE("/:id", admin, hm.careerHandler.Delete)
		}

		// Query routes - Teachers and Admins only
		queries := v1.Group("/queries")
		queries.Use(staff)
		{
			queries.GET("/students", hm.queryHandler.StudentsWithFilters)
			queries.GET("/students/cycles", hm.queryHandler.StudentsByCycles)
			queries.GET("/students/excluding", hm.queryHandler.StudentsExcludingStatuses)
			queries.GET("/students/complex", hm.queryHandler.StudentsComplexFilter)
		}

		// Report routes - Teachers and Admins only
		reports := v1.Group("/reports")
		reports.Use(staff)
		{
			reports.GET("/student-enrollments", hm.reportHandler.StudentEnrollments)
			reports.GET("/student-enrollments/export", hm.reportHandler.ExportStudentEnrollments)
			reports.GET("/careers", hm.reportHandler.Careers)
			reports.GET("/teacher-workload", hm.reportHandler.TeacherWorkload)
			reports.GET("/statistics", hm.reportHandler.Statistics)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "academic-records-service",
		})
	})
}
