package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== REPORT ENDPOINTS =====

// StudentEnrollments returns the per-student enrollment count report
// @Summary Student enrollment report
// @Tags reports
// @Produce json
// @Success 200 {object} services.StudentEnrollmentReport
// @Router /reports/student-enrollments [get]
func (h *ReportHandler) StudentEnrollments(c *gin.Context) {
	report, err := h.service.StudentEnrollments(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Careers returns the per-career distribution report
// @Summary Career distribution report
// @Tags reports
// @Produce json
// @Success 200 {object} services.CareerReport
// @Router /reports/careers [get]
func (h *ReportHandler) Careers(c *gin.Context) {
	report, err := h.service.Careers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// TeacherWorkload returns the per-teacher assignment count report
// @Summary Teacher workload report
// @Tags reports
// @Produce json
// @Success 200 {object} services.TeacherWorkloadReport
// @Router /reports/teacher-workload [get]
func (h *ReportHandler) TeacherWorkload(c *gin.Context) {
	report, err := h.service.TeacherWorkload(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Statistics returns service-wide totals
// @Summary System statistics
// @Tags reports
// @Produce json
// @Success 200 {object} services.SystemStatsReport
// @Router /reports/statistics [get]
func (h *ReportHandler) Statistics(c *gin.Context) {
	report, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportStudentEnrollments streams the enrollment report as an xlsx file
// @Summary Export the enrollment report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /reports/student-enrollments/export [get]
func (h *ReportHandler) ExportStudentEnrollments(c *gin.Context) {
	h.LogRequest(c, "Exporting student enrollment report")

	data, err := h.service.ExportStudentEnrollments(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("student-enrollments-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
