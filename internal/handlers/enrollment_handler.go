package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ENROLLMENT ENDPOINTS =====

// Enroll enrolls one student into one subject
// @Summary Enroll a student in a subject
// @Tags enrollments
// @Accept json
// @Produce json
// @Success 201 {object} services.EnrollmentResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student or subject not found"
// @Failure 409 {object} ErrorResponse "Already enrolled"
// @Failure 422 {object} ErrorResponse "Business rule violation"
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	h.LogRequest(c, "Enrolling student")

	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// EnrollBulk enrolls one student into several subjects with per-item errors
// @Summary Bulk enroll a student
// @Tags enrollments
// @Accept json
// @Produce json
// @Success 201 {object} services.BulkEnrollmentResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 422 {object} ErrorResponse "Every subject failed"
// @Router /enrollments/bulk [post]
func (h *EnrollmentHandler) EnrollBulk(c *gin.Context) {
	h.LogRequest(c, "Bulk enrolling student")

	var req services.BulkEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.EnrollBulk(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if response.TotalFailed > 0 {
		// Partial success
		status = http.StatusMultiStatus
	}
	c.JSON(status, response)
}

// Cancel removes an ungraded enrollment
// @Summary Cancel an enrollment
// @Tags enrollments
// @Produce json
// @Success 200 {object} services.CancellationResponse
// @Failure 404 {object} ErrorResponse "Enrollment not found"
// @Failure 422 {object} ErrorResponse "Enrollment already graded"
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	h.LogRequest(c, "Cancelling enrollment")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
