package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// List returns students with optional status/career/cycle filters
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param status query string false "Filter by status"
// @Param career_id query int false "Filter by career"
// @Param cycle query int false "Filter by current cycle"
// @Success 200 {object} services.StudentListResponse
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	filters := h.parseFilters(c)

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListActive returns only active students
// @Summary List active students
// @Tags students
// @Produce json
// @Success 200 {object} services.StudentListResponse
// @Router /students/active [get]
func (h *StudentHandler) ListActive(c *gin.Context) {
	h.LogRequest(c, "Listing active students")

	filters := h.parseFilters(c)

	response, err := h.service.ListActive(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get returns one student with its academic profile
// @Summary Get a student
// @Tags students
// @Produce json
// @Success 200 {object} models.UserReference
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// GetEnrollments returns the student's active enrollments
// @Summary Get a student's enrollments
// @Tags students
// @Produce json
// @Param cycle query int false "Limit to subjects of one curriculum cycle"
// @Success 200 {object} services.StudentEnrollmentsResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id}/enrollments [get]
func (h *StudentHandler) GetEnrollments(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	cycle := QueryInt(c, "cycle")

	response, err := h.service.GetEnrollments(c.Request.Context(), id, cycle)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update modifies a student's reference row and academic profile
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Success 200 {object} models.UserReference
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 409 {object} ErrorResponse "Email already taken"
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating student")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete removes a student
// @Summary Delete a student
// @Tags students
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting student")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted"})
}

func (h *StudentHandler) parseFilters(c *gin.Context) repositories.StudentFilters {
	limit, offset := ParsePagination(c)
	filters := repositories.StudentFilters{
		CareerID:  QueryUint(c, "career_id"),
		Cycle:     QueryInt(c, "cycle"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}
	return filters
}
