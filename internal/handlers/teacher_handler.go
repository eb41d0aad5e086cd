package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	service services.TeacherService
}

func NewTeacherHandler(service services.TeacherService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== TEACHER ENDPOINTS =====

// List returns teachers with optional filters
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {object} services.TeacherListResponse
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing teachers")

	limit, offset := ParsePagination(c)
	filters := repositories.TeacherFilters{
		SpecialityID: QueryUint(c, "speciality_id"),
		CareerID:     QueryUint(c, "career_id"),
		Limit:        limit,
		Offset:       offset,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// WithMultipleSubjects returns teachers assigned to more than one subject
// @Summary List teachers teaching more than one subject
// @Tags teachers
// @Produce json
// @Success 200 {object} services.TeachersWithSubjectsResponse
// @Router /teachers/multiple-subjects [get]
func (h *TeacherHandler) WithMultipleSubjects(c *gin.Context) {
	h.LogRequest(c, "Listing teachers with multiple subjects")

	limit, offset := ParsePagination(c)

	response, err := h.service.WithMultipleSubjects(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get returns one teacher with profile and subject assignments
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Success 200 {object} models.UserReference
// @Failure 404 {object} ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	teacher, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// Update modifies a teacher's reference row and profile
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Success 200 {object} models.UserReference
// @Failure 404 {object} ErrorResponse "Teacher not found"
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating teacher")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	teacher, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// Delete removes a teacher
// @Summary Delete a teacher
// @Tags teachers
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Teacher not found"
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting teacher")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Teacher deleted"})
}

// AssignSubject links a teacher to a subject
// @Summary Assign a subject to a teacher
// @Tags teachers
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Teacher or subject not found"
// @Failure 409 {object} ErrorResponse "Already assigned"
// @Router /teachers/{id}/subjects/{subject_id} [post]
func (h *TeacherHandler) AssignSubject(c *gin.Context) {
	h.LogRequest(c, "Assigning subject to teacher")

	teacherID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	subjectID, ok := ParseUintParam(c, "subject_id")
	if !ok {
		return
	}

	if err := h.service.AssignSubject(c.Request.Context(), teacherID, subjectID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Subject assigned"})
}

// UnassignSubject removes a teacher-subject link
// @Summary Unassign a subject from a teacher
// @Tags teachers
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /teachers/{id}/subjects/{subject_id} [delete]
func (h *TeacherHandler) UnassignSubject(c *gin.Context) {
	h.LogRequest(c, "Unassigning subject from teacher")

	teacherID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	subjectID, ok := ParseUintParam(c, "subject_id")
	if !ok {
		return
	}

	if err := h.service.UnassignSubject(c.Request.Context(), teacherID, subjectID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Subject unassigned"})
}
