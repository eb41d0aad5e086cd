package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/repositories"
	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type SubjectHandler struct {
	BaseHandler
	service services.SubjectService
}

func NewSubjectHandler(service services.SubjectService, logger utils.Logger) *SubjectHandler {
	return &SubjectHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== SUBJECT ENDPOINTS =====

// Create adds a subject to a career's curriculum
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Success 201 {object} models.Subject
// @Failure 404 {object} ErrorResponse "Career not found"
// @Failure 409 {object} ErrorResponse "Duplicate subject"
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating subject")

	var req services.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	subject, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// List returns subjects with optional filters
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {object} services.SubjectListResponse
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	limit, offset := ParsePagination(c)
	filters := repositories.SubjectFilters{
		CareerID:    QueryUint(c, "career_id"),
		CicleNumber: QueryInt(c, "cicle_number"),
		Name:        c.Query("name"),
		Limit:       limit,
		Offset:      offset,
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	}

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get returns one subject
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Success 200 {object} models.Subject
// @Failure 404 {object} ErrorResponse "Subject not found"
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	subject, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// GetByCareer returns the subjects of one career
// @Summary List a career's subjects
// @Tags subjects
// @Produce json
// @Success 200 {object} services.SubjectListResponse
// @Failure 404 {object} ErrorResponse "Career not found"
// @Router /subjects/career/{career_id} [get]
func (h *SubjectHandler) GetByCareer(c *gin.Context) {
	careerID, ok := ParseUintParam(c, "career_id")
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	filters := repositories.SubjectFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	response, err := h.service.GetByCareer(c.Request.Context(), careerID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetByCareerAndCycle returns the subjects of one curriculum cycle
// @Summary List a career cycle's subjects
// @Tags subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Failure 404 {object} ErrorResponse "Career not found"
// @Router /subjects/career/{career_id}/cycle/{cycle} [get]
func (h *SubjectHandler) GetByCareerAndCycle(c *gin.Context) {
	careerID, ok := ParseUintParam(c, "career_id")
	if !ok {
		return
	}
	cycle, ok := ParseIntParam(c, "cycle")
	if !ok {
		return
	}

	subjects, err := h.service.GetByCareerAndCycle(c.Request.Context(), careerID, cycle)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// Update modifies a subject
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Success 200 {object} models.Subject
// @Failure 404 {object} ErrorResponse "Subject not found"
// @Failure 409 {object} ErrorResponse "Duplicate subject"
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating subject")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	subject, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// Delete removes a subject
// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Subject not found"
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting subject")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Subject deleted"})
}
