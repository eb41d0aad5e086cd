package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type QueryHandler struct {
	BaseHandler
	service services.QueryService
}

func NewQueryHandler(service services.QueryService, logger utils.Logger) *QueryHandler {
	return &QueryHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== QUERY ENDPOINTS =====

// StudentsWithFilters runs the combinable career/cycle/status filter
// @Summary Query students with filters
// @Tags queries
// @Produce json
// @Param careerId query int false "Career id"
// @Param cycleNumber query int false "Current cycle"
// @Param status query string false "User status"
// @Success 200 {object} services.StudentQueryResponse
// @Router /queries/students [get]
func (h *QueryHandler) StudentsWithFilters(c *gin.Context) {
	filters := services.StudentQueryFilters{
		CareerID:    QueryUint(c, "careerId"),
		CycleNumber: QueryInt(c, "cycleNumber"),
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}

	response, err := h.service.StudentsWithFilters(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// StudentsByCycles returns students enrolled in subjects of the given cycles
// @Summary Query students by cycles
// @Tags queries
// @Produce json
// @Param cycles query string true "Comma separated cycle numbers"
// @Param career_id query int false "Career id"
// @Success 200 {object} services.StudentQueryResponse
// @Router /queries/students/cycles [get]
func (h *QueryHandler) StudentsByCycles(c *gin.Context) {
	cycles := QueryIntList(c, "cycles")
	if len(cycles) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "cycles parameter is required",
			Details: "e.g. cycles=1,2,3",
		})
		return
	}

	response, err := h.service.StudentsByCycles(c.Request.Context(), cycles, QueryUint(c, "career_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// StudentsExcludingStatuses returns students whose status is not in the list
// @Summary Query students excluding statuses
// @Tags queries
// @Produce json
// @Param statuses query string true "Comma separated statuses"
// @Param career_id query int false "Career id"
// @Success 200 {object} services.StudentQueryResponse
// @Router /queries/students/excluding [get]
func (h *QueryHandler) StudentsExcludingStatuses(c *gin.Context) {
	raw := QueryStringList(c, "statuses")
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "statuses parameter is required",
			Details: "e.g. statuses=suspended,inactive",
		})
		return
	}
	statuses := make([]models.UserStatus, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, models.UserStatus(s))
	}

	response, err := h.service.StudentsExcludingStatuses(c.Request.Context(), statuses, QueryUint(c, "career_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// StudentsComplexFilter combines career sets, excluded cycles and status
// @Summary Query students with a combined filter
// @Tags queries
// @Produce json
// @Param career_ids query string false "Comma separated career ids"
// @Param exclude_cycles query string false "Comma separated cycle numbers"
// @Param status query string false "User status"
// @Success 200 {object} services.StudentQueryResponse
// @Router /queries/students/complex [get]
func (h *QueryHandler) StudentsComplexFilter(c *gin.Context) {
	filters := services.ComplexQueryFilters{
		CareerIDs:     QueryUintList(c, "career_ids"),
		ExcludeCycles: QueryIntList(c, "exclude_cycles"),
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}

	response, err := h.service.StudentsComplexFilter(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
