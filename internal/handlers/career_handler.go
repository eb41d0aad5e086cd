package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

type CareerHandler struct {
	BaseHandler
	service services.CareerService
}

func NewCareerHandler(service services.CareerService, logger utils.Logger) *CareerHandler {
	return &CareerHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CAREER ENDPOINTS =====

// Create registers a new career
// @Summary Create a career
// @Tags careers
// @Accept json
// @Produce json
// @Success 201 {object} models.Career
// @Failure 409 {object} ErrorResponse "Duplicate career name"
// @Router /careers [post]
func (h *CareerHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating career")

	var req services.CreateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	career, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, career)
}

// List returns all careers
// @Summary List careers
// @Tags careers
// @Produce json
// @Success 200 {object} services.CareerListResponse
// @Router /careers [get]
func (h *CareerHandler) List(c *gin.Context) {
	limit, offset := ParsePagination(c)

	response, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCycles returns all academic cycles
// @Summary List academic cycles
// @Tags careers
// @Produce json
// @Success 200 {array} models.Cycle
// @Router /careers/cycles [get]
func (h *CareerHandler) ListCycles(c *gin.Context) {
	cycles, err := h.service.ListCycles(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cycles)
}

// Get returns one career
// @Summary Get a career
// @Tags careers
// @Produce json
// @Success 200 {object} models.Career
// @Failure 404 {object} ErrorResponse "Career not found"
// @Router /careers/{id} [get]
func (h *CareerHandler) Get(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	career, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, career)
}

// Update modifies a career
// @Summary Update a career
// @Tags careers
// @Accept json
// @Produce json
// @Success 200 {object} models.Career
// @Failure 404 {object} ErrorResponse "Career not found"
// @Failure 409 {object} ErrorResponse "Duplicate career name"
// @Router /careers/{id} [put]
func (h *CareerHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating career")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	career, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, career)
}

// Delete removes a career
// @Summary Delete a career
// @Tags careers
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Career not found"
// @Router /careers/{id} [delete]
func (h *CareerHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting career")

	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Career deleted"})
}
