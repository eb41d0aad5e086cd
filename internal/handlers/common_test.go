package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIS-2025/academic-records-service/internal/services"
	"github.com/SIS-2025/academic-records-service/internal/utils"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
	return c, w
}

func TestHandleServiceError_InternalHidesCause(t *testing.T) {
	c, w := newTestContext()
	h := NewBaseHandler(utils.NewDefaultLogger())

	h.handleServiceError(c, errors.New("pq: connection refused to 10.0.0.5:5432 password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Nil(t, resp.Details)

	// The cause is logged, never echoed back.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("student 5: %w", services.ErrStudentNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("subject 1: %w", services.ErrAlreadyEnrolled), http.StatusConflict},
		{"business rule", fmt.Errorf("subject 1: %w", services.ErrSubjectFull), http.StatusUnprocessableEntity},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("user 7: %w", services.ErrForbidden), http.StatusForbidden},
		{"invalid role", fmt.Errorf("role %q: %w", "superuser", services.ErrInvalidRole), http.StatusBadRequest},
		{"unknown", errors.New("write: broken pipe"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h := NewBaseHandler(utils.NewDefaultLogger())

			h.handleServiceError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}
