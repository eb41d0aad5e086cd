package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIS-2025/academic-records-service/internal/events"
	"github.com/SIS-2025/academic-records-service/internal/validator"
)

func TestServiceManager_Initialize(t *testing.T) {
	repo := newMockRepository()
	v := validator.New()
	publisher := events.NewMockEventPublisher(slog.Default())

	manager := NewServiceManager(repo, slog.Default(), v, publisher, nil, ServiceManagerConfig{JWTSecret: "test-secret"})

	require.NoError(t, manager.Initialize(context.Background()))

	// Every getter must return a live service after Initialize.
	assert.NotNil(t, manager.Enrollment())
	assert.NotNil(t, manager.Student())
	assert.NotNil(t, manager.Teacher())
	assert.NotNil(t, manager.Subject())
	assert.NotNil(t, manager.Career())
	assert.NotNil(t, manager.Query())
	assert.NotNil(t, manager.Report())
	assert.NotNil(t, manager.User())
}

func TestServiceManager_GetterPanicsBeforeInitialize(t *testing.T) {
	repo := newMockRepository()
	manager := NewServiceManager(repo, slog.Default(), validator.New(), nil, nil, ServiceManagerConfig{})

	assert.Panics(t, func() { manager.Enrollment() })
}

func TestServiceConstructors(t *testing.T) {
	repo := newMockRepository()
	logger := slog.Default()
	v := validator.New()
	publisher := events.NewMockEventPublisher(logger)

	tests := []struct {
		name    string
		service interface{}
	}{
		{"enrollment", NewEnrollmentService(repo, logger, v)},
		{"student", NewStudentService(repo, logger, v)},
		{"teacher", NewTeacherService(repo, logger, v)},
		{"subject", NewSubjectService(repo, logger, v, publisher, nil)},
		{"career", NewCareerService(repo, logger, v, publisher, nil)},
		{"query", NewQueryService(repo, logger)},
		{"report", NewReportService(repo, logger, nil)},
		{"user", NewUserService(repo, logger, v, publisher, "secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.service)
		})
	}
}
