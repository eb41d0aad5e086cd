package repositories

import (
	"context"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// UserRepository interface for identity operations (users database)
type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error)

	// Outbox operations for reference synchronization
	AppendOutbox(ctx context.Context, entry *models.SyncOutbox) error
	PendingOutbox(ctx context.Context, limit int) ([]*models.SyncOutbox, error)
	MarkOutboxPublished(ctx context.Context, ids []uint) error
}
