package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindByLoginID(ctx context.Context, loginID string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error
}
