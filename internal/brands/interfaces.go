package brands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

// Repository defines persistence operations for brands, including the
// product cascade that a brand delete triggers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	FindByID(ctx context.Context, brandID uuid.UUID) (*models.Brand, error)
	FindByIDIncludingDeleted(ctx context.Context, brandID uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, params pagination.Params) (*BrandList, error)
	Update(ctx context.Context, brandID uuid.UUID, updates map[string]any) error
	SoftDelete(ctx context.Context, brandID uuid.UUID, at time.Time) error
	SoftDeleteProducts(ctx context.Context, brandID uuid.UUID, at time.Time) (int64, error)
}
