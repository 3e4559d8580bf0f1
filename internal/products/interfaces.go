package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	FindByIDIncludingDeleted(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*ProductList, error)
	Update(ctx context.Context, productID uuid.UUID, updates map[string]any) error
	SetStock(ctx context.Context, productID uuid.UUID, stock int) error
	SoftDelete(ctx context.Context, productID uuid.UUID, at time.Time) error
	BrandIsLive(ctx context.Context, brandID uuid.UUID) (bool, error)
}
