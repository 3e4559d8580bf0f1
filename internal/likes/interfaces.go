package likes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

// Repository defines persistence operations for product likes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, like *models.ProductLike) error
	Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	ListLikedProducts(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedProductList, error)
	ProductIsLive(ctx context.Context, productID uuid.UUID) (bool, error)
}

// CountCache is the slice of the redis client the like counter uses.
type CountCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	LikeCountKey(productID string) string
}
