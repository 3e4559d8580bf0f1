package likes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
	"github.com/minjaepark/commerce-backend/pkg/visibility"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a likes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, like *models.ProductLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *repository) Delete(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.ProductLike{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductLike{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductLike{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type likedProductRow struct {
	LikeID    uuid.UUID
	ProductID uuid.UUID
	BrandID   uuid.UUID
	Name      string
	Price     int
	LikedAt   time.Time
}

func (r *repository) ListLikedProducts(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LikedProductList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Table("product_likes").
		Select(`product_likes.id AS like_id,
			product_likes.product_id,
			product_likes.created_at AS liked_at,
			products.brand_id,
			products.name,
			products.price`).
		Joins("JOIN products ON products.id = product_likes.product_id AND products.deleted_at IS NULL").
		Where("product_likes.user_id = ?", userID)
	// the cursor walks the like rows, so the columns must stay qualified
	if cursor != nil {
		query = query.Where(
			"(product_likes.created_at < ?) OR (product_likes.created_at = ? AND product_likes.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	query = query.
		Order("product_likes.created_at DESC, product_likes.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []likedProductRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	pageFull := len(rows) > limit
	if pageFull {
		rows = rows[:limit]
	}

	list := &LikedProductList{Products: make([]LikedProduct, 0, len(rows))}
	for _, row := range rows {
		list.Products = append(list.Products, LikedProduct{
			ProductID: row.ProductID,
			BrandID:   row.BrandID,
			Name:      row.Name,
			Price:     row.Price,
			LikedAt:   row.LikedAt,
		})
	}
	if pageFull && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.NextCursor(last.LikedAt, last.LikeID, true)
	}
	return list, nil
}

func (r *repository) ProductIsLive(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
