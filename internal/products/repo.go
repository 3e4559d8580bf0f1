package products

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

// NewRepository builds a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByIDIncludingDeleted(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListByBrand(ctx context.Context, brandID uuid.UUID, params pagination.Params) (*ProductList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ActiveOnly).
		Where("brand_id = ?", brandID)
	query = pagination.Apply(query, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	pageFull := len(rows) > limit
	if pageFull {
		rows = rows[:limit]
	}

	list := &ProductList{Products: make([]ProductView, 0, len(rows))}
	for i := range rows {
		list.Products = append(list.Products, toProductView(&rows[i]))
	}
	if pageFull && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.NextCursor(last.CreatedAt, last.ID, true)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, productID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", productID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SetStock(ctx context.Context, productID uuid.UUID, stock int) error {
	return r.Update(ctx, productID, map[string]any{"stock": stock})
}

func (r *repository) SoftDelete(ctx context.Context, productID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", productID).
		Update("deleted_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) BrandIsLive(ctx context.Context, brandID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", brandID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toProductView(product *models.Product) ProductView {
	return ProductView{
		ID:          product.ID,
		BrandID:     product.BrandID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}
