package brands

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

// NewRepository builds a brand repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *repository) FindByID(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", brandID).
		First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) FindByIDIncludingDeleted(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).
		Where("id = ?", brandID).
		First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) (*BrandList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Scopes(visibility.ActiveOnly)
	query = pagination.Apply(query, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Brand
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	pageFull := len(rows) > limit
	if pageFull {
		rows = rows[:limit]
	}

	list := &BrandList{Brands: make([]BrandView, 0, len(rows))}
	for i := range rows {
		list.Brands = append(list.Brands, toBrandView(&rows[i]))
	}
	if pageFull && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.NextCursor(last.CreatedAt, last.ID, true)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, brandID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", brandID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, brandID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", brandID).
		Update("deleted_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SoftDeleteProducts(ctx context.Context, brandID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ActiveOnly).
		Where("brand_id = ?", brandID).
		Update("deleted_at", at)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func toBrandView(brand *models.Brand) BrandView {
	return BrandView{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		ImageURL:    brand.ImageURL,
		CreatedAt:   brand.CreatedAt,
	}
}
