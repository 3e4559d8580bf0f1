package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit("Lines").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)
	query = pagination.Apply(query, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Order
	if err := query.Preload("Lines").Find(&rows).Error; err != nil {
		return nil, err
	}

	pageFull := len(rows) > limit
	if pageFull {
		rows = rows[:limit]
	}

	list := &UserOrderList{Orders: make([]OrderSummary, 0, len(rows))}
	for i := range rows {
		list.Orders = append(list.Orders, OrderSummary{
			ID:          rows[i].ID,
			TotalAmount: rows[i].TotalAmount,
			LineCount:   len(rows[i].Lines),
			CreatedAt:   rows[i].CreatedAt,
		})
	}
	if pageFull && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.NextCursor(last.CreatedAt, last.ID, true)
	}
	return list, nil
}

func (r *repository) ListAllOrders(ctx context.Context, params pagination.Params) (*AdminOrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	query = pagination.Apply(query, cursor).Limit(pagination.LimitWithBuffer(params.Limit))

	var rows []models.Order
	if err := query.Preload("Lines").Find(&rows).Error; err != nil {
		return nil, err
	}

	pageFull := len(rows) > limit
	if pageFull {
		rows = rows[:limit]
	}

	list := &AdminOrderList{Orders: make([]AdminOrderSummary, 0, len(rows))}
	for i := range rows {
		list.Orders = append(list.Orders, AdminOrderSummary{
			ID:          rows[i].ID,
			UserID:      rows[i].UserID,
			TotalAmount: rows[i].TotalAmount,
			LineCount:   len(rows[i].Lines),
			CreatedAt:   rows[i].CreatedAt,
		})
	}
	if pageFull && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.NextCursor(last.CreatedAt, last.ID, true)
	}
	return list, nil
}
