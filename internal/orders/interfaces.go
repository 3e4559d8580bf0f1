package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error)
	ListAllOrders(ctx context.Context, params pagination.Params) (*AdminOrderList, error)
}
