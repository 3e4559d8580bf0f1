package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/internal/inventory"
	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/metrics"
	"github.com/minjaepark/commerce-backend/pkg/pagination"
	"github.com/minjaepark/commerce-backend/pkg/visibility"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CatalogSource resolves the catalog rows a placement snapshots from, inside
// the placement transaction.
type CatalogSource interface {
	ProductForOrder(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.Product, error)
	BrandByID(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (*models.Brand, error)
}

// Service defines order operations beyond repository reads.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderView, error)
	GetOrder(ctx context.Context, orderID, requesterID uuid.UUID) (*OrderView, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error)
	ListAllOrders(ctx context.Context, params pagination.Params) (*AdminOrderList, error)
}

type service struct {
	repo         Repository
	tx           txRunner
	stock        inventory.Guard
	catalog      CatalogSource
	orderMetrics *metrics.OrderMetrics
}

// NewService builds an order service with the required dependencies. Metrics
// may be nil.
func NewService(repo Repository, tx txRunner, stock inventory.Guard, catalog CatalogSource, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory guard required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		stock:        stock,
		catalog:      catalog,
		orderMetrics: orderMetrics,
	}, nil
}

// PlaceOrder runs the whole placement in one transaction: every line either
// reserves its stock and snapshots its catalog facts, or the order fails and
// no row or stock movement survives.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderView, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line")
	}
	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		lines := make([]models.OrderLine, 0, len(input.Lines))
		for _, req := range input.Lines {
			line, err := s.buildLine(ctx, tx, req)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		order, err := BuildOrder(input.UserID, lines)
		if err != nil {
			return err
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		if err := AssignOrderID(order.ID, order.Lines); err != nil {
			return err
		}
		if err := repo.CreateOrderLines(ctx, order.Lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order lines")
		}

		placed = order
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.orderMetrics.IncPlaced(len(placed.Lines))
	view := toOrderView(placed)
	return &view, nil
}

// buildLine resolves, reserves and snapshots a single requested line.
func (s *service) buildLine(ctx context.Context, tx *gorm.DB, req LineRequest) (models.OrderLine, error) {
	product, err := s.catalog.ProductForOrder(ctx, tx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{
				"product_id": req.ProductID.String(),
			})
		}
		return models.OrderLine{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := visibility.EnsureProductOrderable(product); err != nil {
		return models.OrderLine{}, err
	}

	if _, err := s.stock.Reserve(ctx, tx, product.ID, req.Quantity); err != nil {
		return models.OrderLine{}, err
	}

	brand, err := s.catalog.BrandByID(ctx, tx, product.BrandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeNotFound, "brand missing for product")
		}
		return models.OrderLine{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	if err := visibility.EnsureBrandLive(brand); err != nil {
		return models.OrderLine{}, err
	}

	return NewLineSnapshot(product, brand.Name, req.Quantity)
}

func (s *service) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID) (*OrderView, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if requesterID != uuid.Nil && order.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	view := toOrderView(order)
	return &view, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListUserOrders(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) ListAllOrders(ctx context.Context, params pagination.Params) (*AdminOrderList, error) {
	list, err := s.repo.ListAllOrders(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list all orders")
	}
	return list, nil
}

func (s *service) recordRejection(err error) {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		s.orderMetrics.IncRejected("internal")
		return
	}
	switch appErr.Code() {
	case pkgerrors.CodeInsufficientStock:
		s.orderMetrics.IncRejected("insufficient_stock")
	case pkgerrors.CodeNotFound:
		s.orderMetrics.IncRejected("not_found")
	case pkgerrors.CodeValidation:
		s.orderMetrics.IncRejected("validation")
	default:
		s.orderMetrics.IncRejected("internal")
	}
}

func toOrderView(order *models.Order) OrderView {
	view := OrderView{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Lines:       make([]LineView, 0, len(order.Lines)),
		CreatedAt:   order.CreatedAt,
	}
	for i := range order.Lines {
		line := order.Lines[i]
		view.Lines = append(view.Lines, LineView{
			ID:          line.ID,
			ProductID:   line.ProductID,
			BrandName:   line.BrandName,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	return view
}

type catalogSource struct{}

// NewCatalogSource exposes the default catalog lookups used by placements.
func NewCatalogSource() CatalogSource {
	return catalogSource{}
}

func (catalogSource) ProductForOrder(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Scopes(visibility.ActiveOnly).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (catalogSource) BrandByID(ctx context.Context, tx *gorm.DB, brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := tx.WithContext(ctx).
		Where("id = ?", brandID).
		First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}
