package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

// Guard owns stock movements. All mutations happen through a single
// conditional UPDATE so concurrent orders can never drive stock negative.
type Guard interface {
	// Reserve decrements stock for a live product and returns the remaining
	// quantity. The decrement and the availability check are one statement.
	Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (int, error)
	// Release returns previously reserved stock to a product.
	Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

type guard struct{}

// NewGuard exposes the default stock guard implementation.
func NewGuard() Guard {
	return guard{}
}

func (guard) Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if productID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if tx == nil {
		return 0, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock reserve")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL AND stock >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve stock")
	}
	if res.RowsAffected == 0 {
		return 0, classifyReserveMiss(ctx, tx, productID, qty)
	}

	var remaining int
	err := tx.WithContext(ctx).
		Model(&models.Product{}).
		Select("stock").
		Where("id = ?", productID).
		Take(&remaining).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read remaining stock")
	}
	return remaining, nil
}

// classifyReserveMiss distinguishes a vanished product from a stock shortfall
// after the conditional UPDATE touched no rows.
func classifyReserveMiss(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	var product models.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product for stock check")
	}
	if !product.Active() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock").WithDetails(map[string]any{
		"product_id": productID.String(),
		"requested":  qty,
		"available":  product.Stock,
	})
}

func (guard) Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock release")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release stock")
	}
	return nil
}
