package orders

import (
	"strings"

	"github.com/google/uuid"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

// NewLineSnapshot copies the catalog facts a line needs into an OrderLine.
// The copy is taken before any later catalog edit can be observed, so the
// line stays stable for the life of the order. OrderID is left unset until
// the owning order row exists.
func NewLineSnapshot(product *models.Product, brandName string, quantity int) (models.OrderLine, error) {
	if product == nil {
		return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if quantity <= 0 {
		return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if brandName == "" {
		return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeValidation, "brand name required for snapshot")
	}
	if strings.TrimSpace(product.Name) == "" {
		return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeValidation, "product name required for snapshot")
	}
	if product.Price < 0 {
		return models.OrderLine{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	return models.OrderLine{
		ProductID:   product.ID,
		BrandName:   brandName,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}, nil
}

// BuildOrder assembles the aggregate root from its lines. The total is
// derived here, from the snapshot prices, and nowhere else.
func BuildOrder(userID uuid.UUID, lines []models.OrderLine) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line")
	}

	total := 0
	for i := range lines {
		if lines[i].Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if lines[i].UnitPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
		}
		lines[i].Position = i + 1
		total += lines[i].UnitPrice * lines[i].Quantity
	}

	return &models.Order{
		UserID:      userID,
		TotalAmount: total,
		Lines:       lines,
	}, nil
}

// AssignOrderID stamps the owning order onto each line once the order row is
// persisted and its id is known.
func AssignOrderID(orderID uuid.UUID, lines []models.OrderLine) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "order id missing for line assignment")
	}
	for i := range lines {
		lines[i].OrderID = orderID
	}
	return nil
}
