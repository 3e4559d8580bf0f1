package visibility

import (
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

// ActiveOnly scopes a query to rows that are not soft-deleted. Every catalog
// read path used for listing or ordering must apply it; historical order
// lookups deliberately do not.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// EnsureProductOrderable enforces the canonical rules before a product may be
// placed on an order: it must exist and be live. A soft-deleted product is
// indistinguishable from a missing one for ordering purposes.
func EnsureProductOrderable(product *models.Product) error {
	if product == nil || !product.Active() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// EnsureBrandLive guards snapshot construction: every live product must
// reference a live brand, so a missing or deleted brand here is a
// data-integrity fault rather than a user error.
func EnsureBrandLive(brand *models.Brand) error {
	if brand == nil || !brand.Active() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
	}
	return nil
}
