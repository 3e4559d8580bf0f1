package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLine is an immutable snapshot of catalog facts at order time. Brand
// name, product name and unit price are copied, not referenced, so later
// catalog edits or deletes never change a placed order. ProductID is kept for
// traceability only and must not be used to recompute price or availability.
//
// OrderID is assigned after the owning order row is persisted (the aggregate
// id is not known earlier); everything else is fixed at construction.
// Position is the 1-based line number within the order; read paths sort by it
// so lines always come back in the order the buyer requested them.
type OrderLine struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	BrandName   string    `gorm:"column:brand_name;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	UnitPrice   int       `gorm:"column:unit_price;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Position    int       `gorm:"column:position;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
