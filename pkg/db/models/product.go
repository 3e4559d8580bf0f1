package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a brand's listing. Price is in the smallest currency unit and
// stock is never negative; stock is mutated only through the inventory guard
// or an administrative update.
type Product struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	BrandID     uuid.UUID  `gorm:"column:brand_id;type:uuid;not null"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description"`
	Price       int        `gorm:"column:price;not null"`
	Stock       int        `gorm:"column:stock;not null;default:0"`
	ImageURL    *string    `gorm:"column:image_url"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Active reports whether the product is visible to listings and ordering.
func (p *Product) Active() bool {
	return p != nil && p.DeletedAt == nil
}

// HasEnoughStock reports whether the current stock covers the quantity. The
// authoritative check happens inside the inventory guard's atomic decrement;
// this is only a cheap pre-read.
func (p *Product) HasEnoughStock(quantity int) bool {
	return p != nil && p.Stock >= quantity
}
