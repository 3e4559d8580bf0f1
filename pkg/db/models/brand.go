package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand groups products under a unique name. Brands are soft-deleted: the row
// stays resolvable for historical order lookups but is hidden from listings
// and new orders.
type Brand struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;uniqueIndex:idx_brands_name;not null"`
	Description *string    `gorm:"column:description"`
	ImageURL    *string    `gorm:"column:image_url"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Active reports whether the brand is visible to listings and ordering.
func (b *Brand) Active() bool {
	return b != nil && b.DeletedAt == nil
}
