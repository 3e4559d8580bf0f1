package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductLike marks that a user liked a product. One row per (user, product).
type ProductLike struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_product_likes_user_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_likes_user_product"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (l *ProductLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
