package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the aggregate root for a placement. TotalAmount is derived from
// the lines at creation time and never supplied independently; the aggregate
// is immutable once persisted.
type Order struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID   `gorm:"column:user_id;type:uuid;not null"`
	TotalAmount int         `gorm:"column:total_amount;not null"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
