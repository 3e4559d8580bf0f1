package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered storefront account.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	LoginID      string    `gorm:"column:login_id;uniqueIndex:idx_users_login_id;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Name         string    `gorm:"column:name;not null"`
	BirthDate    time.Time `gorm:"column:birth_date;not null"`
	Email        string    `gorm:"column:email;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
