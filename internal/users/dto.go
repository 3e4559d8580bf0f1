package users

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	LoginID   string
	Password  string
	Name      string
	BirthDate time.Time
	Email     string
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UserView is the read model returned to callers. The password hash never
// leaves the package.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	LoginID   string    `json:"login_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
