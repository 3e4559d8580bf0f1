package brands

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries the fields required to create a brand.
type RegisterInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

// UpdateInput carries the optional brand edits. Nil fields are left alone.
type UpdateInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// BrandView is the read model returned to callers.
type BrandView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BrandList wraps a paginated page of brands plus the next cursor.
type BrandList struct {
	Brands     []BrandView `json:"brands"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
