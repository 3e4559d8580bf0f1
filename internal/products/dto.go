package products

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries the fields required to list a new product.
type RegisterInput struct {
	BrandID     uuid.UUID
	Name        string
	Description *string
	Price       int
	Stock       int
	ImageURL    *string
}

// UpdateInput carries the optional catalog edits. Nil fields are left alone.
// Stock is not edited here; it moves through the inventory guard or SetStock.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *int
	ImageURL    *string
}

// ProductView is the read model returned to callers.
type ProductView struct {
	ID          uuid.UUID `json:"id"`
	BrandID     uuid.UUID `json:"brand_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int       `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductList wraps a paginated page of products plus the next cursor.
type ProductList struct {
	Products   []ProductView `json:"products"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
