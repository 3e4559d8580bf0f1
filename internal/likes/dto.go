package likes

import (
	"time"

	"github.com/google/uuid"
)

// LikedProduct is one row of a user's liked-products listing.
type LikedProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	BrandID   uuid.UUID `json:"brand_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	LikedAt   time.Time `json:"liked_at"`
}

// LikedProductList wraps a paginated page plus the next cursor.
type LikedProductList struct {
	Products   []LikedProduct `json:"products"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
