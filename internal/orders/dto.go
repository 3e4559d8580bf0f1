package orders

import (
	"time"

	"github.com/google/uuid"
)

// LineRequest is one product/quantity pair inside a placement request.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput carries everything a placement needs.
type PlaceOrderInput struct {
	UserID uuid.UUID
	Lines  []LineRequest
}

// LineView exposes the persisted snapshot fields of a line.
type LineView struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	BrandName   string    `json:"brand_name"`
	ProductName string    `json:"product_name"`
	UnitPrice   int       `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// OrderView exposes a placed order with its lines.
type OrderView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TotalAmount int        `json:"total_amount"`
	Lines       []LineView `json:"lines"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OrderSummary is the list row for a user's order history.
type OrderSummary struct {
	ID          uuid.UUID `json:"id"`
	TotalAmount int       `json:"total_amount"`
	LineCount   int       `json:"line_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminOrderSummary is the list row for the back-office order listing.
type AdminOrderSummary struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TotalAmount int       `json:"total_amount"`
	LineCount   int       `json:"line_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminOrderList wraps the paginated back-office orders plus the next cursor.
type AdminOrderList struct {
	Orders     []AdminOrderSummary `json:"orders"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// UserOrderList wraps the paginated orders plus the next page cursor.
type UserOrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
