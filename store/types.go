package store

import (
	"time"
)

// 1. Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// 2. Customer represents the user placing orders.
// The flags are deliberately interleaved with wider fields to produce padding.
type Customer struct {
	IsActive bool    `json:"is_active"`
	ID       int64   `json:"id"`
	Tier     uint8   `json:"tier"`
	Email    string  `json:"email"`
	Address  *string `json:"address"`
	verified bool
}

// 3. Order represents a transaction made by a customer.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"` // Has-Many relationship
	OrderedAt  time.Time   `json:"ordered_at"`
}

// 4. OrderItem represents a specific product line within an order.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Gift      bool   `json:"gift"`
	UnitPrice int64  `json:"unit_price"`
	Name      string `json:"name"`
}

// 5. OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// 6. Audit embeds the order it describes and keeps a reserved slot.
type Audit struct {
	Order
	_      [4]byte
	Reason string
}

// 7. Marker carries no data.
type Marker struct{}

// 8. Page is a generic container; it has no layout until instantiated.
type Page[T any] struct {
	Items []T
	Next  string
}

// 9. OrderRef names a pointer, not a struct.
type OrderRef *Order

// 10. Envelope starts with a field that occupies no bytes.
type Envelope struct {
	Kind   Marker
	Length int64
}

// 11. Span keeps its bounds in an array.
type Span struct {
	Bounds [2]int32
}
