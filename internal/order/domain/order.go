package domain

import (
	"time"
)

type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	Date       time.Time   `json:"date"`
	TotalPrice float64     `json:"total_price"`
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem captures the unit price charged at order time; it is never
// recomputed even if later price rows change.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"-"`
	ProductID int64     `json:"product_id"`
	BatchID   int64     `json:"product_batch_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	UserID int64                    `json:"user_id" binding:"required"`
	Date   *time.Time               `json:"date,omitempty" time_format:"2006-01-02"`
	Items  []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

type CreateOrderResponse struct {
	Order
}

// OrderQuery filters order listings by date range. Zero values are ignored.
type OrderQuery struct {
	DateFrom time.Time
	DateTo   time.Time
}

// BatchAllocation is one batch's contribution to fulfilling a requested
// quantity, priced at that batch's effective price for the order date.
type BatchAllocation struct {
	BatchID   int64
	Quantity  int
	UnitPrice float64
}

// AllocationResult reports how a request was spread across batches. Shortfall
// is the requested quantity that no eligible batch could cover; callers
// decide whether that is an error.
type AllocationResult struct {
	Allocations  []BatchAllocation
	AllocatedQty int
	Shortfall    int
}
