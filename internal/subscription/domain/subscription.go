package domain

import (
	"time"
)

// Subscription is a price-alert registration: the user wants to hear about
// markdowns on the product. Kept in its own table so alerts survive restarts
// and multiple service instances.
type Subscription struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSubscriptionRequest struct {
	UserID    int64 `json:"user_id" binding:"required"`
	ProductID int64 `json:"product_id" binding:"required"`
}
