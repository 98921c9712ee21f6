package domain

import (
	"time"
)

type Retailer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ShippingAddress string `json:"shipping_address"`
}

type Product struct {
	ID         int64     `json:"id"`
	RetailerID int64     `json:"retailer_id"`
	Name       string    `json:"name"`
	Category   *string   `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProductBatch is the unit of stock and of pricing. StockedQuantity is fixed
// at creation; RemainingQuantity only ever decreases, driven by the order
// allocator, and never goes below zero.
type ProductBatch struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"product_id"`
	ManufactureDate   time.Time `json:"manufacture_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	BasePrice         float64   `json:"base_price"`
	StockedQuantity   int       `json:"stocked_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateRetailerRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

type CreateUserRequest struct {
	Name            string `json:"name" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

type CreateProductRequest struct {
	RetailerID int64   `json:"retailer_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Category   *string `json:"category,omitempty"`
}

type CreateBatchRequest struct {
	ProductID       int64     `json:"product_id" binding:"required"`
	ManufactureDate time.Time `json:"manufacture_date" binding:"required" time_format:"2006-01-02"`
	ExpiryDate      time.Time `json:"expiry_date" binding:"required" time_format:"2006-01-02"`
	BasePrice       float64   `json:"base_price" binding:"required,gt=0"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
}

// ProductFilter narrows product listings. Name matches case-insensitively as
// a substring, Category matches exactly.
type ProductFilter struct {
	Name     string
	Category string
}
