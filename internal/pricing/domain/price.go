package domain

import (
	"time"
)

// PricePoint is one batch's discounted price for one calendar day. Rows are
// append-only: at most one per (batch, date), written once by the daily job
// or the manual endpoint and never recomputed.
type PricePoint struct {
	ID              int64     `json:"id"`
	BatchID         int64     `json:"product_batch_id"`
	Date            time.Time `json:"date"`
	DiscountedPrice float64   `json:"discounted_price"`
}

type CreatePricePointRequest struct {
	BatchID         int64     `json:"product_batch_id" binding:"required"`
	Date            time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	DiscountedPrice float64   `json:"discounted_price" binding:"required,gt=0"`
}

// PriceQuery filters price-history listings. Zero values are ignored.
type PriceQuery struct {
	BatchID  int64
	DateFrom time.Time
	DateTo   time.Time
}

// PriceRunSummary reports one daily job execution.
type PriceRunSummary struct {
	Date    time.Time `json:"date"`
	Updated int       `json:"updated"`
	Skipped int       `json:"skipped"`
}

// PriceInput is everything a policy needs to quote one batch for one day.
// PrevPrice is the most recent stored price before the target date, nil on a
// batch's first pricing day.
type PriceInput struct {
	ProductName string
	BasePrice   float64
	ExpiryDate  time.Time
	ForDate     time.Time
	PrevPrice   *float64
}

// PriceRange bounds the random-walk policy for one product name.
type PriceRange struct {
	Min float64
	Max float64
}
