package domain

import (
	"time"
)

// InventorySnapshot is a product's total remaining stock at end of day. At
// most one row per (product, date), append-only.
type InventorySnapshot struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
}

type CreateSnapshotRequest struct {
	ProductID int64     `json:"product_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	Quantity  int       `json:"quantity" binding:"gte=0"`
}

// SnapshotQuery filters snapshot listings. Zero values are ignored.
type SnapshotQuery struct {
	ProductID int64
	DateFrom  time.Time
	DateTo    time.Time
}

// SnapshotRunSummary reports one daily reconciliation run.
type SnapshotRunSummary struct {
	Date    time.Time `json:"date"`
	Written int       `json:"written"`
	Skipped int       `json:"skipped"`
}
