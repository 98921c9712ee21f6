package service

import (
	"context"
	"errors"
	"time"

	"github.com/tarikuzuma/ShelfSmart/internal/inventory/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type InventoryService interface {
	// SnapshotFor computes a product's end-of-day stock from full history:
	// everything stocked through the date minus everything sold through it.
	SnapshotFor(ctx context.Context, productID int64, date time.Time) (int, error)

	// RunForDate is the daily reconciliation job: one snapshot row per
	// product for the target date, skipping products already reconciled.
	RunForDate(ctx context.Context, targetDate time.Time) (*domain.SnapshotRunSummary, error)

	CreateSnapshot(ctx context.Context, req domain.CreateSnapshotRequest) (*domain.InventorySnapshot, error)
	ListSnapshots(ctx context.Context, query domain.SnapshotQuery) ([]domain.InventorySnapshot, error)
}

type inventoryServiceImpl struct {
	snapshots repository.SnapshotRepository
}

func NewInventoryService(snapshots repository.SnapshotRepository) InventoryService {
	return &inventoryServiceImpl{snapshots: snapshots}
}

func (s *inventoryServiceImpl) SnapshotFor(ctx context.Context, productID int64, date time.Time) (int, error) {
	date = jobdate.Truncate(date)
	stocked, err := s.snapshots.CumulativeStockedQuantity(ctx, productID, date)
	if err != nil {
		return 0, err
	}
	sold, err := s.snapshots.CumulativeSoldQuantity(ctx, productID, date)
	if err != nil {
		return 0, err
	}
	quantity := stocked - sold
	// Oversold history (pre-dating the hard insufficient-stock check) must
	// not produce a negative snapshot.
	if quantity < 0 {
		quantity = 0
	}
	return quantity, nil
}

func (s *inventoryServiceImpl) RunForDate(ctx context.Context, targetDate time.Time) (*domain.SnapshotRunSummary, error) {
	targetDate = jobdate.Truncate(targetDate)

	productIDs, err := s.snapshots.ListProductIDs(ctx)
	if err != nil {
		logger.Error("RunForDate: failed to list products", err)
		return nil, err
	}

	summary := &domain.SnapshotRunSummary{Date: targetDate}
	for _, productID := range productIDs {
		exists, err := s.snapshots.HasSnapshotForDate(ctx, productID, targetDate)
		if err != nil {
			return nil, err
		}
		if exists {
			summary.Skipped++
			continue
		}
		quantity, err := s.SnapshotFor(ctx, productID, targetDate)
		if err != nil {
			return nil, err
		}
		snapshot := &domain.InventorySnapshot{ProductID: productID, Date: targetDate, Quantity: quantity}
		if err := s.snapshots.CreateSnapshot(ctx, snapshot); err != nil {
			if errors.Is(err, repository.ErrDuplicateSnapshot) {
				summary.Skipped++
				continue
			}
			return nil, err
		}
		summary.Written++
	}

	logger.Info("Snapshot job for %s: %d written, %d skipped",
		targetDate.Format("2006-01-02"), summary.Written, summary.Skipped)
	return summary, nil
}

func (s *inventoryServiceImpl) CreateSnapshot(ctx context.Context, req domain.CreateSnapshotRequest) (*domain.InventorySnapshot, error) {
	snapshot := &domain.InventorySnapshot{
		ProductID: req.ProductID,
		Date:      jobdate.Truncate(req.Date),
		Quantity:  req.Quantity,
	}
	if err := s.snapshots.CreateSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *inventoryServiceImpl) ListSnapshots(ctx context.Context, query domain.SnapshotQuery) ([]domain.InventorySnapshot, error) {
	return s.snapshots.ListSnapshots(ctx, query)
}
