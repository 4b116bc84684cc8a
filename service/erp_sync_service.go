package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"catalogo-nancy/models"
)

// maxFetchAttempts bounds the ERP fetch retries within one cycle. A cycle
// that exhausts its attempts is abandoned; the next scheduled trigger tries
// again from scratch.
const maxFetchAttempts = 3

// InventoryFetcher is the contract the sync service needs from the ERP
// connector.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context) ([]models.CatalogRecord, error)
}

// ERPSyncService runs the recurring ERP → catalog store synchronization.
// The connector itself never retries; bounded exponential backoff lives
// here, at the scheduling boundary.
type ERPSyncService struct {
	fetcher    InventoryFetcher
	reconciler ReconcileServiceInterface
}

// NewERPSyncService creates a new ERPSyncService
func NewERPSyncService(fetcher InventoryFetcher, reconciler ReconcileServiceInterface) *ERPSyncService {
	return &ERPSyncService{
		fetcher:    fetcher,
		reconciler: reconciler,
	}
}

// SyncOnce performs one fetch-and-reconcile cycle. A fetch that fails after
// all attempts leaves the store completely untouched and is reported as a
// cycle failure: "no update this cycle", never "catalog is now empty".
func (s *ERPSyncService) SyncOnce(ctx context.Context) (*models.ReconcileResult, error) {
	log.Printf("🔄 Starting ERP sync cycle")

	var records []models.CatalogRecord
	operation := func() error {
		var err error
		records, err = s.fetcher.FetchInventory(ctx)
		if err != nil {
			log.Printf("⚠️  ERP fetch attempt failed: %v", err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchAttempts-1),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("ERP sync cycle abandoned after %d attempts: %w", maxFetchAttempts, err)
	}

	log.Printf("📦 Obtained %d products from ERP", len(records))
	return s.reconciler.Apply(ctx, records)
}

// Watch runs SyncOnce on the given interval until the context is cancelled.
// A failed cycle is logged and retried on the next tick.
func (s *ERPSyncService) Watch(ctx context.Context, interval time.Duration) error {
	log.Printf("⏰ ERP watch started (interval %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.SyncOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("❌ ERP sync cycle failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Printf("⏹️  ERP watch stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
