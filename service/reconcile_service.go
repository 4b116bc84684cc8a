package service

import (
	"context"
	"fmt"
	"log"

	"catalogo-nancy/models"
	"catalogo-nancy/repository"
)

// ReconcileService applies batches of canonical records to the catalog store
// with upsert-by-SKU semantics.
// Implements ReconcileServiceInterface
type ReconcileService struct {
	repository repository.CatalogRepositoryInterface
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(repo repository.CatalogRepositoryInterface) *ReconcileService {
	return &ReconcileService{
		repository: repo,
	}
}

// Ensure ReconcileService implements ReconcileServiceInterface
var _ ReconcileServiceInterface = (*ReconcileService)(nil)

// Apply upserts each record of the batch into the store. Records failing
// validation are rejected before reaching the store; a store error on one
// record is collected and never blocks the rest. Applying the same batch
// twice leaves the store in the same state as applying it once.
// Cancellation is honored between records only: an in-flight upsert always
// completes before the batch stops.
func (s *ReconcileService) Apply(ctx context.Context, records []models.CatalogRecord) (*models.ReconcileResult, error) {
	log.Printf("🔄 Starting reconciliation of %d records", len(records))

	result := &models.ReconcileResult{Total: len(records)}

	for i := range records {
		if err := ctx.Err(); err != nil {
			log.Printf("⚠️  Reconciliation stopped after %d of %d records: %v", i, len(records), err)
			return result, fmt.Errorf("reconciliation cancelled: %w", err)
		}

		record := records[i]
		if err := record.Validate(); err != nil {
			log.Printf("⏭️  Rejecting record %q: %v", record.SKU, err)
			result.Rejected++
			continue
		}

		// Local file references never reach the store; the publisher
		// writes the public URL once the upload succeeded.
		if record.HasLocalImage() {
			record.ImageRef = ""
		}

		if err := s.repository.Upsert(ctx, &record); err != nil {
			log.Printf("❌ Error upserting sku %s: %v", record.SKU, err)
			result.Failed = append(result.Failed, models.RecordError{SKU: record.SKU, Err: err.Error()})
			continue
		}
		result.Applied++
	}

	log.Printf("🎉 Reconciliation completed: %d applied, %d rejected, %d failed, %d total",
		result.Applied, result.Rejected, len(result.Failed), result.Total)
	return result, nil
}

// SetImageRef updates only the stored image reference and sync timestamp of
// one record. The publisher calls this after a successful upload.
func (s *ReconcileService) SetImageRef(ctx context.Context, sku string, url string) error {
	if err := s.repository.UpdateImageURL(ctx, sku, url); err != nil {
		return fmt.Errorf("failed to set image ref for sku %s: %w", sku, err)
	}
	return nil
}
