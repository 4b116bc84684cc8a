package service

import (
	"context"

	"catalogo-nancy/models"
)

// ReconcileServiceInterface defines the contract for applying record batches
// to the catalog store.
type ReconcileServiceInterface interface {
	// Apply upserts a batch keyed by SKU. Per-record failures are reported
	// in the result, not as the returned error; the error is non-nil only
	// when the batch as a whole could not proceed (e.g. cancellation).
	Apply(ctx context.Context, records []models.CatalogRecord) (*models.ReconcileResult, error)
	SetImageRef(ctx context.Context, sku string, url string) error
}
