package repository

import (
	"context"

	"catalogo-nancy/models"
)

// CatalogRepositoryInterface defines the contract for the catalog store.
// The store is keyed uniquely on SKU; GetBySKU returns (nil, nil) when the
// record is absent.
type CatalogRepositoryInterface interface {
	Upsert(ctx context.Context, record *models.CatalogRecord) error
	GetBySKU(ctx context.Context, sku string) (*models.CatalogRecord, error)
	List(ctx context.Context) ([]models.CatalogRecord, error)
	UpdateImageURL(ctx context.Context, sku string, url string) error
}
