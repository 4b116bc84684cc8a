package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-nancy/models"
)

// fakeCatalogRepo implements the store contract in memory: upsert keyed on
// SKU, all incoming fields win except an absent image reference.
type fakeCatalogRepo struct {
	mu       sync.Mutex
	store    map[string]models.CatalogRecord
	failSKUs map[string]bool
	upserts  int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		store:    make(map[string]models.CatalogRecord),
		failSKUs: make(map[string]bool),
	}
}

func (f *fakeCatalogRepo) Upsert(_ context.Context, record *models.CatalogRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upserts++
	if f.failSKUs[record.SKU] {
		return fmt.Errorf("constraint violation on sku %s", record.SKU)
	}

	merged := *record
	if existing, ok := f.store[record.SKU]; ok && record.ImageRef == "" {
		merged.ImageRef = existing.ImageRef
	}
	merged.LastSyncedAt = time.Now()
	f.store[record.SKU] = merged
	return nil
}

func (f *fakeCatalogRepo) GetBySKU(_ context.Context, sku string) (*models.CatalogRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.store[sku]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]models.CatalogRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []models.CatalogRecord
	for _, record := range f.store {
		records = append(records, record)
	}
	return records, nil
}

func (f *fakeCatalogRepo) UpdateImageURL(_ context.Context, sku string, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.store[sku]
	if !ok {
		return fmt.Errorf("catalog record with sku %s not found", sku)
	}
	record.ImageRef = url
	record.LastSyncedAt = time.Now()
	f.store[sku] = record
	return nil
}

func testRecord(sku string) models.CatalogRecord {
	return models.CatalogRecord{
		SKU:           sku,
		SourceCode:    "0253",
		ModelName:     "Vestido Floral",
		Description:   "Vestido Floral - S,M",
		SizeSpec:      "S,M",
		ColorVariant:  "Azul",
		UnitPrice:     decimal.RequireFromString("89.90"),
		StockQuantity: 10,
	}
}

func strippedStore(repo *fakeCatalogRepo) map[string]models.CatalogRecord {
	out := make(map[string]models.CatalogRecord, len(repo.store))
	for sku, record := range repo.store {
		record.LastSyncedAt = time.Time{}
		out[sku] = record
	}
	return out
}

func TestApplyIsIdempotent(t *testing.T) {
	repo := newFakeCatalogRepo()
	reconciler := NewReconcileService(repo)
	batch := []models.CatalogRecord{testRecord("NC-0253-Azul"), testRecord("NC-0253-Rojo")}

	first, err := reconciler.Apply(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Applied)
	afterFirst := strippedStore(repo)

	second, err := reconciler.Apply(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Applied)
	assert.Equal(t, afterFirst, strippedStore(repo))
}

func TestApplyPreservesStoredImageRef(t *testing.T) {
	repo := newFakeCatalogRepo()
	reconciler := NewReconcileService(repo)

	_, err := reconciler.Apply(context.Background(), []models.CatalogRecord{testRecord("NC-0253-Azul")})
	require.NoError(t, err)
	require.NoError(t, reconciler.SetImageRef(context.Background(), "NC-0253-Azul", "https://cdn.example.com/NC-0253-Azul.png"))

	// ERP-style update: new price and stock, no image reference.
	update := testRecord("NC-0253-Azul")
	update.UnitPrice = decimal.RequireFromString("79.90")
	update.StockQuantity = 3
	_, err = reconciler.Apply(context.Background(), []models.CatalogRecord{update})
	require.NoError(t, err)

	stored, err := repo.GetBySKU(context.Background(), "NC-0253-Azul")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "https://cdn.example.com/NC-0253-Azul.png", stored.ImageRef)
	assert.True(t, stored.UnitPrice.Equal(decimal.RequireFromString("79.90")))
	assert.Equal(t, 3, stored.StockQuantity)
}

func TestApplyNeverStoresLocalImageRefs(t *testing.T) {
	repo := newFakeCatalogRepo()
	reconciler := NewReconcileService(repo)

	record := testRecord("NC-0253-Azul")
	record.ImageRef = "cod0253-vestido-azul.png"
	_, err := reconciler.Apply(context.Background(), []models.CatalogRecord{record})
	require.NoError(t, err)

	stored, err := repo.GetBySKU(context.Background(), "NC-0253-Azul")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.ImageRef)
}

func TestApplyRejectsInvalidRecords(t *testing.T) {
	repo := newFakeCatalogRepo()
	reconciler := NewReconcileService(repo)

	negativePrice := testRecord("NC-BAD-1")
	negativePrice.UnitPrice = decimal.RequireFromString("-1")
	negativeStock := testRecord("NC-BAD-2")
	negativeStock.StockQuantity = -4
	noSKU := testRecord("")

	result, err := reconciler.Apply(context.Background(), []models.CatalogRecord{
		negativePrice, negativeStock, noSKU, testRecord("NC-OK-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rejected)
	assert.Equal(t, 1, result.Applied)
	assert.Len(t, repo.store, 1)
}

func TestApplyIsolatesPerRecordFailures(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.failSKUs["NC-0253-Rojo"] = true
	reconciler := NewReconcileService(repo)

	result, err := reconciler.Apply(context.Background(), []models.CatalogRecord{
		testRecord("NC-0253-Azul"),
		testRecord("NC-0253-Rojo"),
		testRecord("NC-0253-Verde"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "NC-0253-Rojo", result.Failed[0].SKU)
	assert.Len(t, repo.store, 2)
}

func TestApplyStopsBetweenRecordsOnCancel(t *testing.T) {
	repo := newFakeCatalogRepo()
	reconciler := NewReconcileService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := reconciler.Apply(ctx, []models.CatalogRecord{testRecord("NC-0253-Azul")})
	require.Error(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 0, repo.upserts)
}
