// Package erp fetches live inventory snapshots from the TumiSoft REST feed
// and maps them into canonical catalog records.
package erp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"catalogo-nancy/models"
)

// inventoryPath is the ERP inventory endpoint, relative to the base URL.
const inventoryPath = "/api/v1/inventory"

// defaultTimeout bounds one inventory fetch end to end.
const defaultTimeout = 30 * time.Second

// Connector performs authenticated requests against the ERP. It never
// retries internally: retry and backoff belong to the sync scheduler.
type Connector struct {
	baseURL  string
	apiKey   string
	tenantID string
	client   *http.Client
}

// NewConnector creates a Connector for the given ERP credentials.
func NewConnector(baseURL, apiKey, tenantID string) *Connector {
	return &Connector{
		baseURL:  baseURL,
		apiKey:   apiKey,
		tenantID: tenantID,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// FetchInventory retrieves the current inventory snapshot and maps it into
// catalog records. Any transport-level failure (timeout, non-2xx status,
// malformed body) fails the entire fetch; callers must treat that as
// "no update this cycle", never as an empty catalog. Items that fail
// validation are rejected individually and logged.
func (c *Connector) FetchInventory(ctx context.Context) ([]models.CatalogRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+inventoryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Tenant-ID", c.tenantID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ERP inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ERP inventory endpoint returned status %d", resp.StatusCode)
	}

	var payload models.ERPInventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ERP inventory response: %w", err)
	}

	records := make([]models.CatalogRecord, 0, len(payload.Products))
	rejected := 0
	for _, item := range payload.Products {
		record := mapItem(item)
		if err := record.Validate(); err != nil {
			log.Printf("❌ Rejecting ERP item %q: %v", item.ProductCode, err)
			rejected++
			continue
		}
		records = append(records, record)
	}

	if rejected > 0 {
		log.Printf("⚠️  ERP fetch: %d of %d items rejected by validation", rejected, len(payload.Products))
	}
	return records, nil
}

// mapItem converts one ERP item to the canonical record shape.
//
// Field mapping (ERP → catalog):
//
//	codigo_producto  → SKU, SourceCode (the ERP code is already a full SKU)
//	nombre           → ModelName
//	descripcion      → Description
//	talla            → SizeSpec      ("Única" when empty)
//	color            → ColorVariant  ("Sin especificar" when empty)
//	precio_unitario  → UnitPrice
//	stock_disponible → StockQuantity
//	url_imagen       → ImageRef
func mapItem(item models.ERPInventoryItem) models.CatalogRecord {
	size := item.Size
	if size == "" {
		size = models.SizeUnspecified
	}
	color := item.Color
	if color == "" {
		color = models.ColorUnspecified
	}

	return models.CatalogRecord{
		SKU:           item.ProductCode,
		SourceCode:    item.ProductCode,
		ModelName:     item.Name,
		Description:   item.Description,
		SizeSpec:      size,
		ColorVariant:  color,
		UnitPrice:     decimal.NewFromFloat(item.UnitPrice),
		StockQuantity: item.StockAvail,
		ImageRef:      item.ImageURL,
	}
}
