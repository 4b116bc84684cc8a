package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Sentinel values used when a source does not provide the field
const (
	SizeUnspecified  = "Única"
	ColorUnspecified = "Sin especificar"
)

// SKUPrefix is the catalog-wide prefix for SKUs derived from price-list codes
const SKUPrefix = "NC"

// CatalogRecord is the canonical record all sources are mapped into before
// reaching the store. It is keyed by SKU for reconciliation.
type CatalogRecord struct {
	SKU           string          `json:"sku" validate:"required"`
	SourceCode    string          `json:"sourceCode" validate:"required"`
	ModelName     string          `json:"modelName"`
	Description   string          `json:"description"`
	SizeSpec      string          `json:"sizeSpec"`
	ColorVariant  string          `json:"colorVariant"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	ImageRef      string          `json:"imageRef,omitempty"`
	LastSyncedAt  time.Time       `json:"lastSyncedAt,omitempty"`
}

var recordValidator = validator.New()

// Validate checks the invariants that must hold before a record may reach
// the store: non-empty SKU and source code, stock >= 0 and price >= 0.
// The price check is explicit because validator cannot inspect decimal.Decimal.
func (r *CatalogRecord) Validate() error {
	if err := recordValidator.Struct(r); err != nil {
		return fmt.Errorf("invalid catalog record: %w", err)
	}
	if r.UnitPrice.IsNegative() {
		return fmt.Errorf("invalid catalog record: unit price %s is negative", r.UnitPrice.String())
	}
	return nil
}

// BuildSKU derives the SKU from a source code and an optional color variant.
// Variant-less products get "NC-<code>", expanded variants "NC-<code>-<variant>".
func BuildSKU(code string, variant string) string {
	if variant == "" {
		return fmt.Sprintf("%s-%s", SKUPrefix, code)
	}
	return fmt.Sprintf("%s-%s-%s", SKUPrefix, code, variant)
}

// HasLocalImage reports whether ImageRef points at a not-yet-published local
// file. After publishing, ImageRef holds a public URL.
func (r *CatalogRecord) HasLocalImage() bool {
	return r.ImageRef != "" && !strings.HasPrefix(r.ImageRef, "http://") && !strings.HasPrefix(r.ImageRef, "https://")
}
