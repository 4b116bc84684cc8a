// Package normalizer fuses extracted price-list tuples with matched assets
// into canonical catalog records, expanding color variants into their own
// SKUs and collapsing duplicates.
package normalizer

import (
	"fmt"

	"catalogo-nancy/models"
)

// DefaultStockSeed is the stock quantity assigned to records built from the
// price list. Provisional: the price list carries no stock information, so
// new records start at this value until the ERP feed overwrites it.
const DefaultStockSeed = 10

// Normalizer builds canonical records from raw tuples and matched assets.
// The dedup set lives inside a single Normalize call; nothing survives
// between invocations.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize emits one CatalogRecord per distinct (code, variant) pair.
// lookup maps a source code to its matched assets; codes with no assets
// produce exactly one record with the unspecified-color sentinel and no
// image reference. Output order reflects input order.
func (n *Normalizer) Normalize(tuples []models.RawProduct, lookup map[string][]models.MatchedAsset) []models.CatalogRecord {
	seen := make(map[string]bool)
	var records []models.CatalogRecord

	for _, tuple := range tuples {
		assets := lookup[tuple.Code]
		if len(assets) == 0 {
			if seen[tuple.Code] {
				continue
			}
			seen[tuple.Code] = true
			records = append(records, n.buildRecord(tuple, models.MatchedAsset{}))
			continue
		}

		for _, asset := range assets {
			key := fmt.Sprintf("%s-%s", tuple.Code, asset.ColorVariant)
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, n.buildRecord(tuple, asset))
		}
	}

	return records
}

func (n *Normalizer) buildRecord(tuple models.RawProduct, asset models.MatchedAsset) models.CatalogRecord {
	color := asset.ColorVariant
	if color == "" {
		color = models.ColorUnspecified
	}

	variant := asset.ColorVariant
	return models.CatalogRecord{
		SKU:           models.BuildSKU(tuple.Code, variant),
		SourceCode:    tuple.Code,
		ModelName:     tuple.Description,
		Description:   fmt.Sprintf("%s - %s", tuple.Description, tuple.SizeSpec),
		SizeSpec:      tuple.SizeSpec,
		ColorVariant:  color,
		UnitPrice:     tuple.Price,
		StockQuantity: DefaultStockSeed,
		ImageRef:      asset.FileName,
	}
}
