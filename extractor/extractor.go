// Package extractor parses the raw price-list text into product tuples.
// Extraction is pattern-based: entries that do not complete the expected
// shape are skipped and counted, never fatal.
package extractor

import (
	"log"
	"regexp"

	"catalogo-nancy/models"
	"catalogo-nancy/utils"
)

// Price-list entry shape:
//
//	COD 0253 - Vestido Floral
//	Tallas S,M            (optional)
//	... PEN 89.90
//
// The sizes line is optional; when missing the product is single-size.
var (
	entryPattern  = regexp.MustCompile(`(?im)COD\s+(\d+)\s*-\s*([^\n]+)\n(?:Tallas?\s+([^\n]+)\n)?.*?PEN\s+([\d.]+)`)
	headerPattern = regexp.MustCompile(`(?im)^\s*COD\s+\d+`)
)

// ParsePriceList extracts product tuples from the raw price-list text.
// The result preserves document order and is identical across re-runs on the
// same input. The second return value counts skipped entries: COD headers
// that never completed the full pattern plus entries whose price token did
// not parse as a decimal.
func ParsePriceList(text string) ([]models.RawProduct, int) {
	headers := len(headerPattern.FindAllString(text, -1))
	matches := entryPattern.FindAllStringSubmatch(text, -1)

	products := make([]models.RawProduct, 0, len(matches))
	skipped := headers - len(matches)
	if skipped < 0 {
		skipped = 0
	}

	for _, m := range matches {
		code := m[1]
		description := utils.CollapseWhitespace(m[2])
		sizes := utils.CollapseWhitespace(m[3])
		if sizes == "" {
			sizes = models.SizeUnspecified
		}

		price, err := utils.ParsePrice(m[4])
		if err != nil {
			log.Printf("⏭️  Skipping entry COD %s: %v", code, err)
			skipped++
			continue
		}

		products = append(products, models.RawProduct{
			Code:        code,
			Description: description,
			SizeSpec:    sizes,
			Price:       price,
		})
	}

	return products, skipped
}
