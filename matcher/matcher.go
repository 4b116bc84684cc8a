// Package matcher associates product codes with image files by filename.
// Matching is a pure function of (code, filename set) so it can be tested
// without touching the filesystem.
package matcher

import (
	"path/filepath"
	"strings"

	"catalogo-nancy/models"
	"catalogo-nancy/utils"
)

// codeWidth is the zero-padded width of codes inside filenames
// (code 253 appears as "cod0253").
const codeWidth = 4

// imageExtension is the only accepted asset extension.
const imageExtension = ".png"

// PadCode zero-pads a product code to the filename width.
func PadCode(code string) string {
	if len(code) >= codeWidth {
		return code
	}
	return strings.Repeat("0", codeWidth-len(code)) + code
}

// Match returns the (file, color variant) pairs whose filename encodes the
// given product code. Only .png files whose lowercased name contains the
// literal "cod<padded>" token are eligible. The order of the result follows
// the order of the input filenames.
func Match(code string, filenames []string) []models.MatchedAsset {
	padded := PadCode(code)
	token := "cod" + padded

	var assets []models.MatchedAsset
	for _, name := range filenames {
		lower := strings.ToLower(name)
		if filepath.Ext(lower) != imageExtension {
			continue
		}
		if !strings.Contains(lower, token) {
			continue
		}
		assets = append(assets, models.MatchedAsset{
			FileName:     name,
			ColorVariant: extractColorVariant(lower, padded),
		})
	}
	return assets
}

// extractColorVariant classifies the filename remainder (code token and
// extension stripped) against the color vocabulary. No keyword match means
// the cleaned remainder itself becomes the variant, capitalized; an empty
// remainder means a single-variant product (no variant).
func extractColorVariant(lowerName string, paddedCode string) string {
	base := strings.Replace(lowerName, "cod"+paddedCode, "", 1)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(base, "-")

	for _, entry := range ColorVocabulary {
		if strings.Contains(base, entry.Keyword) {
			return entry.Color
		}
	}

	return utils.Capitalize(base)
}
