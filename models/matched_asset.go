package models

// MatchedAsset pairs a product source code with one image file and the color
// variant encoded in its filename. It is transient: produced by the matcher,
// consumed by the normalizer, never persisted.
type MatchedAsset struct {
	FileName     string `json:"fileName"`
	ColorVariant string `json:"colorVariant"`
}
