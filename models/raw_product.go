package models

import "github.com/shopspring/decimal"

// RawProduct is one entry extracted from the price-list text, before asset
// matching and variant expansion.
type RawProduct struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	SizeSpec    string          `json:"sizeSpec"`
	Price       decimal.Decimal `json:"price"`
}
