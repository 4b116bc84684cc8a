package models

// ERPInventoryItem is one item as the TumiSoft inventory endpoint returns it.
// Additional fields in the feed are ignored.
type ERPInventoryItem struct {
	ProductCode string  `json:"codigo_producto"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Size        string  `json:"talla"`
	Color       string  `json:"color"`
	UnitPrice   float64 `json:"precio_unitario"`
	StockAvail  int     `json:"stock_disponible"`
	ImageURL    string  `json:"url_imagen"`
}

// ERPInventoryResponse is the envelope of the inventory endpoint.
type ERPInventoryResponse struct {
	Products []ERPInventoryItem `json:"productos"`
}
