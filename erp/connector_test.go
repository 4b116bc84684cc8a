package erp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-nancy/models"
)

const inventoryBody = `{
  "productos": [
    {
      "codigo_producto": "NC-BLS-001-S",
      "nombre": "Blusa Floral Verano",
      "descripcion": "Blusa de verano con estampado floral",
      "talla": "S",
      "color": "Multicolor",
      "precio_unitario": 79.90,
      "stock_disponible": 12,
      "url_imagen": "https://cdn.example.com/nc-bls-001-s.png"
    },
    {
      "codigo_producto": "NC-0253-Azul",
      "nombre": "Vestido Floral",
      "descripcion": "",
      "talla": "",
      "color": "",
      "precio_unitario": 89.90,
      "stock_disponible": 3
    }
  ]
}`

func TestFetchInventoryMapsItems(t *testing.T) {
	var gotAuth, gotTenant string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get("X-Tenant-ID")
		assert.Equal(t, "/api/v1/inventory", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(inventoryBody))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, "test-key", "nancy_collection_tenant")
	records, err := connector.FetchInventory(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "nancy_collection_tenant", gotTenant)

	require.Len(t, records, 2)
	first := records[0]
	assert.Equal(t, "NC-BLS-001-S", first.SKU)
	assert.Equal(t, "NC-BLS-001-S", first.SourceCode)
	assert.Equal(t, "Blusa Floral Verano", first.ModelName)
	assert.Equal(t, "S", first.SizeSpec)
	assert.Equal(t, "Multicolor", first.ColorVariant)
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("79.9")))
	assert.Equal(t, 12, first.StockQuantity)
	assert.Equal(t, "https://cdn.example.com/nc-bls-001-s.png", first.ImageRef)

	// Empty size and color fall back to the sentinels.
	second := records[1]
	assert.Equal(t, models.SizeUnspecified, second.SizeSpec)
	assert.Equal(t, models.ColorUnspecified, second.ColorVariant)
	assert.Empty(t, second.ImageRef)
}

func TestFetchInventoryFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	connector := NewConnector(server.URL, "test-key", "tenant")
	records, err := connector.FetchInventory(context.Background())

	// The whole fetch fails; no partial list is ever returned.
	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchInventoryFailsOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"productos": [{`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, "test-key", "tenant")
	records, err := connector.FetchInventory(context.Background())

	require.Error(t, err)
	assert.Nil(t, records)
}

func TestFetchInventoryRejectsInvalidItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
  "productos": [
    {"codigo_producto": "NC-OK-1", "nombre": "Polo", "precio_unitario": 10, "stock_disponible": 1},
    {"codigo_producto": "NC-BAD-1", "nombre": "Polo", "precio_unitario": -5, "stock_disponible": 1},
    {"codigo_producto": "NC-BAD-2", "nombre": "Polo", "precio_unitario": 10, "stock_disponible": -1},
    {"codigo_producto": "", "nombre": "Polo", "precio_unitario": 10, "stock_disponible": 1}
  ]
}`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, "test-key", "tenant")
	records, err := connector.FetchInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "NC-OK-1", records[0].SKU)
}

func TestFetchInventoryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	connector := NewConnector("http://127.0.0.1:0", "test-key", "tenant")
	_, err := connector.FetchInventory(ctx)
	require.Error(t, err)
}
