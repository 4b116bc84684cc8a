package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-nancy/models"
)

func exportBatch() []models.CatalogRecord {
	azul := testRecord("NC-0253-Azul")
	azul.ImageRef = "cod0253-vestido-azul.png"
	sinFoto := testRecord("NC-0254")
	sinFoto.SourceCode = "0254"
	sinFoto.ModelName = "Blusa D'Encaje"
	sinFoto.Description = "Blusa D'Encaje - Única"
	sinFoto.ColorVariant = models.ColorUnspecified
	return []models.CatalogRecord{azul, sinFoto}
}

func TestGenerateJSONShape(t *testing.T) {
	data, err := GenerateJSON(exportBatch())
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "NC-0253-Azul", entries[0]["sku"])
	assert.Equal(t, "0253", entries[0]["codigo"])
	assert.Equal(t, 89.90, entries[0]["precio_soles"])
	assert.Equal(t, "cod0253-vestido-azul.png", entries[0]["image_file"])
	assert.Nil(t, entries[0]["url_foto"])

	assert.Nil(t, entries[1]["image_file"])
}

func TestGenerateSeedSQL(t *testing.T) {
	sql := GenerateSeedSQL(exportBatch())

	assert.Contains(t, sql, "INSERT INTO public.tb_catalogo_stock")
	assert.Contains(t, sql, "('NC-0253-Azul', '0253', 'Vestido Floral', 'Vestido Floral - S,M', 'S,M', 'Azul', 89.9, 10, NULL)")
	assert.Contains(t, sql, "ON CONFLICT (sku) DO UPDATE SET")
	// Single quotes are doubled for the store's native loader.
	assert.Contains(t, sql, "Blusa D''Encaje")
}

func TestArtifactsAreDeterministic(t *testing.T) {
	batch := exportBatch()

	firstJSON, err := GenerateJSON(batch)
	require.NoError(t, err)
	secondJSON, err := GenerateJSON(batch)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)

	assert.Equal(t, GenerateSeedSQL(batch), GenerateSeedSQL(batch))
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExportService(dir)
	batch := exportBatch()

	require.NoError(t, exporter.WriteArtifacts(batch))

	_, err := os.Stat(filepath.Join(dir, SQLArtifactName))
	require.NoError(t, err)

	loaded, err := exporter.LoadRecords()
	require.NoError(t, err)
	require.Len(t, loaded, len(batch))
	for i := range batch {
		assert.Equal(t, batch[i].SKU, loaded[i].SKU)
		assert.Equal(t, batch[i].SourceCode, loaded[i].SourceCode)
		assert.Equal(t, batch[i].Description, loaded[i].Description)
		assert.Equal(t, batch[i].ImageRef, loaded[i].ImageRef)
		assert.True(t, batch[i].UnitPrice.Equal(loaded[i].UnitPrice))
		assert.Equal(t, batch[i].StockQuantity, loaded[i].StockQuantity)
	}
}

func TestLoadRecordsMissingArtifact(t *testing.T) {
	exporter := NewExportService(t.TempDir())

	_, err := exporter.LoadRecords()
	require.Error(t, err)
}
