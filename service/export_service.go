package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"catalogo-nancy/models"
)

// Artifact file names, written into the configured output directory.
const (
	JSONArtifactName = "catalog_data.json"
	SQLArtifactName  = "catalog_seed.sql"
)

// ExportService derives the replay artifacts from a normalized record set:
// a structured JSON dump loadable without re-running extraction, and a seed
// SQL script for the store's native insertion mechanism. Both are pure
// functions of the record set, so identical inputs produce identical files.
type ExportService struct {
	outputDir string
}

// NewExportService creates a new ExportService
func NewExportService(outputDir string) *ExportService {
	return &ExportService{outputDir: outputDir}
}

// exportEntry mirrors the store's column vocabulary in the JSON dump.
type exportEntry struct {
	SKU         string      `json:"sku"`
	Codigo      string      `json:"codigo"`
	Modelo      string      `json:"modelo"`
	Descripcion string      `json:"descripcion"`
	Talla       string      `json:"talla"`
	Color       string      `json:"color"`
	PrecioSoles json.Number `json:"precio_soles"`
	StockActual int         `json:"stock_actual"`
	ImageFile   *string     `json:"image_file"`
	URLFoto     *string     `json:"url_foto"`
}

// WriteArtifacts renders both artifacts into the output directory.
func (s *ExportService) WriteArtifacts(records []models.CatalogRecord) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonData, err := GenerateJSON(records)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(s.outputDir, JSONArtifactName)
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}
	log.Printf("📄 JSON artifact written: %s", jsonPath)

	sqlPath := filepath.Join(s.outputDir, SQLArtifactName)
	if err := os.WriteFile(sqlPath, []byte(GenerateSeedSQL(records)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sqlPath, err)
	}
	log.Printf("📄 SQL artifact written: %s", sqlPath)

	return nil
}

// LoadRecords reads a previously written JSON artifact back into canonical
// records, so a batch can be replayed into the store without re-running
// extraction.
func (s *ExportService) LoadRecords() ([]models.CatalogRecord, error) {
	jsonPath := filepath.Join(s.outputDir, JSONArtifactName)
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s (run the ingest or export job first): %w", jsonPath, err)
	}

	var entries []exportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
	}

	records := make([]models.CatalogRecord, 0, len(entries))
	for _, entry := range entries {
		price, err := decimal.NewFromString(entry.PrecioSoles.String())
		if err != nil {
			return nil, fmt.Errorf("invalid price for sku %s in artifact: %w", entry.SKU, err)
		}

		record := models.CatalogRecord{
			SKU:           entry.SKU,
			SourceCode:    entry.Codigo,
			ModelName:     entry.Modelo,
			Description:   entry.Descripcion,
			SizeSpec:      entry.Talla,
			ColorVariant:  entry.Color,
			UnitPrice:     price,
			StockQuantity: entry.StockActual,
		}
		if entry.ImageFile != nil {
			record.ImageRef = *entry.ImageFile
		} else if entry.URLFoto != nil {
			record.ImageRef = *entry.URLFoto
		}
		records = append(records, record)
	}
	return records, nil
}

// GenerateJSON renders the structured dump of the record set.
func GenerateJSON(records []models.CatalogRecord) ([]byte, error) {
	entries := make([]exportEntry, 0, len(records))
	for _, record := range records {
		entry := exportEntry{
			SKU:         record.SKU,
			Codigo:      record.SourceCode,
			Modelo:      record.ModelName,
			Descripcion: record.Description,
			Talla:       record.SizeSpec,
			Color:       record.ColorVariant,
			PrecioSoles: json.Number(record.UnitPrice.String()),
			StockActual: record.StockQuantity,
		}
		if record.HasLocalImage() {
			file := record.ImageRef
			entry.ImageFile = &file
		} else if record.ImageRef != "" {
			url := record.ImageRef
			entry.URLFoto = &url
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog data: %w", err)
	}
	return data, nil
}

// GenerateSeedSQL renders the single upsert statement that loads the record
// set into tb_catalogo_stock. url_foto is seeded NULL: public URLs are only
// ever written by the publisher.
func GenerateSeedSQL(records []models.CatalogRecord) string {
	var b strings.Builder
	b.WriteString("-- Datos del catálogo Nancy's Collection\n")
	b.WriteString("-- Generado automáticamente desde el catálogo normalizado\n\n")
	if len(records) == 0 {
		b.WriteString("-- (catálogo vacío)\n")
		return b.String()
	}
	b.WriteString("INSERT INTO public.tb_catalogo_stock(sku, codigo, modelo, descripcion, talla, color, precio_soles, stock_actual, url_foto)\nVALUES\n")

	values := make([]string, 0, len(records))
	for _, record := range records {
		values = append(values, fmt.Sprintf("    ('%s', '%s', '%s', '%s', '%s', '%s', %s, %d, NULL)",
			escapeSQL(record.SKU),
			escapeSQL(record.SourceCode),
			escapeSQL(record.ModelName),
			escapeSQL(record.Description),
			escapeSQL(record.SizeSpec),
			escapeSQL(record.ColorVariant),
			record.UnitPrice.String(),
			record.StockQuantity,
		))
	}
	b.WriteString(strings.Join(values, ",\n"))

	b.WriteString("\nON CONFLICT (sku) DO UPDATE SET\n")
	b.WriteString("    codigo = EXCLUDED.codigo,\n")
	b.WriteString("    modelo = EXCLUDED.modelo,\n")
	b.WriteString("    descripcion = EXCLUDED.descripcion,\n")
	b.WriteString("    talla = EXCLUDED.talla,\n")
	b.WriteString("    color = EXCLUDED.color,\n")
	b.WriteString("    precio_soles = EXCLUDED.precio_soles,\n")
	b.WriteString("    stock_actual = EXCLUDED.stock_actual;\n")

	return b.String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
