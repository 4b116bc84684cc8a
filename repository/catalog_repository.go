package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"catalogo-nancy/db"
	"catalogo-nancy/models"
)

// CatalogRepository handles database operations against tb_catalogo_stock.
// Implements CatalogRepositoryInterface
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// Upsert inserts the record or merges it into the stored row with the same
// SKU. All incoming fields win except url_foto: an incoming record without
// a public image URL never erases one already stored, so an ERP-driven
// price/stock update keeps the published image. One statement per record,
// so the write is atomic at record level.
func (r *CatalogRepository) Upsert(ctx context.Context, record *models.CatalogRecord) error {
	query := `
		INSERT INTO tb_catalogo_stock (
			sku, codigo, modelo, descripcion, talla, color,
			precio_soles, stock_actual, url_foto, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NOW())
		ON CONFLICT (sku) DO UPDATE SET
			codigo = EXCLUDED.codigo,
			modelo = EXCLUDED.modelo,
			descripcion = EXCLUDED.descripcion,
			talla = EXCLUDED.talla,
			color = EXCLUDED.color,
			precio_soles = EXCLUDED.precio_soles,
			stock_actual = EXCLUDED.stock_actual,
			url_foto = COALESCE(EXCLUDED.url_foto, tb_catalogo_stock.url_foto),
			updated_at = NOW()
	`

	_, err := db.DB.ExecContext(ctx, query,
		record.SKU,
		record.SourceCode,
		record.ModelName,
		record.Description,
		record.SizeSpec,
		record.ColorVariant,
		record.UnitPrice,
		record.StockQuantity,
		record.ImageRef,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sku %s: %w", record.SKU, err)
	}

	return nil
}

// GetBySKU retrieves one record by SKU, or (nil, nil) when absent.
func (r *CatalogRepository) GetBySKU(ctx context.Context, sku string) (*models.CatalogRecord, error) {
	query := `
		SELECT sku, codigo, modelo, descripcion, talla, color,
		       precio_soles, stock_actual, COALESCE(url_foto, '') as url_foto, updated_at
		FROM tb_catalogo_stock
		WHERE sku = $1
	`

	record, err := scanRecord(db.DB.QueryRowContext(ctx, query, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sku %s: %w", sku, err)
	}
	return record, nil
}

// List retrieves all catalog records ordered by SKU.
func (r *CatalogRepository) List(ctx context.Context) ([]models.CatalogRecord, error) {
	query := `
		SELECT sku, codigo, modelo, descripcion, talla, color,
		       precio_soles, stock_actual, COALESCE(url_foto, '') as url_foto, updated_at
		FROM tb_catalogo_stock
		ORDER BY sku ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog records: %w", err)
	}
	defer rows.Close()

	var records []models.CatalogRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Printf("❌ Error scanning catalog record: %v", err)
			continue
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog records: %w", err)
	}
	return records, nil
}

// UpdateImageURL sets only url_foto and updated_at for one SKU. Used by the
// asset publisher after a successful upload.
func (r *CatalogRepository) UpdateImageURL(ctx context.Context, sku string, url string) error {
	query := `
		UPDATE tb_catalogo_stock
		SET url_foto = $1, updated_at = NOW()
		WHERE sku = $2
	`

	result, err := db.DB.ExecContext(ctx, query, url, sku)
	if err != nil {
		return fmt.Errorf("failed to update image url for sku %s: %w", sku, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("catalog record with sku %s not found", sku)
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.CatalogRecord, error) {
	var record models.CatalogRecord
	var updatedAt sql.NullTime

	err := row.Scan(
		&record.SKU,
		&record.SourceCode,
		&record.ModelName,
		&record.Description,
		&record.SizeSpec,
		&record.ColorVariant,
		&record.UnitPrice,
		&record.StockQuantity,
		&record.ImageRef,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		record.LastSyncedAt = updatedAt.Time
	}
	return &record, nil
}
