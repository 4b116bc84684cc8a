package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"catalogo-nancy/db"
	"catalogo-nancy/erp"
	"catalogo-nancy/extractor"
	"catalogo-nancy/matcher"
	"catalogo-nancy/models"
	"catalogo-nancy/normalizer"
	"catalogo-nancy/repository"
	"catalogo-nancy/service"
)

// defaultPriceListName is the price-list file inside the catalog directory.
const defaultPriceListName = "precios-catalogo.txt"

// RunIngest parses the price list, matches assets, normalizes the result,
// reconciles it into the store and writes the replay artifacts.
func RunIngest(ctx context.Context) error {
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	records, err := buildCatalog()
	if err != nil {
		return err
	}

	reconciler := service.NewReconcileService(repository.NewCatalogRepository())
	result, err := reconciler.Apply(ctx, records)
	if err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		log.Printf("⚠️  %d records failed to reconcile; see log above", len(result.Failed))
	}

	return service.NewExportService(outputDir()).WriteArtifacts(records)
}

// RunExport regenerates the JSON/SQL artifacts from the parsed catalog
// without touching the store.
func RunExport(_ context.Context) error {
	records, err := buildCatalog()
	if err != nil {
		return err
	}
	return service.NewExportService(outputDir()).WriteArtifacts(records)
}

// RunERPSync performs one ERP fetch-and-reconcile cycle.
func RunERPSync(ctx context.Context) error {
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	sync, err := newERPSyncService()
	if err != nil {
		return err
	}
	_, err = sync.SyncOnce(ctx)
	return err
}

// RunERPWatch repeats ERP sync cycles until the context is cancelled.
func RunERPWatch(ctx context.Context) error {
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	interval := 5 * time.Minute
	if v := os.Getenv("ERP_SYNC_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ERP_SYNC_INTERVAL %q: %w", v, err)
		}
		interval = parsed
	}

	sync, err := newERPSyncService()
	if err != nil {
		return err
	}
	if err := sync.Watch(ctx, interval); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// RunPublish replays the JSON artifact and uploads every still-local image
// to object storage, writing the public URLs back onto the stored records.
func RunPublish(ctx context.Context) error {
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	records, err := service.NewExportService(outputDir()).LoadRecords()
	if err != nil {
		return err
	}

	source, err := newAssetSource()
	if err != nil {
		return err
	}

	storage, err := service.NewS3ObjectStorage(service.S3Config{
		Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
		Region:        os.Getenv("STORAGE_REGION"),
		Bucket:        os.Getenv("STORAGE_BUCKET"),
		AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
		PublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
	})
	if err != nil {
		return err
	}

	reconciler := service.NewReconcileService(repository.NewCatalogRepository())
	publisher := service.NewPublishService(source, storage, reconciler)

	_, _, failed, errs, err := publisher.PublishAll(ctx, records)
	if err != nil {
		return err
	}
	if failed > 0 {
		log.Printf("⚠️  %d uploads failed:", failed)
		for _, msg := range errs {
			log.Printf("   - %s", msg)
		}
	}
	return nil
}

// buildCatalog runs the local half of the pipeline: extract, match,
// normalize. Total source unavailability (missing price list or asset
// directory) is the only fatal condition here.
func buildCatalog() ([]models.CatalogRecord, error) {
	priceListPath := os.Getenv("PRICE_LIST_FILE")
	if priceListPath == "" {
		priceListPath = filepath.Join(catalogDir(), defaultPriceListName)
	}

	text, err := os.ReadFile(priceListPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read price list %s: %w", priceListPath, err)
	}

	tuples, skipped := extractor.ParsePriceList(string(text))
	log.Printf("📦 Extracted %d products from price list (%d entries skipped)", len(tuples), skipped)

	source, err := newAssetSource()
	if err != nil {
		return nil, err
	}
	filenames, err := source.List()
	if err != nil {
		return nil, err
	}

	lookup := make(map[string][]models.MatchedAsset)
	for _, tuple := range tuples {
		lookup[tuple.Code] = matcher.Match(tuple.Code, filenames)
	}

	records := normalizer.New().Normalize(tuples, lookup)
	log.Printf("📦 Normalized into %d catalog records", len(records))
	return records, nil
}

// newAssetSource picks the Drive folder when DRIVE_FOLDER_ID is set,
// otherwise the local catalog directory.
func newAssetSource() (service.AssetSource, error) {
	if folderID := os.Getenv("DRIVE_FOLDER_ID"); folderID != "" {
		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
		return service.NewDriveSource(credentialsPath, folderID)
	}
	return service.NewLocalDirSource(catalogDir()), nil
}

func newERPSyncService() (*service.ERPSyncService, error) {
	baseURL := os.Getenv("ERP_BASE_URL")
	apiKey := os.Getenv("ERP_API_KEY")
	tenantID := os.Getenv("ERP_TENANT_ID")
	if baseURL == "" || apiKey == "" || tenantID == "" {
		return nil, fmt.Errorf("ERP connection variables not set. Set ERP_BASE_URL, ERP_API_KEY, ERP_TENANT_ID")
	}

	connector := erp.NewConnector(baseURL, apiKey, tenantID)
	reconciler := service.NewReconcileService(repository.NewCatalogRepository())
	return service.NewERPSyncService(connector, reconciler), nil
}

func catalogDir() string {
	if dir := os.Getenv("CATALOG_DIR"); dir != "" {
		return dir
	}
	return "catalogo-nancys"
}

func outputDir() string {
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		return dir
	}
	return "."
}
