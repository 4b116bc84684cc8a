package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"catalogo-nancy/models"
)

// defaultPublishWorkers bounds the number of concurrent uploads.
const defaultPublishWorkers = 4

// PublishService uploads matched images to object storage and writes the
// public URL back onto the stored record. Uploads are independent per
// record: one failure never blocks the others, and re-running overwrites
// the same derived keys, so the whole step is safely repeatable.
type PublishService struct {
	source     AssetSource
	storage    ObjectStorage
	reconciler ReconcileServiceInterface
	workers    int
}

// NewPublishService creates a new PublishService
func NewPublishService(source AssetSource, storage ObjectStorage, reconciler ReconcileServiceInterface) *PublishService {
	return &PublishService{
		source:     source,
		storage:    storage,
		reconciler: reconciler,
		workers:    defaultPublishWorkers,
	}
}

type publishResult struct {
	sku string
	err error
}

// PublishAll uploads the image of every record that still carries a local
// file reference, dispatched across a bounded worker pool.
// Returns: total candidates, uploaded count, failed count, and the list of
// per-record error messages.
func (s *PublishService) PublishAll(ctx context.Context, records []models.CatalogRecord) (int, int, int, []string, error) {
	var pending []models.CatalogRecord
	for _, record := range records {
		if record.HasLocalImage() {
			pending = append(pending, record)
		}
	}

	log.Printf("📤 Publishing %d of %d records with local images (%d workers)",
		len(pending), len(records), s.workers)

	jobs := make(chan models.CatalogRecord)
	results := make(chan publishResult)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				results <- publishResult{sku: record.SKU, err: s.publishOne(ctx, record)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range pending {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	uploaded := 0
	var errs []string
	for res := range results {
		if res.err != nil {
			log.Printf("❌ %s: %v", res.sku, res.err)
			errs = append(errs, fmt.Sprintf("%s: %v", res.sku, res.err))
			continue
		}
		uploaded++
	}

	log.Printf("🎉 Publish completed: %d uploaded, %d failed, %d total", uploaded, len(errs), len(pending))
	return len(pending), uploaded, len(errs), errs, ctx.Err()
}

// publishOne is the upload-then-write-back unit for a single record. The
// object key is derived from the SKU and filename, so a re-run after a crash
// between upload and write-back simply overwrites the same object.
func (s *PublishService) publishOne(ctx context.Context, record models.CatalogRecord) error {
	data, err := s.source.Read(record.ImageRef)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	prepared, contentType, err := PrepareImage(data)
	if err != nil {
		return fmt.Errorf("failed to prepare image: %w", err)
	}

	key := fmt.Sprintf("%s-%s", record.SKU, record.ImageRef)
	if err := s.storage.Put(ctx, key, prepared, contentType); err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}

	publicURL := s.storage.PublicURL(key)
	if err := s.reconciler.SetImageRef(ctx, record.SKU, publicURL); err != nil {
		return fmt.Errorf("failed to write back image url: %w", err)
	}

	log.Printf("✅ Published %s -> %s", record.SKU, publicURL)
	return nil
}
