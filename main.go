package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"catalogo-nancy/app"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <job>

Jobs:
  ingest     parse price list + assets, reconcile into the store, write artifacts
  erp-sync   run one ERP inventory sync cycle
  erp-watch  run ERP sync cycles on an interval until stopped
  publish    upload matched images and write back public URLs
  export     regenerate catalog_data.json and catalog_seed.sql only
`, os.Args[0])
}

func main() {
	// Load .env file in development (ignores error if file doesn't exist).
	// In production, variables should be set directly.
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	job := os.Args[1]

	// A stop signal is honored between records, never mid-record: every
	// runner checks the context at record boundaries only.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch job {
	case "ingest":
		err = app.RunIngest(ctx)
	case "erp-sync":
		err = app.RunERPSync(ctx)
	case "erp-watch":
		err = app.RunERPWatch(ctx)
	case "publish":
		err = app.RunPublish(ctx)
	case "export":
		err = app.RunExport(ctx)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("❌ Job %s failed: %v", job, err)
	}
	log.Printf("✅ Job %s completed", job)
}
