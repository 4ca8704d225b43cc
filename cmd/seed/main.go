package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/salesdash-backend/internal/ingest"
	"github.com/angelmondragon/salesdash-backend/internal/sales"
	"github.com/angelmondragon/salesdash-backend/pkg/config"
	"github.com/angelmondragon/salesdash-backend/pkg/db"
	"github.com/angelmondragon/salesdash-backend/pkg/logger"
	"github.com/angelmondragon/salesdash-backend/pkg/migrate"
)

// seed replaces the sales_records table with the contents of a CSV export.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	csvPath := flag.String("csv", cfg.Seed.CSVPath, "path to the sales CSV export")
	flag.Parse()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient, &sales.SalesRecord{}); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	importer, err := ingest.NewImporter(sales.NewRepository(dbClient.DB()), logg, cfg.Seed.BatchSize)
	if err != nil {
		logg.Error(ctx, "failed to create importer", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "csv", *csvPath)
	logg.Info(ctx, "starting import")

	summary, err := importer.ImportFile(ctx, *csvPath)
	if err != nil {
		logg.Error(ctx, "import failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"read":     summary.Read,
		"inserted": summary.Inserted,
		"skipped":  summary.Skipped,
	})
	logg.Info(ctx, "import complete")
}
