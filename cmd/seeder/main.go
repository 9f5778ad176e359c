package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"retailetl/internal/config"
	"retailetl/internal/infrastructure"
	"retailetl/internal/pipeline"
	"retailetl/internal/store"
)

// The seeder loads a cleaned export into the Postgres orders table,
// recreates the order_summary view, and verifies the loaded row count
// against the file.
func main() {
	csvPath := flag.String("csv", "", "path to the cleaned CSV (defaults to paths.clean_file from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *csvPath == "" {
		*csvPath = cfg.Paths.CleanFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	// The cleaned export is the loader's input contract; re-parse it
	// rather than trusting any in-process state.
	raw, err := pipeline.LoadRaw(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read cleaned CSV: %v\n", err)
		os.Exit(1)
	}
	orders, err := pipeline.Normalize(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleaned CSV failed validation: %v\n", err)
		os.Exit(1)
	}
	orders = pipeline.DeriveAll(orders)
	orders = pipeline.CleanCategoricals(orders)

	st, err := store.Open(cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open orders store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	fmt.Printf("Loading %d rows into the orders table...\n", len(orders))
	loaded, err := st.Seed(ctx, orders, cfg.Database.BatchSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	count, err := st.CountOrders(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d rows; database contains %d rows\n", loaded, count)
	if int64(loaded) != count {
		fmt.Fprintf(os.Stderr, "row count mismatch: csv=%d db=%d\n", loaded, count)
		os.Exit(1)
	}
	fmt.Println("Seed completed successfully")
}
