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
	"retailetl/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "path to the raw extract (defaults to paths.raw_file from config)")
	out := flag.String("out", "", "path for the cleaned CSV (defaults to paths.clean_file from config)")
	flag.Parse()

	// Two positional arguments work as well: cleaner raw.csv clean.csv
	if args := flag.Args(); len(args) == 2 && *in == "" && *out == "" {
		*in = args[0]
		*out = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "console"},
			Paths: config.PathsConfig{
				RawFile:   "data/raw/orders.csv",
				CleanFile: "data/processed/orders_clean.csv",
			},
		}
	}

	if *in == "" {
		*in = cfg.Paths.RawFile
	}
	if *out == "" {
		*out = cfg.Paths.CleanFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	result, err := pipeline.New(logger).Run(context.Background(), *in, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleaning failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cleaned data saved to %s\n", *out)
	fmt.Printf("Total rows: %d\n", result.Summary.Rows)
	fmt.Printf("Date range: %s to %s\n",
		result.Summary.FirstOrder.Format(domain.DateLayout),
		result.Summary.LastOrder.Format(domain.DateLayout))
}
