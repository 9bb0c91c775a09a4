package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mini-inventory/internal/config"
	"mini-inventory/internal/database"
	"mini-inventory/internal/repository"
)

// journalcheck connects to the journal database with the server's
// configuration, makes sure the schema exists and prints the latest events.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	repo := repository.NewEventRepository(pool, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Schema check failed: %v\n", err)
		os.Exit(1)
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nLatest %d events:\n", len(events))
	for _, e := range events {
		fmt.Printf("  - %s %-16s %-12s %d -> %d\n",
			e.OccurredAt.Format(time.RFC3339), e.Type, e.ProductID, e.QuantityBefore, e.QuantityAfter)
	}
}
