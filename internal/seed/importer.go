package seed

import (
	"context"
	"errors"
	"fmt"

	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Creator adds a validated product to the inventory.
type Creator interface {
	Create(ctx context.Context, fields model.ProductFields) (model.Product, error)
}

// Result summarises an import run.
type Result struct {
	Files    int `json:"files"`
	Imported int `json:"imported"`
	// Skipped counts malformed lines plus lines rejected by validation.
	Skipped int `json:"skipped"`
}

// Importer loads seed files concurrently and applies them in file order.
type Importer struct {
	loader  Loader
	creator Creator
	logger  zerolog.Logger
}

// NewImporter creates a new seed importer.
func NewImporter(loader Loader, creator Creator, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:  loader,
		creator: creator,
		logger:  logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import loads every file, failing if any file cannot be read, then creates
// products in the order the files were given and the lines appear.
func (i *Importer) Import(ctx context.Context, files []string) (Result, error) {
	batches := make([]*Batch, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for idx, path := range files {
		g.Go(func() error {
			batch, err := i.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load seed file %s: %w", path, err)
			}
			batches[idx] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.Error().Err(err).Msg("seed import aborted")
		return Result{}, err
	}

	result := Result{Files: len(files)}
	for _, batch := range batches {
		result.Skipped += batch.Malformed

		for n, fields := range batch.Products {
			if _, err := i.creator.Create(ctx, fields); err != nil {
				result.Skipped++
				if !errors.Is(err, model.ErrValidation) {
					i.logger.Warn().Err(err).Str("source", batch.Source).Int("record", n+1).Msg("failed to import product")
				}
				continue
			}
			result.Imported++
		}
	}

	i.logger.Info().
		Int("files", result.Files).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("seed import completed")

	return result, nil
}
