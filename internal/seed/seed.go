// Package seed imports product catalogues from gzipped JSON-lines files.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mini-inventory/internal/model"
)

// Batch is the decoded content of one seed file.
type Batch struct {
	Source   string
	Products []model.ProductFields
	// Malformed counts lines that were not valid JSON product objects.
	Malformed int
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines file and returns its products in file order.
	Load(ctx context.Context, path string) (*Batch, error)
}

const cancelCheckEvery = 10_000

// decode reads one ProductFields object per line from a gzip stream.
// Blank lines are ignored; undecodable lines are counted as malformed.
func decode(ctx context.Context, r io.Reader, source string) (*Batch, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	batch := &Batch{Source: source}

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		if lineCount%cancelCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineCount++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fields model.ProductFields
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			batch.Malformed++
			continue
		}
		batch.Products = append(batch.Products, fields)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file %s: %w", source, err)
	}

	return batch, nil
}

// Write encodes products as a gzipped JSON-lines stream.
func Write(w io.Writer, products []model.ProductFields) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := json.NewEncoder(gzipWriter)

	for i, p := range products {
		if err := encoder.Encode(p); err != nil {
			_ = gzipWriter.Close()
			return fmt.Errorf("failed to encode product %d: %w", i, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}
