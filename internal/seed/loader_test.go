package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSeedFile writes raw lines into a gzipped file.
func createTestSeedFile(t *testing.T, filename string, lines []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := createTestSeedFile(t, "products.jsonl.gz", []string{
		`{"name":"Widget","price":2.5,"description":"Small","quantity":4}`,
		`{"name":"Gadget","price":10,"description":"Large","quantity":1}`,
	})

	batch, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, batch.Source)
	assert.Equal(t, 0, batch.Malformed)
	assert.Equal(t, []model.ProductFields{
		{Name: "Widget", Price: 2.5, Description: "Small", Quantity: 4},
		{Name: "Gadget", Price: 10, Description: "Large", Quantity: 1},
	}, batch.Products)
}

func TestFileLoader_Load_SkipsBlankAndMalformedLines(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := createTestSeedFile(t, "mixed.jsonl.gz", []string{
		`{"name":"Widget","price":2.5,"description":"Small","quantity":4}`,
		``,
		`   `,
		`not json`,
		`{"name":"Gadget","price":"free"}`,
		`{"name":"Gizmo","price":1,"description":"Tiny","quantity":9}`,
	})

	batch, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Malformed)
	require.Len(t, batch.Products, 2)
	assert.Equal(t, "Widget", batch.Products[0].Name)
	assert.Equal(t, "Gizmo", batch.Products[1].Name)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), "/nonexistent/products.jsonl.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_InvalidGzip(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := filepath.Join(t.TempDir(), "plain.jsonl.gz")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Widget"}`), 0o644))

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}

func TestFileLoader_Load_ContextCancellation(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := createTestSeedFile(t, "products.jsonl.gz", []string{
		`{"name":"Widget","price":2.5,"description":"Small","quantity":4}`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := createTestSeedFile(t, "empty.jsonl.gz", nil)

	batch, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, batch.Products)
	assert.Zero(t, batch.Malformed)
}

func TestWrite_RoundTripsThroughLoader(t *testing.T) {
	products := []model.ProductFields{
		{Name: "Widget", Price: 2.5, Description: "Small", Quantity: 4},
		{Name: "Gadget", Price: 10, Description: "Large", Quantity: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, products))

	path := filepath.Join(t.TempDir(), "written.jsonl.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	batch, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, products, batch.Products)

	gzipReader, err := gzip.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	raw := new(strings.Builder)
	_, err = io.Copy(raw, gzipReader)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(raw.String(), "\n"), "one object per line")
}
