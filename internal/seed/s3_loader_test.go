package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"mini-inventory/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*Batch, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*Batch, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeObjectGetter serves objects from memory.
type fakeObjectGetter struct {
	objects map[string][]byte
	keys    []string
}

func (f *fakeObjectGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)
	f.keys = append(f.keys, aws.ToString(params.Bucket)+"/"+key)
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func gzipProducts(t *testing.T, products ...model.ProductFields) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, products))
	return buf.Bytes()
}

func TestS3Loader_Load(t *testing.T) {
	widget := model.ProductFields{Name: "Widget", Price: 2.5, Description: "Small", Quantity: 4}
	client := &fakeObjectGetter{objects: map[string][]byte{
		"seed/products.jsonl.gz": gzipProducts(t, widget),
	}}

	loader := NewS3LoaderWithClient(client, "inventory-bucket", zerolog.Nop())

	batch, err := loader.Load(context.Background(), "seed/products.jsonl.gz")
	require.NoError(t, err)
	assert.Equal(t, []model.ProductFields{widget}, batch.Products)
	assert.Equal(t, "s3://inventory-bucket/seed/products.jsonl.gz", batch.Source)
	assert.Equal(t, []string{"inventory-bucket/seed/products.jsonl.gz"}, client.keys)
}

func TestS3Loader_Load_MissingObject(t *testing.T) {
	loader := NewS3LoaderWithClient(&fakeObjectGetter{}, "inventory-bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "seed/missing.jsonl.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=inventory-bucket")
}

func TestS3Loader_Load_InvalidGzip(t *testing.T) {
	client := &fakeObjectGetter{objects: map[string][]byte{"bad": []byte("plain text")}}
	loader := NewS3LoaderWithClient(client, "inventory-bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestFallbackLoader(t *testing.T) {
	s3Batch := &Batch{Source: "s3", Products: []model.ProductFields{{Name: "FromS3"}}}
	localBatch := &Batch{Source: "local", Products: []model.ProductFields{{Name: "FromDisk"}}}

	succeedingS3 := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(_ context.Context, path string) (*Batch, error) {
			assert.Equal(t, "seed/products.jsonl.gz", path, "S3 key should have prefix")
			return s3Batch, nil
		}}
	}
	failingS3 := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
			return nil, errors.New("S3 connection failed")
		}}
	}
	unusedS3 := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
			t.Error("S3 loader should not be called")
			return nil, errors.New("should not be called")
		}}
	}
	local := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(_ context.Context, path string) (*Batch, error) {
			assert.Equal(t, "products.jsonl.gz", path, "local path should not have prefix")
			return localBatch, nil
		}}
	}

	tests := []struct {
		name      string
		s3Loader  func(t *testing.T) Loader
		s3Enabled bool
		want      *Batch
	}{
		{name: "S3 success", s3Loader: succeedingS3, s3Enabled: true, want: s3Batch},
		{name: "S3 fails, falls back to local", s3Loader: failingS3, s3Enabled: true, want: localBatch},
		{name: "S3 disabled", s3Loader: unusedS3, s3Enabled: false, want: localBatch},
		{name: "S3 loader nil", s3Loader: nil, s3Enabled: true, want: localBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var remote Loader
			if tt.s3Loader != nil {
				remote = tt.s3Loader(t)
			}
			fallback := NewFallbackLoader(remote, local(t), "seed/", tt.s3Enabled, zerolog.Nop())

			batch, err := fallback.Load(context.Background(), "products.jsonl.gz")
			require.NoError(t, err)
			assert.Same(t, tt.want, batch)
		})
	}
}

func TestFallbackLoader_BothFail(t *testing.T) {
	remote := &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
		return nil, errors.New("S3 error")
	}}
	local := &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
		return nil, errors.New("file not found")
	}}

	_, err := NewFallbackLoader(remote, local, "seed/", true, zerolog.Nop()).Load(context.Background(), "products.jsonl.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
