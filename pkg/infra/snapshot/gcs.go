package snapshot

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
)

// GCSWriter stores the snapshot as a single Cloud Storage object
type GCSWriter struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSWriter creates a GCSWriter using application default credentials
func NewGCSWriter(ctx context.Context, bucket, object string) (*GCSWriter, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	return &GCSWriter{
		client: client,
		bucket: bucket,
		object: object,
	}, nil
}

// Write uploads the snapshot. The object only becomes visible once the
// upload completes; a failed upload leaves the previous object in place.
func (w *GCSWriter) Write(ctx context.Context, s *model.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ow := w.client.Bucket(w.bucket).Object(w.object).NewWriter(ctx)
	ow.ContentType = "application/yaml"
	ow.CacheControl = "no-cache"

	if _, err := ow.Write(data); err != nil {
		cancel()
		_ = ow.Close()
		return goerr.Wrap(err, "failed to upload snapshot",
			goerr.V("bucket", w.bucket),
			goerr.V("object", w.object),
		)
	}
	if err := ow.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize snapshot upload",
			goerr.V("bucket", w.bucket),
			goerr.V("object", w.object),
		)
	}

	return nil
}

// Close releases the storage client
func (w *GCSWriter) Close() error {
	return w.client.Close()
}
