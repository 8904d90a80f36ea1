package snapshot

import (
	"bytes"
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/interfaces"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

const gcsScheme = "gs://"

// Writer is a SnapshotWriter holding resources that must be released
type Writer interface {
	interfaces.SnapshotWriter
	Close() error
}

// Encode serializes a snapshot as YAML
func Encode(s *model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, goerr.Wrap(err, "failed to encode snapshot")
	}
	if err := enc.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush snapshot encoder")
	}
	return buf.Bytes(), nil
}

// Open returns a writer for dest, either a local path or gs://bucket/object
func Open(ctx context.Context, dest string) (Writer, error) {
	if bucket, object, ok := ParseGCS(dest); ok {
		return NewGCSWriter(ctx, bucket, object)
	}
	if strings.HasPrefix(dest, gcsScheme) {
		return nil, goerr.New("invalid GCS destination, expected gs://bucket/object", goerr.V("dest", dest))
	}
	return NewFileWriter(dest), nil
}

// ParseGCS splits gs://bucket/object into its parts
func ParseGCS(dest string) (string, string, bool) {
	rest, ok := strings.CutPrefix(dest, gcsScheme)
	if !ok {
		return "", "", false
	}
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
