package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
)

// FileWriter replaces a local file atomically
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter for path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write encodes the snapshot into a temporary file next to the target and
// renames it over the target, so readers never observe a partial document.
func (w *FileWriter) Write(ctx context.Context, s *model.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary snapshot file", goerr.V("path", w.path))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write snapshot", goerr.V("path", tmpPath))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to sync snapshot", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close snapshot", goerr.V("path", tmpPath))
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return goerr.Wrap(err, "failed to set snapshot permissions", goerr.V("path", tmpPath))
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		return goerr.Wrap(err, "failed to replace snapshot", goerr.V("path", w.path))
	}
	committed = true

	return nil
}

// Close is a no-op
func (w *FileWriter) Close() error {
	return nil
}
