package http

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// snapshotHandler serves the file written by the collect command
type snapshotHandler struct {
	path string
}

func (h *snapshotHandler) exists() bool {
	info, err := os.Stat(h.path)
	return err == nil && info.Mode().IsRegular()
}

func (h *snapshotHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	// The collector replaces the file by rename, so an open handle always
	// sees one complete document.
	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		writeError(w, r, goerr.New("snapshot not available yet"), http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to open snapshot", "error", err, "path", h.path)
		writeError(w, r, goerr.Wrap(err, "failed to open snapshot"), http.StatusInternalServerError)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		logger.Error("Failed to stat snapshot", "error", err, "path", h.path)
		writeError(w, r, goerr.Wrap(err, "failed to stat snapshot"), http.StatusInternalServerError)
		return
	}

	logger.Debug("Serving snapshot",
		"path", h.path,
		"size", info.Size(),
		"modified", info.ModTime(),
	)

	w.Header().Set("Content-Type", "application/yaml")
	http.ServeContent(w, r, filepath.Base(h.path), info.ModTime(), f)
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", err)
	}
}
