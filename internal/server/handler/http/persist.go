package http

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SaveHandler accepts the full portfolio document and writes it to the
// canonical data file. It is the development-only write sink: the router
// mounts it solely in development mode, so a frontend dev server can persist
// admin edits directly.
type SaveHandler struct {
	// Path is the location of the data file.
	Path string
	// Log reports write results.
	Log *zap.Logger
}

// ServeHTTP validates the body as JSON and rewrites the data file with it,
// re-indented.
func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON data"})
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if dir := filepath.Dir(h.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.Log.Error("failed to save portfolio data", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	if err := os.WriteFile(h.Path, data, 0o644); err != nil {
		h.Log.Error("failed to save portfolio data", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.Log.Info("portfolio data saved", zap.String("path", h.Path))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data saved to " + filepath.Base(h.Path),
	})
}
