package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rizkylsmp/portfolio-server/internal/models"
	"go.uber.org/zap"
)

// FileSnapshotSink persists portfolio snapshots to the canonical JSON data
// file. It is the development-mode sink: every flush rewrites the whole file
// with the latest state.
type FileSnapshotSink struct {
	// Path is the location of the data file.
	Path string
	// Log reports write results.
	Log *zap.Logger
}

// NewFileSnapshotSink creates a sink writing to path.
func NewFileSnapshotSink(path string, log *zap.Logger) *FileSnapshotSink {
	return &FileSnapshotSink{Path: path, Log: log}
}

// Persist writes the snapshot to the data file, creating parent directories
// if needed. The file is indented so it stays hand-editable.
func (s *FileSnapshotSink) Persist(_ context.Context, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.Log.Info("portfolio data saved", zap.String("path", s.Path))
	return nil
}

// NoopSnapshotSink drops snapshots. It is the release-mode sink: edits stay
// in memory and do not survive a restart.
type NoopSnapshotSink struct{}

// Persist discards the snapshot and reports success.
func (NoopSnapshotSink) Persist(context.Context, *models.Snapshot) error {
	return nil
}
