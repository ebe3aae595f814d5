package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rizkylsmp/portfolio-server/internal/models"
)

func TestFileSnapshotSinkPersist(t *testing.T) {
	// Nested path: parent directories are created on demand.
	path := filepath.Join(t.TempDir(), "data", "portfolio.json")
	sink := NewFileSnapshotSink(path, zap.NewNop())

	snap := &models.Snapshot{
		Profile: &models.Profile{Name: "Test Person"},
		Skills: []models.Skill{
			{Name: "Go", Src: "/go.svg", Alt: "go", Order: 0},
		},
	}
	require.NoError(t, sink.Persist(context.Background(), snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got models.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, snap.Profile, got.Profile)
	assert.Equal(t, snap.Skills, got.Skills)

	// Stripped entities carry no bookkeeping keys in the file.
	assert.NotContains(t, string(data), `"id"`)
	assert.NotContains(t, string(data), `"createdAt"`)
}

func TestFileSnapshotSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	sink := NewFileSnapshotSink(path, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, sink.Persist(ctx, &models.Snapshot{
		Skills: []models.Skill{{Name: "Go"}},
	}))
	require.NoError(t, sink.Persist(ctx, &models.Snapshot{
		Skills: []models.Skill{{Name: "Rust"}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rust")
	assert.NotContains(t, string(data), "Go")
}

func TestNoopSnapshotSink(t *testing.T) {
	var sink NoopSnapshotSink
	assert.NoError(t, sink.Persist(context.Background(), &models.Snapshot{}))
}
