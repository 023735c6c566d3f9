package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ragmesh/scoring"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, scoring.PolicyBonus, cfg.Scoring.Policy)
	assert.InDelta(t, 0.4, cfg.Scoring.Weights.FilenameExact, 1e-9)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.5, cfg.Retrieval.Threshold, 1e-9)
	assert.Equal(t, "memory", cfg.Memory.Type)
	assert.Equal(t, 3600, cfg.Memory.TTLSecs)
	assert.Equal(t, "splitter", cfg.Qdrant.Collection)
	assert.Equal(t, "logs", cfg.LogsDir)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scoring:
  policy: weighted_average
  vector_weight: 0.6
retrieval:
  threshold: 0.65
memory:
  type: redis
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, scoring.PolicyWeightedAverage, cfg.Scoring.Policy)
	assert.InDelta(t, 0.65, cfg.Retrieval.Threshold, 1e-9)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	require.NotNil(t, cfg.Memory.Redis)
	assert.Equal(t, "localhost:6379", cfg.Memory.Redis.Addr)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Qdrant.URL = "https://qdrant.example.com:6334"
	cfg.Retrieval.TopK = 8

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Qdrant.URL, loaded.Qdrant.URL)
	assert.Equal(t, 8, loaded.Retrieval.TopK)
	assert.Equal(t, cfg.Scoring, loaded.Scoring)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
