package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/ragmesh/core"
)

func TestMetadataScoreExactFilename(t *testing.T) {
	meta := core.ChunkMetadata{Filename: "oakhaven.md"}
	got := MetadataScore("Who is the blacksmith in Oakhaven?", meta, DefaultWeights())
	assert.InDelta(t, 0.4, got, 1e-9)
}

func TestMetadataScoreExactFilenameAndSource(t *testing.T) {
	meta := core.ChunkMetadata{
		Filename: "oakhaven.md",
		Source:   "users/u1/lore/oakhaven.md",
	}
	got := MetadataScore("Who is the blacksmith in Oakhaven?", meta, DefaultWeights())
	// 0.4 filename exact + 0.3 source exact
	assert.InDelta(t, 0.7, got, 1e-9)
}

func TestMetadataScorePartialOverlap(t *testing.T) {
	meta := core.ChunkMetadata{Filename: "northern-trade-routes.md"}
	got := MetadataScore("tell me about trade in the kingdom", meta, DefaultWeights())
	// 1 of 3 filename tokens overlap: 0.2 * 1/3
	assert.InDelta(t, 0.2/3, got, 1e-9)
}

func TestMetadataScoreNoMatch(t *testing.T) {
	meta := core.ChunkMetadata{Filename: "dragons.md", Source: "users/u1/lore/dragons.md"}
	got := MetadataScore("what is the capital city?", meta, DefaultWeights())
	assert.Zero(t, got)
}

func TestMetadataScoreMissingFields(t *testing.T) {
	got := MetadataScore("anything at all", core.ChunkMetadata{}, DefaultWeights())
	assert.Zero(t, got)
}

func TestMetadataScoreCaseInsensitive(t *testing.T) {
	meta := core.ChunkMetadata{Filename: "OakHaven.MD"}
	got := MetadataScore("who runs OAKHAVEN?", meta, DefaultWeights())
	assert.InDelta(t, 0.4, got, 1e-9)
}

func TestMetadataScoreClamped(t *testing.T) {
	w := Weights{FilenameExact: 0.9, SourceExact: 0.9}
	meta := core.ChunkMetadata{Filename: "oakhaven.md", Source: "lore/oakhaven.md"}
	got := MetadataScore("oakhaven", meta, w)
	assert.Equal(t, 1.0, got)
}
