package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = "w" + string(rune('a'+i%26))
	}
	return strings.Join(out, " ")
}

func TestChunkMarkdownWindowAndOverlap(t *testing.T) {
	// 900 words, window 500, stride 400: [0,500) and [400,900)
	chunks := ChunkMarkdown("u1", "users/u1/lore/oakhaven.md", words(900), DefaultChunkOptions())

	require.Len(t, chunks, 2)
	assert.Len(t, strings.Fields(chunks[0].Text), 500)
	assert.Len(t, strings.Fields(chunks[1].Text), 500)

	// the second window starts 400 words in, repeating the last 100
	first := strings.Fields(chunks[0].Text)
	second := strings.Fields(chunks[1].Text)
	assert.Equal(t, first[400:], second[:100])
}

func TestChunkMarkdownShortDocumentIsOneChunk(t *testing.T) {
	chunks := ChunkMarkdown("u1", "users/u1/lore/note.md", "a short note about Oakhaven", DefaultChunkOptions())

	require.Len(t, chunks, 1)
	assert.Equal(t, "a short note about Oakhaven", chunks[0].Text)
}

func TestChunkMarkdownEmptyDocument(t *testing.T) {
	assert.Empty(t, ChunkMarkdown("u1", "users/u1/lore/empty.md", "   \n\t", DefaultChunkOptions()))
}

func TestChunkMarkdownMetadata(t *testing.T) {
	chunks := ChunkMarkdown("u1", "users/u1/lore/oakhaven.md", "some text", DefaultChunkOptions())

	require.Len(t, chunks, 1)
	meta := chunks[0].Metadata
	assert.Equal(t, "u1", meta.UserID)
	assert.Equal(t, "lore", meta.ProjectFolder)
	assert.Equal(t, "oakhaven.md", meta.Filename)
	assert.Equal(t, "users/u1/lore/oakhaven.md", meta.Source)
}

func TestMetadataFromKeyShallowPathFallsBackToRoot(t *testing.T) {
	meta := MetadataFromKey("u1", "users/u1/loose.md")

	assert.Equal(t, "root", meta.ProjectFolder)
	assert.Equal(t, "loose.md", meta.Filename)
}

func TestChunkIDStableAndContentDerived(t *testing.T) {
	a := ChunkID("the blacksmith of Oakhaven")
	b := ChunkID("the blacksmith of Oakhaven")
	c := ChunkID("the baker of Oakhaven")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36) // canonical uuid form
}

func TestStripMarkdown(t *testing.T) {
	input := "# Oakhaven\n\nThe **blacksmith** is [Gareth](people/gareth.md).\n\n```\ncode block\n```\n\n![map](map.png)\n\nHis forge uses `iron` daily."
	plain := stripMarkdown(input)

	assert.NotContains(t, plain, "#")
	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "code block")
	assert.NotContains(t, plain, "map.png")
	assert.Contains(t, plain, "Gareth")
	assert.Contains(t, plain, "iron")
}
