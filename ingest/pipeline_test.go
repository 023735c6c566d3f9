package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ragmesh/core"
)

type fakeSource struct {
	objects []Object
	err     error
}

func (s fakeSource) Objects(context.Context, string, string) ([]Object, error) {
	return s.objects, s.err
}

type fakeEmbedder struct {
	failures int
	calls    int
	dim      int
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.calls <= e.failures {
		return nil, errors.New("rate limited")
	}
	dim := e.dim
	if dim == 0 {
		dim = 4
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, dim)
	}
	return vectors, nil
}

type fakeUpserter struct {
	ensured   int
	dimension int
	chunks    []core.Chunk
	err       error
}

func (u *fakeUpserter) EnsureCollection(_ context.Context, dimension int) error {
	u.ensured++
	u.dimension = dimension
	return nil
}

func (u *fakeUpserter) Upsert(_ context.Context, chunks []core.Chunk, _ [][]float32) error {
	if u.err != nil {
		return u.err
	}
	u.chunks = append(u.chunks, chunks...)
	return nil
}

func fastBackoff(o *Options) {
	o.BackoffBase = time.Millisecond
}

func TestPipelineRunEmbedsAndUpsertsAllChunks(t *testing.T) {
	source := fakeSource{objects: []Object{
		{Key: "users/u1/lore/a.md", Text: words(900)},
		{Key: "users/u1/lore/b.md", Text: "short doc"},
	}}
	embedder := &fakeEmbedder{}
	upserter := &fakeUpserter{}
	p := NewPipeline(source, embedder, upserter, fastBackoff, func(o *Options) {
		o.BatchSize = 2
	})

	stats, err := p.Run(context.Background(), "u1", "lore")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Objects)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, 2, stats.Batches)
	assert.Equal(t, 1, upserter.ensured)
	assert.Equal(t, 4, upserter.dimension)
	require.Len(t, upserter.chunks, 3)
	for _, c := range upserter.chunks {
		assert.Equal(t, "u1", c.Metadata.UserID)
		assert.Equal(t, "lore", c.Metadata.ProjectFolder)
	}
}

func TestPipelineRunRetriesTransientEmbeddingFailures(t *testing.T) {
	source := fakeSource{objects: []Object{{Key: "users/u1/lore/a.md", Text: "one chunk"}}}
	embedder := &fakeEmbedder{failures: 2}
	upserter := &fakeUpserter{}
	p := NewPipeline(source, embedder, upserter, fastBackoff)

	stats, err := p.Run(context.Background(), "u1", "lore")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t, 3, embedder.calls)
}

func TestPipelineRunGivesUpAfterMaxAttempts(t *testing.T) {
	source := fakeSource{objects: []Object{{Key: "users/u1/lore/a.md", Text: "one chunk"}}}
	embedder := &fakeEmbedder{failures: 100}
	p := NewPipeline(source, embedder, &fakeUpserter{}, fastBackoff)

	_, err := p.Run(context.Background(), "u1", "lore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 5 attempts")
	assert.Equal(t, 5, embedder.calls)
}

func TestPipelineRunEmptySourceIsNoOp(t *testing.T) {
	upserter := &fakeUpserter{}
	p := NewPipeline(fakeSource{}, &fakeEmbedder{}, upserter, fastBackoff)

	stats, err := p.Run(context.Background(), "u1", "lore")
	require.NoError(t, err)
	assert.Zero(t, stats.Chunks)
	assert.Zero(t, upserter.ensured)
}

func TestDirSourceReadsMarkdownTree(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "users", "u1", "lore")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("nope"), 0o644))

	objects, err := DirSource{Root: root}.Objects(context.Background(), "u1", "lore")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "users/u1/lore/a.md", objects[0].Key)
	assert.Equal(t, "alpha", objects[0].Text)
}

func TestDirSourceMissingPrefixYieldsNothing(t *testing.T) {
	objects, err := DirSource{Root: t.TempDir()}.Objects(context.Background(), "ghost", "none")
	require.NoError(t, err)
	assert.Empty(t, objects)
}
