package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/logging"
)

// Object is one markdown document addressed by its storage key.
type Object struct {
	Key  string
	Text string
}

// Source lists the markdown objects for a user, optionally narrowed to one
// project folder.
type Source interface {
	Objects(ctx context.Context, userID, projectFolder string) ([]Object, error)
}

// BatchEmbedder embeds a batch of texts, index-aligned with the input.
// Implemented by the OpenAI embedder adapter.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Upserter stores embedded chunks. Implemented by the Qdrant client.
type Upserter interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []core.Chunk, vectors [][]float32) error
}

// Options tunes the pipeline.
type Options struct {
	// Chunking configures the word-window chunker.
	Chunking ChunkOptions

	// BatchSize is how many chunks are embedded per API call.
	BatchSize int

	// MaxAttempts bounds embedding retries per batch.
	MaxAttempts int

	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration

	// Logger receives per-batch progress.
	Logger logging.Logger
}

// Stats summarizes one pipeline run.
type Stats struct {
	Objects int
	Chunks  int
	Batches int
}

// Pipeline chunks, embeds and upserts a user's documents.
type Pipeline struct {
	source   Source
	embedder BatchEmbedder
	upserter Upserter
	opts     Options
}

// NewPipeline constructs a Pipeline over the given collaborators.
func NewPipeline(source Source, embedder BatchEmbedder, upserter Upserter, optFns ...func(o *Options)) *Pipeline {
	opts := Options{
		Chunking:    DefaultChunkOptions(),
		BatchSize:   100,
		MaxAttempts: 5,
		BackoffBase: time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Pipeline{source: source, embedder: embedder, upserter: upserter, opts: opts}
}

// Run ingests every markdown object for the user and project. The collection
// is created on first use, sized from the first embedding batch.
func (p *Pipeline) Run(ctx context.Context, userID, projectFolder string) (Stats, error) {
	objects, err := p.source.Objects(ctx, userID, projectFolder)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list objects: %w", err)
	}

	var chunks []core.Chunk
	for _, obj := range objects {
		chunks = append(chunks, ChunkMarkdown(userID, obj.Key, obj.Text, p.opts.Chunking)...)
	}
	stats := Stats{Objects: len(objects), Chunks: len(chunks)}
	if len(chunks) == 0 {
		return stats, nil
	}

	ensured := false
	for start := 0; start < len(chunks); start += p.opts.BatchSize {
		end := start + p.opts.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}
		vectors, err := p.embedBatchWithRetry(ctx, texts)
		if err != nil {
			return stats, err
		}

		if !ensured {
			if err := p.upserter.EnsureCollection(ctx, len(vectors[0])); err != nil {
				return stats, fmt.Errorf("failed to ensure collection: %w", err)
			}
			ensured = true
		}
		if err := p.upserter.Upsert(ctx, batch, vectors); err != nil {
			return stats, fmt.Errorf("failed to upsert batch: %w", err)
		}
		stats.Batches++
		p.opts.Logger.Info("ingested batch",
			"user_id", userID,
			"project_folder", projectFolder,
			"batch", stats.Batches,
			"chunks", len(batch),
		)
	}
	return stats, nil
}

// embedBatchWithRetry retries transient embedding failures with doubling
// backoff before giving up.
func (p *Pipeline) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	delay := p.opts.BackoffBase
	var lastErr error
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		p.opts.Logger.Warn("embedding attempt failed",
			"attempt", attempt,
			"error", err,
		)
		if attempt == p.opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("embedding failed after %d attempts: %w", p.opts.MaxAttempts, lastErr)
}

// DirSource reads markdown files from a local directory tree laid out as
// root/users/{user_id}/{project_folder}/*.md. Keys are slash-separated
// paths relative to root.
type DirSource struct {
	Root string
}

// Objects implements Source.
func (s DirSource) Objects(_ context.Context, userID, projectFolder string) ([]Object, error) {
	prefix := filepath.Join(s.Root, "users", userID)
	if projectFolder != "" {
		prefix = filepath.Join(prefix, projectFolder)
	}

	var objects []Object
	err := filepath.WalkDir(prefix, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		objects = append(objects, Object{
			Key:  filepath.ToSlash(rel),
			Text: string(data),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return objects, nil
}

// Compile-time check that DirSource implements Source.
var _ Source = DirSource{}
