// Package ragmesh provides a high-level façade over the response engine and
// its collaborators (retrieval, scoring, memory, interaction logging). Most
// applications interact with this package by:
//  1. Creating an Assistant via New() with their vector searcher and
//     completer (optionally overriding the in-memory conversation store)
//  2. Answering questions via Answer()
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply the Redis memory store,
// a structured logger and a file recorder.
package ragmesh

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/ragmesh/config"
	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/engine"
	"github.com/hupe1980/ragmesh/interaction"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/memory"
	"github.com/hupe1980/ragmesh/retrieval"
	"github.com/hupe1980/ragmesh/scoring"
)

// Options configures the Assistant.
type Options struct {
	// Scoring carries the combiner policy and metadata weights.
	Scoring scoring.Config

	// Threshold is the inclusive combined-score cutoff.
	Threshold float64

	// TopK is the number of raw candidates requested per query.
	TopK int

	// MemoryStore holds conversation history. Defaults to the in-memory
	// store with a one hour TTL.
	MemoryStore core.MemoryStore

	// Recorder receives interaction events. Defaults to discarding them.
	Recorder interaction.Recorder

	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

// Assistant is the high-level façade aggregating the engine and services.
type Assistant struct {
	opts   Options
	engine *engine.Engine
}

// New creates an Assistant over the given search backend and completer.
func New(searcher core.VectorSearcher, completer core.Completer, optFns ...func(o *Options)) *Assistant {
	opts := Options{
		Scoring:     scoring.DefaultConfig(),
		Threshold:   0.5,
		TopK:        5,
		MemoryStore: memory.NewInMemoryStore(),
		Recorder:    interaction.NoOpRecorder{},
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	filter := retrieval.NewFilter(searcher, func(o *retrieval.Options) {
		o.Scoring = opts.Scoring
		o.Logger = opts.Logger
	})
	eng := engine.New(filter, completer, opts.MemoryStore, func(o *engine.Options) {
		o.DefaultThreshold = opts.Threshold
		o.DefaultTopK = opts.TopK
		o.Logger = opts.Logger
		o.Recorder = opts.Recorder
	})

	return &Assistant{opts: opts, engine: eng}
}

// NewFromConfig creates an Assistant with options mapped from the
// application config: scoring policy and weights, filter threshold and
// top-k, the logging level and format, and the memory backend ("memory" or
// "redis", with the Redis password taken from secrets). Functional options
// run last and win over the config.
func NewFromConfig(cfg *config.AppConfig, secrets config.Secrets, searcher core.VectorSearcher, completer core.Completer, optFns ...func(o *Options)) *Assistant {
	ttl := time.Duration(cfg.Memory.TTLSecs) * time.Second

	var store core.MemoryStore
	if cfg.Memory.Type == "redis" && cfg.Memory.Redis != nil {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Memory.Redis.Addr,
			Password: secrets.RedisPassword,
			DB:       cfg.Memory.Redis.DB,
		})
		store = memory.NewRedisStore(client, func(o *memory.RedisOptions) {
			o.TTL = ttl
		})
	} else {
		store = memory.NewInMemoryStore(func(o *memory.InMemoryOptions) {
			o.TTL = ttl
		})
	}

	logger := logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})

	fromConfig := func(o *Options) {
		o.Scoring = cfg.Scoring
		o.Threshold = cfg.Retrieval.Threshold
		o.TopK = cfg.Retrieval.TopK
		o.MemoryStore = store
		o.Logger = logger
	}
	return New(searcher, completer, append([]func(o *Options){fromConfig}, optFns...)...)
}

// Answer runs one question through the pipeline.
func (a *Assistant) Answer(ctx context.Context, req engine.Request) (engine.Response, error) {
	return a.engine.Answer(ctx, req)
}
