// Package qdrant implements core.VectorSearcher and the ingestion upsert
// surface on top of a Qdrant collection. Tenant isolation is enforced
// server-side through exact-match payload filters on user_id and
// project_folder; results are never post-filtered client-side.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/hupe1980/ragmesh/core"
)

// Config holds Qdrant connection configuration.
type Config struct {
	// URL is the Qdrant server address (e.g., "https://example.qdrant.io:6334").
	URL string

	// Collection is the name of the collection to search and upsert into.
	Collection string

	// APIKey is the optional API key for authentication.
	APIKey string
}

// Client wraps a Qdrant collection behind the retrieval and ingestion
// contracts. Query vectors are produced by the injected embedder.
type Client struct {
	client     *qdrant.Client
	embedder   core.Embedder
	collection string
}

// New creates a new Qdrant client.
func New(cfg Config, embedder core.Embedder) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}

	parsed := cfg.URL
	if !strings.HasPrefix(parsed, "http://") && !strings.HasPrefix(parsed, "https://") {
		parsed = "https://" + parsed
	}
	u, err := url.Parse(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	host := u.Hostname()
	port := 6334 // default gRPC port
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		port = p
	}

	qc, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Client{client: qc, embedder: embedder, collection: cfg.Collection}, nil
}

// Search implements core.VectorSearcher.
func (c *Client) Search(ctx context.Context, tenant core.TenantKey, query string, topK int) ([]core.Candidate, error) {
	if topK <= 0 {
		topK = 5
	}

	vector, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	limit := uint64(topK)
	points, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         tenantFilter(tenant),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	candidates := make([]core.Candidate, 0, len(points))
	for _, point := range points {
		cand := core.Candidate{VectorScore: float64(point.Score)}
		if point.Id != nil {
			if id := point.Id.GetUuid(); id != "" {
				cand.ID = id
			} else if num := point.Id.GetNum(); num != 0 {
				cand.ID = fmt.Sprintf("%d", num)
			}
		}
		for k, v := range point.Payload {
			switch k {
			case "text":
				cand.Text = v.GetStringValue()
			case "user_id":
				cand.Metadata.UserID = v.GetStringValue()
			case "project_folder":
				cand.Metadata.ProjectFolder = v.GetStringValue()
			case "filename":
				cand.Metadata.Filename = v.GetStringValue()
			case "source":
				cand.Metadata.Source = v.GetStringValue()
			}
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// Upsert stores chunks with their vectors. Chunk ids are content-derived
// UUIDs, so re-ingesting the same text overwrites rather than duplicates.
func (c *Client) Upsert(ctx context.Context, chunks []core.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":           chunk.Text,
				"user_id":        chunk.Metadata.UserID,
				"project_folder": chunk.Metadata.ProjectFolder,
				"filename":       chunk.Metadata.Filename,
				"source":         chunk.Metadata.Source,
			}),
		}
	}

	_, err := c.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// EnsureCollection creates the collection with cosine distance if missing.
func (c *Client) EnsureCollection(ctx context.Context, dimension int) error {
	exists, err := c.client.CollectionExists(ctx, c.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}
	err = c.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: c.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// tenantFilter builds the exact-match Must conditions for hard tenant
// isolation.
func tenantFilter(tenant core.TenantKey) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			matchKeyword("user_id", tenant.UserID),
			matchKeyword("project_folder", tenant.ProjectFolder),
		},
	}
}

func matchKeyword(key, value string) *qdrant.Condition {
	return &qdrant.Condition{
		ConditionOneOf: &qdrant.Condition_Field{
			Field: &qdrant.FieldCondition{
				Key:   key,
				Match: &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: value}},
			},
		},
	}
}

// Compile-time check that Client implements VectorSearcher.
var _ core.VectorSearcher = (*Client)(nil)
