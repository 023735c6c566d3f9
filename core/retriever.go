package core

import "context"

// VectorSearcher issues a similarity search restricted to the tenant key's
// exact-match filters. The tenant filter is a hard filter enforced by the
// backend, not a ranking factor: candidates outside the tenant must never
// appear. topK bounds the number of raw candidates returned.
//
// A backend failure is a hard failure for the caller; implementations must
// not substitute an empty result set for an outage.
type VectorSearcher interface {
	Search(ctx context.Context, tenant TenantKey, query string, topK int) ([]Candidate, error)
}

// Embedder converts free text into the vector representation expected by a
// VectorSearcher backend.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
