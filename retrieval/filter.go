package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/scoring"
)

// Options configures the candidate filter.
type Options struct {
	// Scoring carries the combiner policy and metadata weights.
	Scoring scoring.Config
	// Logger receives warnings about backend misbehavior.
	Logger logging.Logger
}

// Filter retrieves top-K candidates from the vector index scoped by tenant
// filters, computes blended relevance scores and partitions candidates into
// kept and rejected sets.
type Filter struct {
	searcher core.VectorSearcher
	opts     Options
}

// NewFilter constructs a Filter over the given searcher with optional
// overrides.
func NewFilter(searcher core.VectorSearcher, optFns ...func(o *Options)) *Filter {
	opts := Options{
		Scoring: scoring.DefaultConfig(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Filter{searcher: searcher, opts: opts}
}

// Retrieve issues the tenant-filtered similarity search and returns the
// scored outcome. topK bounds candidates considered before filtering, not
// after; threshold is inclusive (combined >= threshold keeps the candidate).
// Combined scores are computed unconditionally for every raw candidate so
// observability never influences the decision path.
//
// A backend failure propagates as a hard error: silently answering without
// context would mask a retrieval outage as "no relevant context".
func (f *Filter) Retrieve(ctx context.Context, tenant core.TenantKey, question string, topK int, threshold float64) (core.RetrievalOutcome, error) {
	candidates, err := f.searcher.Search(ctx, tenant, question, topK)
	if err != nil {
		return core.RetrievalOutcome{}, &core.Error{
			Kind:   core.KindUnavailable,
			Tenant: tenant,
			Op:     "retrieval.search",
			Err:    fmt.Errorf("vector search failed: %w", err),
		}
	}

	outcome := core.RetrievalOutcome{
		All:  make([]core.ScoredCandidate, 0, len(candidates)),
		Kept: make([]core.ScoredCandidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		// The backend enforces the tenant filter server-side; anything that
		// slips through is a backend defect and must not reach the prompt.
		if !tenant.Matches(c.Metadata) {
			f.opts.Logger.Warn("dropping candidate outside tenant scope",
				"candidate_id", c.ID,
				"tenant", tenant.String(),
			)
			continue
		}
		metadataScore := scoring.MetadataScore(question, c.Metadata, f.opts.Scoring.Weights)
		scored := core.ScoredCandidate{
			Candidate:     c,
			MetadataScore: metadataScore,
			CombinedScore: scoring.Combine(c.VectorScore, metadataScore, f.opts.Scoring),
		}
		outcome.All = append(outcome.All, scored)
		if scored.CombinedScore >= threshold {
			outcome.Kept = append(outcome.Kept, scored)
		}
	}

	sort.SliceStable(outcome.Kept, func(i, j int) bool {
		return outcome.Kept[i].CombinedScore > outcome.Kept[j].CombinedScore
	})

	return outcome, nil
}
