package interaction

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func sampleEntries() []Entry {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{Timestamp: ts, Kind: EventQueryReceived, Data: map[string]any{"session_id": "s1", "question": "Who rules Oakhaven?"}},
		{Timestamp: ts, Kind: EventCandidateRetrieved, Data: map[string]any{"vector_score": 0.8, "metadata_bonus": 0.4, "combined_score": 0.88}},
		{Timestamp: ts, Kind: EventCandidateRetrieved, Data: map[string]any{"vector_score": 0.4, "metadata_bonus": 0.0, "combined_score": 0.4}},
		{Timestamp: ts, Kind: EventCandidateFiltering, Data: map[string]any{"total_candidates": 2, "filtered_candidates": 1}},
		{Timestamp: ts, Kind: EventResponseGenerated, Data: map[string]any{"session_id": "s1"}},
		{Timestamp: ts.Add(time.Minute), Kind: EventQueryReceived, Data: map[string]any{"session_id": "s2", "question": "What lies beyond the pass?"}},
		{Timestamp: ts.Add(time.Minute), Kind: EventCandidateFiltering, Data: map[string]any{"total_candidates": 4, "filtered_candidates": 3}},
	}
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(sampleEntries())

	assert.Equal(t, 2, m.TotalQueries)
	assert.Equal(t, 6, m.TotalCandidates)
	assert.Equal(t, 4, m.FilteredCandidates)
	assert.Equal(t, []string{"Who rules Oakhaven?", "What lies beyond the pass?"}, m.Questions)
	assert.InDelta(t, 3.0, m.AvgCandidatesPerQuery, 1e-9)
	assert.InDelta(t, 4.0/6.0, m.AvgFilterRate, 1e-9)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)

	assert.Zero(t, m.TotalQueries)
	assert.Zero(t, m.AvgCandidatesPerQuery)
	assert.Zero(t, m.AvgFilterRate)
}

func TestComputeCandidateStats(t *testing.T) {
	s := ComputeCandidateStats(sampleEntries())

	assert.Equal(t, 2, s.TotalRetrievals)
	assert.Equal(t, 2, s.TotalCandidates)
	assert.Equal(t, 4, s.FilteredCandidates)
	assert.InDelta(t, 0.6, s.AvgScores.Vector, 1e-9)
	assert.InDelta(t, 0.2, s.AvgScores.Metadata, 1e-9)
	assert.InDelta(t, 0.64, s.AvgScores.Combined, 1e-9)
}

func TestComputeSessionStats(t *testing.T) {
	entries := append(sampleEntries(), Entry{
		Timestamp: time.Now(),
		Kind:      EventQueryReceived,
		Data:      map[string]any{"session_id": "s1", "question": "And the blacksmith?"},
	})
	s := ComputeSessionStats(entries)

	assert.Equal(t, 2, s.TotalSessions)
	assert.Equal(t, 3, s.TotalQueries)
	assert.Equal(t, 2, s.QueriesPerSession["s1"])
	assert.Equal(t, 1, s.QueriesPerSession["s2"])
	assert.InDelta(t, 1.5, s.AvgQueriesPerSession, 1e-9)
}

func TestQueriesDeduplicates(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dup := Entry{Timestamp: ts, Kind: EventQueryReceived, Data: map[string]any{"session_id": "s1", "question": "same"}}
	entries := []Entry{
		dup,
		dup,
		{Timestamp: ts.Add(time.Second), Kind: EventQueryReceived, Data: map[string]any{"session_id": "s1", "question": "same"}},
	}

	queries := Queries(entries)
	require.Len(t, queries, 2)
	assert.Equal(t, ts, queries[0].Timestamp)
	assert.Equal(t, ts.Add(time.Second), queries[1].Timestamp)
}
