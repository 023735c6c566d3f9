package interaction

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Metrics summarizes a whole log file.
type Metrics struct {
	TotalQueries          int
	TotalCandidates       int
	FilteredCandidates    int
	Questions             []string
	AvgCandidatesPerQuery float64
	AvgFilterRate         float64
}

// ScoreAverages holds mean scores across all retrieved candidates.
type ScoreAverages struct {
	Vector   float64
	Metadata float64
	Combined float64
}

// CandidateStats aggregates retrieval and filtering behavior.
type CandidateStats struct {
	TotalRetrievals    int
	TotalCandidates    int
	FilteredCandidates int
	AvgScores          ScoreAverages
}

// SessionStats aggregates query volume per session.
type SessionStats struct {
	TotalSessions        int
	TotalQueries         int
	QueriesPerSession    map[string]int
	AvgQueriesPerSession float64
}

// QueryRecord is one received query with its context.
type QueryRecord struct {
	Timestamp time.Time
	SessionID string
	Question  string
}

// ReadEntries parses a JSONL interaction log. Lines carrying a textual
// prefix before the JSON object (older formatter output) are tolerated by
// skipping to the first brace; malformed lines are an error, not silently
// dropped.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if idx := strings.IndexByte(line, '{'); idx > 0 {
			line = line[idx:]
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return entries, nil
}

// ComputeMetrics derives overall metrics from parsed entries.
func ComputeMetrics(entries []Entry) Metrics {
	var m Metrics
	for _, e := range entries {
		switch e.Kind {
		case EventQueryReceived:
			m.TotalQueries++
			m.Questions = append(m.Questions, stringValue(e.Data, "question"))
		case EventCandidateFiltering:
			m.TotalCandidates += intValue(e.Data, "total_candidates")
			m.FilteredCandidates += intValue(e.Data, "filtered_candidates")
		}
	}
	if m.TotalQueries > 0 {
		m.AvgCandidatesPerQuery = float64(m.TotalCandidates) / float64(m.TotalQueries)
	}
	if m.TotalCandidates > 0 {
		m.AvgFilterRate = float64(m.FilteredCandidates) / float64(m.TotalCandidates)
	}
	return m
}

// ComputeCandidateStats derives per-candidate score averages.
func ComputeCandidateStats(entries []Entry) CandidateStats {
	var s CandidateStats
	var sums ScoreAverages
	count := 0
	for _, e := range entries {
		switch e.Kind {
		case EventCandidateRetrieved:
			s.TotalCandidates++
			sums.Vector += floatValue(e.Data, "vector_score")
			sums.Metadata += floatValue(e.Data, "metadata_bonus")
			sums.Combined += floatValue(e.Data, "combined_score")
			count++
		case EventCandidateFiltering:
			s.TotalRetrievals++
			s.FilteredCandidates += intValue(e.Data, "filtered_candidates")
		}
	}
	if count > 0 {
		s.AvgScores = ScoreAverages{
			Vector:   sums.Vector / float64(count),
			Metadata: sums.Metadata / float64(count),
			Combined: sums.Combined / float64(count),
		}
	}
	return s
}

// ComputeSessionStats derives query volume per session.
func ComputeSessionStats(entries []Entry) SessionStats {
	s := SessionStats{QueriesPerSession: make(map[string]int)}
	for _, e := range entries {
		if e.Kind != EventQueryReceived {
			continue
		}
		sessionID := stringValue(e.Data, "session_id")
		s.QueriesPerSession[sessionID]++
		s.TotalQueries++
	}
	s.TotalSessions = len(s.QueriesPerSession)
	if s.TotalSessions > 0 {
		s.AvgQueriesPerSession = float64(s.TotalQueries) / float64(s.TotalSessions)
	}
	return s
}

// Queries extracts received queries in log order, deduplicating entries that
// share timestamp and question (retried writes produce such doubles).
func Queries(entries []Entry) []QueryRecord {
	seen := make(map[string]struct{})
	var out []QueryRecord
	for _, e := range entries {
		if e.Kind != EventQueryReceived {
			continue
		}
		question := stringValue(e.Data, "question")
		key := e.Timestamp.Format(time.RFC3339Nano) + "_" + question
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, QueryRecord{
			Timestamp: e.Timestamp,
			SessionID: stringValue(e.Data, "session_id"),
			Question:  question,
		})
	}
	return out
}

func stringValue(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func floatValue(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intValue(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
