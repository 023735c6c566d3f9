package interaction

import "time"

// EventKind discriminates interaction log entries.
type EventKind string

const (
	// EventQueryReceived marks the arrival of a user query.
	EventQueryReceived EventKind = "query_received"
	// EventCandidateRetrieved carries the per-candidate score breakdown.
	EventCandidateRetrieved EventKind = "candidate_retrieved"
	// EventCandidateFiltering summarizes the keep/reject split.
	EventCandidateFiltering EventKind = "candidate_filtering"
	// EventResponseGenerated marks a completed answer.
	EventResponseGenerated EventKind = "response_generated"
)

// Entry is one interaction log line.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      EventKind      `json:"event_type"`
	Data      map[string]any `json:"data"`
}
