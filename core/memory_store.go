package core

import "context"

// MemoryStore persists ordered per-session conversation history.
//
// Contract:
//   - History returns messages in chronological append order
//   - sessions are fully independent; no cross-session reads
//   - entries expire after a fixed inactivity TTL measured from last write;
//     expiry is the store's responsibility, not the caller's
//   - implementations must serialize concurrent writes to the same session
type MemoryStore interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
}
