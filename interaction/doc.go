// Package interaction records the decision trail of every answered query as
// structured JSONL events and offers offline analysis over those logs.
//
// Recording is fire-and-forget: the orchestrator must never block or fail
// because observability is slow, so the file recorder buffers events in a
// channel and drops on overflow, counting what it dropped.
package interaction
