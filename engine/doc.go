// Package engine implements the response orchestrator: the single decision
// point that turns a user question into an answer.
//
// One Answer call runs the full pipeline:
//  1. Validate the request (tenant key, session id, question)
//  2. Append the user turn to conversation memory
//  3. Retrieve and score candidates scoped to the tenant
//  4. Pick the grounded path (context + history) or the memory-only
//     fallback (history alone) based on the retrieval outcome
//  5. Generate the completion and append the assistant turn
//
// The split between grounded and memory-only answering is the engine's core
// behavior: an empty kept set is a normal outcome, not an error, and the
// conversation continues on history alone. Every decision along the way is
// recorded as interaction events for offline analysis.
package engine
