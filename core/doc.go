// Package core provides the foundational domain types and collaborator
// contracts used by RAGMesh. It defines the core abstractions for:
//
//   - Tenant keys (user/project pairs scoping every retrieval and memory read)
//   - Chunks and candidates (ingested text units and their scored retrieval
//     counterparts)
//   - Conversation messages and the MemoryStore contract
//   - The VectorSearcher, Completer and Embedder collaborator interfaces
//   - The RetrievalOutcome variant deciding grounded vs ungrounded answering
//
// The package intentionally keeps implementation concerns (persistence,
// provider SDKs, orchestration) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core
