// Package model hosts provider adapters for the generative and embedding
// contracts defined in core.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Resolve provider-specific response layouts inside the adapter
//   - Facilitate lightweight mocking for tests (MockCompleter, MockEmbedder)
//
// Providers (e.g. OpenAI, Anthropic) implement core.Completer and
// core.Embedder from their own subpackages so higher layers remain decoupled
// from vendor SDKs.
package model
