// Package ingest turns markdown documents into embedded chunks in the
// vector store. Chunk ids are derived from chunk content, so re-running
// ingestion over unchanged documents overwrites points in place instead of
// duplicating them.
//
// Retry with backoff lives only here: ingestion is offline batch work where
// waiting out a rate limit is cheap. The live answering path never retries.
package ingest
