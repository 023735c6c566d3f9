// Package memory contains concrete MemoryStore implementations. The store
// interface resides in the core package. Import
// github.com/hupe1980/ragmesh/core and depend on core.MemoryStore in your
// code; select an implementation at wiring time.
//
// Two stores are available:
//   - InMemoryStore: process local, suited for tests and demos
//   - RedisStore: shared across processes, with server-side expiry
//
// Both honor the same contract: chronological append order, strict session
// isolation and a sliding inactivity TTL refreshed on every write.
package memory
