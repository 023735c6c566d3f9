// Package retrieval houses the candidate filter: tenant-scoped similarity
// search followed by metadata scoring, score combination and threshold
// filtering. The vector backend is consumed through core.VectorSearcher;
// a Qdrant implementation lives in the qdrant sub-package.
package retrieval
