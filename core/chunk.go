package core

// ChunkMetadata is the metadata record attached to every ingested chunk and
// carried back on every retrieval candidate.
type ChunkMetadata struct {
	UserID        string `json:"user_id"`
	ProjectFolder string `json:"project_folder"`
	Filename      string `json:"filename"`
	Source        string `json:"source"`
}

// Chunk is a unit of ingested text with a stable content-derived identifier.
// Chunks are created during ingestion and read-only afterwards.
type Chunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Candidate is a chunk returned by similarity search for one query, carrying
// the backend's cosine similarity score in [0,1]. Ephemeral: created per
// query and discarded after use.
type Candidate struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	Metadata    ChunkMetadata `json:"metadata"`
	VectorScore float64       `json:"vector_score"`
}

// ScoredCandidate is a Candidate plus the derived metadata-relevance score
// and the blended ranking score, both in [0,1].
type ScoredCandidate struct {
	Candidate
	MetadataScore float64 `json:"metadata_score"`
	CombinedScore float64 `json:"combined_score"`
}

// RetrievalOutcome is the result of tenant-filtered retrieval plus scoring.
// Kept holds the candidates at or above the threshold sorted by combined
// score descending; All holds every scored candidate for observability.
// Replaces exception-style "no candidates" signalling with an explicit
// variant: Grounded() decides the answering path.
type RetrievalOutcome struct {
	Kept []ScoredCandidate
	All  []ScoredCandidate
}

// Grounded reports whether retrieval produced context trustworthy enough to
// ground a generative answer.
func (o RetrievalOutcome) Grounded() bool { return len(o.Kept) > 0 }
