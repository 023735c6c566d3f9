package ingest

import (
	"crypto/sha256"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hupe1980/ragmesh/core"
)

// ChunkOptions tunes the word-window chunker.
type ChunkOptions struct {
	// ChunkSize is the window length in words.
	ChunkSize int
	// Overlap is how many words consecutive windows share.
	Overlap int
}

// DefaultChunkOptions returns the baseline 500-word window with 100 words
// of overlap.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{ChunkSize: 500, Overlap: 100}
}

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisRe   = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
)

// stripMarkdown reduces markdown to plain text: fences and images drop,
// links keep their label, emphasis and heading markers unwrap.
func stripMarkdown(text string) string {
	text = codeFenceRe.ReplaceAllString(text, " ")
	text = imageRe.ReplaceAllString(text, " ")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "$1")
	return text
}

// ChunkID derives the stable chunk identifier from its text: a UUID built
// from the leading 16 bytes of the SHA-256 digest.
func ChunkID(text string) string {
	sum := sha256.Sum256([]byte(text))
	id, err := uuid.FromBytes(sum[:16])
	if err != nil {
		// unreachable: FromBytes only fails on length mismatch
		panic(err)
	}
	return id.String()
}

// MetadataFromKey derives chunk metadata from an object key laid out as
// users/{user_id}/{project_folder}/{filename}. Objects directly under the
// user prefix fall into the "root" project.
func MetadataFromKey(userID, key string) core.ChunkMetadata {
	parts := strings.Split(key, "/")
	projectFolder := "root"
	if len(parts) > 3 {
		projectFolder = parts[2]
	}
	return core.ChunkMetadata{
		UserID:        userID,
		ProjectFolder: projectFolder,
		Filename:      parts[len(parts)-1],
		Source:        key,
	}
}

// ChunkMarkdown splits one markdown document into overlapping word-window
// chunks carrying the metadata derived from its key. Whitespace-only
// windows are skipped.
func ChunkMarkdown(userID, key, text string, opts ChunkOptions) []core.Chunk {
	if opts.ChunkSize <= 0 {
		opts = DefaultChunkOptions()
	}
	stride := opts.ChunkSize - opts.Overlap
	if stride <= 0 {
		stride = opts.ChunkSize
	}

	meta := MetadataFromKey(userID, key)
	words := strings.Fields(stripMarkdown(text))

	var chunks []core.Chunk
	for i := 0; i < len(words); i += stride {
		end := i + opts.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunkText := strings.Join(words[i:end], " ")
		if strings.TrimSpace(chunkText) == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{
			ID:       ChunkID(chunkText),
			Text:     chunkText,
			Metadata: meta,
		})
		if end == len(words) {
			break
		}
	}
	return chunks
}
