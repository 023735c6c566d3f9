package scoring

import (
	"path"
	"regexp"
	"strings"

	"github.com/hupe1980/ragmesh/core"
)

var wordRe = regexp.MustCompile(`\w+`)

// Weights holds the per-signal contributions of the metadata scorer.
// Exact substring matches outweigh partial token overlap, and filename
// signals outweigh source path signals.
type Weights struct {
	FilenameExact   float64 `yaml:"filename_exact"`
	FilenamePartial float64 `yaml:"filename_partial"`
	SourceExact     float64 `yaml:"source_exact"`
	SourcePartial   float64 `yaml:"source_partial"`
}

// DefaultWeights returns the baseline weight set.
func DefaultWeights() Weights {
	return Weights{
		FilenameExact:   0.4,
		FilenamePartial: 0.2,
		SourceExact:     0.3,
		SourcePartial:   0.1,
	}
}

// MetadataScore computes the lexical relevance of a chunk's metadata to the
// question, in [0,1]. The filename (extension stripped) and the source
// path's trailing segment are scored independently: a verbatim substring
// match of the question awards the exact weight, otherwise the token-overlap
// fraction scales the partial weight. Missing fields contribute zero.
func MetadataScore(question string, meta core.ChunkMetadata, w Weights) float64 {
	questionLower := strings.ToLower(question)
	questionTokens := tokenSet(questionLower)

	score := 0.0
	if meta.Filename != "" {
		score += fieldScore(questionLower, questionTokens, stripExt(meta.Filename), w.FilenameExact, w.FilenamePartial)
	}
	if meta.Source != "" {
		score += fieldScore(questionLower, questionTokens, stripExt(path.Base(meta.Source)), w.SourceExact, w.SourcePartial)
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// fieldScore applies the exact/partial logic for one metadata field.
func fieldScore(questionLower string, questionTokens map[string]struct{}, name string, exact, partial float64) float64 {
	name = strings.ToLower(name)
	if name == "" {
		return 0
	}
	if strings.Contains(questionLower, name) {
		return exact
	}
	nameTokens := tokenSet(name)
	if len(nameTokens) == 0 {
		return 0
	}
	common := 0
	for tok := range nameTokens {
		if _, ok := questionTokens[tok]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	return partial * float64(common) / float64(len(nameTokens))
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func tokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(s, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
