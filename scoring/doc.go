// Package scoring implements the lexical metadata relevance scorer and the
// score combiner blending vector similarity with metadata signals. All
// functions are pure and synchronous; the weights, policy and constants are
// configuration rather than fixed values.
//
// Filenames and source paths often directly name the entities or topics a
// question asks about; the lexical match is a cheap high-precision signal
// that vector similarity alone misses for proper nouns.
package scoring
