package scoring

// Policy selects how vector similarity and metadata relevance are blended.
type Policy string

const (
	// PolicyBonus adds up to MaxBonus on top of the vector score:
	// combined = min(vector + metadata*MaxBonus, 1). Metadata can nudge a
	// borderline candidate over the threshold but never dominate.
	PolicyBonus Policy = "bonus"
	// PolicyWeightedAverage blends the two scores:
	// combined = vector*VectorWeight + metadata*(1-VectorWeight).
	PolicyWeightedAverage Policy = "weighted_average"
)

// Config carries the combiner policy and its constants plus the metadata
// scorer weights. The upstream system shipped with divergent constants
// (weighted vs bonus, 0.5 vs 0.65 thresholds); none of them is authoritative,
// so everything here is caller-configurable.
type Config struct {
	Policy       Policy  `yaml:"policy"`
	VectorWeight float64 `yaml:"vector_weight"`
	MaxBonus     float64 `yaml:"max_bonus"`
	Weights      Weights `yaml:"weights"`
}

// DefaultConfig returns the bonus policy with a 0.2 cap. The bonus policy is
// the default because it keeps vector similarity strictly dominant.
func DefaultConfig() Config {
	return Config{
		Policy:       PolicyBonus,
		VectorWeight: 0.6,
		MaxBonus:     0.2,
		Weights:      DefaultWeights(),
	}
}

// Combine blends a vector similarity score and a metadata score, both in
// [0,1], into one ranking score in [0,1]. Monotonic non-decreasing in both
// inputs under either policy.
func Combine(vector, metadata float64, cfg Config) float64 {
	var combined float64
	switch cfg.Policy {
	case PolicyWeightedAverage:
		combined = vector*cfg.VectorWeight + metadata*(1-cfg.VectorWeight)
	default:
		combined = vector + metadata*cfg.MaxBonus
	}
	if combined > 1.0 {
		combined = 1.0
	}
	if combined < 0 {
		combined = 0
	}
	return combined
}
