package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineBonusPolicy(t *testing.T) {
	cfg := DefaultConfig()
	// vector=0.45, metadata=0.3 -> 0.45 + 0.3*0.2 = 0.51
	assert.InDelta(t, 0.51, Combine(0.45, 0.3, cfg), 1e-9)
	assert.InDelta(t, 0.45, Combine(0.45, 0, cfg), 1e-9)
}

func TestCombineWeightedAveragePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyWeightedAverage
	// 0.5*0.6 + 1.0*0.4 = 0.7
	assert.InDelta(t, 0.7, Combine(0.5, 1.0, cfg), 1e-9)
}

func TestCombineCappedAtOne(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, Combine(0.95, 1.0, cfg))
	cfg.Policy = PolicyWeightedAverage
	assert.Equal(t, 1.0, Combine(1.0, 1.0, cfg))
}

func TestCombineMonotonicInMetadata(t *testing.T) {
	for _, policy := range []Policy{PolicyBonus, PolicyWeightedAverage} {
		cfg := DefaultConfig()
		cfg.Policy = policy
		prev := -1.0
		for m := 0.0; m <= 1.0; m += 0.05 {
			got := Combine(0.42, m, cfg)
			assert.GreaterOrEqual(t, got, prev, "policy %s metadata %f", policy, m)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
			prev = got
		}
	}
}

func TestCombineMonotonicInVector(t *testing.T) {
	for _, policy := range []Policy{PolicyBonus, PolicyWeightedAverage} {
		cfg := DefaultConfig()
		cfg.Policy = policy
		prev := -1.0
		for v := 0.0; v <= 1.0; v += 0.05 {
			got := Combine(v, 0.3, cfg)
			assert.GreaterOrEqual(t, got, prev, "policy %s vector %f", policy, v)
			prev = got
		}
	}
}
