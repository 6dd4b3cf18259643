package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Share ---

func TestShare_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, Share(10, 0))
	assert.Equal(t, 0.0, Share(0, 0))
}

func TestShare_Normal(t *testing.T) {
	assert.InDelta(t, 0.25, Share(1, 4), 1e-9)
}

// --- Shortfall ---

func TestShortfall(t *testing.T) {
	assert.Equal(t, 0.0, Shortfall(10, 10), "exactly meeting is no shortfall")
	assert.Equal(t, 0.0, Shortfall(12, 10))
	assert.InDelta(t, 0.5, Shortfall(5, 10), 1e-9)
	assert.Equal(t, 1.0, Shortfall(0, 10))
	assert.Equal(t, 0.0, Shortfall(5, 0))
}

// --- Allocate ---

func TestAllocate_SumsExactly(t *testing.T) {
	for _, total := range []int64{0, 1, 7, 100, 9999, 123457} {
		parts := Allocate(total, []float64{5, 3, 1})
		var sum int64
		for _, p := range parts {
			sum += p
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestAllocate_ZeroWeightGetsNothing(t *testing.T) {
	parts := Allocate(1001, []float64{2, 1, 0})
	assert.Equal(t, int64(0), parts[2])
	assert.Equal(t, int64(1001), parts[0]+parts[1])
}

func TestAllocate_AllZeroWeights(t *testing.T) {
	assert.Equal(t, []int64{0, 0}, Allocate(500, []float64{0, 0}))
}
