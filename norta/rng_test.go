package norta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/nomsim/norta"
)

// TestNewRand_SeedPolicy checks that seed 0 maps to the default seed and
// that distinct seeds give distinct streams.
func TestNewRand_SeedPolicy(t *testing.T) {
	var a, b, c = norta.NewRand(0), norta.NewRand(1), norta.NewRand(2)
	var i int
	var same = true
	for i = 0; i < 8; i++ {
		x, y, z := a.NormFloat64(), b.NormFloat64(), c.NormFloat64()
		assert.Equal(t, x, y, "draw %d", i)
		if y != z {
			same = false
		}
	}
	assert.False(t, same, "seeds 1 and 2 produced the same stream")
}
