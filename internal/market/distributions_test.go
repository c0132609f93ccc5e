package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniform_StaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		v := Uniform(rng, 10, 20)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
	}
}

func TestNormal_CentersOnMean(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var sum float64
	const n = 5000
	for i := 0; i < n; i++ {
		sum += Normal(rng, 50, 1)
	}
	mean := sum / n
	assert.InDelta(t, 50, mean, 0.5)
}
