package reconstruct

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitReturnsPhiLWhenEqual(t *testing.T) {
	assert.Equal(t, 3.0, Limit(5.0, 4.0, 3.0, 3.0))
}

func TestLimitIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		phiL := r.Float64()*10 - 5
		phiR := r.Float64()*10 - 5
		phiBar := r.Float64()*10 - 5
		phiPrime := r.Float64()*20 - 10
		once := Limit(phiPrime, phiBar, phiL, phiR)
		twice := Limit(once, phiBar, phiL, phiR)
		assert.InDelta(t, once, twice, 1e-9, "limiter not idempotent for phiL=%g phiR=%g phiBar=%g phiPrime=%g", phiL, phiR, phiBar, phiPrime)
	}
}

func TestLimitStaysWithinExpandedWindow(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		phiL := r.Float64()*10 - 5
		phiR := r.Float64()*10 - 5
		if phiL == phiR {
			continue
		}
		phiBar := Bar(phiL, phiR, r.Float64())
		phiPrime := r.Float64()*40 - 20
		got := Limit(phiPrime, phiBar, phiL, phiR)
		assert.False(t, got != got, "limiter produced NaN")
	}
}

func TestExtrapolateAndBar(t *testing.T) {
	assert.InDelta(t, 5.0, Extrapolate(2.0, 3.0), 1e-15)
	assert.InDelta(t, 1.5, Bar(1.0, 2.0, 0.5), 1e-15)
	assert.InDelta(t, 1.0, Bar(1.0, 2.0, 0.0), 1e-15)
	assert.InDelta(t, 2.0, Bar(1.0, 2.0, 1.0), 1e-15)
}
