package fbp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildupEffect_ZeroBUIIsNeutral(t *testing.T) {
	for _, ft := range append([]FuelType{NonFuel}, FuelTypes...) {
		assert.Equal(t, 1.0, BuildupEffect(ft, 0), ft.String())
		assert.Equal(t, 1.0, BuildupEffect(ft, -1), ft.String())
	}
}

func TestBuildupEffect_Reference(t *testing.T) {
	assertClose(t, 0.4345312192426024, BuildupEffect(C3, 13.5))
	assertClose(t, 0.5479968092625566, BuildupEffect(S3, 13.5))
	assert.Equal(t, 1.0, BuildupEffect(O1a, 10.8))
	assert.Equal(t, 1.0, BuildupEffect(O1b, 250))
}

func TestBuildupEffect_AverageBUIIsUnity(t *testing.T) {
	for _, ft := range FuelTypes {
		k := Constants(ft)
		assertClose(t, 1.0, BuildupEffect(ft, k.BUIAvg), ft.String())
	}
}

func TestBuildupEffect_Cap(t *testing.T) {
	// The ceilings sit just under the asymptote, so only extreme BUI binds.
	k := Constants(S1)
	uncapped := BuildupEffectUncapped(S1, 1e9)

	assert.Greater(t, uncapped, k.MaxBE)
	assert.Equal(t, k.MaxBE, BuildupEffect(S1, 1e9))
	assert.Equal(t, BuildupEffectUncapped(C2, 20), BuildupEffect(C2, 20))
}

func TestBuildupEffect_Monotonic(t *testing.T) {
	prev := 0.0
	for bui := 5.0; bui <= 200; bui += 5 {
		be := BuildupEffect(D1, bui)
		assert.GreaterOrEqual(t, be, prev)
		assert.False(t, math.IsNaN(be))
		prev = be
	}
}
