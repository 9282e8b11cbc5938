package fbp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriticalSurfaceIntensity(t *testing.T) {
	assert.Equal(t, 0.0, CriticalSurfaceIntensity(120, 0))
	// 0.001 * 3^1.5 * (460 + 25.9*100)^1.5
	assertClose(t, 0.001*math.Pow(3, 1.5)*math.Pow(3050, 1.5), CriticalSurfaceIntensity(100, 3))
}

func TestCriticalSpreadRate_ZeroConsumption(t *testing.T) {
	assert.True(t, math.IsNaN(CriticalSpreadRate(0, 0)))
	assert.True(t, math.IsInf(CriticalSpreadRate(10, 0), 1))
	assert.InDelta(t, 1.0, CriticalSpreadRate(600, 2), 1e-12)
}

func TestCrownFractionBurned(t *testing.T) {
	assert.Equal(t, 0.0, CrownFractionBurned(5, 5))
	assert.Equal(t, 0.0, CrownFractionBurned(4, 5))
	assert.Equal(t, 0.0, CrownFractionBurned(4, math.NaN()))

	prev := 0.0
	for ros := 5.5; ros < 40; ros += 0.5 {
		cfb := CrownFractionBurned(ros, 5)
		assert.Greater(t, cfb, prev, "ros=%v", ros)
		assert.Less(t, cfb, 1.0)
		prev = cfb
	}
}

func TestFireTypeFromCFB(t *testing.T) {
	tests := []struct {
		cfb  float64
		want FireType
	}{
		{0, SurfaceFire},
		{0.099, SurfaceFire},
		{0.1, IntermittentCrownFire},
		{0.89, IntermittentCrownFire},
		{0.9, CrownFire},
		{1, CrownFire},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FireTypeFromCFB(tt.cfb), "cfb=%v", tt.cfb)
	}
}

func TestIntensityClass(t *testing.T) {
	tests := []struct {
		hfi  float64
		want int
	}{
		{0, 1},
		{9.9, 1},
		{10, 2},
		{499, 2},
		{500, 3},
		{2000, 4},
		{4000, 5},
		{9999, 5},
		{10000, 6},
		{61913, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntensityClass(tt.hfi), "hfi=%v", tt.hfi)
	}
}
