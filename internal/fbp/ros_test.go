package fbp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateOfSpreadExtended_Reference(t *testing.T) {
	tests := []struct {
		name    string
		ft      FuelType
		args    [8]float64 // isi, bui, fmc, sfc, pc, pdf, cc, cbh
		wantROS float64
	}{
		{"C3 without crown", C3, [8]float64{120.6, 437.4, 0, 0, 0, 0, 0, 0}, 132.34133371748217},
		{"C6 plantation", C6, [8]float64{277.2, 656.1, 218.7, 6561, 81, 81, 54, 72.9}, 35.30930607800089},
		{"O1a cured grass", O1a, [8]float64{6.3, 218.7, 437.4, 19683, 54, 81, 54, 72.9}, 2.1900055814792427},
		{"S2 slash", S2, [8]float64{151.2, 437.4, 0, 6561, 27, 0, 0, 0}, 48.52361319847542},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			got := RateOfSpreadExtended(tt.ft, a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
			assertClose(t, tt.wantROS, got.ROS)
			assert.Equal(t, got.ROS, RateOfSpread(tt.ft, a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7]))
		})
	}
}

func TestRateOfSpreadExtended_C3WithoutCrownHasNoCrownFraction(t *testing.T) {
	got := RateOfSpreadExtended(C3, 120.6, 437.4, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, 0.0, got.CFB)
	assert.Equal(t, 0.0, got.CSI)
	assert.True(t, math.IsNaN(got.RSO))
}

func TestRateOfSpreadExtended_NonFuel(t *testing.T) {
	got := RateOfSpreadExtended(NonFuel, 50, 80, 100, 0, 50, 35, 80, 0)
	assert.Equal(t, minROS, got.ROS)
	assert.Equal(t, 0.0, got.CFB)
	assert.Equal(t, 0.0, SurfaceFuelConsumption(NonFuel, 92, 80))
	assert.Equal(t, 0.0, CrownFuelConsumption(NonFuel, CrownFuelLoad(NonFuel), got.CFB, 50, 35))
}

func TestRateOfSpreadExtended_Deterministic(t *testing.T) {
	first := RateOfSpreadExtended(M2, 12.5, 60, 97, 2.4, 60, 35, 80, 6)
	for range 10 {
		_ = RateOfSpreadExtended(C6, 30, 80, 100, 2, 50, 35, 80, 7)
		assert.Equal(t, first, RateOfSpreadExtended(M2, 12.5, 60, 97, 2.4, 60, 35, 80, 6))
	}
}

func TestRateOfSpreadExtended_C6CrownTransition(t *testing.T) {
	// Low critical threshold: crowning with ROS between surface and crown rates.
	crowning := RateOfSpreadExtended(C6, 30, 80, 97, 3, 50, 35, 80, 2)
	assert.Greater(t, crowning.CFB, 0.0)

	// High crown base height keeps the fire on the surface.
	surface := RateOfSpreadExtended(C6, 30, 80, 97, 3, 50, 35, 80, 30)
	assert.Equal(t, 0.0, surface.CFB)
	assert.Greater(t, crowning.ROS, surface.ROS)
}

func TestPotentialSpreadRate_MixedwoodComponents(t *testing.T) {
	isi := 17.3
	c2 := potentialSpreadRate(C2, isi, 0, 0)
	d1 := potentialSpreadRate(D1, isi, 0, 0)

	assert.Equal(t, c2, potentialSpreadRate(M1, isi, 100, 0))
	assert.Equal(t, d1, potentialSpreadRate(M1, isi, 0, 0))
	assertClose(t, 0.4*c2+0.6*d1, potentialSpreadRate(M1, isi, 40, 0))
	assertClose(t, 0.4*c2+0.2*0.6*d1, potentialSpreadRate(M2, isi, 40, 0))

	m3 := rsiCurve(Constants(M3), isi)
	m4 := rsiCurve(Constants(M4), isi)
	assertClose(t, 0.3*m3+0.7*d1, potentialSpreadRate(M3, isi, 0, 30))
	assertClose(t, 0.3*m4+0.2*0.7*d1, potentialSpreadRate(M4, isi, 0, 30))
}

func TestPotentialSpreadRate_C6IgnoresTable(t *testing.T) {
	assertClose(t, 30*math.Pow(1-math.Exp(-0.08*20), 3), potentialSpreadRate(C6, 20, 0, 0))
}

func TestCuringFactor_ContinuousAtThreshold(t *testing.T) {
	below := CuringFactor(math.Nextafter(58.8, 0))
	at := CuringFactor(58.8)
	assert.InDelta(t, at, below, 1e-3)
	assert.InDelta(t, 0.176, at, 1e-12)
	assert.Less(t, CuringFactor(20), 0.02)
}

func TestRateOfSpread_GrassScalesWithCuring(t *testing.T) {
	low := RateOfSpread(O1b, 10, 50, 100, 0.3, 0, 0, 40, 0)
	high := RateOfSpread(O1b, 10, 50, 100, 0.3, 0, 0, 95, 0)
	assert.Greater(t, high, low)
	assertClose(t, CuringFactor(95)/CuringFactor(40), high/low)
}
