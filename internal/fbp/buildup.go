package fbp

import "math"

// BuildupEffect returns the buildup-index multiplier on spread rate for ft,
// capped at the fuel type's MaxBE. A non-positive bui or a fuel type without
// an average BUI yields 1.
func BuildupEffect(ft FuelType, bui float64) float64 {
	k := Constants(ft)
	be := buildupEffect(k, bui)
	if k.BUIAvg > 0 && bui > 0 {
		return math.Min(be, k.MaxBE)
	}
	return be
}

// BuildupEffectUncapped is BuildupEffect without the MaxBE ceiling.
func BuildupEffectUncapped(ft FuelType, bui float64) float64 {
	return buildupEffect(Constants(ft), bui)
}

func buildupEffect(k FuelConstants, bui float64) float64 {
	if bui <= 0 || k.BUIAvg <= 0 {
		return 1
	}
	return math.Exp(50 * math.Log(k.Q) * (1/bui - 1/k.BUIAvg))
}
