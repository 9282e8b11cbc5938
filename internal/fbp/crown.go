package fbp

import "math"

// CriticalSurfaceIntensity returns the surface intensity (kW/m) needed to
// ignite the crown, given foliar moisture content and crown base height.
func CriticalSurfaceIntensity(fmc, cbh float64) float64 {
	return 0.001 * math.Pow(cbh, 1.5) * math.Pow(460+25.9*fmc, 1.5)
}

// CriticalSpreadRate converts a critical surface intensity into the surface
// spread rate (m/min) at which crowning starts. sfc must be non-zero.
func CriticalSpreadRate(csi, sfc float64) float64 {
	return csi / (300 * sfc)
}

// CrownFractionBurned returns the share of crown fuel consumed. It is zero
// whenever ros does not exceed rso, including a NaN rso.
func CrownFractionBurned(ros, rso float64) float64 {
	if ros > rso {
		return 1 - math.Exp(-0.23*(ros-rso))
	}
	return 0
}

// FireType classifies a fire by crown fraction burned.
type FireType string

const (
	SurfaceFire           FireType = "surface"
	IntermittentCrownFire FireType = "intermittent_crown"
	CrownFire             FireType = "crown"
)

// FireTypeFromCFB maps crown fraction burned onto the FBP fire type classes.
func FireTypeFromCFB(cfb float64) FireType {
	switch {
	case cfb < 0.1:
		return SurfaceFire
	case cfb < 0.9:
		return IntermittentCrownFire
	default:
		return CrownFire
	}
}

// IntensityClass returns the 1-6 head fire intensity class for hfi (kW/m).
func IntensityClass(hfi float64) int {
	switch {
	case hfi < 10:
		return 1
	case hfi < 500:
		return 2
	case hfi < 2000:
		return 3
	case hfi < 4000:
		return 4
	case hfi < 10000:
		return 5
	default:
		return 6
	}
}
