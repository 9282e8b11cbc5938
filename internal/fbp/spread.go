package fbp

import (
	"math"

	"github.com/couchcryptid/fbp-service/internal/fwi"
)

// LengthToBreadth returns the elliptical fire length-to-breadth ratio for
// net effective wind speed wsv (km/h).
func LengthToBreadth(ft FuelType, wsv float64) float64 {
	if ft.IsGrass() {
		if wsv < 1 {
			return 1
		}
		return 1.1 * math.Pow(wsv, 0.464)
	}
	return 1 + 8.729*math.Pow(1-math.Exp(-0.030*wsv), 2.155)
}

// FlankRateOfSpread returns the flank spread rate (m/min).
func FlankRateOfSpread(ros, bros, lb float64) float64 {
	return (ros + bros) / lb / 2
}

// BackRateOfSpread reruns the spread rate model with the back-fire spread
// index, which uses the wind function inverted against wsv.
func BackRateOfSpread(ft FuelType, ffmc, bui, wsv, fmc, sfc, pc, pdf, cc, cbh float64) float64 {
	bisi := 0.208 * math.Exp(-0.05039*wsv) * fwi.FineFuelMoistureFunction(ffmc)
	return RateOfSpread(ft, bisi, bui, fmc, sfc, pc, pdf, cc, cbh)
}

// RateOfSpreadAtTheta returns the spread rate (m/min) on the elliptical
// perimeter at angle theta (radians) from the head fire direction.
func RateOfSpreadAtTheta(ros, fros, bros, theta float64) float64 {
	// The expression cancels catastrophically where cos(theta) vanishes.
	if math.Abs(math.Cos(theta)) < 1e-6 {
		theta += 0.0001
	}
	c1 := math.Cos(theta)
	s1 := math.Sin(theta)
	c2, s2 := c1*c1, s1*s1

	num := fros*c1*math.Sqrt(fros*fros*c2+ros*bros*s2) - (ros*ros-bros*bros)/4*s2
	den := fros*fros*c2 + math.Pow((ros+bros)/2, 2)*s2
	return (ros-bros)/(2*c1) + (ros+bros)/(2*c1)*(num/den)
}

// DistanceAtTime returns the head fire distance travelled (m) after t
// minutes from a point ignition that accelerates towards ros.
func DistanceAtTime(ft FuelType, ros, t, cfb float64) float64 {
	alpha := accelerationParameter(ft, cfb)
	return ros * (t + math.Exp(-alpha*t)/alpha - 1/alpha)
}

func accelerationParameter(ft FuelType, cfb float64) float64 {
	switch ft {
	case C1, O1a, O1b, S1, S2, S3, D1:
		return 0.115
	default:
		return 0.115 - 18.8*math.Pow(cfb, 2.5)*math.Exp(-8*cfb)
	}
}
