package fbp

import (
	"math"

	"github.com/couchcryptid/fbp-service/internal/fwi"
)

// isfLogFloor bounds the argument of the logarithm in the ISF inversion.
const isfLogFloor = 0.01

// Upper wind speed returned by the second inversion branch once ISF reaches
// the asymptote of the spread index curve.
const wseCeiling = 112.45

// SlopeFactor returns the upslope spread multiplier for ground slope gs (%).
func SlopeFactor(gs float64) float64 {
	if gs >= 70 {
		return 10
	}
	return math.Exp(3.533 * math.Pow(gs/100, 1.2))
}

// slopeRates holds the slope-adjusted zero-wind spread rates of the
// mixedwood blend components.
type slopeRates struct {
	c2, d1, m3, m4 float64
}

// SlopeAdjustment combines the observed wind with the wind speed that would
// produce the same spread on level ground as the slope does at zero wind.
// waz and saz are radians. It returns the net spread azimuth raz (radians)
// and the net effective wind speed wsv (km/h).
func SlopeAdjustment(ft FuelType, ffmc, ws, waz, gs, saz, fmc, sfc, pc, pdf, cc, cbh float64) (raz, wsv float64) {
	sf := SlopeFactor(gs)
	isz := fwi.InitialSpreadIndex(ffmc, 0)

	slopeRate := func(f FuelType, pdf float64) float64 {
		return RateOfSpread(f, isz, -1, fmc, sfc, pc, pdf, cc, cbh) * sf
	}
	rsf := slopeRate(ft, pdf)
	aux := slopeRates{
		c2: slopeRate(C2, pdf),
		d1: slopeRate(D1, pdf),
		m3: slopeRate(M3, 100),
		m4: slopeRate(M4, 100),
	}

	isf := slopeEquivalentISI(ft, rsf, CuringFactor(cc), pc, pdf, aux)
	wse := slopeEquivalentWind(isf, fwi.FineFuelMoistureFunction(ffmc))
	// Level ground adds no wind. A zero spread rate inverts to -Inf.
	if gs == 0 || math.IsNaN(wse) || math.IsInf(wse, 0) {
		wse = 0
	}

	wsx := ws*math.Sin(waz) + wse*math.Sin(saz)
	wsy := ws*math.Cos(waz) + wse*math.Cos(saz)
	wsv = math.Sqrt(wsx*wsx + wsy*wsy)
	// Calm wind on level ground has no net vector; spread is reported
	// along the wind azimuth.
	if wsv == 0 {
		return math.Mod(math.Mod(waz, 2*math.Pi)+2*math.Pi, 2*math.Pi), 0
	}
	raz = math.Atan2(wsx, wsy)
	if raz < 0 {
		raz += 2 * math.Pi
	}
	if raz >= 2*math.Pi {
		raz = 0
	}
	return raz, wsv
}

// slopeEquivalentISI inverts RSI = a*(1-exp(-b*ISI))^c for the spread index
// that reproduces rsf on level ground.
func slopeEquivalentISI(ft FuelType, rsf, cf, pc, pdf float64, aux slopeRates) float64 {
	k := Constants(ft)
	switch ft {
	case O1a, O1b:
		return invertSpreadCurve(k.A*cf, k.B, k.C, rsf)
	case M1, M2:
		return pc/100*slopeEquivalentISI(C2, aux.c2, cf, pc, pdf, aux) +
			(1-pc/100)*slopeEquivalentISI(D1, aux.d1, cf, pc, pdf, aux)
	case M3:
		return pdf/100*invertSpreadCurve(k.A, k.B, k.C, aux.m3) +
			(1-pdf/100)*slopeEquivalentISI(D1, aux.d1, cf, pc, pdf, aux)
	case M4:
		return pdf/100*invertSpreadCurve(k.A, k.B, k.C, aux.m4) +
			(1-pdf/100)*slopeEquivalentISI(D1, aux.d1, cf, pc, pdf, aux)
	default:
		return invertSpreadCurve(k.A, k.B, k.C, rsf)
	}
}

func invertSpreadCurve(a, b, c, rsf float64) float64 {
	inner := 1 - math.Pow(rsf/a, 1/c)
	if inner >= isfLogFloor {
		return math.Log(inner) / -b
	}
	// Also reached when inner is NaN.
	return math.Log(isfLogFloor) / -b
}

// slopeEquivalentWind solves ISI = 0.208*f(W)*ff for the wind speed W. The
// spread index curve has two branches; the exponential branch holds up to
// 40 km/h.
func slopeEquivalentWind(isf, ff float64) float64 {
	wse1 := math.Log(isf/(0.208*ff)) / 0.05039
	if wse1 <= 40 {
		return wse1
	}
	if isf < 0.999*2.496*ff {
		return 28 - math.Log(1-isf/(2.496*ff))/0.0818
	}
	return wseCeiling
}
