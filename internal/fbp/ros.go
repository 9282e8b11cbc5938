package fbp

import "math"

// minROS keeps downstream logarithms and ratios finite when a fuel cannot
// carry fire.
const minROS = 1e-6

// Reference foliar moisture effect for C6 crown spread.
const fmeAvg = 0.778

// SpreadRate bundles the outputs of one rate-of-spread evaluation.
type SpreadRate struct {
	ROS float64 // rate of spread (m/min)
	CFB float64 // crown fraction burned
	CSI float64 // critical surface intensity (kW/m)
	RSO float64 // critical surface spread rate (m/min)
}

// CuringFactor returns the grass curing factor for degree of curing cc (%).
func CuringFactor(cc float64) float64 {
	if cc < 58.8 {
		return 0.005 * (math.Exp(0.061*cc) - 1)
	}
	return 0.176 + 0.02*(cc-58.8)
}

// RateOfSpread returns only the final spread rate from RateOfSpreadExtended.
func RateOfSpread(ft FuelType, isi, bui, fmc, sfc, pc, pdf, cc, cbh float64) float64 {
	return RateOfSpreadExtended(ft, isi, bui, fmc, sfc, pc, pdf, cc, cbh).ROS
}

// RateOfSpreadExtended evaluates the spread rate for ft together with the
// crown transition quantities. A negative bui disables buildup damping.
func RateOfSpreadExtended(ft FuelType, isi, bui, fmc, sfc, pc, pdf, cc, cbh float64) SpreadRate {
	rsi := potentialSpreadRate(ft, isi, pc, pdf)
	if ft.IsGrass() {
		rsi *= CuringFactor(cc)
	}

	csi := CriticalSurfaceIntensity(fmc, cbh)
	rso := CriticalSpreadRate(csi, sfc)
	rss := rsi * BuildupEffect(ft, bui)

	var cfb, ros float64
	if ft == C6 {
		fme := math.Pow(1.5-0.00275*fmc, 4) / (460 + 25.9*fmc) * 1000
		rsc := 60 * (1 - math.Exp(-0.0497*isi)) * (fme / fmeAvg)
		if rsc > rss && rss > rso {
			cfb = CrownFractionBurned(rss, rso)
			ros = rss + cfb*(rsc-rss)
		} else {
			ros = rss
		}
	} else {
		cfb = CrownFractionBurned(rss, rso)
		ros = rss
	}

	if ros <= 0 {
		ros = minROS
	}
	return SpreadRate{ROS: ros, CFB: cfb, CSI: csi, RSO: rso}
}

// potentialSpreadRate is the undamped RSI. Mixedwood types recurse into
// their C2 and D1 components; the recursion never exceeds one level.
func potentialSpreadRate(ft FuelType, isi, pc, pdf float64) float64 {
	switch ft {
	case M1:
		return pc/100*potentialSpreadRate(C2, isi, pc, pdf) +
			(100-pc)/100*potentialSpreadRate(D1, isi, pc, pdf)
	case M2:
		return pc/100*potentialSpreadRate(C2, isi, pc, pdf) +
			0.2*(100-pc)/100*potentialSpreadRate(D1, isi, pc, pdf)
	case M3:
		return pdf/100*rsiCurve(Constants(M3), isi) +
			(1-pdf/100)*potentialSpreadRate(D1, isi, pc, pdf)
	case M4:
		return pdf/100*rsiCurve(Constants(M4), isi) +
			0.2*(1-pdf/100)*potentialSpreadRate(D1, isi, pc, pdf)
	case C6:
		return 30 * math.Pow(1-math.Exp(-0.08*isi), 3)
	case NonFuel:
		return 0
	default:
		return rsiCurve(Constants(ft), isi)
	}
}

func rsiCurve(k FuelConstants, isi float64) float64 {
	return k.A * math.Pow(1-math.Exp(-k.B*isi), k.C)
}
