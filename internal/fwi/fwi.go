// Package fwi implements the Canadian Fire Weather Index System indices
// consumed by the FBP engine: the initial spread index, the buildup index
// and the fire weather index. Daily and hourly moisture codes carry state
// between observations and are supplied by the caller.
package fwi

import "math"

// ffmcCoefficient converts between FFMC and fine fuel moisture content.
const ffmcCoefficient = 147.27723

// FineFuelMoistureContent returns the moisture content (%) implied by ffmc.
func FineFuelMoistureContent(ffmc float64) float64 {
	return ffmcCoefficient * (101 - ffmc) / (59.5 + ffmc)
}

// FineFuelMoistureFunction returns the fine fuel moisture term of the ISI.
func FineFuelMoistureFunction(ffmc float64) float64 {
	m := FineFuelMoistureContent(ffmc)
	return 91.9 * math.Exp(-0.1386*m) * (1 + math.Pow(m, 5.31)/4.93e7)
}

// InitialSpreadIndex combines ffmc and wind speed ws (km/h).
func InitialSpreadIndex(ffmc, ws float64) float64 {
	return 0.208 * math.Exp(0.05039*ws) * FineFuelMoistureFunction(ffmc)
}

// BuildupIndex combines the duff moisture code and drought code.
func BuildupIndex(dmc, dc float64) float64 {
	var bui float64
	if dmc != 0 || dc != 0 {
		bui = 0.8 * dc * dmc / (dmc + 0.4*dc)
	}
	if bui >= dmc {
		return bui
	}

	var p float64
	if dmc != 0 {
		p = (dmc - bui) / dmc
	}
	cc := 0.92 + math.Pow(0.0114*dmc, 1.7)
	return math.Max(dmc-cc*p, 0)
}

// FireWeatherIndex combines the initial spread index and buildup index.
func FireWeatherIndex(isi, bui float64) float64 {
	var bb float64
	if bui > 80 {
		bb = 0.1 * isi * (1000 / (25 + 108.64/math.Exp(0.023*bui)))
	} else {
		bb = 0.1 * isi * (0.626*math.Pow(bui, 0.809) + 2)
	}
	if bb <= 1 {
		return bb
	}
	return math.Exp(2.72 * math.Pow(0.434*math.Log(bb), 0.647))
}
