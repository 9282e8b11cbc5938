package fbp

import "math"

// grassFuelLoad is the fixed O1a/O1b surface fuel consumption (kg/m^2).
const grassFuelLoad = 0.3

// SurfaceFuelConsumption returns the surface fuel consumed (kg/m^2).
func SurfaceFuelConsumption(ft FuelType, ffmc, bui float64) float64 {
	switch ft {
	case C1:
		return math.Max(1.5*(1-math.Exp(-0.23*(ffmc-81))), 0)
	case C2, M3, M4:
		return 5 * (1 - math.Exp(-0.0115*bui))
	case C3, C4:
		return 5 * math.Pow(1-math.Exp(-0.0164*bui), 2.24)
	case C5, C6:
		return 5 * math.Pow(1-math.Exp(-0.0149*bui), 2.48)
	case C7:
		ffc := math.Max(2*(1-math.Exp(-0.104*(ffmc-70))), 0)
		wfc := 1.5 * (1 - math.Exp(-0.0201*bui))
		return ffc + wfc
	case D1:
		return 1.5 * (1 - math.Exp(-0.0183*bui))
	case M1, M2:
		// Fixed 50/50 blend regardless of percent conifer.
		return 0.5*SurfaceFuelConsumption(C2, ffmc, bui) + 0.5*SurfaceFuelConsumption(D1, ffmc, bui)
	case O1a, O1b:
		return grassFuelLoad
	case S1:
		return 4*(1-math.Exp(-0.025*bui)) + 4*(1-math.Exp(-0.034*bui))
	case S2:
		return 10*(1-math.Exp(-0.013*bui)) + 6*(1-math.Exp(-0.060*bui))
	case S3:
		return 12*(1-math.Exp(-0.0166*bui)) + 20*(1-math.Exp(-0.0210*bui))
	default:
		return 0
	}
}

// CrownFuelConsumption returns crown fuel consumed (kg/m^2). Mixedwood types
// only count the conifer (M1/M2) or dead balsam fir (M3/M4) share.
func CrownFuelConsumption(ft FuelType, cfl, cfb, pc, pdf float64) float64 {
	cfc := cfl * cfb
	switch ft {
	case M1, M2:
		return pc / 100 * cfc
	case M3, M4:
		return pdf / 100 * cfc
	default:
		return cfc
	}
}

// TotalFuelConsumption is surface plus crown fuel consumption.
func TotalFuelConsumption(sfc, cfc float64) float64 { return sfc + cfc }

// FireIntensity returns Byram's fire intensity (kW/m) for fuel consumption
// fc (kg/m^2) and spread rate ros (m/min).
func FireIntensity(fc, ros float64) float64 { return 300 * fc * ros }
