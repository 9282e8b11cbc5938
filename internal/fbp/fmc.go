package fbp

import "math"

// FMC bounds (%).
const (
	minFMC = 85.0
	maxFMC = 120.0
)

// FoliarMoistureContent estimates foliar moisture content (%) on day of year
// doy. elev (m) and d0 (day of minimum FMC) are optional; when d0 is nil it
// is derived from latitude, longitude and, if known, elevation.
func FoliarMoistureContent(lat, lon float64, doy int, elev *float64, d0 *int) float64 {
	var minDay int
	if d0 != nil {
		minDay = *d0
	} else {
		minDay = minimumFMCDay(lat, lon, elev)
	}

	nd := math.Abs(float64(doy - minDay))
	switch {
	case nd < 30:
		return minFMC + 0.0189*nd*nd
	case nd < 50:
		return 32.9 + 3.17*nd - 0.0288*nd*nd
	default:
		return maxFMC
	}
}

func minimumFMCDay(lat, lon float64, elev *float64) int {
	if elev != nil {
		latn := 43 + 33.7*math.Exp(-0.0351*(150-lon))
		return int(math.Round(142.1*(lat/latn) + 0.0172*(*elev)))
	}
	latn := 46 + 23.4*math.Exp(-0.0360*(150-lon))
	return int(math.Round(151 * (lat / latn)))
}
