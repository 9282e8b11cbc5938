package fbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoliarMoistureContent(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		doy      int
		elev     *float64
		d0       *int
		want     float64
	}{
		{"far from minimum saturates", -80.1, 180, 0, nil, ptr(81), 120},
		{"on the minimum day", -80.1, 180, 81, nil, ptr(81), 85},
		{"quadratic segment", 31.5, 180, 0, nil, nil, 114.4572},
		{"high elevation", -48.7, 107.1, 81, ptr(6561.0), nil, 120},
		{"northern summer", 50, -115, 150, nil, nil, 88.7044},
		{"northern summer with elevation", 50, -115, 150, ptr(1000.0), nil, 104.8488},
		{"transition segment", 0, 0, 120, nil, ptr(80), 113.62},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoliarMoistureContent(tt.lat, tt.lon, tt.doy, tt.elev, tt.d0)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFoliarMoistureContent_Bounds(t *testing.T) {
	d0 := 170
	for doy := 0; doy <= 366; doy++ {
		fmc := FoliarMoistureContent(55, -110, doy, nil, &d0)
		assert.GreaterOrEqual(t, fmc, minFMC)
		assert.LessOrEqual(t, fmc, maxFMC)
	}
}
