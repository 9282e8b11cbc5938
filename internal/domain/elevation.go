package domain

import (
	"context"
	"log/slog"
)

// ElevationSource looks up ground elevation in metres. found is false when
// the source has no data for the location.
type ElevationSource interface {
	Elevation(ctx context.Context, lat, lon float64) (elevation float64, found bool, err error)
}

// EnrichWithElevation fills in a missing elevation from src. Observed
// elevations are kept. A nil src or a failed lookup leaves Elevation unset
// and records why in ElevationSource (graceful degradation): the model then
// uses its sea-level foliar moisture curve.
func EnrichWithElevation(ctx context.Context, obs Observation, src ElevationSource, logger *slog.Logger) Observation {
	if obs.Elevation != nil {
		obs.ElevationSource = ElevationObserved
		return obs
	}
	if src == nil {
		obs.ElevationSource = ElevationNone
		return obs
	}

	elev, found, err := src.Elevation(ctx, obs.Lat, obs.Lon)
	if err != nil {
		logger.Warn("elevation lookup failed",
			"station_id", obs.StationID,
			"lat", obs.Lat,
			"lon", obs.Lon,
			"error", err,
		)
		obs.ElevationSource = ElevationFailed
		return obs
	}
	if !found {
		obs.ElevationSource = ElevationNone
		return obs
	}

	obs.Elevation = &elev
	obs.ElevationSource = ElevationMapbox
	return obs
}
