package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/fwi"
)

// eventNamespace seeds the name-based event IDs.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/fbp-service/fire-behavior"))

// Evaluate runs the FBP system for each fuel type the observation names, or
// for defaults when it names none. The observation should already have
// passed Validate.
func Evaluate(obs Observation, defaults []fbp.FuelType) ([]FireBehaviorEvent, error) {
	fuelTypes := obs.FuelTypes
	if len(fuelTypes) == 0 {
		fuelTypes = defaults
	}
	if len(fuelTypes) == 0 {
		return nil, errors.New("evaluate observation: no fuel types")
	}

	w, err := obs.Weather()
	if err != nil {
		return nil, fmt.Errorf("evaluate observation: %w", err)
	}
	env := obs.Environment()
	fireWeatherIndex := fwi.FireWeatherIndex(w.ISI, w.BUI)
	processedAt := clock.Now()

	events := make([]FireBehaviorEvent, 0, len(fuelTypes))
	for _, ft := range fuelTypes {
		r := fbp.Calculate(ft, w, env)
		events = append(events, FireBehaviorEvent{
			ID:              eventID(obs, ft),
			StationID:       obs.StationID,
			ObservedAt:      obs.ObservedAt,
			TimeBucket:      deriveTimeBucket(obs.ObservedAt),
			Lat:             obs.Lat,
			Lon:             obs.Lon,
			Elevation:       obs.Elevation,
			ElevationSource: elevationSource(obs),
			FuelType:        ft,
			Weather:         w,
			FWI:             fireWeatherIndex,
			ROS:             r.ROS,
			FROS:            r.FROS,
			BROS:            r.BROS,
			LB:              r.LB,
			RAZ:             r.RAZDegrees(),
			WSV:             r.WSV,
			FMC:             r.FMC,
			SFC:             r.SFC,
			CFC:             r.CFC,
			TFC:             r.TFC,
			CFB:             r.CFB,
			HFI:             r.HFI,
			CBH:             r.CBH,
			CFL:             r.CFL,
			CSI:             finite(r.CSI),
			RSO:             finite(r.RSO),
			FireType:        r.FireType,
			IntensityClass:  r.Class,
			ProcessedAt:     processedAt,
		})
	}
	return events, nil
}

// SerializeFireBehaviorEvent marshals an event for the sink topic, keyed by
// event ID.
func SerializeFireBehaviorEvent(event FireBehaviorEvent) (OutputEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize fire behavior event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(event.ID),
		Value: data,
		Headers: map[string]string{
			"fuel_type":    event.FuelType.String(),
			"fire_type":    string(event.FireType),
			"processed_at": event.ProcessedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// eventID is deterministic in the observation's identity and the fuel type.
func eventID(obs Observation, ft fbp.FuelType) string {
	name := fmt.Sprintf("%s|%s|%.4f|%.4f|%s",
		obs.StationID, obs.ObservedAt.UTC().Format(time.RFC3339), obs.Lat, obs.Lon, ft)
	return uuid.NewSHA1(eventNamespace, []byte(name)).String()
}

func elevationSource(obs Observation) string {
	switch {
	case obs.ElevationSource != "":
		return obs.ElevationSource
	case obs.Elevation != nil:
		return ElevationObserved
	default:
		return ElevationNone
	}
}

// deriveTimeBucket truncates the observation time to the hour in UTC.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Hour)
}

// finite returns nil for NaN and infinities.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
