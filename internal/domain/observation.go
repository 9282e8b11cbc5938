package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/fwi"
)

// ParseObservation decodes a RawEvent's JSON value into an Observation.
// When the payload has no observed_at, the message timestamp is used instead.
func ParseObservation(raw RawEvent) (Observation, error) {
	var obs Observation
	if err := json.Unmarshal(raw.Value, &obs); err != nil {
		return Observation{}, fmt.Errorf("parse observation: %w", err)
	}
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = raw.Timestamp
	}
	if obs.ObservedAt.IsZero() {
		return Observation{}, errors.New("parse observation: missing observed_at")
	}
	obs.ObservedAt = obs.ObservedAt.UTC()
	obs.RawPayload = raw.Value
	return obs, nil
}

// Weather returns the engine's weather inputs, deriving ISI from FFMC and
// wind speed and BUI from DMC and DC when they were not observed directly.
func (o Observation) Weather() (fbp.FireWeather, error) {
	w := fbp.FireWeather{FFMC: o.FFMC}

	switch {
	case o.BUI != nil:
		w.BUI = *o.BUI
	case o.DMC != nil && o.DC != nil:
		w.BUI = fwi.BuildupIndex(*o.DMC, *o.DC)
	default:
		return fbp.FireWeather{}, errMissingBUI()
	}

	if o.ISI != nil {
		w.ISI = *o.ISI
	} else {
		w.ISI = fwi.InitialSpreadIndex(o.FFMC, o.WindSpeed)
	}
	return w, nil
}

// Environment returns the engine's site and stand inputs. The day of year is
// taken from ObservedAt in UTC.
func (o Observation) Environment() fbp.Environment {
	env := fbp.DefaultEnvironment()
	env.Latitude = o.Lat
	env.Longitude = o.Lon
	env.Elevation = o.Elevation
	env.DayOfYear = o.ObservedAt.UTC().YearDay()
	env.MinFMCDay = o.MinFMCDay
	env.Slope = o.Slope
	env.Aspect = o.Aspect
	env.WindSpeed = o.WindSpeed
	env.WindDirection = o.WindDirection
	env.StandDensity = o.StandDensity
	env.StandHeight = o.StandHeight
	if o.PercentConifer != nil {
		env.PercentConifer = *o.PercentConifer
	}
	if o.PercentDeadFir != nil {
		env.PercentDeadFir = *o.PercentDeadFir
	}
	if o.Curing != nil {
		env.Curing = *o.Curing
	}
	return env
}

// Validate checks every model input of the observation. The error joins one
// *fbp.ValidationError per offending field; see fbp.ValidationErrors.
func Validate(obs Observation) error {
	// Derived codes are checked through their inputs: FFMC, wind and DMC/DC.
	observed := fbp.FireWeather{FFMC: obs.FFMC}
	if obs.BUI != nil {
		observed.BUI = *obs.BUI
	}
	if obs.ISI != nil {
		observed.ISI = *obs.ISI
	}
	errs := []error{fbp.ValidateWeather(observed)}

	switch {
	case obs.BUI != nil:
	case obs.DMC != nil && obs.DC != nil:
		errs = append(errs, nonNegative("dmc", *obs.DMC), nonNegative("dc", *obs.DC))
	default:
		errs = append(errs, errMissingBUI())
	}

	errs = append(errs, fbp.ValidateEnvironment(obs.Environment()))
	return errors.Join(errs...)
}

func errMissingBUI() error {
	return &fbp.ValidationError{Field: "bui", Value: math.NaN(), Reason: "required unless dmc and dc are given"}
}

func nonNegative(field string, v float64) error {
	if v >= 0 && !math.IsInf(v, 0) {
		return nil
	}
	return &fbp.ValidationError{Field: field, Value: v, Reason: "must be a finite value >= 0"}
}
