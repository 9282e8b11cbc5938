package fbp

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError reports an input that lies outside the physical domain of
// the model. The formulas themselves accept any value.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

type rangeCheck struct {
	field    string
	value    float64
	min, max float64
}

func (c rangeCheck) check() error {
	switch {
	case math.IsNaN(c.value) || math.IsInf(c.value, 0):
		return &ValidationError{Field: c.field, Value: c.value, Reason: "must be finite"}
	case c.value < c.min:
		return &ValidationError{Field: c.field, Value: c.value, Reason: fmt.Sprintf("must be >= %v", c.min)}
	case c.value > c.max:
		return &ValidationError{Field: c.field, Value: c.value, Reason: fmt.Sprintf("must be <= %v", c.max)}
	}
	return nil
}

func checkAll(checks []rangeCheck) error {
	var errs []error
	for _, c := range checks {
		if err := c.check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateWeather checks the Fire Weather Index inputs. The returned error
// joins one *ValidationError per offending field.
func ValidateWeather(w FireWeather) error {
	return checkAll([]rangeCheck{
		{"ffmc", w.FFMC, 0, 101},
		{"bui", w.BUI, 0, math.MaxFloat64},
		{"isi", w.ISI, 0, math.MaxFloat64},
	})
}

// ValidateEnvironment checks site and stand inputs.
func ValidateEnvironment(env Environment) error {
	checks := []rangeCheck{
		{"lat", env.Latitude, -90, 90},
		{"lon", env.Longitude, -180, 180},
		{"day_of_year", float64(env.DayOfYear), 0, 366},
		{"slope", env.Slope, 0, math.MaxFloat64},
		{"aspect", env.Aspect, -360, 360},
		{"wind_speed", env.WindSpeed, 0, math.MaxFloat64},
		{"wind_direction", env.WindDirection, -360, 360},
		{"percent_conifer", env.PercentConifer, 0, 100},
		{"percent_dead_fir", env.PercentDeadFir, 0, 100},
		{"curing", env.Curing, 0, 100},
		{"stand_density", env.StandDensity, 0, math.MaxFloat64},
		{"stand_height", env.StandHeight, 0, math.MaxFloat64},
	}
	if env.Elevation != nil {
		checks = append(checks, rangeCheck{"elevation", *env.Elevation, -500, 9000})
	}
	if env.MinFMCDay != nil {
		checks = append(checks, rangeCheck{"min_fmc_day", float64(*env.MinFMCDay), 0, 366})
	}
	return checkAll(checks)
}

// ValidationErrors collects every *ValidationError in err's tree, following
// both wrapped errors and errors.Join.
func ValidationErrors(err error) []*ValidationError {
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidationError:
		return []*ValidationError{e}
	case interface{ Unwrap() []error }:
		var out []*ValidationError
		for _, inner := range e.Unwrap() {
			out = append(out, ValidationErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return ValidationErrors(e.Unwrap())
	}
	return nil
}
