// Package fbp implements the Canadian Forest Fire Behaviour Prediction (FBP)
// System: fuel-type spread rate functions, buildup effect, crown fire
// transition, slope and wind adjustment, and the derived fire behaviour
// quantities.
//
// # Units
//
// Wind speed is km/h, spread rates m/min, fuel consumption kg/m^2, intensity
// kW/m, crown base height m and stand density stems/ha. Inside the package
// every azimuth is in radians measured clockwise from north. Calculate is the
// only function that accepts degrees; it converts at entry.
//
// # Fuel types
//
// Mixedwood types are evaluated as blends of their components: M1 and M2
// from C2 and D1 by percent conifer (M2 damps the deciduous share by 0.2),
// M3 and M4 from their own curves and D1 by percent dead balsam fir. Grass
// spread is scaled by the curing factor. NonFuel yields zero consumption
// and the minimum spread rate.
//
// # Numeric guards
//
// The model does not reject out-of-range inputs. Two floors keep results
// finite: the logarithm argument in the slope-equivalent ISI inversion is
// floored at 0.01, and spread rates at or below zero become 1e-6. Callers
// that receive external input should run ValidateWeather and
// ValidateEnvironment first.
package fbp
