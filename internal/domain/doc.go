// Package domain turns fire weather observations into fire behaviour
// predictions.
//
// # Observations
//
// Each source message is a JSON weather observation from a station (or a
// forecast grid point). It carries the Fire Weather Index codes produced
// upstream and the site description the model needs:
//
//	{"station_id":"BC-0117","observed_at":"2024-07-07T21:00:00Z",
//	 "lat":50.1,"lon":-119.4,"wind_speed":20,"wind_direction":270,
//	 "ffmc":92.1,"bui":88,"fuel_types":["C3","M2"]}
//
// Codes that can be derived are optional: ISI is computed from FFMC and wind
// speed when absent, and BUI from DMC and DC. Stand attributes default to
// 50% conifer, 35% dead balsam fir and 80% grass curing.
//
// Units follow the Canadian Forest Fire Behaviour Prediction System: wind in
// km/h, directions and aspect in degrees from north (wind direction is where
// the wind blows from), slope in percent, elevation in metres.
//
// # Predictions
//
// One [FireBehaviorEvent] is produced per fuel type. Spread rates are in
// m/min, intensity in kW/m and fuel consumption in kg/m². The spread azimuth
// is reported in degrees.
//
// # ID Generation
//
// Event IDs are name-based (SHA-1) UUIDs over station|time|lat|lon|fuel type,
// so replaying an observation yields the same IDs and the archive can ignore
// duplicates. See [eventID].
package domain
