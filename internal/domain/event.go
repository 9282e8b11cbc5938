package domain

import (
	"context"
	"time"

	"github.com/couchcryptid/fbp-service/internal/fbp"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Observation is a fire weather observation with its site description.
// Optional inputs are pointers so that absence can be told apart from zero.
type Observation struct {
	StationID  string    `json:"station_id"`
	ObservedAt time.Time `json:"observed_at"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Elevation  *float64  `json:"elevation,omitempty"`

	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	Slope         float64 `json:"slope"`
	Aspect        float64 `json:"aspect"`

	FFMC float64  `json:"ffmc"`
	BUI  *float64 `json:"bui,omitempty"`
	ISI  *float64 `json:"isi,omitempty"`
	DMC  *float64 `json:"dmc,omitempty"`
	DC   *float64 `json:"dc,omitempty"`

	FuelTypes      []fbp.FuelType `json:"fuel_types,omitempty"`
	PercentConifer *float64       `json:"percent_conifer,omitempty"`
	PercentDeadFir *float64       `json:"percent_dead_fir,omitempty"`
	Curing         *float64       `json:"curing,omitempty"`
	StandDensity   float64        `json:"stand_density,omitempty"`
	StandHeight    float64        `json:"stand_height,omitempty"`
	MinFMCDay      *int           `json:"min_fmc_day,omitempty"`

	// ElevationSource records where Elevation came from; set by EnrichWithElevation.
	ElevationSource string `json:"-"`
	RawPayload      []byte `json:"-"`
}

// Elevation sources.
const (
	ElevationObserved = "observed"
	ElevationMapbox   = "mapbox"
	ElevationFailed   = "failed"
	ElevationNone     = "none"
)

// FireBehaviorEvent is one fuel type's prediction for an observation.
type FireBehaviorEvent struct {
	ID              string    `json:"id"`
	StationID       string    `json:"station_id,omitempty"`
	ObservedAt      time.Time `json:"observed_at"`
	TimeBucket      time.Time `json:"time_bucket"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Elevation       *float64  `json:"elevation,omitempty"`
	ElevationSource string    `json:"elevation_source"`

	FuelType fbp.FuelType    `json:"fuel_type"`
	Weather  fbp.FireWeather `json:"weather"`
	FWI      float64         `json:"fwi"`

	ROS  float64 `json:"ros"`
	FROS float64 `json:"fros"`
	BROS float64 `json:"bros"`
	LB   float64 `json:"lb"`
	RAZ  float64 `json:"raz"` // degrees from north
	WSV  float64 `json:"wsv"`
	FMC  float64 `json:"fmc"`
	SFC  float64 `json:"sfc"`
	CFC  float64 `json:"cfc"`
	TFC  float64 `json:"tfc"`
	CFB  float64 `json:"cfb"`
	HFI  float64 `json:"hfi"`
	CBH  float64 `json:"cbh"`
	CFL  float64 `json:"cfl"`

	// CSI and RSO are undefined for some inputs (no surface fuel, negative
	// crown base height) and are omitted then.
	CSI *float64 `json:"csi,omitempty"`
	RSO *float64 `json:"rso,omitempty"`

	FireType       fbp.FireType `json:"fire_type"`
	IntensityClass int          `json:"intensity_class"`

	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
