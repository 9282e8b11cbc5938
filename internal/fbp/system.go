package fbp

import "math"

// FireWeather carries the Fire Weather Index System inputs for one time step.
type FireWeather struct {
	FFMC float64 `json:"ffmc" toml:"ffmc"`
	BUI  float64 `json:"bui" toml:"bui"`
	ISI  float64 `json:"isi" toml:"isi"`
}

// Environment describes the site and stand for one evaluation. Angles are in
// degrees; WindDirection is the direction the wind blows from.
type Environment struct {
	Latitude       float64  `json:"lat" toml:"lat"`
	Longitude      float64  `json:"lon" toml:"lon"`
	Elevation      *float64 `json:"elevation,omitempty" toml:"elevation"`
	DayOfYear      int      `json:"day_of_year" toml:"day_of_year"`
	MinFMCDay      *int     `json:"min_fmc_day,omitempty" toml:"min_fmc_day"`
	Slope          float64  `json:"slope" toml:"slope"`
	Aspect         float64  `json:"aspect" toml:"aspect"`
	WindSpeed      float64  `json:"wind_speed" toml:"wind_speed"`
	WindDirection  float64  `json:"wind_direction" toml:"wind_direction"`
	PercentConifer float64  `json:"percent_conifer" toml:"percent_conifer"`
	PercentDeadFir float64  `json:"percent_dead_fir" toml:"percent_dead_fir"`
	Curing         float64  `json:"curing" toml:"curing"`
	StandDensity   float64  `json:"stand_density" toml:"stand_density"`
	StandHeight    float64  `json:"stand_height" toml:"stand_height"`
}

// Stand defaults used when no stand inventory is available.
const (
	DefaultPercentConifer = 50
	DefaultPercentDeadFir = 35
	DefaultCuring         = 80
)

// DefaultEnvironment returns an Environment with the stand defaults applied
// and every site field zeroed.
func DefaultEnvironment() Environment {
	return Environment{
		PercentConifer: DefaultPercentConifer,
		PercentDeadFir: DefaultPercentDeadFir,
		Curing:         DefaultCuring,
	}
}

// Result is the full fire behaviour prediction for one fuel type.
type Result struct {
	FuelType FuelType `json:"fuel_type"`
	ROS      float64  `json:"ros"`
	FROS     float64  `json:"fros"`
	BROS     float64  `json:"bros"`
	LB       float64  `json:"lb"`
	CFB      float64  `json:"cfb"`
	FMC      float64  `json:"fmc"`
	SFC      float64  `json:"sfc"`
	CFC      float64  `json:"cfc"`
	TFC      float64  `json:"tfc"`
	CFL      float64  `json:"cfl"`
	CBH      float64  `json:"cbh"`
	CSI      float64  `json:"csi"`
	RSO      float64  `json:"rso"`
	WSV      float64  `json:"wsv"`
	RAZ      float64  `json:"raz"`
	HFI      float64  `json:"hfi"`
	FireType FireType `json:"fire_type"`
	Class    int      `json:"intensity_class"`
}

// RAZDegrees returns the spread azimuth in degrees from north.
func (r Result) RAZDegrees() float64 {
	return r.RAZ * 180 / math.Pi
}

// WSZ returns the azimuth the net effective wind blows from, in radians.
func (r Result) WSZ() float64 {
	return math.Mod(r.RAZ+math.Pi, 2*math.Pi)
}

// Calculate runs the full FBP System for one fuel type and time step. It
// never fails; invalid inputs propagate as NaN. Use ValidateWeather and
// ValidateEnvironment first when inputs come from outside the process.
func Calculate(ft FuelType, w FireWeather, env Environment) Result {
	pc, pdf, cc := env.PercentConifer, env.PercentDeadFir, env.Curing

	cbh := CrownBaseHeight(ft)
	if ft == C6 {
		cbh = PlantationCrownBaseHeight(env.StandDensity, env.StandHeight)
	}
	cfl := CrownFuelLoad(ft)
	fmc := FoliarMoistureContent(env.Latitude, env.Longitude, env.DayOfYear, env.Elevation, env.MinFMCDay)
	sfc := SurfaceFuelConsumption(ft, w.FFMC, w.BUI)

	waz := degToRad(env.WindDirection) + math.Pi
	saz := degToRad(env.Aspect) + math.Pi
	raz, wsv := SlopeAdjustment(ft, w.FFMC, env.WindSpeed, waz, env.Slope, saz, fmc, sfc, pc, pdf, cc, cbh)

	head := RateOfSpreadExtended(ft, w.ISI, w.BUI, fmc, sfc, pc, pdf, cc, cbh)
	bros := BackRateOfSpread(ft, w.FFMC, w.BUI, wsv, fmc, sfc, pc, pdf, cc, cbh)
	lb := LengthToBreadth(ft, wsv)

	cfc := CrownFuelConsumption(ft, cfl, head.CFB, pc, pdf)
	tfc := TotalFuelConsumption(sfc, cfc)
	hfi := FireIntensity(tfc, head.ROS)

	return Result{
		FuelType: ft,
		ROS:      head.ROS,
		FROS:     FlankRateOfSpread(head.ROS, bros, lb),
		BROS:     bros,
		LB:       lb,
		CFB:      head.CFB,
		FMC:      fmc,
		SFC:      sfc,
		CFC:      cfc,
		TFC:      tfc,
		CFL:      cfl,
		CBH:      cbh,
		CSI:      head.CSI,
		RSO:      head.RSO,
		WSV:      wsv,
		RAZ:      raz,
		HFI:      hfi,
		FireType: classifyFire(cfl, head.CFB),
		Class:    IntensityClass(hfi),
	}
}

// classifyFire treats fuels without a crown layer as surface fires whatever
// the crown fraction burned.
func classifyFire(cfl, cfb float64) FireType {
	if cfl == 0 {
		return SurfaceFire
	}
	return FireTypeFromCFB(cfb)
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
