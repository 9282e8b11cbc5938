package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/fwi"
)

type calcOptions struct {
	fuels []string
	ffmc  float64
	bui   float64
	isi   float64
	env   fbp.Environment
	elev  float64
}

func newCalcCmd(app *App) *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Predict fire behaviour for one set of conditions",
		Example: `  fbp calc --fuel C2 --ffmc 92.9 --bui 67.4 --ws 35 --wd 45 --slope 10 --aspect 90 --lat 37 --lon -122 --doy 189
  fbp calc --fuel C3,M2 --ffmc 90 --bui 60 --isi 11.7 --lat 50 --lon -115`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			fuels, err := parseFuels(opts.fuels)
			if err != nil {
				return err
			}

			env := opts.env
			if flags.Changed("elev") {
				env.Elevation = &opts.elev
			}
			if !flags.Changed("doy") {
				env.DayOfYear = time.Now().UTC().YearDay()
			}

			w := fbp.FireWeather{FFMC: opts.ffmc, BUI: opts.bui, ISI: opts.isi}
			if !flags.Changed("isi") {
				w.ISI = fwi.InitialSpreadIndex(opts.ffmc, env.WindSpeed)
			}
			if err := errors.Join(fbp.ValidateWeather(w), fbp.ValidateEnvironment(env)); err != nil {
				return fmt.Errorf("invalid conditions: %w", err)
			}

			preds := make([]prediction, 0, len(fuels))
			for _, ft := range fuels {
				preds = append(preds, newPrediction("", fbp.Calculate(ft, w, env)))
			}
			return writePredictions(cmd.OutOrStdout(), app.format(cmd), preds)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.fuels, "fuel", []string{"C2"}, "fuel type codes (comma separated)")
	f.Float64Var(&opts.ffmc, "ffmc", 0, "fine fuel moisture code")
	f.Float64Var(&opts.bui, "bui", 0, "buildup index")
	f.Float64Var(&opts.isi, "isi", 0, "initial spread index (derived from --ffmc and --ws when omitted)")
	bindEnvironmentFlags(f, &opts.env)
	f.Float64Var(&opts.elev, "elev", 0, "elevation (m)")
	_ = cmd.MarkFlagRequired("ffmc")
	_ = cmd.MarkFlagRequired("bui")

	return cmd
}

// bindEnvironmentFlags registers the site and stand flags onto env. Stand
// flags default to fbp.DefaultEnvironment.
func bindEnvironmentFlags(f *pflag.FlagSet, env *fbp.Environment) {
	f.Float64Var(&env.WindSpeed, "ws", 0, "10 m open wind speed (km/h)")
	f.Float64Var(&env.WindDirection, "wd", 0, "direction the wind blows from (degrees)")
	f.Float64Var(&env.Slope, "slope", 0, "ground slope (percent)")
	f.Float64Var(&env.Aspect, "aspect", 0, "direction the slope faces (degrees)")
	f.Float64Var(&env.Latitude, "lat", 0, "latitude (degrees)")
	f.Float64Var(&env.Longitude, "lon", 0, "longitude (degrees, negative west)")
	f.IntVar(&env.DayOfYear, "doy", 0, "day of year (defaults to today)")
	f.Float64Var(&env.PercentConifer, "pc", fbp.DefaultPercentConifer, "percent conifer (M1/M2)")
	f.Float64Var(&env.PercentDeadFir, "pdf", fbp.DefaultPercentDeadFir, "percent dead balsam fir (M3/M4)")
	f.Float64Var(&env.Curing, "cc", fbp.DefaultCuring, "grass curing (percent)")
	f.Float64Var(&env.StandDensity, "sd", 0, "C6 stand density (stems/ha)")
	f.Float64Var(&env.StandHeight, "sh", 0, "C6 stand height (m)")
}
