package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/fwi"
)

// scenarioFile is a TOML document of [defaults] and [[scenario]] tables.
// Scenario tables override any environment field of the defaults.
type scenarioFile struct {
	Defaults  toml.Primitive   `toml:"defaults"`
	Scenarios []toml.Primitive `toml:"scenario"`
}

type scenario struct {
	Name string   `toml:"name"`
	Fuel string   `toml:"fuel"`
	FFMC float64  `toml:"ffmc"`
	BUI  float64  `toml:"bui"`
	ISI  *float64 `toml:"isi"`
	fbp.Environment
}

func newScenariosCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios <file.toml>",
		Short: "Evaluate every scenario in a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open scenario file: %w", err)
			}
			defer f.Close()

			preds, err := evaluateScenarios(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return writePredictions(cmd.OutOrStdout(), app.format(cmd), preds)
		},
	}
}

func evaluateScenarios(r io.Reader) ([]prediction, error) {
	var file scenarioFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}

	defaults := fbp.DefaultEnvironment()
	if md.IsDefined("defaults") {
		if err := md.PrimitiveDecode(file.Defaults, &defaults); err != nil {
			return nil, fmt.Errorf("decode defaults: %w", err)
		}
	}

	scenarios := make([]scenario, len(file.Scenarios))
	for i, prim := range file.Scenarios {
		scenarios[i].Environment = copyEnvironment(defaults)
		if err := md.PrimitiveDecode(prim, &scenarios[i]); err != nil {
			return nil, fmt.Errorf("decode scenario %d: %w", i+1, err)
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no [[scenario]] tables")
	}

	preds := make([]prediction, 0, len(scenarios))
	for i, sc := range scenarios {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		ft, err := parseFuel(sc.Fuel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		w := fbp.FireWeather{FFMC: sc.FFMC, BUI: sc.BUI}
		if sc.ISI != nil {
			w.ISI = *sc.ISI
		} else {
			w.ISI = fwi.InitialSpreadIndex(sc.FFMC, sc.WindSpeed)
		}
		if err := errors.Join(fbp.ValidateWeather(w), fbp.ValidateEnvironment(sc.Environment)); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		preds = append(preds, newPrediction(name, fbp.Calculate(ft, w, sc.Environment)))
	}
	return preds, nil
}

// copyEnvironment returns env with its optional fields detached, so decoding
// into the copy cannot write through to the original.
func copyEnvironment(env fbp.Environment) fbp.Environment {
	if env.Elevation != nil {
		elevation := *env.Elevation
		env.Elevation = &elevation
	}
	if env.MinFMCDay != nil {
		day := *env.MinFMCDay
		env.MinFMCDay = &day
	}
	return env
}
