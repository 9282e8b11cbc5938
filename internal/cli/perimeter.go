package cli

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/couchcryptid/fbp-service/internal/fbp"
)

type perimeterPoint struct {
	Theta    float64  `json:"theta"` // degrees clockwise from the head direction
	ROS      float64  `json:"ros"`
	Distance *float64 `json:"distance,omitempty"`
}

type perimeterOptions struct {
	ros, fros, bros float64
	points          int
	minutes         float64
	fuel            string
	cfb             float64
}

func newPerimeterCmd(app *App) *cobra.Command {
	var opts perimeterOptions

	cmd := &cobra.Command{
		Use:   "perimeter",
		Short: "Spread rate around the elliptical fire perimeter",
		Long: `Prints the spread rate at evenly spaced angles from the head fire direction.
With --minutes, also prints the distance travelled along each angle from a
point ignition, accounting for acceleration.`,
		Example: "  fbp perimeter --ros 59.02 --fros 6.29 --bros 0.50 --points 8 --minutes 30 --fuel C2 --cfb 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := perimeter(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.format(cmd) == formatJSON {
				return writeJSON(out, points)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			if opts.minutes > 0 {
				fmt.Fprintln(tw, "THETA\tROS\tDISTANCE")
			} else {
				fmt.Fprintln(tw, "THETA\tROS")
			}
			for _, p := range points {
				if p.Distance != nil {
					fmt.Fprintf(tw, "%.1f\t%.2f\t%.1f\n", p.Theta, p.ROS, *p.Distance)
				} else {
					fmt.Fprintf(tw, "%.1f\t%.2f\n", p.Theta, p.ROS)
				}
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.ros, "ros", 0, "head fire rate of spread (m/min)")
	f.Float64Var(&opts.fros, "fros", 0, "flank fire rate of spread (m/min)")
	f.Float64Var(&opts.bros, "bros", 0, "back fire rate of spread (m/min)")
	f.IntVar(&opts.points, "points", 36, "number of angles around the perimeter")
	f.Float64Var(&opts.minutes, "minutes", 0, "elapsed time since ignition (min)")
	f.StringVar(&opts.fuel, "fuel", "C2", "fuel type, used for acceleration")
	f.Float64Var(&opts.cfb, "cfb", 0, "crown fraction burned, used for acceleration")
	_ = cmd.MarkFlagRequired("ros")
	_ = cmd.MarkFlagRequired("fros")
	_ = cmd.MarkFlagRequired("bros")

	return cmd
}

func perimeter(opts perimeterOptions) ([]perimeterPoint, error) {
	switch {
	case opts.points < 1:
		return nil, errors.New("--points must be at least 1")
	case opts.ros < 0 || opts.fros < 0 || opts.bros < 0:
		return nil, errors.New("spread rates must be non-negative")
	case opts.minutes < 0:
		return nil, errors.New("--minutes must be non-negative")
	case opts.cfb < 0 || opts.cfb > 1:
		return nil, errors.New("--cfb must be between 0 and 1")
	}
	ft, err := parseFuel(opts.fuel)
	if err != nil {
		return nil, err
	}

	// One extra sample lands on 360 degrees and is dropped.
	angles := floats.Span(make([]float64, opts.points+1), 0, 360)[:opts.points]

	out := make([]perimeterPoint, len(angles))
	for i, deg := range angles {
		ros := fbp.RateOfSpreadAtTheta(opts.ros, opts.fros, opts.bros, deg*math.Pi/180)
		out[i] = perimeterPoint{Theta: deg, ROS: ros}
		if opts.minutes > 0 {
			d := fbp.DistanceAtTime(ft, ros, opts.minutes, opts.cfb)
			out[i].Distance = &d
		}
	}
	return out, nil
}
