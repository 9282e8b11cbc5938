package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fbp-service/internal/fbp"
)

type fuelEntry struct {
	Code        fbp.FuelType `json:"code"`
	Description string       `json:"description"`
	A           float64      `json:"a"`
	B           float64      `json:"b"`
	C           float64      `json:"c"`
	Q           float64      `json:"q"`
	BUIAvg      float64      `json:"bui_avg"`
	CBH         float64      `json:"cbh"`
	CFL         float64      `json:"cfl"`
}

func newFuelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fuels",
		Short: "List the fuel type catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := make([]fuelEntry, 0, len(fbp.FuelTypes))
			for _, ft := range fbp.FuelTypes {
				k := fbp.Constants(ft)
				entries = append(entries, fuelEntry{
					Code:        ft,
					Description: ft.Description(),
					A:           k.A,
					B:           k.B,
					C:           k.C,
					Q:           k.Q,
					BUIAvg:      k.BUIAvg,
					CBH:         k.CBH,
					CFL:         k.CFL,
				})
			}

			out := cmd.OutOrStdout()
			if app.format(cmd) == formatJSON {
				return writeJSON(out, entries)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tDESCRIPTION\tA\tB\tC\tQ\tBUI0\tCBH\tCFL")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
					e.Code, e.Description, e.A, e.B, e.C, e.Q, e.BUIAvg, e.CBH, e.CFL)
			}
			return tw.Flush()
		},
	}
}
