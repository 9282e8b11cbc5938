package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fbp-service/internal/fbp"
)

type outputFormat int

const (
	formatJSON outputFormat = iota
	formatTable
)

func (a *App) format(cmd *cobra.Command) outputFormat {
	if forced, _ := cmd.Flags().GetBool("json"); forced {
		return formatJSON
	}
	if forced, _ := cmd.Flags().GetBool("table"); forced {
		return formatTable
	}
	if a.IsTerminal != nil && a.IsTerminal() {
		return formatTable
	}
	return formatJSON
}

// prediction is the CLI view of an fbp.Result with angles in degrees.
type prediction struct {
	Name     string       `json:"name,omitempty"`
	FuelType fbp.FuelType `json:"fuel_type"`
	ROS      float64      `json:"ros"`
	FROS     float64      `json:"fros"`
	BROS     float64      `json:"bros"`
	LB       float64      `json:"lb"`
	RAZ      float64      `json:"raz"`
	WSV      float64      `json:"wsv"`
	FMC      float64      `json:"fmc"`
	SFC      float64      `json:"sfc"`
	CFC      float64      `json:"cfc"`
	TFC      float64      `json:"tfc"`
	CFB      float64      `json:"cfb"`
	HFI      float64      `json:"hfi"`
	CBH      float64      `json:"cbh"`
	CSI      *float64     `json:"csi,omitempty"`
	RSO      *float64     `json:"rso,omitempty"`
	FireType fbp.FireType `json:"fire_type"`
	Class    int          `json:"intensity_class"`
}

func newPrediction(name string, r fbp.Result) prediction {
	return prediction{
		Name:     name,
		FuelType: r.FuelType,
		ROS:      r.ROS,
		FROS:     r.FROS,
		BROS:     r.BROS,
		LB:       r.LB,
		RAZ:      r.RAZDegrees(),
		WSV:      r.WSV,
		FMC:      r.FMC,
		SFC:      r.SFC,
		CFC:      r.CFC,
		TFC:      r.TFC,
		CFB:      r.CFB,
		HFI:      r.HFI,
		CBH:      r.CBH,
		CSI:      finite(r.CSI),
		RSO:      finite(r.RSO),
		FireType: r.FireType,
		Class:    r.Class,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func writePredictionTable(w io.Writer, preds []prediction) error {
	named := false
	for _, p := range preds {
		if p.Name != "" {
			named = true
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "FUEL\tROS\tFROS\tBROS\tLB\tRAZ\tHFI\tCFB\tTYPE\tCLASS"
	if named {
		header = "NAME\t" + header
	}
	fmt.Fprintln(tw, header)
	for _, p := range preds {
		row := fmt.Sprintf("%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\t%.0f\t%.2f\t%s\t%d",
			p.FuelType, p.ROS, p.FROS, p.BROS, p.LB, p.RAZ, p.HFI, p.CFB, p.FireType, p.Class)
		if named {
			row = p.Name + "\t" + row
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

func writePredictions(w io.Writer, format outputFormat, preds []prediction) error {
	if format == formatTable {
		return writePredictionTable(w, preds)
	}
	return writeJSON(w, preds)
}
