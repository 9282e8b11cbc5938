package cli

import (
	"github.com/spf13/cobra"
)

// App holds what the CLI commands need from their environment.
type App struct {
	// IsTerminal reports whether stdout is a terminal. Output defaults to a
	// table when it is and to JSON otherwise. Nil means not a terminal.
	IsTerminal func() bool
}

// NewRootCmd creates the top-level "fbp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fbp",
		Short:         "Canadian Forest Fire Behaviour Prediction calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("json", false, "force JSON output")
	root.PersistentFlags().Bool("table", false, "force table output")
	root.MarkFlagsMutuallyExclusive("json", "table")

	root.AddCommand(
		newCalcCmd(app),
		newFuelsCmd(app),
		newScenariosCmd(app),
		newPerimeterCmd(app),
	)

	return root
}
