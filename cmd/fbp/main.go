package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/couchcryptid/fbp-service/internal/cli"
)

func main() {
	app := &cli.App{
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
