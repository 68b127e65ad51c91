// Command vitrify estimates life-cycle greenhouse-gas emissions for
// end-of-life recovery pathways of insulated glazing units.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SimosManiatis/vitrify/internal/cli"
	"github.com/SimosManiatis/vitrify/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}
