// Package cmd contains the graphbind CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Graphbind is the root command.
var Graphbind = &cobra.Command{
	Use:           "graphbind",
	Short:         "Wire GraphQL fields to data sources and deploy them",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
