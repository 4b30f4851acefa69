package main

import (
	"fmt"
	"os"

	cmd "github.com/graphbind/graphbind/cmd/graphbind"
)

func main() {
	if err := cmd.Graphbind.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
