// Command rillc drives the Rill module parser from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/rill-lang/rill/cmd/rillc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
