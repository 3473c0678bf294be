// Command joy is the CLI entry point for the Joy interpreter: a thin
// launcher with a narrow interface onto the core package.
package main

import (
	"fmt"
	"os"

	"github.com/go-joy/joy/cmd/joy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
