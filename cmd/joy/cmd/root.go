package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "joy",
	Short: "Joy interpreter",
	Long: `joy is a Go implementation of the Joy programming language core:
a stack-based, concatenative, purely functional interpreter.

Programs are composed of literals, primitives, combinators and
user-defined words; juxtaposition denotes function composition, and
quotations ([...] lists) are first-class data that combinators may
re-execute.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().Bool("undeferror", false, "fail with UndefinedSymbol instead of silently ignoring unresolved symbols")
	rootCmd.PersistentFlags().Bool("autoput", false, "print the top of stack after every top-level phrase")
	rootCmd.PersistentFlags().Int("echo", 0, "echo level: 0 (off), 1, or 2 (print the whole stack after every phrase)")
}
