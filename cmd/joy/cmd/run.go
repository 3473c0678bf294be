package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/pkg/joy"
	"github.com/spf13/cobra"
)

var (
	dumpTokens bool
	dumpAST    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run one or more Joy source files",
	Long: `Execute Joy programs from files, sharing one environment and one
stack across all of them exactly like 'include'.

With '-' or no argument, source is read from standard input.`,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "dump the lexer's token stream instead of executing")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the reader's parsed phrases instead of executing")
}

func runFiles(cmd *cobra.Command, args []string) error {
	undefErr, _ := cmd.Flags().GetBool("undeferror")
	autoput, _ := cmd.Flags().GetBool("autoput")
	echo, _ := cmd.Flags().GetInt("echo")

	if len(args) == 0 {
		args = []string{"-"}
	}

	searchDirs := make([]string, 0, len(args))
	for _, a := range args {
		if a != "-" {
			searchDirs = append(searchDirs, filepath.Dir(a))
		}
	}

	engine := joy.New(
		joy.WithIncludeResolver(includeResolver(searchDirs)),
		joy.WithArgs(args),
	)
	engine.SetUndefError(undefErr)
	engine.SetAutoPut(autoput)
	engine.SetEcho(echo)

	exitCode := 0
	for _, a := range args {
		src, name, err := readSource(a)
		if err != nil {
			return err
		}
		if dumpTokens {
			dumpTokenStream(src, name)
			continue
		}
		if dumpAST {
			dumpPhrases(src, name)
			continue
		}
		qerr := engine.RunTopLevel(src, name, func(e error) {
			fmt.Fprintln(os.Stderr, e.Error())
		})
		if code, ok := diag.IsQuit(qerr); ok {
			exitCode = code
			break
		}
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// readSource loads source text for one CLI argument; "-" means stdin.
func readSource(arg string) (src, name string, err error) {
	if arg == "-" {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", rerr)
		}
		return string(data), "<stdin>", nil
	}
	data, rerr := os.ReadFile(arg)
	if rerr != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", arg, rerr)
	}
	return string(data), arg, nil
}

// includeResolver turns a Joy `include "path"` argument into source text,
// trying the path as given and then relative to each of the running
// files' directories.
func includeResolver(searchDirs []string) func(name string) (string, error) {
	return func(name string) (string, error) {
		if data, err := os.ReadFile(name); err == nil {
			return string(data), nil
		}
		for _, dir := range searchDirs {
			path := filepath.Join(dir, name)
			if data, err := os.ReadFile(path); err == nil {
				return string(data), nil
			}
		}
		return "", fmt.Errorf("include: file not found: %s", name)
	}
}
