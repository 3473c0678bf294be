package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/lexer"
	"github.com/go-joy/joy/internal/token"
	"github.com/go-joy/joy/pkg/joy"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read interactive phrases terminated by '.' from standard input",
	Long: `A thin read-eval-print wrapper: it accumulates standard input until
a top-level '.' closes a phrase, evaluates it, and prints an 'ok.' prompt
in between.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	undefErr, _ := cmd.Flags().GetBool("undeferror")
	autoput, _ := cmd.Flags().GetBool("autoput")
	echo, _ := cmd.Flags().GetInt("echo")

	engine := joy.New()
	engine.SetUndefError(undefErr)
	engine.SetAutoPut(autoput)
	engine.SetEcho(echo)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var buf strings.Builder

	fmt.Print("ok.\n")
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')
		complete := false
		lx := lexer.New(buf.String())
		for tok := lx.Next(); tok.Type != token.EOF; tok = lx.Next() {
			if tok.Type == token.DOT {
				complete = true
			}
		}
		if !complete {
			continue
		}
		qerr := engine.RunTopLevel(buf.String(), "<repl>", func(e error) {
			fmt.Fprintln(os.Stderr, e.Error())
		})
		buf.Reset()
		if code, ok := diag.IsQuit(qerr); ok {
			os.Exit(code)
		}
		fmt.Print("ok.\n")
	}
	return scanner.Err()
}
