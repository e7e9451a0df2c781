package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/interp/runner"
	"github.com/cwbudde/go-lustre/internal/lexer"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate list arguments concurrently")
}

func runRepl(_ *cobra.Command, _ []string) error {
	r := runner.NewWithOptions(runner.Options{Parallel: parallel})
	in := bufio.NewReader(os.Stdin)

	fmt.Println("lustre repl — Ctrl-D to exit")
	for {
		fmt.Print("> ")
		line, err := in.ReadString('\n')
		if len(line) == 0 && err != nil {
			fmt.Println()
			return nil
		}

		lex := lexer.NewFromString(line)
		for {
			v, ok, err := r.ReadEval(lex)
			if err != nil {
				var derr *diag.Error
				if errors.As(err, &derr) {
					fmt.Fprintln(os.Stderr, derr.Format(line, "<repl>", false))
				} else {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				break
			}
			if !ok {
				break
			}
			fmt.Println(v.String())
		}
	}
}
