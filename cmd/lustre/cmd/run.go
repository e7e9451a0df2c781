package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-lustre/internal/diag"
	"github.com/cwbudde/go-lustre/internal/interp/runner"
	"github.com/cwbudde/go-lustre/internal/source"
)

var (
	evalExpr string
	parallel bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lustre source file or expression",
	Long: `Execute a Lustre program from a file or an inline expression, printing
the value of the last top-level expression.

Examples:
  # Run a source file
  lustre run program.lsp

  # Evaluate an inline expression
  lustre run -e "(+ 1 2 3)"

  # Run with the parallel argument evaluator
  lustre run --parallel program.lsp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate list arguments concurrently")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input, err = source.Decode(raw)
		if err != nil {
			return fmt.Errorf("failed to decode file %s: %w", filename, err)
		}
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s, parallel=%v]\n", filename, parallel)
	}

	r := runner.NewWithOptions(runner.Options{Parallel: parallel})
	result, err := r.EvalString(input)
	if err != nil {
		var derr *diag.Error
		if errors.As(err, &derr) {
			fmt.Fprintln(os.Stderr, derr.Format(input, filename, false))
		}
		return fmt.Errorf("%s: evaluation failed", filename)
	}

	fmt.Println(result.String())
	return nil
}
