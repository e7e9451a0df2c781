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

// verbose is bound to the persistent --verbose flag, consulted by run for
// diagnostic prints that don't belong in ordinary program output; repl
// does not read it.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lustre",
	Short: "Lustre Lisp interpreter",
	Long: `golustre is a Go implementation of the Lustre Lisp dialect.

Lustre is a small, tree-walking Lisp with:
  - A cons-cell value graph (integers, strings, symbols, cons, lambdas)
  - Four special forms: IF, QUOTE, LAMBDA, DEF
  - A library of built-in arithmetic, comparison, logic, and list operators
  - An optional parallel argument evaluator for pure expression trees`,
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

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
