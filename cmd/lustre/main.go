// Command lustre is the CLI entry point for the golustre interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lustre/cmd/lustre/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
