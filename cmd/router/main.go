// Command router is the CLI entrypoint: load a PcbProblem from JSON, run
// either solver, and write the resulting PcbSolution.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
