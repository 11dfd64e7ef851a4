package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "router",
	Short: "A PCB auto-router",
	Long:  "router routes copper traces between pads on a multi-layer PCB, either with a deterministic backtracking solver or a probabilistic belief-propagation solver.",
}

func init() {
	rootCmd.AddCommand(routeCmd)
}
