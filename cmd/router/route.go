package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LuoZheng2002/bayesian-router/backtrack"
	"github.com/LuoZheng2002/bayesian-router/command"
	"github.com/LuoZheng2002/bayesian-router/logging"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/proba"
	"github.com/LuoZheng2002/bayesian-router/routerconfig"
)

var routeFlags struct {
	input        string
	output       string
	configPath   string
	useProba     bool
	logLevel     string
	stdinCommand bool
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route a PCB problem and write out the resulting traces",
	RunE:  runRoute,
}

func init() {
	flags := routeCmd.Flags()
	flags.StringVarP(&routeFlags.input, "input", "i", "", "path to the JSON problem file (required)")
	flags.StringVarP(&routeFlags.output, "output", "o", "-", "path to write the JSON solution (- for stdout)")
	flags.StringVarP(&routeFlags.configPath, "config", "c", "", "path to a routerconfig YAML/JSON/TOML file")
	flags.BoolVar(&routeFlags.useProba, "proba", false, "use the probabilistic solver instead of backtracking")
	flags.StringVar(&routeFlags.logLevel, "log-level", "info", "debug, info, warn, or error")
	flags.BoolVar(&routeFlags.stdinCommand, "stdin-commands", false, "read stepwise command-level tokens from stdin while routing")
	_ = routeCmd.MarkFlagRequired("input")
}

func runRoute(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(routeFlags.logLevel)
	if err != nil {
		return fmt.Errorf("router: invalid --log-level %q: %w", routeFlags.logLevel, err)
	}
	logger := logging.New(os.Stderr, level)

	cfg, err := routerconfig.Load(routeFlags.configPath)
	if err != nil {
		return err
	}

	problem, err := loadProblem(routeFlags.input)
	if err != nil {
		return err
	}

	var solution *pcbmodel.PcbSolution
	if routeFlags.useProba {
		model := proba.NewModel(problem, nil, cfg)
		model.Logger = logger
		if routeFlags.stdinCommand {
			go command.RunStdinLoop(os.Stdin, model.Gate, logger)
		}
		solution, err = model.Solve()
	} else {
		solver := backtrack.New(problem, cfg)
		solver.Logger = logger
		if routeFlags.stdinCommand {
			go command.RunStdinLoop(os.Stdin, solver.Gate, logger)
		}
		solution, err = solver.Solve()
	}
	if err != nil {
		return fmt.Errorf("router: solve failed: %w", err)
	}

	return writeSolution(routeFlags.output, solution)
}
