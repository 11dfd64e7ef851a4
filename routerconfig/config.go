// Package routerconfig loads and holds the router's configuration values
// (spec.md §6): A* tuning, display toggles, the probabilistic solver's
// iteration tables and learning-rate weights, and the preprocess-failure
// policy. Values load from a viper-backed source (file, env, defaults);
// programmatic overrides layer on top via functional Options, the same
// shape as the teacher's builder.BuilderOption.
package routerconfig

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// PreprocessFailurePolicy selects what happens when the naive backtrack
// solver's ascending-length pre-pass (spec.md §4.5) fails to route a
// connection against the other-nets-only obstacle set.
//
// original_source/router/src/naive_backtrack_algo.rs panics outright on
// this condition; spec.md §9 flags that as ambiguous/possibly-buggy and
// says not to guess, so the choice is made explicit here instead.
type PreprocessFailurePolicy int

const (
	// AbortOnPreprocessFailure fails the whole solve, closest to the
	// original's panic (default).
	AbortOnPreprocessFailure PreprocessFailurePolicy = iota
	// AllowExcludeOnPreprocessFailure drops just the offending connection
	// from the ordering and logs a warning for it; the returned solution
	// carries no trace for it and no per-connection diagnostics.
	AllowExcludeOnPreprocessFailure
)

// Config holds every recognized configuration value from spec.md §6 plus
// the budget knobs spec.md §7 alludes to ("a configured upper bound").
type Config struct {
	// AstarStride is ASTAR_STRIDE: the planar step length, a multiple of
	// fixedpoint.DELTA.
	AstarStride float64
	// EstimateCoefficient scales A*'s heuristic.
	EstimateCoefficient float64
	// DisplayAstar toggles in-loop A* frontier visualization.
	DisplayAstar bool
	// DisplayOptimization toggles in-loop post-optimizer visualization.
	DisplayOptimization bool

	// IterationToNumTraces is ITERATION_TO_NUM_TRACES[i]: target candidate
	// count for iteration i.
	IterationToNumTraces []int
	// IterationToPriorProbability is ITERATION_TO_PRIOR_PROBABILITY[i].
	IterationToPriorProbability []float64
	// NextIterationToRemainingProbability is
	// NEXT_ITERATION_TO_REMAINING_PROBABILITY[i]: the residual probability
	// reserved for "no trace chosen" when sampling into iteration i+1.
	NextIterationToRemainingProbability []float64
	// MaxGenerationAttempts bounds per-connection candidate sampling.
	MaxGenerationAttempts int

	// ScoreWeight and OpportunityCostWeight are the posterior update's
	// SCORE_WEIGHT / OPPORTUNITY_COST_WEIGHT exponents.
	ScoreWeight           float64
	OpportunityCostWeight float64
	// LinearLearningRate and ConstantLearningRate drive the posterior
	// update's delta term.
	LinearLearningRate   float64
	ConstantLearningRate float64
	// HalfProbabilityRawScore is the length at which score() == 0.5.
	HalfProbabilityRawScore float64
	// NumTopRankedToTry bounds how many top-ranked candidates the commit
	// step tries in each iteration; the rest wait for the next iteration.
	NumTopRankedToTry int

	// LayerToTraceColor maps a layer index to its render color.
	LayerToTraceColor map[int][4]float32

	// PreprocessFailurePolicy selects backtrack's pre-pass failure handling.
	PreprocessFailurePolicy PreprocessFailurePolicy

	// AstarMaxExpansions bounds a single A* invocation (0 = unbounded).
	AstarMaxExpansions int
	// MaxIterations bounds the probabilistic solver's iteration count
	// (0 = one iteration per IterationToNumTraces entry, or 5 when that
	// table is empty).
	MaxIterations int
}

// Default returns the configuration spec.md §8's end-to-end scenarios are
// written against: a conservative A* stride of one grid step, unit
// heuristic scaling, and the iteration tables sized for a handful of
// candidates per connection.
func Default() Config {
	return Config{
		AstarStride:                          2.0,
		EstimateCoefficient:                  1.0,
		IterationToNumTraces:                 []int{4, 4, 4, 4, 4},
		IterationToPriorProbability:          []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		NextIterationToRemainingProbability:  []float64{0.1, 0.1, 0.1, 0.1, 0.1},
		MaxGenerationAttempts:                20,
		ScoreWeight:                          1.0,
		OpportunityCostWeight:                1.0,
		LinearLearningRate:                   0.5,
		ConstantLearningRate:                 0.05,
		HalfProbabilityRawScore:              10.0,
		NumTopRankedToTry:                    3,
		LayerToTraceColor:                    map[int][4]float32{0: {1, 0, 0, 1}, 1: {0, 0, 1, 1}},
		PreprocessFailurePolicy:              AbortOnPreprocessFailure,
		AstarMaxExpansions:                   0,
		MaxIterations:                        0,
	}
}

// Option customizes a Config after it has been loaded, mirroring the
// teacher's functional-options idiom (builder.BuilderOption). Option
// constructors validate and panic on meaningless inputs; the options
// themselves never panic once applied.
type Option func(*Config)

// WithPreprocessFailurePolicy overrides the backtrack pre-pass failure
// policy.
func WithPreprocessFailurePolicy(policy PreprocessFailurePolicy) Option {
	return func(c *Config) { c.PreprocessFailurePolicy = policy }
}

// WithAstarStride overrides ASTAR_STRIDE. Panics if step is not positive.
func WithAstarStride(step float64) Option {
	if step <= 0 {
		panic("routerconfig: WithAstarStride requires a positive step")
	}
	return func(c *Config) { c.AstarStride = step }
}

// WithAstarMaxExpansions bounds a single A* invocation.
func WithAstarMaxExpansions(max int) Option {
	return func(c *Config) { c.AstarMaxExpansions = max }
}

// WithMaxIterations bounds the probabilistic solver's iteration count.
func WithMaxIterations(max int) Option {
	return func(c *Config) { c.MaxIterations = max }
}

// Load reads configuration from path (YAML/JSON/TOML, auto-detected by
// viper from its extension) layered over Default(), then applies opts in
// order. A missing path is not an error: Load falls back to Default()
// plus opts, matching the teacher's preference for forgiving defaults
// over a hard failure on absent optional input.
func Load(path string, opts ...Option) (Config, error) {
	cfg := Default()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("%w: routerconfig: %v", routererr.ErrInvalidInput, err)
			}
		} else if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: routerconfig: failed to decode %s: %v", routererr.ErrInvalidInput, path, err)
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}
