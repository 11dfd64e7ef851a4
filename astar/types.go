// Package astar implements the clearance-aware, multi-layer, 8-connected
// pathfinder C5 specifies: AStarModel searches a state space of (position,
// layer, arrival direction) against a shared obstacle.Bundle, returning a
// single-net TracePath.
package astar

import (
	"github.com/rs/zerolog"

	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
)

// Config holds the tunables spec.md §6 lists for A* itself. Callers build
// one from routerconfig.Config; astar has no dependency on viper/cobra, so
// it stays usable as a library on its own (the teacher's packages carry no
// ambient-stack imports either — core.Graph knows nothing of zerolog).
type Config struct {
	// Stride is the planar step length, a configured multiple of DELTA.
	Stride fixedpoint.FixedPoint
	// EstimateCoefficient tunes the heuristic; 1.0 is admissible under the
	// cost model below, values above 1.0 trade optimality for speed.
	EstimateCoefficient float64
	// ViaPenalty is the fixed cost charged for using a via, independent of
	// how many layers it spans.
	ViaPenalty float64
	// PerLayerPenalty is charged per layer a via crosses, in addition to
	// ViaPenalty.
	PerLayerPenalty float64
	// MaxExpansions bounds the search (spec.md §7's "Budget exceeded"); 0
	// means unbounded.
	MaxExpansions int
	// VisibilityEvery, if non-zero, invokes OnExpansion after that many
	// expansions (spec.md §4.3's visibility hook). The pause/command gate
	// itself lives in the command package; astar only calls the hook.
	VisibilityEvery int
	// OnExpansion is called every VisibilityEvery expansions with the
	// number of expansions so far and the state just expanded. nil
	// disables the hook regardless of VisibilityEvery.
	OnExpansion func(expansions int, current fixedpoint.Vec2, layer int)
	// Logger receives one Debug event per Run invocation's outcome. The
	// zero value logs nothing (zerolog.Nop()).
	Logger zerolog.Logger
}

// DefaultConfig returns reasonable defaults for standalone use and tests.
func DefaultConfig() Config {
	return Config{
		Stride:              fixedpoint.DELTA.Scale(2),
		EstimateCoefficient: 1.0,
		ViaPenalty:          1.0,
		PerLayerPenalty:     0.1,
		MaxExpansions:       0,
		Logger:              zerolog.Nop(),
	}
}

// arrivalTag distinguishes the two successor-generation regimes: a state
// reached by a via may only be followed by a planar step (never another
// via without an intervening planar move); a state reached planarly (or
// the start state) may be followed by either.
type arrivalTag int

const (
	arrivalPlanarOrStart arrivalTag = iota
	arrivalVertical
)

// stateKey identifies a search state for the open/closed sets. Arrival
// direction does not gate further successors (only whether the previous
// step was a via does), so it is tracked separately for reconstruction
// and left out of the key.
type stateKey struct {
	X, Y    fixedpoint.FixedPoint
	Layer   int
	Arrival arrivalTag
}

// cameFromEdge records how a state was reached, for path reconstruction.
type cameFromEdge struct {
	parent  stateKey
	isVia   bool
	dir     direction.Direction // valid only when !isVia
	fromLyr int                 // valid only when isVia
}

// Request bundles one A* invocation's inputs (spec.md §4.3).
type Request struct {
	Start          fixedpoint.Vec2
	End            fixedpoint.Vec2
	StartLayers    []int // candidate starting layers
	EndLayers      []int // goal layers
	NumLayers      int
	Width          float64
	Clearance      float64
	ViaDiameter    float64
	ViaClearance   float64
	BoardWidth     float64
	BoardHeight    float64
	BoardCenter    fixedpoint.Vec2
}
