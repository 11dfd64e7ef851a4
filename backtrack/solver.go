// Package backtrack implements the naive backtracking solver (spec.md
// §4.5): an ordered, exhaustive depth-first search over each net's
// connections, one fixed trace per stack frame, popping back to the last
// frame with an untried alternative whenever A* cannot route the current
// connection against the traces fixed so far.
package backtrack

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/LuoZheng2002/bayesian-router/astar"
	"github.com/LuoZheng2002/bayesian-router/command"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/optimize"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/render"
	"github.com/LuoZheng2002/bayesian-router/routererr"
	"github.com/LuoZheng2002/bayesian-router/routerconfig"
)

// Solver holds everything one Solve call needs: the problem to route, its
// tuning knobs, and the two surfaces the main loop publishes progress
// through (naive_backtrack_algo.rs's render slot and command-level gate).
type Solver struct {
	Problem *pcbmodel.PcbProblem
	Config  routerconfig.Config
	Render  *render.Slot
	Gate    *command.Gate
	Logger  zerolog.Logger
}

// New builds a Solver with a no-op logger and a fresh render slot when the
// caller doesn't need to observe progress.
func New(problem *pcbmodel.PcbProblem, cfg routerconfig.Config) *Solver {
	return &Solver{
		Problem: problem,
		Config:  cfg,
		Render:  render.NewSlot(),
		Gate:    command.NewGate(),
		Logger:  zerolog.Nop(),
	}
}

// astarConfig derives an astar.Config from the solver's routerconfig
// values, keeping astar's own via-cost defaults since routerconfig.Config
// doesn't carry them separately.
func (s *Solver) astarConfig() astar.Config {
	cfg := astar.DefaultConfig()
	if s.Config.AstarStride > 0 {
		cfg.Stride = fixedpoint.FromFloat64(s.Config.AstarStride)
	}
	if s.Config.EstimateCoefficient > 0 {
		cfg.EstimateCoefficient = s.Config.EstimateCoefficient
	}
	cfg.MaxExpansions = s.Config.AstarMaxExpansions
	cfg.Logger = s.Logger
	return cfg
}

// Solve runs the ordered depth-first backtracking search to completion,
// returning a PcbSolution with exactly one committed trace per ordered
// connection (a connection excluded from the ordering under
// routerconfig.AllowExcludeOnPreprocessFailure gets none), or
// routererr.ErrStackExhausted if no ordering of alternatives routes every
// ordered connection.
func (s *Solver) Solve() (*pcbmodel.PcbSolution, error) {
	refs := collectConnections(s.Problem)
	if len(refs) == 0 {
		return &pcbmodel.PcbSolution{
			DeterminedTraces: map[pcbmodel.ConnectionID]pcbmodel.FixedTrace{},
			ScaleDownFactor:  s.Problem.ScaleDownFactor,
		}, nil
	}

	ordered, err := s.order(refs)
	if err != nil {
		return nil, err
	}

	stack := []*Node{newRootNode(ordered)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		connectionID, ok := top.popFront()
		if !ok {
			stack = stack[:len(stack)-1]
			s.Logger.Debug().Int("stackDepth", len(stack)).Msg("backtrack: exhausted frame, popping")
			continue
		}

		ref := refs[connectionID]
		bundle := s.stepBundle(refs, top, ref.netName)
		req := astarRequest(s.Problem, ref)
		path, err := astar.Run(req, bundle, s.astarConfig())
		if err != nil {
			if errors.Is(err, routererr.ErrUnroutable) || errors.Is(err, routererr.ErrBudgetExceeded) {
				s.Logger.Debug().Uint64("connection", uint64(connectionID)).Err(err).
					Msg("backtrack: connection unroutable against current fixed traces")
				continue
			}
			return nil, fmt.Errorf("backtrack: connection %d: %w", connectionID, err)
		}

		checker := collisionChecker(bundle)
		path = optimize.Optimize(path, checker, ref.conn.Width, ref.conn.Clearance, ref.net.ViaDiameter, ref.conn.Clearance)

		trace := pcbmodel.FixedTrace{NetName: ref.netName, ConnectionID: connectionID, TracePath: path}
		child := top.child(connectionID, trace)
		stack = append(stack, child)

		s.publish(child, refs)
		s.Gate.WaitIfGated(command.PhaseProbaModelResult)

		if len(child.Fixed) == len(ordered) {
			return &pcbmodel.PcbSolution{
				DeterminedTraces: child.Fixed,
				ScaleDownFactor:  s.Problem.ScaleDownFactor,
			}, nil
		}
	}

	return nil, routererr.ErrStackExhausted
}

// stepBundle assembles the obstacle set for routing a connection on net
// excludeNet: every other net's pads, plus every fixed trace committed so
// far by a different net, exactly naive_backtrack_algo.rs's per-step
// obstacle assembly.
func (s *Solver) stepBundle(refs map[pcbmodel.ConnectionID]connectionRef, node *Node, excludeNet string) *obstacle.Bundle {
	builder := obstacle.NewBuilder(s.Problem.Width, s.Problem.Height, s.Problem.Center, s.Problem.NumLayers)
	for netName, net := range s.Problem.Nets {
		if netName == excludeNet {
			continue
		}
		builder.AddPad(net.SourcePad)
		for _, conn := range net.Connections {
			builder.AddPad(conn.SinkPad)
		}
	}
	for id, trace := range node.Fixed {
		if refs[id].netName == excludeNet {
			continue
		}
		builder.AddTracePath(trace.TracePath)
	}
	return builder.Build()
}

// collisionChecker adapts a bundle into the optimize.CollisionChecker
// shape the post-processing rules probe against.
func collisionChecker(bundle *obstacle.Bundle) optimize.CollisionChecker {
	return func(start, end fixedpoint.Vec2, width, clearance float64, layer int) bool {
		if layer < 0 || layer >= len(bundle.Layers) {
			return true
		}
		seg := pcbmodel.TraceSegment{Start: start, End: end, Width: width, Clearance: clearance, Layer: layer}
		l := bundle.Layers[layer]
		for _, shp := range seg.Shapes() {
			if l.ClearanceTree.AnyCollides(shp) {
				return true
			}
		}
		for _, shp := range seg.ClearanceShapes() {
			if l.Tree.AnyCollides(shp) {
				return true
			}
		}
		return false
	}
}

// publish renders the node just pushed as a Snapshot and offers it to the
// render slot, mirroring display_when_necessary's is-some-bail-out publish.
func (s *Solver) publish(node *Node, refs map[pcbmodel.ConnectionID]connectionRef) {
	if s.Render == nil {
		return
	}
	var padShapes []render.ShapeRenderable
	addPadShape := func(pad pcbmodel.Pad, color [4]float32) {
		for _, shp := range pad.Shapes() {
			padShapes = append(padShapes, render.ShapeRenderable{Shape: shp, Color: color})
		}
	}
	for _, net := range s.Problem.Nets {
		addPadShape(net.SourcePad, net.Color)
		for _, conn := range net.Connections {
			addPadShape(conn.SinkPad, net.Color)
		}
	}

	var batches []render.RenderableBatch
	for id, trace := range node.Fixed {
		color := refs[id].net.Color
		var shapes []render.ShapeRenderable
		for _, seg := range trace.TracePath.Segments {
			for _, shp := range seg.Shapes() {
				shapes = append(shapes, render.ShapeRenderable{Shape: shp, Color: color})
			}
		}
		batches = append(batches, render.RenderableBatch{Renderables: shapes, Mode: render.DrawLine})
	}

	snap := render.Snapshot{
		Width:        s.Problem.Width,
		Height:       s.Problem.Height,
		Center:       s.Problem.Center,
		TraceBatches: batches,
		PadShapes:    padShapes,
	}
	s.Render.Publish(snap)
}
