package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// sqrt2 is the diagonal step cost factor.
const sqrt2 = math.Sqrt2

// Run searches bundle for a single-connection path from req.Start to
// req.End and returns the TracePath A* reconstructs. It returns
// routererr.ErrUnroutable when the open set empties without reaching a
// goal state, and routererr.ErrBudgetExceeded when cfg.MaxExpansions is
// exhausted first.
func Run(req Request, bundle *obstacle.Bundle, cfg Config) (pcbmodel.TracePath, error) {
	if len(req.StartLayers) == 0 || len(req.EndLayers) == 0 {
		return pcbmodel.TracePath{}, fmt.Errorf("%w: astar request needs at least one start and end layer", routererr.ErrInvalidInput)
	}
	if req.NumLayers < 1 || len(bundle.Layers) != req.NumLayers {
		return pcbmodel.TracePath{}, fmt.Errorf("%w: astar request/bundle layer count mismatch", routererr.ErrInvalidInput)
	}

	start := snapVec2(req.Start)
	end := snapVec2(req.End)

	endLayers := make(map[int]bool, len(req.EndLayers))
	for _, l := range req.EndLayers {
		endLayers[l] = true
	}

	inset := maxF(req.Width/2+req.Clearance, req.ViaDiameter/2+req.ViaClearance)
	borders := buildBorders(req, inset)

	s := &searcher{
		req: req, bundle: bundle, cfg: cfg, end: end, endLayers: endLayers, borders: borders,
		bestG:    make(map[stateKey]float64),
		cameFrom: make(map[stateKey]cameFromEdge),
		closed:   make(map[stateKey]bool),
	}

	cfg.Logger.Debug().
		Int("numLayers", req.NumLayers).
		Ints("startLayers", req.StartLayers).
		Ints("endLayers", req.EndLayers).
		Msg("astar: search started")

	pq := &priorityQueue{}
	heap.Init(pq)
	for _, layer := range req.StartLayers {
		k := stateKey{X: start.X, Y: start.Y, Layer: layer, Arrival: arrivalPlanarOrStart}
		s.bestG[k] = 0
		heap.Push(pq, &pqItem{key: k, g: 0, f: s.heuristic(k)})
	}

	expansions := 0
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if s.closed[item.key] {
			continue
		}
		if best, ok := s.bestG[item.key]; ok && item.g > best {
			continue
		}
		s.closed[item.key] = true
		expansions++
		if cfg.MaxExpansions > 0 && expansions > cfg.MaxExpansions {
			cfg.Logger.Debug().Int("expansions", expansions).Msg("astar: budget exceeded")
			return pcbmodel.TracePath{}, fmt.Errorf("%w: astar exceeded %d expansions", routererr.ErrBudgetExceeded, cfg.MaxExpansions)
		}
		if cfg.VisibilityEvery > 0 && expansions%cfg.VisibilityEvery == 0 && cfg.OnExpansion != nil {
			cfg.OnExpansion(expansions, fixedpoint.NewVec2(item.key.X, item.key.Y), item.key.Layer)
		}

		if item.key.X == end.X && item.key.Y == end.Y && endLayers[item.key.Layer] {
			cfg.Logger.Debug().Int("expansions", expansions).Float64("cost", item.g).Msg("astar: goal reached")
			return s.reconstruct(item.key)
		}

		for _, succ := range s.successors(item.key) {
			if s.closed[succ.key] {
				continue
			}
			tentative := item.g + succ.cost
			if best, ok := s.bestG[succ.key]; ok && tentative >= best {
				continue
			}
			s.bestG[succ.key] = tentative
			s.cameFrom[succ.key] = succ.edge
			f := tentative + cfg.EstimateCoefficient*s.heuristic(succ.key)
			heap.Push(pq, &pqItem{key: succ.key, g: tentative, f: f})
		}
	}
	cfg.Logger.Debug().Int("expansions", expansions).Msg("astar: open set exhausted")
	return pcbmodel.TracePath{}, fmt.Errorf("%w: astar exhausted the open set", routererr.ErrUnroutable)
}

func snapVec2(v fixedpoint.Vec2) fixedpoint.Vec2 {
	return fixedpoint.NewVec2(v.X.SnapNearestEvenEven(), v.Y.SnapNearestEvenEven())
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// searcher holds one Run invocation's shared, read-only inputs plus its
// mutable search bookkeeping.
type searcher struct {
	req       Request
	bundle    *obstacle.Bundle
	cfg       Config
	end       fixedpoint.Vec2
	endLayers map[int]bool
	borders   []geom.Shape

	bestG    map[stateKey]float64
	cameFrom map[stateKey]cameFromEdge
	closed   map[stateKey]bool
}

// octile returns the octile distance between two planar points, the exact
// lower bound of the 8-direction step cost model below.
func octile(dx, dy float64) float64 {
	dx, dy = math.Abs(dx), math.Abs(dy)
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (sqrt2-1)*dy
}

func (s *searcher) heuristic(k stateKey) float64 {
	dx := k.X.Sub(s.end.X).ToFloat64()
	dy := k.Y.Sub(s.end.Y).ToFloat64()
	h := octile(dx, dy)
	if !s.endLayers[k.Layer] {
		h += s.cfg.ViaPenalty
	}
	return h
}

type successor struct {
	key  stateKey
	cost float64
	edge cameFromEdge
}

func (s *searcher) successors(cur stateKey) []successor {
	var out []successor
	out = append(out, s.planarSuccessors(cur)...)
	if cur.Arrival != arrivalVertical {
		out = append(out, s.viaSuccessors(cur)...)
	}
	return out
}

func (s *searcher) planarSuccessors(cur stateKey) []successor {
	pos := fixedpoint.NewVec2(cur.X, cur.Y)
	var out []successor
	for _, d := range direction.All() {
		newPos := pos.Add(d.ToFixedVec2(s.cfg.Stride))
		if !s.planarEdgeClear(pos, newPos, cur.Layer) {
			continue
		}
		cost := s.cfg.Stride.ToFloat64()
		if d.IsDiagonal() {
			cost *= sqrt2
		}
		key := stateKey{X: newPos.X, Y: newPos.Y, Layer: cur.Layer, Arrival: arrivalPlanarOrStart}
		out = append(out, successor{key: key, cost: cost, edge: cameFromEdge{parent: cur, isVia: false, dir: d}})
	}
	return out
}

func (s *searcher) viaSuccessors(cur stateKey) []successor {
	var out []successor
	for layer := 0; layer < s.req.NumLayers; layer++ {
		if layer == cur.Layer {
			continue
		}
		minL, maxL := cur.Layer, layer
		if minL > maxL {
			minL, maxL = maxL, minL
		}
		pos := fixedpoint.NewVec2(cur.X, cur.Y)
		if !s.viaClear(pos, minL, maxL) {
			continue
		}
		cost := s.cfg.ViaPenalty + float64(maxL-minL)*s.cfg.PerLayerPenalty
		key := stateKey{X: cur.X, Y: cur.Y, Layer: layer, Arrival: arrivalVertical}
		out = append(out, successor{key: key, cost: cost, edge: cameFromEdge{parent: cur, isVia: true, fromLyr: cur.Layer}})
	}
	return out
}

func (s *searcher) planarEdgeClear(start, end fixedpoint.Vec2, layer int) bool {
	seg := pcbmodel.TraceSegment{Start: start, End: end, Width: s.req.Width, Clearance: s.req.Clearance, Layer: layer}
	shapes := seg.Shapes()
	clearanceShapes := seg.ClearanceShapes()
	if collidesAny(shapes, s.borders) || collidesAny(clearanceShapes, s.borders) {
		return false
	}
	l := s.bundle.Layers[layer]
	for _, shp := range shapes {
		if l.ClearanceTree.AnyCollides(shp) {
			return false
		}
	}
	for _, shp := range clearanceShapes {
		if l.Tree.AnyCollides(shp) {
			return false
		}
	}
	return true
}

func (s *searcher) viaClear(pos fixedpoint.Vec2, minL, maxL int) bool {
	via := pcbmodel.Via{Position: pos, Diameter: s.req.ViaDiameter, Clearance: s.req.ViaClearance, MinLayer: minL, MaxLayer: maxL}
	shape := via.Shape()
	clearanceShape := via.ClearanceShape()
	if collidesAny([]geom.Shape{shape, clearanceShape}, s.borders) {
		return false
	}
	for layer := minL; layer <= maxL; layer++ {
		l := s.bundle.Layers[layer]
		if l.ClearanceTree.AnyCollides(shape) {
			return false
		}
		if l.Tree.AnyCollides(clearanceShape) {
			return false
		}
	}
	return true
}

func collidesAny(shapes, against []geom.Shape) bool {
	for _, a := range shapes {
		for _, b := range against {
			if geom.Collides(a, b) {
				return true
			}
		}
	}
	return false
}

// buildBorders constructs four oversized rectangles just outside the
// board's usable interior (inset by inset on every side), cached once per
// Run invocation and reused by every edge check it performs.
func buildBorders(req Request, inset float64) []geom.Shape {
	cx, cy := req.BoardCenter.ToFloat64()
	halfW := req.BoardWidth/2 - inset
	halfH := req.BoardHeight/2 - inset
	big := maxF(req.BoardWidth, req.BoardHeight) * 2
	return []geom.Shape{
		geom.NewRectangleShape(geom.Rectangle{Center: geom.Vec2{X: cx, Y: cy + halfH + big/2}, Width: big, Height: big}),
		geom.NewRectangleShape(geom.Rectangle{Center: geom.Vec2{X: cx, Y: cy - halfH - big/2}, Width: big, Height: big}),
		geom.NewRectangleShape(geom.Rectangle{Center: geom.Vec2{X: cx + halfW + big/2, Y: cy}, Width: big, Height: big}),
		geom.NewRectangleShape(geom.Rectangle{Center: geom.Vec2{X: cx - halfW - big/2, Y: cy}, Width: big, Height: big}),
	}
}
