// Package routability is a cheap pre-check layered in front of astar.Run:
// it rasterizes one layer of an obstacle.Bundle into a coarse occupancy
// grid, then asks bfs whether the grid connects a connection's start and
// end cells at all. A negative answer lets a solver step skip a connection
// before paying for a full A* search. Neither answer is a guarantee: the
// coarse grid can hide a clearance-sized gap A* would refuse, and a cell
// counts as blocked whenever an obstacle lies within half a cell of its
// center, so a gap narrower than a cell that A* could use may read as
// blocked.
package routability

import (
	"fmt"

	"github.com/LuoZheng2002/bayesian-router/bfs"
	"github.com/LuoZheng2002/bayesian-router/gridgraph"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// Config controls the rasterization resolution. Smaller CellSize gives a
// tighter (but more expensive) pre-check; it should stay coarser than the
// A* stride, since this package exists to reject cheaply, not to route.
type Config struct {
	CellSize float64
}

// DefaultConfig rasterizes at roughly four A* strides per cell, a
// resolution coarse enough to stay cheap while still catching boards cut
// in half by a barrier of pads or a board edge.
func DefaultConfig() Config {
	return Config{CellSize: 8 * fixedpoint.DELTA.ToFloat64()}
}

// Grid is one rasterized layer's occupancy map plus the coordinate frame
// needed to map world positions to cells.
type Grid struct {
	cellSize         float64
	originX, originY float64 // world coordinate of cell (0,0)'s center
	cols, rows       int
	graph            *gridgraph.GridGraph
}

// Build rasterizes layer of bundle over a board of the given dimensions
// centered at center: a cell is "land" (value 1) when a probe disc of
// diameter cellSize centered on the cell does not collide with anything
// on that layer's clearance tree, "water" (0) otherwise.
func Build(bundle *obstacle.Bundle, layer int, boardWidth, boardHeight float64, center fixedpoint.Vec2, cfg Config) (*Grid, error) {
	if layer < 0 || layer >= len(bundle.Layers) {
		return nil, fmt.Errorf("%w: routability layer %d out of range", routererr.ErrInvalidInput, layer)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: routability cell size must be positive", routererr.ErrInvalidInput)
	}

	cols := int(boardWidth/cfg.CellSize) + 1
	rows := int(boardHeight/cfg.CellSize) + 1
	cx, cy := center.ToFloat64()
	originX := cx - boardWidth/2 + cfg.CellSize/2
	originY := cy - boardHeight/2 + cfg.CellSize/2

	tree := bundle.Layers[layer].ClearanceTree
	values := make([][]int, rows)
	for row := 0; row < rows; row++ {
		values[row] = make([]int, cols)
		for col := 0; col < cols; col++ {
			wx := originX + float64(col)*cfg.CellSize
			wy := originY + float64(row)*cfg.CellSize
			probe := geom.NewCircleShape(geom.Circle{Center: geom.Vec2{X: wx, Y: wy}, Diameter: cfg.CellSize})
			if tree.AnyCollides(probe) {
				values[row][col] = 0
			} else {
				values[row][col] = 1
			}
		}
	}

	gg, err := gridgraph.NewGridGraph(values, gridgraph.GridOptions{LandThreshold: 1, Conn: gridgraph.Conn8})
	if err != nil {
		return nil, fmt.Errorf("routability: %w", err)
	}
	return &Grid{cellSize: cfg.CellSize, originX: originX, originY: originY, cols: cols, rows: rows, graph: gg}, nil
}

func (g *Grid) cellOf(pos fixedpoint.Vec2) (x, y int, ok bool) {
	wx, wy := pos.ToFloat64()
	x = int((wx - g.originX) / g.cellSize + 0.5)
	y = int((wy - g.originY) / g.cellSize + 0.5)
	return x, y, g.graph.InBounds(x, y)
}

// Connected reports whether start and end fall in cells joined by a path
// of land cells. A false return means the coarse grid has no such path;
// astar.Run may still find a route through a gap narrower than a cell. A
// true return is not a promise A* will succeed, since the coarse grid
// cannot see sub-cell clearance gaps.
func (g *Grid) Connected(start, end fixedpoint.Vec2) (bool, error) {
	sx, sy, ok := g.cellOf(start)
	if !ok {
		return false, fmt.Errorf("%w: routability start position falls outside the board", routererr.ErrInvalidInput)
	}
	ex, ey, ok := g.cellOf(end)
	if !ok {
		return false, fmt.Errorf("%w: routability end position falls outside the board", routererr.ErrInvalidInput)
	}

	graph := g.graph.ToCoreGraph()
	startID := cellID(sx, sy)
	endID := cellID(ex, ey)
	if !graph.HasVertex(startID) || !graph.HasVertex(endID) {
		return false, nil
	}

	result, err := bfs.BFS(graph, startID)
	if err != nil {
		return false, fmt.Errorf("routability: %w", err)
	}
	_, reached := result.Depth[endID]
	return reached, nil
}

func cellID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}
