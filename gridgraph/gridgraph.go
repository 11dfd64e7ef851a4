package gridgraph

import (
	"errors"
	"fmt"

	"github.com/LuoZheng2002/bayesian-router/core"
)

// ErrEmptyGrid is returned when the input grid has no rows or no columns.
var ErrEmptyGrid = errors.New("gridgraph: grid has no rows or columns")

// ErrNonRectangular is returned when the input grid's rows differ in
// length.
var ErrNonRectangular = errors.New("gridgraph: rows have differing lengths")

// Conn selects how many neighbors each cell considers adjacent.
type Conn int

const (
	// Conn4 joins only the four orthogonal neighbors.
	Conn4 Conn = 4
	// Conn8 additionally joins the four diagonal neighbors.
	Conn8 Conn = 8
)

// GridOptions configures NewGridGraph.
type GridOptions struct {
	// LandThreshold is the minimum cell value considered passable
	// ("land"); anything lower is "water" and gets no edges to it.
	LandThreshold int
	Conn          Conn
}

// GridGraph is an immutable, deep-copied view over a rectangular grid of
// integer cell values.
type GridGraph struct {
	Width, Height int
	CellValues    [][]int
	opts          GridOptions
	offsets       [][2]int
}

// NewGridGraph deep-copies values into a GridGraph so later mutation of
// the caller's slice has no effect on it.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	cells := make([][]int, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]int, w)
		copy(cells[y], values[y])
	}

	offsets := [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	if opts.Conn == Conn8 {
		offsets = append(offsets, [2]int{1, -1}, [2]int{1, 1}, [2]int{-1, 1}, [2]int{-1, -1})
	}

	return &GridGraph{
		Width: w, Height: h,
		CellValues: cells,
		opts:       opts,
		offsets:    offsets,
	}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

func vertexID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// ToCoreGraph converts the grid into a weighted, undirected *core.Graph:
// every cell whose value meets LandThreshold is a vertex with Metadata
// "x"/"y"/"value" (cells below it get no vertex), and unit-weight edges
// join each pair of such cells adjacent under gg.opts.Conn.
func (gg *GridGraph) ToCoreGraph() *core.Graph {
	g := core.NewGraph(core.WithWeighted())
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.CellValues[y][x] < gg.opts.LandThreshold {
				continue
			}
			id := vertexID(x, y)
			_ = g.AddVertex(id)
			v := g.InternalVertices()[id]
			v.Metadata["x"], v.Metadata["y"], v.Metadata["value"] = x, y, gg.CellValues[y][x]
		}
	}
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.CellValues[y][x] < gg.opts.LandThreshold {
				continue
			}
			uID := vertexID(x, y)
			for _, d := range gg.offsets {
				nx, ny := x+d[0], y+d[1]
				if !gg.InBounds(nx, ny) || gg.CellValues[ny][nx] < gg.opts.LandThreshold {
					continue
				}
				_, _ = g.AddEdge(uID, vertexID(nx, ny), 1)
			}
		}
	}
	return g
}
