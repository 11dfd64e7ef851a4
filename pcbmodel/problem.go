package pcbmodel

import (
	"fmt"
	"sync/atomic"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// ConnectionID uniquely identifies one pad-to-pad Connection within a
// PcbProblem. It is drawn from a monotonic counter owned by the Problem
// and advanced with atomic.AddUint64.
type ConnectionID uint64

// Connection is an unordered pad pair within a single Net that must be
// linked by at least one trace, carrying its own width and clearance.
type Connection struct {
	ID        ConnectionID
	SinkPad   Pad
	Width     float64
	Clearance float64
}

// NetInfo groups the connections sharing one source pad.
type NetInfo struct {
	SourcePad            Pad
	SourceTraceWidth     float64
	SourceTraceClearance float64
	ViaDiameter          float64
	Color                [4]float32
	Connections          map[ConnectionID]*Connection
}

// PcbProblem aggregates nets plus board geometry and owns the
// ConnectionID generator, per spec.md §3's "PcbProblem ... owns ID
// generators".
type PcbProblem struct {
	Width, Height    float64
	Center           fixedpoint.Vec2
	NumLayers        int
	ScaleDownFactor  float64
	ObstacleLines    []geom.Segment
	ObstaclePolygons [][]geom.Vec2
	Nets             map[string]*NetInfo

	nextConnectionID uint64
}

// NewProblem constructs an empty PcbProblem over a board of the given
// dimensions and layer count.
func NewProblem(width, height float64, center fixedpoint.Vec2, numLayers int, scaleDownFactor float64) (*PcbProblem, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: board must have positive area, got %gx%g", routererr.ErrInvalidInput, width, height)
	}
	if numLayers < 1 {
		return nil, fmt.Errorf("%w: numLayers must be >= 1, got %d", routererr.ErrInvalidInput, numLayers)
	}
	return &PcbProblem{
		Width: width, Height: height, Center: center, NumLayers: numLayers,
		ScaleDownFactor: scaleDownFactor,
		Nets:            make(map[string]*NetInfo),
	}, nil
}

// AddNet registers a new net. Returns ErrInvalidInput if the name is
// already in use or the color collides with an existing net's color
// (spec.md §7's "non-unique net colors").
func (p *PcbProblem) AddNet(name string, info NetInfo) error {
	if _, exists := p.Nets[name]; exists {
		return fmt.Errorf("%w: duplicate net name %q", routererr.ErrInvalidInput, name)
	}
	for otherName, other := range p.Nets {
		if other.Color == info.Color {
			return fmt.Errorf("%w: net %q reuses net %q's color", routererr.ErrInvalidInput, name, otherName)
		}
	}
	if info.Connections == nil {
		info.Connections = make(map[ConnectionID]*Connection)
	}
	clone := info
	p.Nets[name] = &clone
	return nil
}

// AddConnection allocates a fresh ConnectionID and registers a new
// Connection under the named net's sink-pad list.
func (p *PcbProblem) AddConnection(netName string, sinkPad Pad, width, clearance float64) (ConnectionID, error) {
	net, ok := p.Nets[netName]
	if !ok {
		return 0, fmt.Errorf("%w: unknown net %q", routererr.ErrInvalidInput, netName)
	}
	id := ConnectionID(atomic.AddUint64(&p.nextConnectionID, 1))
	net.Connections[id] = &Connection{ID: id, SinkPad: sinkPad, Width: width, Clearance: clearance}
	return id, nil
}

// Validate checks the invariants spec.md §7 attributes to InvalidInput:
// every connection references a layer specifier consistent with NumLayers,
// and the board has positive area (already checked by NewProblem).
func (p *PcbProblem) Validate() error {
	for name, net := range p.Nets {
		if err := validateLayerSpec(net.SourcePad.Layer); err != nil {
			return fmt.Errorf("%w: net %q source pad: %v", routererr.ErrInvalidInput, name, err)
		}
		for id, conn := range net.Connections {
			if err := validateLayerSpec(conn.SinkPad.Layer); err != nil {
				return fmt.Errorf("%w: net %q connection %d: %v", routererr.ErrInvalidInput, name, id, err)
			}
		}
	}
	return nil
}

func validateLayerSpec(l LayerSpec) error {
	switch l {
	case FrontOnly, BackOnly, ThroughHole:
		return nil
	default:
		return fmt.Errorf("out-of-range layer specifier %d", l)
	}
}

// FixedTrace is the committed result of routing one Connection.
type FixedTrace struct {
	NetName      string
	ConnectionID ConnectionID
	TracePath    TracePath
}

// PcbSolution maps every problem connection to its committed trace. On
// success it must be total over the problem's connections (spec.md §3).
type PcbSolution struct {
	DeterminedTraces map[ConnectionID]FixedTrace
	ScaleDownFactor  float64
}

// IsTotal reports whether sol has a trace for every connection in p.
func (sol PcbSolution) IsTotal(p *PcbProblem) bool {
	for _, net := range p.Nets {
		for id := range net.Connections {
			if _, ok := sol.DeterminedTraces[id]; !ok {
				return false
			}
		}
	}
	return true
}
