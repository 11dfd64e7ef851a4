package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// problemFile is the JSON-friendly mirror of a pcbmodel.PcbProblem.
// PcbProblem owns a private ID generator, so the loader rebuilds one
// through NewProblem/AddNet/AddConnection rather than unmarshaling
// directly into the domain type.
type problemFile struct {
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	Center          [2]float64    `json:"center"`
	NumLayers       int           `json:"numLayers"`
	ScaleDownFactor float64       `json:"scaleDownFactor"`
	ObstacleLines   []segmentFile `json:"obstacleLines,omitempty"`
	ObstaclePolygon [][][2]float64 `json:"obstaclePolygons,omitempty"`
	Nets            []netFile     `json:"nets"`
}

type segmentFile struct {
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`
}

type padFile struct {
	Name            string  `json:"name"`
	Position        [2]float64 `json:"position"`
	ShapeKind       string  `json:"shapeKind"`
	Diameter        float64 `json:"diameter,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	CornerRadius    float64 `json:"cornerRadius,omitempty"`
	RotationDegrees float64 `json:"rotationDegrees,omitempty"`
	Clearance       float64 `json:"clearance"`
	Layer           string  `json:"layer"`
}

type connectionFile struct {
	SinkPad   padFile `json:"sinkPad"`
	Width     float64 `json:"width"`
	Clearance float64 `json:"clearance"`
}

type netFile struct {
	Name                 string           `json:"name"`
	SourcePad            padFile          `json:"sourcePad"`
	SourceTraceWidth     float64          `json:"sourceTraceWidth"`
	SourceTraceClearance float64          `json:"sourceTraceClearance"`
	ViaDiameter          float64          `json:"viaDiameter"`
	Color                [4]float32       `json:"color"`
	Connections          []connectionFile `json:"connections"`
}

func loadProblem(path string) (*pcbmodel.PcbProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("router: reading problem file %s: %w", path, err)
	}
	var pf problemFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("router: decoding problem file %s: %w", path, err)
	}
	return pf.toProblem()
}

func (pf problemFile) toProblem() (*pcbmodel.PcbProblem, error) {
	problem, err := pcbmodel.NewProblem(
		pf.Width, pf.Height,
		fixedpoint.Vec2FromFloat64(pf.Center[0], pf.Center[1]),
		pf.NumLayers, pf.ScaleDownFactor,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range pf.ObstacleLines {
		problem.ObstacleLines = append(problem.ObstacleLines, geom.Segment{
			Start: geom.Vec2{X: line.Start[0], Y: line.Start[1]},
			End:   geom.Vec2{X: line.End[0], Y: line.End[1]},
		})
	}
	for _, poly := range pf.ObstaclePolygon {
		vertices := make([]geom.Vec2, len(poly))
		for i, v := range poly {
			vertices[i] = geom.Vec2{X: v[0], Y: v[1]}
		}
		problem.ObstaclePolygons = append(problem.ObstaclePolygons, vertices)
	}

	for _, net := range pf.Nets {
		sourcePad, err := net.SourcePad.toPad()
		if err != nil {
			return nil, fmt.Errorf("router: net %q source pad: %w", net.Name, err)
		}
		if err := problem.AddNet(net.Name, pcbmodel.NetInfo{
			SourcePad:            sourcePad,
			SourceTraceWidth:     net.SourceTraceWidth,
			SourceTraceClearance: net.SourceTraceClearance,
			ViaDiameter:          net.ViaDiameter,
			Color:                net.Color,
		}); err != nil {
			return nil, err
		}
		for _, conn := range net.Connections {
			sinkPad, err := conn.SinkPad.toPad()
			if err != nil {
				return nil, fmt.Errorf("router: net %q connection sink pad: %w", net.Name, err)
			}
			if _, err := problem.AddConnection(net.Name, sinkPad, conn.Width, conn.Clearance); err != nil {
				return nil, err
			}
		}
	}

	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return problem, nil
}

func (pf padFile) toPad() (pcbmodel.Pad, error) {
	shape, err := pf.toShape()
	if err != nil {
		return pcbmodel.Pad{}, err
	}
	layer, err := parseLayerSpec(pf.Layer)
	if err != nil {
		return pcbmodel.Pad{}, err
	}
	return pcbmodel.Pad{
		Name:            pf.Name,
		Position:        fixedpoint.Vec2FromFloat64(pf.Position[0], pf.Position[1]),
		Shape:           shape,
		RotationDegrees: pf.RotationDegrees,
		Clearance:       pf.Clearance,
		Layer:           layer,
	}, nil
}

func (pf padFile) toShape() (pcbmodel.PadShape, error) {
	switch pf.ShapeKind {
	case "circle":
		return pcbmodel.PadShape{Kind: pcbmodel.PadCircle, Diameter: pf.Diameter}, nil
	case "rectangle":
		return pcbmodel.PadShape{Kind: pcbmodel.PadRectangle, Width: pf.Width, Height: pf.Height}, nil
	case "roundRect":
		return pcbmodel.PadShape{
			Kind: pcbmodel.PadRoundRect, Width: pf.Width, Height: pf.Height, CornerRadius: pf.CornerRadius,
		}, nil
	default:
		return pcbmodel.PadShape{}, fmt.Errorf("router: unknown pad shape kind %q", pf.ShapeKind)
	}
}

func parseLayerSpec(s string) (pcbmodel.LayerSpec, error) {
	switch s {
	case "front":
		return pcbmodel.FrontOnly, nil
	case "back":
		return pcbmodel.BackOnly, nil
	case "throughHole", "":
		return pcbmodel.ThroughHole, nil
	default:
		return 0, fmt.Errorf("router: unknown layer spec %q", s)
	}
}
