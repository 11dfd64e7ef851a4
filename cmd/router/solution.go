package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

type solutionFile struct {
	ScaleDownFactor  float64               `json:"scaleDownFactor"`
	DeterminedTraces []determinedTraceFile `json:"determinedTraces"`
}

type determinedTraceFile struct {
	ConnectionID uint64        `json:"connectionId"`
	NetName      string        `json:"netName"`
	TotalLength  float64       `json:"totalLength"`
	Anchors      []anchorFile  `json:"anchors"`
}

type anchorFile struct {
	Position   [2]float64 `json:"position"`
	StartLayer int        `json:"startLayer,omitempty"`
	EndLayer   int        `json:"endLayer,omitempty"`
}

func writeSolution(path string, sol *pcbmodel.PcbSolution) error {
	sf := solutionFile{ScaleDownFactor: sol.ScaleDownFactor}
	for id, trace := range sol.DeterminedTraces {
		anchors := make([]anchorFile, len(trace.TracePath.Anchors))
		for i, a := range trace.TracePath.Anchors {
			x, y := a.Position.ToFloat64()
			anchors[i] = anchorFile{Position: [2]float64{x, y}, StartLayer: a.StartLayer, EndLayer: a.EndLayer}
		}
		sf.DeterminedTraces = append(sf.DeterminedTraces, determinedTraceFile{
			ConnectionID: uint64(id),
			NetName:      trace.NetName,
			TotalLength:  trace.TracePath.TotalLength,
			Anchors:      anchors,
		})
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("router: encoding solution: %w", err)
	}
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("router: writing solution file %s: %w", path, err)
	}
	return nil
}
