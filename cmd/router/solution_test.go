package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

func sampleSolution(t *testing.T) *pcbmodel.PcbSolution {
	t.Helper()
	path, err := pcbmodel.BuildTracePath([]pcbmodel.TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0)},
		{Position: fixedpoint.Vec2FromFloat64(3, 0)},
	}, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)

	return &pcbmodel.PcbSolution{
		ScaleDownFactor: 1.0,
		DeterminedTraces: map[pcbmodel.ConnectionID]pcbmodel.FixedTrace{
			1: {NetName: "A", ConnectionID: 1, TracePath: path},
		},
	}
}

func TestWriteSolutionToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solution.json")

	require.NoError(t, writeSolution(path, sampleSolution(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sf solutionFile
	require.NoError(t, json.Unmarshal(data, &sf))
	assert.Equal(t, 1.0, sf.ScaleDownFactor)
	require.Len(t, sf.DeterminedTraces, 1)
	assert.Equal(t, "A", sf.DeterminedTraces[0].NetName)
	assert.Equal(t, 3.0, sf.DeterminedTraces[0].TotalLength)
	require.Len(t, sf.DeterminedTraces[0].Anchors, 2)
	assert.Equal(t, [2]float64{3, 0}, sf.DeterminedTraces[0].Anchors[1].Position)
}
