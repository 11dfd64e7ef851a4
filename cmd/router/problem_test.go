package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

const sampleProblemJSON = `{
  "width": 20,
  "height": 20,
  "center": [0, 0],
  "numLayers": 2,
  "scaleDownFactor": 1.0,
  "nets": [
    {
      "name": "A",
      "sourcePad": {
        "name": "A-src",
        "position": [-5, 0],
        "shapeKind": "circle",
        "diameter": 0.4,
        "clearance": 0.1,
        "layer": "throughHole"
      },
      "sourceTraceWidth": 0.2,
      "sourceTraceClearance": 0.1,
      "viaDiameter": 0.6,
      "color": [1, 0, 0, 1],
      "connections": [
        {
          "sinkPad": {
            "name": "A-sink",
            "position": [5, 0],
            "shapeKind": "circle",
            "diameter": 0.4,
            "clearance": 0.1,
            "layer": "throughHole"
          },
          "width": 0.2,
          "clearance": 0.1
        }
      ]
    }
  ]
}`

func TestLoadProblemBuildsValidPcbProblem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleProblemJSON), 0o644))

	problem, err := loadProblem(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, problem.Width)
	assert.Equal(t, 2, problem.NumLayers)
	require.Contains(t, problem.Nets, "A")
	net := problem.Nets["A"]
	assert.Equal(t, "A-src", net.SourcePad.Name)
	require.Len(t, net.Connections, 1)
	require.NoError(t, problem.Validate())
}

func TestLoadProblemRejectsUnknownPadShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	bad := `{"width":10,"height":10,"center":[0,0],"numLayers":1,"scaleDownFactor":1,"nets":[
		{"name":"A","sourcePad":{"name":"s","position":[0,0],"shapeKind":"hexagon","clearance":0.1,"layer":"throughHole"}}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := loadProblem(path)
	assert.Error(t, err)
}

func TestLoadProblemMissingFile(t *testing.T) {
	_, err := loadProblem(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseLayerSpec(t *testing.T) {
	front, err := parseLayerSpec("front")
	require.NoError(t, err)
	assert.Equal(t, pcbmodel.FrontOnly, front)

	back, err := parseLayerSpec("back")
	require.NoError(t, err)
	assert.Equal(t, pcbmodel.BackOnly, back)

	th, err := parseLayerSpec("")
	require.NoError(t, err)
	assert.Equal(t, pcbmodel.ThroughHole, th)

	_, err = parseLayerSpec("diagonal")
	assert.Error(t, err)
}
