package quadtree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LuoZheng2002/bayesian-router/geom"
)

func circleEntry(x, y, diameter float64, owner string) Entry {
	return Entry{
		Shape: geom.NewCircleShape(geom.Circle{Center: geom.Vec2{X: x, Y: y}, Diameter: diameter}),
		Owner: owner,
	}
}

func TestInsertAndAnyCollides(t *testing.T) {
	tree := New(geom.Vec2{X: 0, Y: 0}, 10)
	tree.Insert(circleEntry(1, 1, 0.5, "a"))
	tree.Insert(circleEntry(-5, -5, 0.5, "b"))

	probe := geom.NewCircleShape(geom.Circle{Center: geom.Vec2{X: 1, Y: 1}, Diameter: 0.2})
	assert.True(t, tree.AnyCollides(probe))

	farProbe := geom.NewCircleShape(geom.Circle{Center: geom.Vec2{X: 9, Y: 9}, Diameter: 0.1})
	assert.False(t, tree.AnyCollides(farProbe))
}

func TestSubdivideOnOverflow(t *testing.T) {
	tree := New(geom.Vec2{X: 0, Y: 0}, 10)
	for i := 0; i < 20; i++ {
		x := float64(i%5) - 2
		y := float64(i/5) - 2
		tree.Insert(circleEntry(x, y, 0.1, i))
	}
	// Entries on x == 0 or y == 0 straddle the root's quadrants and are
	// stored in every leaf they overlap: 12 + 3*2 + 4*2 + 1*4 = 30.
	assert.Equal(t, 30, tree.Count())
	assert.NotNil(t, tree.children[0], "expected root to have subdivided")
}

func TestQueryRegion(t *testing.T) {
	tree := New(geom.Vec2{X: 0, Y: 0}, 10)
	tree.Insert(circleEntry(1, 1, 0.2, "a"))
	tree.Insert(circleEntry(8, 8, 0.2, "b"))

	region := geom.Rectangle{Center: geom.Vec2{X: 0, Y: 0}, Width: 4, Height: 4}
	results := tree.QueryRegion(region)
	assert.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Owner)
}
