package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
)

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range All() {
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestIsDiagonal(t *testing.T) {
	assert.True(t, TopRight.IsDiagonal())
	assert.True(t, BottomLeft.IsDiagonal())
	assert.False(t, Up.IsDiagonal())
	assert.False(t, Right.IsDiagonal())
}

func TestRotations(t *testing.T) {
	assert.Equal(t, Left, Up.Left90())
	assert.Equal(t, Right, Up.Right90())
	assert.Equal(t, TopLeft, Up.Left45())
	assert.Equal(t, TopRight, Up.Right45())
	assert.Equal(t, Up, Up.Right90().Right90().Right90().Right90())
}

func TestFromPointsAxisAligned(t *testing.T) {
	origin := fixedpoint.Vec2FromFloat64(0, 0)
	d, err := FromPoints(origin, fixedpoint.Vec2FromFloat64(0, 3))
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = FromPoints(origin, fixedpoint.Vec2FromFloat64(2, 0))
	require.NoError(t, err)
	assert.Equal(t, Right, d)
}

func TestFromPointsDiagonal(t *testing.T) {
	origin := fixedpoint.Vec2FromFloat64(0, 0)
	d, err := FromPoints(origin, fixedpoint.Vec2FromFloat64(2, 2))
	require.NoError(t, err)
	assert.Equal(t, TopRight, d)

	d, err = FromPoints(origin, fixedpoint.Vec2FromFloat64(-3, -3))
	require.NoError(t, err)
	assert.Equal(t, BottomLeft, d)
}

func TestFromPointsInvalid(t *testing.T) {
	origin := fixedpoint.Vec2FromFloat64(0, 0)
	_, err := FromPoints(origin, fixedpoint.Vec2FromFloat64(1, 2))
	require.ErrorIs(t, err, ErrNotAligned)

	_, err = FromPoints(origin, origin)
	require.ErrorIs(t, err, ErrNotAligned)

	assert.False(t, IsTwoPointsValidDirection(origin, fixedpoint.Vec2FromFloat64(1, 2)))
	assert.True(t, IsTwoPointsValidDirection(origin, fixedpoint.Vec2FromFloat64(3, 3)))
}

func TestToFixedVec2(t *testing.T) {
	v := Right.ToFixedVec2(fixedpoint.FromInt(2))
	assert.Equal(t, fixedpoint.FromInt(2), v.X)
	assert.Equal(t, fixedpoint.Zero, v.Y)
}
