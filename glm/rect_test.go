package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := RectFromXYWH(10, 20, 100, 50)

	assert.True(t, r.Contains(Vec2i{10, 20}))
	assert.True(t, r.Contains(Vec2i{110, 70}))
	assert.False(t, r.Contains(Vec2i{9, 20}))
	assert.False(t, r.Contains(Vec2i{10, 71}))
}

func TestRectInsetRightNeverNegative(t *testing.T) {
	r := RectFromXYWH[float32](0, 0, 80, 30)

	assert.Equal(t, float32(0), r.InsetRight(105).W)
	assert.Equal(t, float32(45), r.InsetRight(35).W)
}

func TestPointOnCircle(t *testing.T) {
	p := PointOnCircle(Vec2f{10, 10}, 5, DegToRad(90))

	assert.InDelta(t, 10, p[0], 1e-4)
	assert.InDelta(t, 15, p[1], 1e-4)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite[float32](1, 2, 3))
	assert.False(t, IsFinite(float32(math.NaN())))
	assert.False(t, IsFinite(math.Inf(1)))
}

func TestRectIntersect(t *testing.T) {
	a := RectFromXYWH(0, 0, 100, 50)

	assert.Equal(t, RectFromXYWH(50, 10, 50, 40), a.Intersect(RectFromXYWH(50, 10, 200, 200)))
	assert.Equal(t, a, a.Intersect(RectFromXYWH(-10, -10, 500, 500)))

	disjoint := a.Intersect(RectFromXYWH(200, 0, 10, 10))
	assert.True(t, disjoint.Empty())
}
