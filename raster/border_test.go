package raster

import (
	"testing"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStroke = Stroke{
	Segments:      Segments{Base: 16, Coeff: 1.5},
	ThicknessStep: 0.5,
	Mode:          ArcPolyline,
}

func uniformWidth(w float32) layout.BorderWidth {
	return layout.BorderWidth{Left: w, Right: w, Top: w, Bottom: w}
}

func TestBorderWithoutRadiusIsFourStrips(t *testing.T) {
	shape := TessellateBorder(testBox, layout.CornerRadius{}, uniformWidth(2), testColor, testStroke)

	assert.Equal(t, 8, shape.Mesh.TriangleCount())
	assert.Empty(t, shape.Polylines)
}

func TestBorderSkipsEdgesWithoutWidth(t *testing.T) {
	width := layout.BorderWidth{Top: 1}
	shape := TessellateBorder(testBox, layout.Uniform(10), width, testColor, testStroke)

	// only the top strip, running between the two top corners
	require.Equal(t, 2, shape.Mesh.TriangleCount())

	for _, v := range shape.Mesh.Vertices {
		x, y := v.Position.XY()
		assert.True(t, x == testBox.Left()+10 || x == testBox.Right()-10, "x=%v", x)
		assert.True(t, y == testBox.Top() || y == testBox.Top()+1, "y=%v", y)
	}

	// two steps of 0.5 cover a width of 1, only the top corners are stroked
	assert.Len(t, shape.Polylines, 2*2)
}

func TestBorderCornersUseTopAndBottomWidth(t *testing.T) {
	width := layout.BorderWidth{Left: 4, Right: 4, Top: 1, Bottom: 2}
	shape := TessellateBorder(testBox, layout.Uniform(10), width, testColor, testStroke)

	// 2 lines for each top corner, 4 lines for each bottom corner
	require.Len(t, shape.Polylines, 2*2+2*4)

	segments := SegmentCount(10, 16, 1.5)
	for _, line := range shape.Polylines {
		assert.Len(t, line.Points, segments+1)
		assert.Equal(t, testColor, line.Color)
	}

	// top left corner, outermost line first
	center := glm.Vec2f{testBox.Left() + 10, testBox.Top() + 10}
	outer := shape.Polylines[0]
	inner := shape.Polylines[1]

	assert.InDelta(t, 10, outer.Points[0].Sub(center).Magnitude(), 1e-3)
	assert.InDelta(t, 9.5, inner.Points[0].Sub(center).Magnitude(), 1e-3)
}

func TestBorderArcStopsAtCenter(t *testing.T) {
	// width larger than the radius, lines stop before reaching a zero radius
	shape := TessellateBorder(testBox, layout.Uniform(1), uniformWidth(5), testColor, testStroke)

	assert.Len(t, shape.Polylines, 4*2)
}

func TestBorderArcMeshMode(t *testing.T) {
	stroke := testStroke
	stroke.Mode = ArcMesh

	shape := TessellateBorder(testBox, layout.Uniform(10), uniformWidth(2), testColor, stroke)

	segments := SegmentCount(10, 16, 1.5)

	// four strips plus one quad per segment and corner
	assert.Equal(t, 4*2+4*segments*2, shape.Mesh.TriangleCount())
	assert.Empty(t, shape.Polylines)
}

func TestBorderArcMeshModeWithoutHole(t *testing.T) {
	stroke := testStroke
	stroke.Mode = ArcMesh

	shape := TessellateBorder(testBox, layout.Uniform(4), uniformWidth(6), testColor, stroke)

	segments := SegmentCount(4, 16, 1.5)

	// corners become plain fans
	assert.Equal(t, 4*2+4*segments, shape.Mesh.TriangleCount())
}

func TestBorderDegenerateBox(t *testing.T) {
	box := glm.RectFromXYWH[float32](0, 0, 0, 10)
	shape := TessellateBorder(box, layout.Uniform(4), uniformWidth(2), testColor, testStroke)

	assert.True(t, shape.Mesh.Empty())
	assert.Empty(t, shape.Polylines)
}

func TestBorderIgnoresNegativeWidth(t *testing.T) {
	width := layout.BorderWidth{Left: -3, Top: 2}
	shape := TessellateBorder(testBox, layout.CornerRadius{}, width, testColor, testStroke)

	assert.Equal(t, 2, shape.Mesh.TriangleCount())
}
