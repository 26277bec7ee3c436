package chrome

import (
	"testing"

	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/stretchr/testify/assert"
)

var testBounds = glm.RectFromXYWH(100, 100, 800, 600)

const testMargin = 6

func TestClassifyEdgesFarFromEveryEdge(t *testing.T) {
	for x := testBounds.Left() + testMargin + 1; x < testBounds.Right()-testMargin; x += 37 {
		for y := testBounds.Top() + testMargin + 1; y < testBounds.Bottom()-testMargin; y += 29 {
			mask := ClassifyEdges(glm.Vec2i{x, y}, testBounds, testMargin)

			assert.Equal(t, EdgeNone, mask, "at %d,%d", x, y)
			assert.Equal(t, glimpse.CursorDefault, CursorForMask(mask))
		}
	}
}

func TestClassifyEdgesOutsideOfWindow(t *testing.T) {
	assert.Equal(t, EdgeNone, ClassifyEdges(glm.Vec2i{0, 0}, testBounds, testMargin))
	assert.Equal(t, EdgeNone, ClassifyEdges(glm.Vec2i{2000, 400}, testBounds, testMargin))

	// close to the left edge but above the window
	assert.Equal(t, EdgeNone, ClassifyEdges(glm.Vec2i{100, 90}, testBounds, testMargin))
}

func TestClassifyEdgesSingleEdge(t *testing.T) {
	cases := []struct {
		name   string
		cursor glm.Vec2i
		mask   EdgeMask
		shape  glimpse.Cursor
	}{
		{"left inside", glm.Vec2i{103, 400}, EdgeLeft, glimpse.CursorResizeEW},
		{"left outside", glm.Vec2i{94, 400}, EdgeLeft, glimpse.CursorResizeEW},
		{"right", glm.Vec2i{898, 400}, EdgeRight, glimpse.CursorResizeEW},
		{"top", glm.Vec2i{500, 106}, EdgeTop, glimpse.CursorResizeNS},
		{"bottom", glm.Vec2i{500, 700}, EdgeBottom, glimpse.CursorResizeNS},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mask := ClassifyEdges(tc.cursor, testBounds, testMargin)

			assert.Equal(t, tc.mask, mask)
			assert.Equal(t, tc.shape, CursorForMask(mask))
		})
	}
}

func TestClassifyEdgesCorners(t *testing.T) {
	cases := []struct {
		name   string
		cursor glm.Vec2i
		mask   EdgeMask
		shape  glimpse.Cursor
	}{
		{"top left", glm.Vec2i{102, 103}, EdgeLeft | EdgeTop, glimpse.CursorResizeNWSE},
		{"top right", glm.Vec2i{897, 101}, EdgeRight | EdgeTop, glimpse.CursorResizeNESW},
		{"bottom left", glm.Vec2i{100, 695}, EdgeLeft | EdgeBottom, glimpse.CursorResizeNESW},
		{"bottom right", glm.Vec2i{900, 700}, EdgeRight | EdgeBottom, glimpse.CursorResizeNWSE},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mask := ClassifyEdges(tc.cursor, testBounds, testMargin)

			assert.Equal(t, tc.mask, mask)
			assert.Equal(t, tc.shape, CursorForMask(mask))
		})
	}
}

func TestCursorForUnmappedMask(t *testing.T) {
	assert.Equal(t, glimpse.CursorDefault, CursorForMask(EdgeNone))
	assert.Equal(t, glimpse.CursorDefault, CursorForMask(EdgeLeft|EdgeRight))
	assert.Equal(t, glimpse.CursorDefault, CursorForMask(EdgeTop|EdgeBottom))
	assert.Equal(t, glimpse.CursorDefault, CursorForMask(EdgeLeft|EdgeTop|EdgeBottom))
}

func TestClassifyEdgesTinyWindowReportsOpposingEdges(t *testing.T) {
	tiny := glm.RectFromXYWH(0, 0, 8, 100)

	mask := ClassifyEdges(glm.Vec2i{4, 50}, tiny, testMargin)
	assert.Equal(t, EdgeLeft|EdgeRight, mask)
	assert.Equal(t, glimpse.CursorDefault, CursorForMask(mask))
}

func TestEdgeMaskString(t *testing.T) {
	assert.Equal(t, "none", EdgeNone.String())
	assert.Equal(t, "left|top", (EdgeTop | EdgeLeft).String())
	assert.Equal(t, "right|bottom", (EdgeBottom | EdgeRight).String())
}

func TestResizeFromLeftKeepsRightEdgeWhenClamped(t *testing.T) {
	for _, dx := range []int{371, 500, 750, 5000} {
		b := ResizeBounds(testBounds, EdgeLeft, glm.Vec2i{dx, 0}, 430, 270)

		assert.Equal(t, 430, b.W, "dx=%d", dx)
		assert.Equal(t, 470, b.X, "dx=%d", dx)
		assert.Equal(t, 900, b.Right(), "dx=%d", dx)
	}
}

func TestResizeFromLeftFollowsPointer(t *testing.T) {
	b := ResizeBounds(testBounds, EdgeLeft, glm.Vec2i{-50, 20}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(50, 100, 850, 600), b)

	b = ResizeBounds(testBounds, EdgeLeft, glm.Vec2i{370, 0}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(470, 100, 430, 600), b)
}

func TestResizeFromTopKeepsBottomEdgeWhenClamped(t *testing.T) {
	b := ResizeBounds(testBounds, EdgeTop, glm.Vec2i{0, 1000}, 430, 270)

	assert.Equal(t, 270, b.H)
	assert.Equal(t, 430, b.Y)
	assert.Equal(t, 700, b.Bottom())
}

func TestResizeFromRightClampsInPlace(t *testing.T) {
	b := ResizeBounds(testBounds, EdgeRight, glm.Vec2i{-600, 0}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(100, 100, 430, 600), b)

	b = ResizeBounds(testBounds, EdgeBottom, glm.Vec2i{0, -600}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(100, 100, 800, 270), b)
}

func TestResizeFromCorner(t *testing.T) {
	b := ResizeBounds(testBounds, EdgeLeft|EdgeTop, glm.Vec2i{-10, -20}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(90, 80, 810, 620), b)

	b = ResizeBounds(testBounds, EdgeRight|EdgeBottom, glm.Vec2i{10, 20}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(100, 100, 810, 620), b)

	b = ResizeBounds(testBounds, EdgeLeft|EdgeTop, glm.Vec2i{1000, 1000}, 430, 270)
	assert.Equal(t, glm.RectFromXYWH(470, 430, 430, 270), b)
}
