package pulse

import (
	"math"

	"github.com/oliverbestmann/frameless/glm"
)

// Clip restricts drawing to a rectangle of the render target, in pixels.
// The zero value does not restrict drawing.
type Clip struct {
	Rect    glm.Rectf
	Enabled bool
}

// scissor returns the scissor rectangle for a target of the given size. The
// rectangle is rounded outwards and limited to the target.
func (c Clip) scissor(width, height uint32) (x, y, w, h uint32) {
	if !c.Enabled {
		return 0, 0, width, height
	}

	target := glm.RectFromXYWH(0, 0, float32(width), float32(height))

	r := c.Rect.Intersect(target)
	if r.Empty() || !glm.IsFinite(r.X, r.Y, r.W, r.H) {
		return 0, 0, 0, 0
	}

	x0 := uint32(math.Floor(float64(r.Left())))
	y0 := uint32(math.Floor(float64(r.Top())))
	x1 := uint32(math.Ceil(float64(r.Right())))
	y1 := uint32(math.Ceil(float64(r.Bottom())))

	return x0, y0, x1 - x0, y1 - y0
}

// toClipSpace maps a pixel position on a target of the given size to
// normalized device coordinates.
func toClipSpace(pos, size glm.Vec2f) glm.Vec2f {
	return glm.Vec2f{
		pos[0]/size[0]*2 - 1,
		1 - pos[1]/size[1]*2,
	}
}
