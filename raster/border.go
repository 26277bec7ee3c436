package raster

import (
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

type ArcMode uint8

const (
	// ArcPolyline strokes a corner by stacking concentric polylines, each
	// one ThicknessStep further inside than the previous one.
	ArcPolyline ArcMode = iota

	// ArcMesh fills a corner with a ring segment between the outer radius
	// and the outer radius minus the border width.
	ArcMesh
)

func (m ArcMode) String() string {
	switch m {
	case ArcPolyline:
		return "polyline"
	case ArcMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Stroke configures how rounded border corners are drawn.
type Stroke struct {
	Segments
	ThicknessStep float32
	Mode          ArcMode
}

// Polyline is an open line strip with a one pixel stroke.
type Polyline struct {
	Points []glm.Vec2f
	Color  color.NRGBA
}

// BorderShape is the geometry of a border: the straight strips and, depending
// on the stroke mode, the corners either as part of the mesh or as polylines.
type BorderShape struct {
	Mesh      Mesh
	Polylines []Polyline
}

type corner struct {
	center glm.Vec2f
	radius float32
	width  float32
	start  glm.Rad
}

// TessellateBorder builds the outline of a box. Each edge with a positive
// width becomes a strip between the corners next to it. Each rounded corner
// is stroked with the width of the top edge for the top corners and with the
// width of the bottom edge for the bottom corners.
func TessellateBorder(box layout.BoundingBox, radii layout.CornerRadius, width layout.BorderWidth, stroke color.NRGBA, opts Stroke) BorderShape {
	if degenerate(box) {
		return BorderShape{}
	}

	radii = clampRadii(box, radii)
	width = sanitizeWidth(width)

	b := meshBuilder{fill: stroke}

	x0, y0 := box.Left(), box.Top()
	x1, y1 := box.Right(), box.Bottom()

	tl, tr := radii.TopLeft, radii.TopRight
	bl, br := radii.BottomLeft, radii.BottomRight

	if width.Left > 0 {
		b.strip(glm.RectFromXYWH(x0, y0+tl, width.Left, y1-bl-(y0+tl)))
	}

	if width.Right > 0 {
		b.strip(glm.RectFromXYWH(x1-width.Right, y0+tr, width.Right, y1-br-(y0+tr)))
	}

	if width.Top > 0 {
		b.strip(glm.RectFromXYWH(x0+tl, y0, x1-tr-(x0+tl), width.Top))
	}

	if width.Bottom > 0 {
		b.strip(glm.RectFromXYWH(x0+bl, y1-width.Bottom, x1-br-(x0+bl), width.Bottom))
	}

	corners := []corner{
		{glm.Vec2f{x0 + tl, y0 + tl}, tl, width.Top, angleTopLeft},
		{glm.Vec2f{x1 - tr, y0 + tr}, tr, width.Top, angleTopRight},
		{glm.Vec2f{x1 - br, y1 - br}, br, width.Bottom, angleBottomRight},
		{glm.Vec2f{x0 + bl, y1 - bl}, bl, width.Bottom, angleBottomLeft},
	}

	var shape BorderShape

	for _, c := range corners {
		if c.radius <= 0 || c.width <= 0 {
			continue
		}

		switch opts.Mode {
		case ArcMesh:
			b.ringSegment(c, opts.Count(c.radius))

		default:
			shape.Polylines = append(shape.Polylines, arcPolylines(c, stroke, opts)...)
		}
	}

	shape.Mesh = b.mesh
	return shape
}

func sanitizeWidth(width layout.BorderWidth) layout.BorderWidth {
	clean := func(w float32) float32 {
		if !glm.IsFinite(w) || w < 0 {
			return 0
		}

		return w
	}

	return layout.BorderWidth{
		Left:   clean(width.Left),
		Right:  clean(width.Right),
		Top:    clean(width.Top),
		Bottom: clean(width.Bottom),
	}
}

func (b *meshBuilder) strip(rect glm.Rectf) {
	if rect.Empty() {
		return
	}

	x0, y0 := rect.Left(), rect.Top()
	x1, y1 := rect.Right(), rect.Bottom()
	b.quad(glm.Vec2f{x0, y0}, glm.Vec2f{x1, y0}, glm.Vec2f{x1, y1}, glm.Vec2f{x0, y1})
}

// arcPolylines emits one quarter circle per thickness step, starting at the
// outer radius and moving inwards until the border width is covered.
func arcPolylines(c corner, stroke color.NRGBA, opts Stroke) []Polyline {
	count := opts.Count(c.radius)
	step := quarterTurn / glm.Rad(count)

	var lines []Polyline

	for idx := 0; ; idx++ {
		offset := float32(idx) * opts.ThicknessStep
		if offset >= c.width {
			break
		}

		radius := c.radius - offset
		if radius <= 0 {
			break
		}

		points := make([]glm.Vec2f, 0, count+1)
		for seg := 0; seg <= count; seg++ {
			points = append(points, glm.PointOnCircle(c.center, radius, c.start+glm.Rad(seg)*step))
		}

		lines = append(lines, Polyline{Points: points, Color: stroke})
	}

	return lines
}

// ringSegment fills the quarter ring between the corner radius and the corner
// radius reduced by the border width.
func (b *meshBuilder) ringSegment(c corner, count int) {
	inner := max(c.radius-c.width, 0)
	step := quarterTurn / glm.Rad(count)

	for idx := range count {
		a0 := c.start + glm.Rad(idx)*step
		a1 := a0 + step

		o0 := glm.PointOnCircle(c.center, c.radius, a0)
		o1 := glm.PointOnCircle(c.center, c.radius, a1)

		if inner == 0 {
			center := b.vertex(c.center)
			b.triangle(center, b.vertex(o0), b.vertex(o1))
			continue
		}

		i0 := glm.PointOnCircle(c.center, inner, a0)
		i1 := glm.PointOnCircle(c.center, inner, a1)
		b.quad(o0, o1, i1, i0)
	}
}
