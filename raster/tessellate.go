package raster

import (
	"image/color"
	"math"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

// Segments controls how finely quarter circles are approximated.
type Segments struct {
	Base  int
	Coeff float32
}

// Count returns the number of segments for a quarter circle of the given radius.
func (s Segments) Count(radius float32) int {
	return SegmentCount(radius, s.Base, s.Coeff)
}

// SegmentCount grows the number of segments with the radius, but never
// goes below base.
func SegmentCount(radius float32, base int, coeff float32) int {
	scaled := int(math.Round(float64(radius * coeff)))
	return max(base, scaled)
}

// corner angles in screen space, y pointing down
var (
	angleTopLeft     = glm.DegToRad(180)
	angleTopRight    = glm.DegToRad(270)
	angleBottomRight = glm.DegToRad(0)
	angleBottomLeft  = glm.DegToRad(90)

	quarterTurn = glm.DegToRad(90)
)

// degenerate reports whether the box covers no drawable area.
func degenerate(box layout.BoundingBox) bool {
	if !glm.IsFinite(box.X, box.Y, box.W, box.H) {
		return true
	}

	return box.W <= 0 || box.H <= 0
}

// clampRadii limits every radius to half of the shorter side of box.
// Negative or invalid radii become zero.
func clampRadii(box layout.BoundingBox, radii layout.CornerRadius) layout.CornerRadius {
	limit := min(box.W, box.H) / 2

	clamp := func(r float32) float32 {
		if !glm.IsFinite(r) || r <= 0 {
			return 0
		}

		return min(r, limit)
	}

	return layout.CornerRadius{
		TopLeft:     clamp(radii.TopLeft),
		TopRight:    clamp(radii.TopRight),
		BottomLeft:  clamp(radii.BottomLeft),
		BottomRight: clamp(radii.BottomRight),
	}
}

// meshBuilder collects vertices and indices. Triangles are emitted as given,
// even if they collapse to a line, so that the shape of the mesh only depends
// on the segment counts.
type meshBuilder struct {
	fill color.NRGBA
	mesh Mesh
}

func (b *meshBuilder) vertex(pos glm.Vec2f) uint32 {
	b.mesh.Vertices = append(b.mesh.Vertices, Vertex{Position: pos, Color: b.fill})
	return uint32(len(b.mesh.Vertices) - 1)
}

func (b *meshBuilder) position(idx uint32) glm.Vec2f {
	return b.mesh.Vertices[idx].Position
}

func (b *meshBuilder) triangle(i0, i1, i2 uint32) {
	b.mesh.Indices = append(b.mesh.Indices, i0, i1, i2)
}

// quad adds the quad a, c, d, e as two triangles.
func (b *meshBuilder) quad(a, c, d, e glm.Vec2f) {
	ia, ic, id, ie := b.vertex(a), b.vertex(c), b.vertex(d), b.vertex(e)
	b.triangle(ia, ic, id)
	b.triangle(ia, id, ie)
}

// TessellateRect builds a filled, possibly rounded rectangle.
//
// Without rounded corners the mesh is a single quad. Otherwise it consists of
// a body spanned by four anchors inset by the corner radii, one triangle fan
// per rounded corner and one quad along each straight edge. For a uniform
// radius r > 0 the mesh has 4 + 8·segments + 8 vertices and
// 2 + 4·segments + 8 triangles. Once r is clamped to half the shorter side,
// the body and two of the edge quads collapse but are still emitted.
//
// A box without area yields an empty mesh.
func TessellateRect(box layout.BoundingBox, radii layout.CornerRadius, fill color.NRGBA, segments Segments) Mesh {
	if degenerate(box) {
		return Mesh{}
	}

	radii = clampRadii(box, radii)

	b := meshBuilder{fill: fill}

	x0, y0 := box.Left(), box.Top()
	x1, y1 := box.Right(), box.Bottom()

	if radii.IsZero() {
		b.quad(glm.Vec2f{x0, y0}, glm.Vec2f{x1, y0}, glm.Vec2f{x1, y1}, glm.Vec2f{x0, y1})
		return b.mesh
	}

	tl, tr := radii.TopLeft, radii.TopRight
	bl, br := radii.BottomLeft, radii.BottomRight

	anchorTL := b.vertex(glm.Vec2f{x0 + tl, y0 + tl})
	anchorTR := b.vertex(glm.Vec2f{x1 - tr, y0 + tr})
	anchorBR := b.vertex(glm.Vec2f{x1 - br, y1 - br})
	anchorBL := b.vertex(glm.Vec2f{x0 + bl, y1 - bl})

	// body
	b.triangle(anchorTL, anchorTR, anchorBR)
	b.triangle(anchorTL, anchorBR, anchorBL)

	b.cornerFan(anchorTL, tl, angleTopLeft, segments)
	b.cornerFan(anchorTR, tr, angleTopRight, segments)
	b.cornerFan(anchorBR, br, angleBottomRight, segments)
	b.cornerFan(anchorBL, bl, angleBottomLeft, segments)

	b.edgeQuad(glm.Vec2f{x0 + tl, y0}, glm.Vec2f{x1 - tr, y0}, anchorTR, anchorTL)
	b.edgeQuad(glm.Vec2f{x1, y0 + tr}, glm.Vec2f{x1, y1 - br}, anchorBR, anchorTR)
	b.edgeQuad(glm.Vec2f{x1 - br, y1}, glm.Vec2f{x0 + bl, y1}, anchorBL, anchorBR)
	b.edgeQuad(glm.Vec2f{x0, y1 - bl}, glm.Vec2f{x0, y0 + tl}, anchorTL, anchorBL)

	return b.mesh
}

// cornerFan adds a quarter circle around the given anchor, starting at angle start.
// Every segment gets its own pair of arc vertices.
func (b *meshBuilder) cornerFan(anchor uint32, radius float32, start glm.Rad, segments Segments) {
	if radius <= 0 {
		return
	}

	center := b.position(anchor)

	count := segments.Count(radius)
	step := quarterTurn / glm.Rad(count)

	for idx := range count {
		a0 := start + glm.Rad(idx)*step
		a1 := a0 + step

		p0 := b.vertex(glm.PointOnCircle(center, radius, a0))
		p1 := b.vertex(glm.PointOnCircle(center, radius, a1))
		b.triangle(anchor, p0, p1)
	}
}

// edgeQuad bridges two corners along a straight edge. outer0 and outer1 lie on
// the edge, inner1 and inner0 are the anchors of the corners.
func (b *meshBuilder) edgeQuad(outer0, outer1 glm.Vec2f, inner1, inner0 uint32) {
	o0 := b.vertex(outer0)
	o1 := b.vertex(outer1)

	b.triangle(o0, o1, inner1)
	b.triangle(o0, inner1, inner0)
}
