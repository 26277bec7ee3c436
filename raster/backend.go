// Package raster turns the draw commands of a frame into triangle meshes,
// polylines and scissor rectangles for a graphics backend.
package raster

import (
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

type Vertex struct {
	Position glm.Vec2f
	Color    color.NRGBA
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// Triangle returns the positions of the i-th triangle.
func (m Mesh) Triangle(i int) (a, b, c glm.Vec2f) {
	idx := m.Indices[i*3 : i*3+3]
	return m.Vertices[idx[0]].Position, m.Vertices[idx[1]].Position, m.Vertices[idx[2]].Position
}

// Append adds all triangles of other to m.
func (m *Mesh) Append(other Mesh) {
	base := uint32(len(m.Vertices))

	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Translated returns a copy of the mesh moved by offset and painted in fill.
// The index slice is shared with m.
func (m Mesh) Translated(offset glm.Vec2f, fill color.NRGBA) Mesh {
	vertices := make([]Vertex, len(m.Vertices))
	for idx, v := range m.Vertices {
		vertices[idx] = Vertex{Position: v.Position.Add(offset), Color: fill}
	}

	return Mesh{Vertices: vertices, Indices: m.Indices}
}

type TextRun struct {
	Box      layout.BoundingBox
	FontID   uint16
	FontSize float32
	Color    color.NRGBA
	Text     string
}

type ImageRun struct {
	Box    layout.BoundingBox
	Handle any
}

// Backend executes the primitives produced by the Rasterizer. A failing call
// only affects the primitive it was given.
type Backend interface {
	FillTriangles(mesh Mesh) error
	StrokePolyline(points []glm.Vec2f, stroke color.NRGBA) error

	// SetScissor restricts all following draw calls to rect, replacing any
	// previous restriction.
	SetScissor(rect glm.Rectf) error
	ClearScissor() error

	DrawText(run TextRun) error
	DrawImage(run ImageRun) error
}
