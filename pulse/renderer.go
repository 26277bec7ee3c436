package pulse

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/raster"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var ErrNoFrame = errors.New("no frame in progress")

var _ raster.Backend = (*Renderer)(nil)

type flusher interface {
	Flush() error
}

// Renderer draws the primitives of the rasterizer into a texture. Triangles
// and textured quads are batched. Switching between the two flushes the
// pending batch so that draw order is preserved.
type Renderer struct {
	ctx *Context

	clear  *ClearCommand
	meshes *MeshCommand
	quads  *QuadCommand
	text   *TextCache

	target *Texture
	clip   Clip

	current flusher

	// scratch buffer for triangle vertices
	vertices []MeshVertex

	// cached conversion of the last seen color
	lastColor  color.NRGBA
	lastLinear [4]float32
}

func NewRenderer(ctx *Context, textCacheSize int) (*Renderer, error) {
	meshes, err := NewMeshCommand(ctx)
	if err != nil {
		return nil, fmt.Errorf("create mesh command: %w", err)
	}

	quads, err := NewQuadCommand(ctx)
	if err != nil {
		return nil, fmt.Errorf("create quad command: %w", err)
	}

	text, err := NewTextCache(ctx, textCacheSize)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		ctx:    ctx,
		clear:  NewClear(ctx),
		meshes: meshes,
		quads:  quads,
		text:   text,
	}

	return r, nil
}

// Begin starts a new frame, clearing target to background.
func (r *Renderer) Begin(target *Texture, background Color) error {
	if r.target != nil {
		return errors.New("frame already in progress")
	}

	if err := r.clear.Clear(target, background); err != nil {
		return fmt.Errorf("clear frame: %w", err)
	}

	r.target = target
	r.clip = Clip{}
	r.current = nil

	return nil
}

// End flushes everything that is still batched.
func (r *Renderer) End() error {
	defer func() {
		r.target = nil
		r.current = nil
	}()

	if r.current != nil {
		return r.current.Flush()
	}

	return nil
}

func (r *Renderer) switchTo(cmd flusher) error {
	if r.current == cmd {
		return nil
	}

	if r.current != nil {
		if err := r.current.Flush(); err != nil {
			return err
		}
	}

	r.current = cmd
	return nil
}

func (r *Renderer) FillTriangles(mesh raster.Mesh) error {
	if r.target == nil {
		return ErrNoFrame
	}

	if len(mesh.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of three", len(mesh.Indices))
	}

	r.vertices = r.vertices[:0]

	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			return fmt.Errorf("index %d out of range for %d vertices", idx, len(mesh.Vertices))
		}

		v := mesh.Vertices[idx]

		r.vertices = append(r.vertices, MeshVertex{
			Position: v.Position,
			Color:    r.linear(v.Color),
		})
	}

	if err := r.switchTo(r.meshes); err != nil {
		return err
	}

	return r.meshes.DrawTriangles(r.target, r.clip, r.vertices)
}

// StrokePolyline draws each segment of the polyline as a one pixel wide quad.
func (r *Renderer) StrokePolyline(points []glm.Vec2f, stroke color.NRGBA) error {
	if r.target == nil {
		return ErrNoFrame
	}

	r.vertices = r.vertices[:0]

	col := r.linear(stroke)

	for idx := 1; idx < len(points); idx++ {
		a, b := points[idx-1], points[idx]

		dir := b.Sub(a)
		length := dir.Magnitude()
		if length == 0 {
			continue
		}

		// half a pixel to each side
		normal := glm.Vec2f{-dir[1], dir[0]}.MulScalar(0.5 / length)

		a0, a1 := a.Add(normal), a.Sub(normal)
		b0, b1 := b.Add(normal), b.Sub(normal)

		r.vertices = append(r.vertices,
			MeshVertex{Position: a0, Color: col},
			MeshVertex{Position: b0, Color: col},
			MeshVertex{Position: b1, Color: col},
			MeshVertex{Position: a0, Color: col},
			MeshVertex{Position: b1, Color: col},
			MeshVertex{Position: a1, Color: col},
		)
	}

	if len(r.vertices) == 0 {
		return nil
	}

	if err := r.switchTo(r.meshes); err != nil {
		return err
	}

	return r.meshes.DrawTriangles(r.target, r.clip, r.vertices)
}

func (r *Renderer) SetScissor(rect glm.Rectf) error {
	r.clip = Clip{Rect: rect, Enabled: true}
	return nil
}

func (r *Renderer) ClearScissor() error {
	r.clip = Clip{}
	return nil
}

// DrawText renders the text with the built-in bitmap face, scaled to fill
// the box of the run.
func (r *Renderer) DrawText(run raster.TextRun) error {
	if r.target == nil {
		return ErrNoFrame
	}

	if run.Text == "" || run.Box.Empty() {
		return nil
	}

	texture, err := r.text.Texture(run.Text)
	if err != nil {
		return err
	}

	if err := r.switchTo(r.quads); err != nil {
		return err
	}

	return r.quads.Draw(r.target, r.clip, texture, DrawQuadOptions{
		Rect:       run.Box,
		Tint:       ColorOfNRGBA(run.Color),
		FilterMode: wgpu.FilterModeLinear,
	})
}

// DrawImage draws an image run whose handle must be a *Texture.
func (r *Renderer) DrawImage(run raster.ImageRun) error {
	if r.target == nil {
		return ErrNoFrame
	}

	texture, ok := run.Handle.(*Texture)
	if !ok || texture == nil {
		return fmt.Errorf("unsupported image handle %T", run.Handle)
	}

	if run.Box.Empty() {
		return nil
	}

	if err := r.switchTo(r.quads); err != nil {
		return err
	}

	return r.quads.Draw(r.target, r.clip, texture, DrawQuadOptions{
		Rect:       run.Box,
		FilterMode: wgpu.FilterModeLinear,
	})
}

func (r *Renderer) linear(c color.NRGBA) [4]float32 {
	if c != r.lastColor {
		r.lastColor = c
		r.lastLinear = ColorOfNRGBA(c).ToVec()
	}

	return r.lastLinear
}

// Release frees cached text textures.
func (r *Renderer) Release() {
	r.text.Purge()
}
