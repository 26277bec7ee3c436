package raster

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/frameless/config"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

type Options struct {
	Fill   Segments
	Stroke Stroke

	// number of rectangle shapes to keep tessellated, zero disables caching
	MeshCacheSize int

	Logger *slog.Logger
}

// OptionsFromConfig builds rasterizer options from the application config.
func OptionsFromConfig(cfg config.Config) Options {
	mode := ArcPolyline
	if cfg.ArcMode == config.ArcMesh {
		mode = ArcMesh
	}

	return Options{
		Fill: Segments{Base: cfg.Fill.Base, Coeff: cfg.Fill.Coeff},
		Stroke: Stroke{
			Segments:      Segments{Base: cfg.Stroke.Base, Coeff: cfg.Stroke.Coeff},
			ThicknessStep: cfg.Stroke.ThicknessStep,
			Mode:          mode,
		},
		MeshCacheSize: cfg.MeshCacheSize,
	}
}

// Stats counts what happened while rendering one frame.
type Stats struct {
	Commands  int
	Triangles int
	Polylines int

	// commands that were not drawn because they were unknown or had no area
	Skipped int

	// backend calls that returned an error
	Failed int
}

// Rasterizer turns draw commands into backend calls.
//
// Clipping supports a single level only: a ScissorPush replaces the active
// clip and a ScissorPop removes it, whatever was active before the push.
type Rasterizer struct {
	backend Backend
	opts    Options
	log     *slog.Logger
	cache   *MeshCache

	clip    glm.Rectf
	clipped bool

	stats Stats
}

func NewRasterizer(backend Backend, opts Options) (*Rasterizer, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if opts.Stroke.ThicknessStep <= 0 {
		return nil, fmt.Errorf("thickness step must be positive, got %v", opts.Stroke.ThicknessStep)
	}

	r := &Rasterizer{
		backend: backend,
		opts:    opts,
		log:     log.With(slog.String("component", "raster")),
	}

	if opts.MeshCacheSize > 0 {
		cache, err := NewMeshCache(opts.MeshCacheSize)
		if err != nil {
			return nil, err
		}

		r.cache = cache
	}

	return r, nil
}

// Clip returns the active clip rectangle. The second value is false if
// drawing is not restricted.
func (r *Rasterizer) Clip() (glm.Rectf, bool) {
	return r.clip, r.clipped
}

// Stats returns the statistics of the most recent call to Render.
func (r *Rasterizer) Stats() Stats {
	return r.stats
}

// Cache returns the mesh cache, or nil if caching is disabled.
func (r *Rasterizer) Cache() *MeshCache {
	return r.cache
}

// Render draws all commands in order. Failures are logged and only affect
// the command that caused them.
func (r *Rasterizer) Render(commands []layout.Command) Stats {
	r.stats = Stats{}

	for _, cmd := range commands {
		r.stats.Commands++
		r.draw(cmd)
	}

	if r.clipped {
		r.log.Warn("Frame ended with an active clip, clearing it",
			slog.String("clip", r.clip.String()))

		r.popScissor()
	}

	return r.stats
}

func (r *Rasterizer) draw(cmd layout.Command) {
	switch cmd := cmd.(type) {
	case layout.Rectangle:
		r.drawRectangle(cmd)

	case layout.Border:
		r.drawBorder(cmd)

	case layout.Text:
		r.check("draw text", r.backend.DrawText(TextRun{
			Box:      cmd.Box,
			FontID:   cmd.FontID,
			FontSize: cmd.FontSize,
			Color:    cmd.Color,
			Text:     cmd.Text,
		}))

	case layout.Image:
		r.check("draw image", r.backend.DrawImage(ImageRun{
			Box:    cmd.Box,
			Handle: cmd.Handle,
		}))

	case layout.ScissorPush:
		r.pushScissor(cmd.Box)

	case layout.ScissorPop:
		r.popScissor()

	case nil:
		r.log.Warn("Skip nil draw command")
		r.stats.Skipped++

	default:
		r.log.Warn("Skip unknown draw command", slog.String("type", fmt.Sprintf("%T", cmd)))
		r.stats.Skipped++
	}
}

func (r *Rasterizer) drawRectangle(cmd layout.Rectangle) {
	if degenerate(cmd.Box) {
		r.skipDegenerate("rectangle", cmd.Box)
		return
	}

	var mesh Mesh
	if r.cache != nil {
		mesh = r.cache.Rect(cmd.Box, cmd.Radius, cmd.Color, r.opts.Fill)
	} else {
		mesh = TessellateRect(cmd.Box, cmd.Radius, cmd.Color, r.opts.Fill)
	}

	r.fill(mesh)
}

func (r *Rasterizer) drawBorder(cmd layout.Border) {
	if degenerate(cmd.Box) {
		r.skipDegenerate("border", cmd.Box)
		return
	}

	shape := TessellateBorder(cmd.Box, cmd.Radius, cmd.Width, cmd.Color, r.opts.Stroke)

	r.fill(shape.Mesh)

	for _, line := range shape.Polylines {
		if r.check("stroke polyline", r.backend.StrokePolyline(line.Points, line.Color)) {
			r.stats.Polylines++
		}
	}
}

func (r *Rasterizer) fill(mesh Mesh) {
	if mesh.Empty() {
		return
	}

	if r.check("fill triangles", r.backend.FillTriangles(mesh)) {
		r.stats.Triangles += mesh.TriangleCount()
	}
}

func (r *Rasterizer) pushScissor(box glm.Rectf) {
	if r.clipped {
		r.log.Debug("Replace active clip",
			slog.String("previous", r.clip.String()),
			slog.String("clip", box.String()))
	}

	if !r.check("set scissor", r.backend.SetScissor(box)) {
		return
	}

	r.clip = box
	r.clipped = true
}

func (r *Rasterizer) popScissor() {
	if !r.check("clear scissor", r.backend.ClearScissor()) {
		return
	}

	r.clip = glm.Rectf{}
	r.clipped = false
}

func (r *Rasterizer) skipDegenerate(kind string, box glm.Rectf) {
	r.log.Debug("Skip draw command without area",
		slog.String("kind", kind),
		slog.String("box", box.String()))

	r.stats.Skipped++
}

// check logs a failed backend call and reports whether it succeeded.
func (r *Rasterizer) check(op string, err error) bool {
	if err == nil {
		return true
	}

	r.log.Warn("Backend call failed",
		slog.String("op", op),
		slog.String("error", err.Error()))

	r.stats.Failed++
	return false
}
