package pulse

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
// For multisample textures a Texture also holds the resolve target texture.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	resolveTarget *Texture

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	// equal to texture.GetSampleCount()
	sampleCount uint32

	width  uint32
	height uint32

	// false for textures owned by someone else, like the surface texture
	owned bool
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	SampleCount uint32
	Label       string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	sampleCount := max(opts.SampleCount, 1)

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   sampleCount,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc creates a texture directly from a texture descriptor.
// Multisample textures get a resolve target of the same size.
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view for texture %q: %w", desc.Label, err)
	}

	var resolveTarget *Texture

	if desc.SampleCount > 1 {
		descResolve := *desc
		descResolve.SampleCount = 1

		resolveTarget, err = NewTextureFromDesc(ctx, &descResolve)
		if err != nil {
			textureView.Release()
			texture.Release()

			return nil, fmt.Errorf("create resolve target: %w", err)
		}
	}

	return &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,

		format:      desc.Format,
		sampleCount: desc.SampleCount,
		width:       desc.Size.Width,
		height:      desc.Size.Height,
		owned:       true,
	}, nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView
// without taking ownership. A multisample texture needs a resolve target.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView, resolveTarget *Texture) *Texture {
	if texture.GetSampleCount() > 1 && resolveTarget == nil {
		panic("no resolveTarget specified for multisample texture")
	}

	if texture.GetSampleCount() == 1 && resolveTarget != nil {
		panic("resolveTarget specified for single sample texture")
	}

	return &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,
		format:        texture.GetFormat(),
		sampleCount:   texture.GetSampleCount(),
		width:         texture.GetWidth(),
		height:        texture.GetHeight(),
	}
}

// SourceView returns the view to sample from. For multisample textures
// this is the resolved texture.
func (t *Texture) SourceView() *wgpu.TextureView {
	if t.resolveTarget != nil {
		return t.resolveTarget.textureView
	}

	return t.textureView
}

// RenderViews returns the views to render into.
func (t *Texture) RenderViews() (view, resolveView *wgpu.TextureView) {
	view = t.textureView

	if t.resolveTarget != nil {
		resolveView = t.resolveTarget.textureView
	}

	return
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Size() glm.Vec2f {
	return glm.Vec2f{float32(t.width), float32(t.height)}
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) SampleCount() uint32 {
	return t.sampleCount
}

// Release releases the texture if it was created by this package.
// The texture must not be used afterward.
func (t *Texture) Release() {
	if !t.owned {
		return
	}

	t.textureView.Release()
	t.texture.Release()

	if t.resolveTarget != nil {
		t.resolveTarget.Release()
	}
}

// WritePixels uploads tightly packed rgba pixels covering the full texture.
func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  t.width * 4,
		RowsPerImage: t.height,
	}

	size := &wgpu.Extent3D{
		Width:              t.width,
		Height:             t.height,
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   wgpu.Origin3D{},
		Aspect:   wgpu.TextureAspectAll,
	}

	if err := ctx.WriteTexture(dest, pixels, layout, size); err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// NewTextureFromImage uploads an srgb encoded image into a new texture.
func NewTextureFromImage(ctx *Context, src image.Image, label string) (*Texture, error) {
	iw, ih := src.Bounds().Dx(), src.Bounds().Dy()
	if iw <= 0 || ih <= 0 {
		return nil, fmt.Errorf("image %q is empty", label)
	}

	rgba, ok := src.(*image.NRGBA)
	if !ok || rgba.Stride != iw*4 || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, iw, ih))
		draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	}

	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
		Width:  uint32(iw),
		Height: uint32(ih),
		Label:  label,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	if err := t.WritePixels(ctx, rgba.Pix); err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}
