package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// View owns the configuration of the window surface and, if multisampling
// is enabled, the multisample texture rendered into before resolving to
// the surface.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// only configured if multisampling is enabled
	msaaTexture *Texture

	sampleCount uint32
}

func NewView(ctx *Context, sampleCount uint32) (*View, error) {
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no alpha modes")
	}

	view := &View{
		Context:     ctx,
		sampleCount: max(sampleCount, 1),
	}

	view.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      wgpu.TextureFormatBGRA8UnormSrgb,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   preferredAlphaMode(caps.AlphaModes),

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	return view, nil
}

// preferredAlphaMode picks a mode that lets transparent pixels show the
// desktop behind the window, if the surface supports one.
func preferredAlphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	for _, mode := range modes {
		if mode == wgpu.CompositeAlphaModeUnpremultiplied || mode == wgpu.CompositeAlphaModePremultiplied {
			return mode
		}
	}

	return modes[0]
}

func (v *View) MSAA() bool {
	return v.sampleCount > 1
}

// Configure resizes the surface and all textures depending on its size.
func (v *View) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("sampleCount", int(v.sampleCount)),
	)

	v.surfaceConfig.Width = width
	v.surfaceConfig.Height = height
	v.Surface.Configure(v.Device, v.surfaceConfig)

	v.releaseTextures()

	if v.MSAA() {
		msaa, err := NewTextureFromDesc(v.Context, &wgpu.TextureDescriptor{
			Label: "MultisampleRenderTarget",
			Usage: wgpu.TextureUsageRenderAttachment,
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			Format:        v.surfaceConfig.Format,
			Dimension:     wgpu.TextureDimension2D,
			SampleCount:   v.sampleCount,
			MipLevelCount: 1,
		})

		if err != nil {
			return fmt.Errorf("create multisample texture: %w", err)
		}

		v.msaaTexture = msaa
	}

	return nil
}

func (v *View) Size() (width, height uint32) {
	return v.surfaceConfig.Width, v.surfaceConfig.Height
}

func (v *View) Release() {
	v.releaseTextures()
}

func (v *View) releaseTextures() {
	if v.msaaTexture != nil {
		v.msaaTexture.Release()
		v.msaaTexture = nil
	}
}

// SurfaceFrame is the surface texture of a single frame.
type SurfaceFrame struct {
	// Target is the texture to render the frame into
	Target *Texture

	surface     *wgpu.Surface
	texture     *wgpu.Texture
	textureView *wgpu.TextureView
}

// CurrentFrame acquires the next surface texture. Exactly one of Present or
// Discard must be called on the returned frame.
func (v *View) CurrentFrame() (*SurfaceFrame, error) {
	texture, err := v.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w", err)
	}

	screen := WrapTexture(texture, textureView, nil)

	target := screen
	if v.MSAA() {
		target = WrapTexture(
			v.msaaTexture.texture,
			v.msaaTexture.textureView,
			screen,
		)
	}

	return &SurfaceFrame{
		Target:      target,
		surface:     v.Surface,
		texture:     texture,
		textureView: textureView,
	}, nil
}

// Present shows the frame on screen.
func (f *SurfaceFrame) Present() {
	f.surface.Present()
	f.textureView.Release()
}

// Discard releases the frame without showing it.
func (f *SurfaceFrame) Discard() {
	f.textureView.Release()
	f.texture.Release()
}
