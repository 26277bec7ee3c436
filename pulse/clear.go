package pulse

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// ClearCommand fills a whole texture with a single color.
type ClearCommand struct {
	ctx *Context
}

func NewClear(ctx *Context) *ClearCommand {
	return &ClearCommand{ctx: ctx}
}

func (c *ClearCommand) Clear(target *Texture, color Color) error {
	enc, err := c.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ClearTexture",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	view, resolveView := target.RenderViews()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearTexture",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveView,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    color.ToWGPU(),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	if err := pass.End(); err != nil {
		return fmt.Errorf("end clear pass: %w", err)
	}

	passGuard.Release()

	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return fmt.Errorf("finish clear pass: %w", err)
	}

	defer buf.Release()

	c.ctx.Submit(buf)

	return nil
}

// Flush does nothing, clearing is submitted right away.
func (c *ClearCommand) Flush() error {
	return nil
}

type Releaser interface {
	Release()
}

// ReleaseGuard releases its delegate at most once.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}
