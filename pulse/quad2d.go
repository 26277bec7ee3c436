package pulse

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed quad2d.wgsl
var quadShaderCode string

// maximum number of quads to render in one batch
const maxQuads = 16 * 1024

type quadVertex struct {
	_ structs.HostLayout

	Position glm.Vec2f
	UV       glm.Vec2f
	Color    [4]float32
}

type quadBatchConfig struct {
	target  *Texture
	texture *wgpu.TextureView
	clip    Clip
	filter  wgpu.FilterMode
}

type DrawQuadOptions struct {
	// Target rectangle in pixels
	Rect glm.Rectf

	// Tint is multiplied with the texture color
	Tint Color

	FilterMode wgpu.FilterMode
}

// QuadCommand draws axis aligned textured rectangles. Consecutive quads
// sharing the same texture are rendered in a single pass.
type QuadCommand struct {
	ctx *Context

	pipelineCache *PipelineCache[quadPipelineConfig]

	vertices    []quadVertex
	bufVertices *wgpu.Buffer

	batchConfig quadBatchConfig
}

func NewQuadCommand(ctx *Context) (*QuadCommand, error) {
	bufVertices, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Quad2d.Vertices",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(quadVertex{})) * 6 * maxQuads,
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	return &QuadCommand{
		ctx:           ctx,
		bufVertices:   bufVertices,
		pipelineCache: NewPipelineCache[quadPipelineConfig](ctx),
	}, nil
}

func (p *QuadCommand) Draw(target *Texture, clip Clip, source *Texture, opts DrawQuadOptions) error {
	batchConfig := quadBatchConfig{
		target:  target,
		texture: source.SourceView(),
		clip:    clip,
		filter:  opts.FilterMode,
	}

	requireFlush := p.batchConfig != batchConfig ||
		len(p.vertices)+6 > 6*maxQuads

	if requireFlush {
		if err := p.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		p.batchConfig = batchConfig
	}

	size := target.Size()
	color := opts.Tint.ToVec()

	corner := func(x, y, u, v float32) quadVertex {
		return quadVertex{
			Position: toClipSpace(glm.Vec2f{x, y}, size),
			UV:       glm.Vec2f{u, v},
			Color:    color,
		}
	}

	x0, y0 := opts.Rect.Left(), opts.Rect.Top()
	x1, y1 := opts.Rect.Right(), opts.Rect.Bottom()

	tl := corner(x0, y0, 0, 0)
	tr := corner(x1, y0, 1, 0)
	br := corner(x1, y1, 1, 1)
	bl := corner(x0, y1, 0, 1)

	p.vertices = append(p.vertices, tl, tr, br, tl, br, bl)

	return nil
}

func (p *QuadCommand) Flush() error {
	defer p.reset()

	if len(p.vertices) == 0 {
		return nil
	}

	batchConfig := p.batchConfig

	sx, sy, sw, sh := batchConfig.clip.scissor(batchConfig.target.Width(), batchConfig.target.Height())
	if sw == 0 || sh == 0 {
		return nil
	}

	slog.Debug("Rendering textured quads", slog.Int("quadCount", len(p.vertices)/6))

	sampler, err := ClampSampler(p.ctx.Device, batchConfig.filter)
	if err != nil {
		return err
	}

	pc, err := p.pipelineCache.Get(quadPipelineConfig{
		TargetFormat:      batchConfig.target.Format(),
		TargetSampleCount: batchConfig.target.SampleCount(),
		BlendState:        wgpu.BlendStateAlphaBlending,
	})
	if err != nil {
		return fmt.Errorf("get quad pipeline: %w", err)
	}

	bindGroup, err := p.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Quad2d.BindGroup",
		Layout: pc.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: batchConfig.texture,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	defer bindGroup.Release()

	err = p.ctx.WriteBuffer(p.bufVertices, 0, wgpu.ToBytes(p.vertices))
	if err != nil {
		return fmt.Errorf("update vertex buffer: %w", err)
	}

	encoder, err := p.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	view, resolveTarget := batchConfig.target.RenderViews()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassQuad",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveTarget,
				LoadOp:        wgpu.LoadOpLoad,
				StoreOp:       wgpu.StoreOpStore,
			},
		},
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	pass.SetPipeline(pc.Pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetScissorRect(sx, sy, sw, sh)
	pass.SetVertexBuffer(0, p.bufVertices, 0, wgpu.WholeSize)
	pass.Draw(uint32(len(p.vertices)), 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	return nil
}

func (p *QuadCommand) reset() {
	p.vertices = p.vertices[:0]
	p.batchConfig = quadBatchConfig{}
}

type quadPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	BlendState        wgpu.BlendState
	TargetSampleCount uint32
}

func (conf quadPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for textured quads",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Quad2D.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: quadShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile quad shader: %w", err)
	}

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Quad2D.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(quadVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(quadVertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(quadVertex{}.UV)),
							ShaderLocation: 1,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(quadVertex{}.Color)),
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &conf.BlendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: conf.TargetSampleCount,
			Mask:  0xFFFFFFFF,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build quad pipeline: %w", err)
	}

	return pipeline, nil
}
