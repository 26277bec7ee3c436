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

//go:embed mesh2d.wgsl
var mesh2dShaderCode string

// maximum number of vertices to render in one batch
const maxMeshVertices = 64 * 1024 * 3

type MeshVertex struct {
	_ structs.HostLayout

	Position glm.Vec2f
	Color    [4]float32
}

type meshBatchConfig struct {
	target *Texture
	clip   Clip
}

// MeshCommand batches colored triangles and renders them in as few render
// passes as possible. A batch is flushed when the target or the clip changes.
type MeshCommand struct {
	ctx *Context

	pipelineCache *PipelineCache[meshPipelineConfig]

	vertices    []MeshVertex
	bufVertices *wgpu.Buffer

	batchConfig meshBatchConfig
}

func NewMeshCommand(ctx *Context) (*MeshCommand, error) {
	bufVertices, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Mesh2d.Vertices",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(MeshVertex{})) * maxMeshVertices,
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	return &MeshCommand{
		ctx:           ctx,
		bufVertices:   bufVertices,
		pipelineCache: NewPipelineCache[meshPipelineConfig](ctx),
	}, nil
}

// DrawTriangles queues triangles given in pixel coordinates of the target.
// Every three consecutive vertices form a triangle.
func (p *MeshCommand) DrawTriangles(target *Texture, clip Clip, vertices []MeshVertex) error {
	if len(vertices)%3 != 0 {
		return fmt.Errorf("vertex count %d is not a multiple of three", len(vertices))
	}

	batchConfig := meshBatchConfig{target: target, clip: clip}
	size := target.Size()

	for idx := 0; idx < len(vertices); idx += 3 {
		requireFlush := p.batchConfig != batchConfig ||
			len(p.vertices)+3 > maxMeshVertices

		if requireFlush {
			if err := p.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}

			p.batchConfig = batchConfig
		}

		for _, v := range vertices[idx : idx+3] {
			p.vertices = append(p.vertices, MeshVertex{
				Position: toClipSpace(v.Position, size),
				Color:    v.Color,
			})
		}
	}

	return nil
}

func (p *MeshCommand) Flush() error {
	defer p.reset()

	if len(p.vertices) == 0 {
		return nil
	}

	batchConfig := p.batchConfig

	sx, sy, sw, sh := batchConfig.clip.scissor(batchConfig.target.Width(), batchConfig.target.Height())
	if sw == 0 || sh == 0 {
		// everything is clipped away
		return nil
	}

	slog.Debug("Rendering triangles", slog.Int("vertexCount", len(p.vertices)))

	pc, err := p.pipelineCache.Get(meshPipelineConfig{
		TargetFormat:      batchConfig.target.Format(),
		TargetSampleCount: batchConfig.target.SampleCount(),
		BlendState:        wgpu.BlendStateAlphaBlending,
	})
	if err != nil {
		return fmt.Errorf("get mesh pipeline: %w", err)
	}

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
		Label: "RenderPassMesh",
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
	pass.SetScissorRect(sx, sy, sw, sh)
	pass.SetVertexBuffer(0, p.bufVertices, 0, wgpu.WholeSize)
	pass.Draw(uint32(len(p.vertices)), 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
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

func (p *MeshCommand) reset() {
	p.vertices = p.vertices[:0]
	p.batchConfig = meshBatchConfig{}
}

type meshPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	BlendState        wgpu.BlendState
	TargetSampleCount uint32
}

func (conf meshPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for mesh2d",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Mesh2D.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: mesh2dShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh shader: %w", err)
	}

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Mesh2D.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(MeshVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// color
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Color)),
							ShaderLocation: 1,
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
		return nil, fmt.Errorf("build mesh2d pipeline: %w", err)
	}

	return pipeline, nil
}
