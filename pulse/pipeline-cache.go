package pulse

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type CachedPipeline struct {
	Pipeline   *wgpu.RenderPipeline
	bindGroups *lru.Cache[uint32, *wgpu.BindGroupLayout]
}

func (pc *CachedPipeline) GetBindGroupLayout(idx uint32) *wgpu.BindGroupLayout {
	layout, ok := pc.bindGroups.Get(idx)
	if ok {
		return layout
	}

	layout = pc.Pipeline.GetBindGroupLayout(idx)
	pc.bindGroups.Add(idx, layout)

	return layout
}

type PipelineConfig interface {
	comparable

	// Specialize creates the render pipeline described by the config.
	Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error)
}

// PipelineCache keeps the most recently used render pipelines of one kind,
// keyed by their config. Evicted pipelines are released.
type PipelineCache[C PipelineConfig] struct {
	device *wgpu.Device
	cache  *lru.Cache[C, CachedPipeline]
}

const pipelineCacheSize = 16

func NewPipelineCache[C PipelineConfig](ctx *Context) *PipelineCache[C] {
	// only fails for a non positive size
	cache, _ := lru.NewWithEvict[C, CachedPipeline](pipelineCacheSize, releasePipelineOnEviction[C])

	return &PipelineCache[C]{
		device: ctx.Device,
		cache:  cache,
	}
}

func (p *PipelineCache[C]) Get(conf C) (CachedPipeline, error) {
	cached, ok := p.cache.Get(conf)
	if ok {
		return cached, nil
	}

	pipeline, err := conf.Specialize(p.device)
	if err != nil {
		return CachedPipeline{}, fmt.Errorf("build pipeline: %w", err)
	}

	layouts, _ := lru.NewWithEvict[uint32, *wgpu.BindGroupLayout](4, releaseBindGroupLayoutOnEviction)

	pc := CachedPipeline{Pipeline: pipeline, bindGroups: layouts}
	p.cache.Add(conf, pc)

	return pc, nil
}

func (p *PipelineCache[C]) Purge() {
	p.cache.Purge()
}

func releasePipelineOnEviction[C any](conf C, pipe CachedPipeline) {
	slog.Debug("Release render pipeline", slog.String("config", fmt.Sprintf("%T", conf)))

	pipe.bindGroups.Purge()
	pipe.Pipeline.Release()
}

func releaseBindGroupLayoutOnEviction(_ uint32, layout *wgpu.BindGroupLayout) {
	layout.Release()
}
