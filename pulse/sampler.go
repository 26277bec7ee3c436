package pulse

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var samplerCache, _ = lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)

func samplerCacheOnEvict(_ wgpu.SamplerDescriptor, sampler *wgpu.Sampler) {
	sampler.Release()
}

// CachedSampler returns a sampler matching the description. The sampler is
// shared, callers must not release it.
func CachedSampler(dev *wgpu.Device, desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cached, ok := samplerCache.Get(desc)
	if ok {
		return cached, nil
	}

	sampler, err := dev.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler %q: %w", desc.Label, err)
	}

	samplerCache.Add(desc, sampler)

	return sampler, nil
}

// ClampSampler returns a sampler for drawing textures one to one with the
// given filter, without repeating them.
func ClampSampler(dev *wgpu.Device, filter wgpu.FilterMode) (*wgpu.Sampler, error) {
	return CachedSampler(dev, wgpu.SamplerDescriptor{
		Label:         "Clamp",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})
}
