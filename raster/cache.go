package raster

import (
	"fmt"
	"image/color"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

type meshKey struct {
	Size     glm.Vec2f
	Radius   layout.CornerRadius
	Segments Segments
}

// MeshCache keeps tessellated rectangles relative to the origin, keyed by
// their size and corner radii. Rectangles of equal shape at different
// positions or with different colors share one tessellation.
type MeshCache struct {
	cache *lru.Cache[meshKey, Mesh]

	hits   int
	misses int
}

func NewMeshCache(size int) (*MeshCache, error) {
	cache, err := lru.New[meshKey, Mesh](size)
	if err != nil {
		return nil, fmt.Errorf("create mesh cache of size %d: %w", size, err)
	}

	return &MeshCache{cache: cache}, nil
}

// Rect returns the mesh TessellateRect would build for the same arguments.
func (c *MeshCache) Rect(box layout.BoundingBox, radii layout.CornerRadius, fill color.NRGBA, segments Segments) Mesh {
	if degenerate(box) {
		return Mesh{}
	}

	key := meshKey{
		Size:     box.Size(),
		Radius:   clampRadii(box, radii),
		Segments: segments,
	}

	mesh, ok := c.cache.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++

		origin := glm.RectFromXYWH(0, 0, box.W, box.H)
		mesh = TessellateRect(origin, key.Radius, color.NRGBA{}, segments)
		c.cache.Add(key, mesh)
	}

	return mesh.Translated(box.Min(), fill)
}

// Counts returns the number of cache hits and misses so far.
func (c *MeshCache) Counts() (hits, misses int) {
	return c.hits, c.misses
}

func (c *MeshCache) Len() int {
	return c.cache.Len()
}
