package pulse

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var textFace font.Face = basicfont.Face7x13

// TextCache rasterizes strings with the built-in bitmap face into white,
// alpha masked textures. Draw calls tint and scale them to the requested
// color and size.
type TextCache struct {
	ctx      *Context
	textures *lru.Cache[string, *Texture]
}

func NewTextCache(ctx *Context, size int) (*TextCache, error) {
	textures, err := lru.NewWithEvict[string, *Texture](size, func(text string, texture *Texture) {
		slog.Debug("Release text texture", slog.String("text", text))
		texture.Release()
	})

	if err != nil {
		return nil, fmt.Errorf("create text cache: %w", err)
	}

	return &TextCache{ctx: ctx, textures: textures}, nil
}

// Texture returns the texture holding text, rendering it on first use.
func (c *TextCache) Texture(text string) (*Texture, error) {
	if texture, ok := c.textures.Get(text); ok {
		return texture, nil
	}

	img := RasterizeText(text)
	if img == nil {
		return nil, fmt.Errorf("text %q has no visible size", text)
	}

	texture, err := NewTextureFromImage(c.ctx, img, "Text")
	if err != nil {
		return nil, fmt.Errorf("upload text %q: %w", text, err)
	}

	c.textures.Add(text, texture)

	return texture, nil
}

func (c *TextCache) Purge() {
	c.textures.Purge()
}

// RasterizeText draws text in white onto a transparent image just large enough
// to hold it. Returns nil for text without width.
func RasterizeText(text string) *image.NRGBA {
	metrics := textFace.Metrics()

	width := font.MeasureString(textFace, text).Ceil()
	height := metrics.Height.Ceil()

	if width <= 0 || height <= 0 {
		return nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: textFace,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}

	drawer.DrawString(text)

	return img
}
