// Package layout describes the draw commands a frame is made of and the
// queries the window chrome needs from the layout engine.
package layout

import (
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
)

// BoundingBox is a rectangle in screen pixels relative to the window.
type BoundingBox = glm.Rectf

type CornerRadius struct {
	TopLeft, TopRight, BottomLeft, BottomRight float32
}

// Uniform returns a CornerRadius with all corners set to r.
func Uniform(r float32) CornerRadius {
	return CornerRadius{r, r, r, r}
}

func (c CornerRadius) IsZero() bool {
	return c.TopLeft == 0 && c.TopRight == 0 && c.BottomLeft == 0 && c.BottomRight == 0
}

type BorderWidth struct {
	Left, Right, Top, Bottom float32
}

// Command is a single draw command. The set of commands is closed, the only
// implementations are Rectangle, Border, Text, Image, ScissorPush and ScissorPop.
type Command interface {
	Bounds() BoundingBox
	command()
}

type Rectangle struct {
	Box    BoundingBox
	Color  color.NRGBA
	Radius CornerRadius
}

type Border struct {
	Box    BoundingBox
	Color  color.NRGBA
	Radius CornerRadius
	Width  BorderWidth
}

type Text struct {
	Box      BoundingBox
	FontID   uint16
	FontSize float32
	Color    color.NRGBA
	Text     string
}

type Image struct {
	Box BoundingBox

	// Handle is a texture handle owned by the graphics backend.
	Handle any
}

// ScissorPush restricts all following commands to Box until the next ScissorPop.
type ScissorPush struct {
	Box BoundingBox
}

type ScissorPop struct {
	Box BoundingBox
}

func (c Rectangle) Bounds() BoundingBox   { return c.Box }
func (c Border) Bounds() BoundingBox      { return c.Box }
func (c Text) Bounds() BoundingBox        { return c.Box }
func (c Image) Bounds() BoundingBox       { return c.Box }
func (c ScissorPush) Bounds() BoundingBox { return c.Box }
func (c ScissorPop) Bounds() BoundingBox  { return c.Box }

func (Rectangle) command()   {}
func (Border) command()      {}
func (Text) command()        {}
func (Image) command()       {}
func (ScissorPush) command() {}
func (ScissorPop) command()  {}

// BoundsQuery answers where a named element ended up on screen.
type BoundsQuery interface {
	// ElementBounds returns the bounding box of the element with the given id.
	// The second return value is false if no such element was laid out.
	ElementBounds(id string) (BoundingBox, bool)
}
