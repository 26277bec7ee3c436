package layout

import (
	"image/color"
	"log/slog"

	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
)

const scrollSpeed = 24

// Frame records the draw commands of one frame in immediate mode and keeps
// the bounding boxes of named elements around for queries.
//
// Boxes recorded between Begin and End become visible to ElementBounds once
// End was called, queries always see the last completed frame.
type Frame struct {
	size    glm.Vec2f
	pointer glimpse.PointerState

	commands []Command

	building  map[string]BoundingBox
	published map[string]BoundingBox

	scroll map[string]float32

	clipDepth int
}

var _ BoundsQuery = (*Frame)(nil)

func NewFrame() *Frame {
	return &Frame{
		building: map[string]BoundingBox{},
		scroll:   map[string]float32{},
	}
}

// Begin starts recording a new frame of the given size.
func (f *Frame) Begin(width, height float32, pointer glimpse.PointerState) {
	f.size = glm.Vec2f{width, height}
	f.pointer = pointer
	f.commands = f.commands[:0]
	clear(f.building)
}

// End finishes the frame and returns its draw commands in paint order.
// The returned slice is only valid until the next call to Begin.
func (f *Frame) End() []Command {
	if f.clipDepth != 0 {
		slog.Warn("Frame ended with unbalanced clip regions", slog.Int("depth", f.clipDepth))

		for ; f.clipDepth > 0; f.clipDepth-- {
			f.commands = append(f.commands, ScissorPop{})
		}
	}

	published := make(map[string]BoundingBox, len(f.building))
	for id, box := range f.building {
		published[id] = box
	}

	f.published = published

	return f.commands
}

func (f *Frame) Size() glm.Vec2f {
	return f.size
}

// Element registers a named element without drawing anything.
func (f *Frame) Element(id string, box BoundingBox) {
	if id != "" {
		f.building[id] = box
	}
}

func (f *Frame) Rect(id string, box BoundingBox, fill color.NRGBA, radius CornerRadius) {
	f.Element(id, box)
	f.commands = append(f.commands, Rectangle{Box: box, Color: fill, Radius: radius})
}

func (f *Frame) Border(id string, box BoundingBox, stroke color.NRGBA, radius CornerRadius, width BorderWidth) {
	f.Element(id, box)
	f.commands = append(f.commands, Border{Box: box, Color: stroke, Radius: radius, Width: width})
}

// Text places text with its top left corner at pos and returns the box it occupies.
func (f *Frame) Text(pos glm.Vec2f, text string, fontID uint16, size float32, fill color.NRGBA) BoundingBox {
	measured := MeasureText(text, size)
	box := BoundingBox{X: pos[0], Y: pos[1], W: measured[0], H: measured[1]}

	f.commands = append(f.commands, Text{
		Box:      box,
		FontID:   fontID,
		FontSize: size,
		Color:    fill,
		Text:     text,
	})

	return box
}

func (f *Frame) Image(id string, box BoundingBox, handle any) {
	f.Element(id, box)
	f.commands = append(f.commands, Image{Box: box, Handle: handle})
}

// Clip restricts everything recorded in fn to box.
func (f *Frame) Clip(box BoundingBox, fn func()) {
	f.clipDepth++
	f.commands = append(f.commands, ScissorPush{Box: box})

	fn()

	f.commands = append(f.commands, ScissorPop{Box: box})
	f.clipDepth--
}

// Scroll registers a scroll container and returns its current offset. The
// offset is updated from the wheel if the pointer hovers the container and
// is clamped so that content of the given height stays visible.
func (f *Frame) Scroll(id string, box BoundingBox, contentHeight float32) float32 {
	f.Element(id, box)

	offset := f.scroll[id]

	if f.pointer.Wheel[1] != 0 && box.Contains(f.pointer.Local.ToVec2f()) {
		offset -= f.pointer.Wheel[1] * scrollSpeed
	}

	offset = min(offset, max(contentHeight-box.H, 0))
	offset = max(offset, 0)

	f.scroll[id] = offset

	return offset
}

func (f *Frame) ElementBounds(id string) (BoundingBox, bool) {
	box, ok := f.published[id]
	return box, ok
}

// Hovered reports whether the pointer is over the named element of the last completed frame.
func (f *Frame) Hovered(id string) bool {
	box, ok := f.ElementBounds(id)
	return ok && box.Contains(f.pointer.Local.ToVec2f())
}

// Pressed reports whether the named element is hovered while the button is down.
func (f *Frame) Pressed(id string) bool {
	return f.pointer.Pressed && f.Hovered(id)
}
