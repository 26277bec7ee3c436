package chrome

import (
	"strings"

	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
)

// Bounds is the position and size of the window in desktop coordinates.
type Bounds = glm.Recti

// EdgeMask describes which edges of the window the pointer is close to.
// A single bit is a straight edge, two adjacent bits are a corner.
type EdgeMask uint8

const (
	EdgeNone   EdgeMask = 0
	EdgeLeft   EdgeMask = 1 << 0
	EdgeRight  EdgeMask = 1 << 1
	EdgeTop    EdgeMask = 1 << 2
	EdgeBottom EdgeMask = 1 << 3
)

func (m EdgeMask) Has(edge EdgeMask) bool {
	return m&edge != 0
}

func (m EdgeMask) String() string {
	if m == EdgeNone {
		return "none"
	}

	var names []string
	for _, e := range []struct {
		edge EdgeMask
		name string
	}{{EdgeLeft, "left"}, {EdgeRight, "right"}, {EdgeTop, "top"}, {EdgeBottom, "bottom"}} {
		if m.Has(e.edge) {
			names = append(names, e.name)
		}
	}

	return strings.Join(names, "|")
}

// ClassifyEdges returns the edges of bounds within margin pixels of cursor.
// An edge only counts if the cursor also lies within the span of that edge.
func ClassifyEdges(cursor glm.Vec2i, bounds Bounds, margin int) EdgeMask {
	x, y := cursor.XY()

	withinVerticalSpan := y >= bounds.Top() && y <= bounds.Bottom()
	withinHorizontalSpan := x >= bounds.Left() && x <= bounds.Right()

	mask := EdgeNone

	if withinVerticalSpan && withinMargin(x, bounds.Left(), margin) {
		mask |= EdgeLeft
	}

	if withinVerticalSpan && withinMargin(x, bounds.Right(), margin) {
		mask |= EdgeRight
	}

	if withinHorizontalSpan && withinMargin(y, bounds.Top(), margin) {
		mask |= EdgeTop
	}

	if withinHorizontalSpan && withinMargin(y, bounds.Bottom(), margin) {
		mask |= EdgeBottom
	}

	return mask
}

func withinMargin(value, edge, margin int) bool {
	d := value - edge
	return d >= -margin && d <= margin
}

type resizeRule struct {
	mask   EdgeMask
	cursor glimpse.Cursor
}

var resizeRules = []resizeRule{
	{EdgeLeft, glimpse.CursorResizeEW},
	{EdgeRight, glimpse.CursorResizeEW},
	{EdgeTop, glimpse.CursorResizeNS},
	{EdgeBottom, glimpse.CursorResizeNS},
	{EdgeLeft | EdgeTop, glimpse.CursorResizeNWSE},
	{EdgeRight | EdgeTop, glimpse.CursorResizeNESW},
	{EdgeLeft | EdgeBottom, glimpse.CursorResizeNESW},
	{EdgeRight | EdgeBottom, glimpse.CursorResizeNWSE},
}

// CursorForMask returns the cursor to show while hovering the given edges.
// Combinations that are neither an edge nor a corner map to the default cursor.
func CursorForMask(mask EdgeMask) glimpse.Cursor {
	for _, rule := range resizeRules {
		if rule.mask == mask {
			return rule.cursor
		}
	}

	return glimpse.CursorDefault
}

// ResizeBounds applies a pointer movement to the window bounds captured when
// the resize started. Dragged edges follow the pointer. If the window would
// become smaller than the minimum size, it is clamped while the edge opposite
// to the dragged one stays where it was.
func ResizeBounds(snapshot Bounds, edges EdgeMask, delta glm.Vec2i, minWidth, minHeight int) Bounds {
	dx, dy := delta.XY()

	b := snapshot

	if edges.Has(EdgeLeft) {
		b.X += dx
		b.W -= dx
	}

	if edges.Has(EdgeRight) {
		b.W += dx
	}

	if edges.Has(EdgeTop) {
		b.Y += dy
		b.H -= dy
	}

	if edges.Has(EdgeBottom) {
		b.H += dy
	}

	if b.W < minWidth {
		if edges.Has(EdgeLeft) {
			b.X = snapshot.Right() - minWidth
		}

		b.W = minWidth
	}

	if b.H < minHeight {
		if edges.Has(EdgeTop) {
			b.Y = snapshot.Bottom() - minHeight
		}

		b.H = minHeight
	}

	return b
}
