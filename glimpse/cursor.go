package glimpse

import "errors"

// ErrCursorUnavailable is returned by a Window if the system does not provide
// the requested cursor shape.
var ErrCursorUnavailable = errors.New("cursor shape not available")

type Cursor uint8

const (
	CursorDefault Cursor = iota

	// horizontal resize, left and right edge
	CursorResizeEW

	// vertical resize, top and bottom edge
	CursorResizeNS

	// diagonal resize, top left and bottom right corner
	CursorResizeNWSE

	// diagonal resize, top right and bottom left corner
	CursorResizeNESW
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorResizeEW:
		return "ew-resize"
	case CursorResizeNS:
		return "ns-resize"
	case CursorResizeNWSE:
		return "nwse-resize"
	case CursorResizeNESW:
		return "nesw-resize"
	default:
		return "unknown"
	}
}
