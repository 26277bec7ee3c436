package glimpse

import (
	"fmt"

	"github.com/oliverbestmann/frameless/glm"
)

type EventKind uint8

const (
	PointerMotion EventKind = iota + 1
	PointerDown
	PointerUp
	Wheel
	KeyDown
	KeyUp
	WindowResized
	CloseRequested
)

func (k EventKind) String() string {
	switch k {
	case PointerMotion:
		return "PointerMotion"
	case PointerDown:
		return "PointerDown"
	case PointerUp:
		return "PointerUp"
	case Wheel:
		return "Wheel"
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case WindowResized:
		return "WindowResized"
	case CloseRequested:
		return "CloseRequested"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Key is a keyboard key code. Values follow the glfw key codes.
type Key int

const (
	KeyUnknown Key = -1
	KeyEscape  Key = 256
	KeyF3      Key = 292
)

// Event is a single pointer, keyboard or window event as delivered by the
// operating system.
type Event struct {
	Kind EventKind

	// pointer position relative to the windows top left corner
	Local glm.Vec2i

	// pointer position in desktop coordinates
	Global glm.Vec2i

	// scroll offsets for Wheel events
	Wheel glm.Vec2f

	// key for KeyDown and KeyUp events
	Key Key

	// new window size for WindowResized events
	Size glm.Vec2i
}

// EventQueue collects events in delivery order until they are drained by
// the frame loop.
type EventQueue struct {
	pending []Event
	spare   []Event
}

func (q *EventQueue) Push(ev Event) {
	q.pending = append(q.pending, ev)
}

// Drain returns all queued events in delivery order and empties the queue.
// The returned slice is valid until the next call to Drain.
func (q *EventQueue) Drain() []Event {
	events := q.pending
	q.pending, q.spare = q.spare[:0], events
	return events
}

func (q *EventQueue) Len() int {
	return len(q.pending)
}
