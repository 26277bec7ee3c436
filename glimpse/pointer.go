package glimpse

import "github.com/oliverbestmann/frameless/glm"

// PointerState is the state of the primary pointer as seen by the
// most recent event.
type PointerState struct {
	Local  glm.Vec2i
	Global glm.Vec2i

	Pressed bool

	// pointer positions at the time the button was pressed
	DragStartLocal  glm.Vec2i
	DragStartGlobal glm.Vec2i

	// scroll offsets of the last wheel event
	Wheel glm.Vec2f

	// true only for the frame the button went down or up
	JustPressed  bool
	JustReleased bool
}

// Apply updates the pointer state with the given event.
func (p *PointerState) Apply(ev Event) {
	switch ev.Kind {
	case PointerMotion:
		p.position(ev)

	case PointerDown:
		p.position(ev)
		p.press()

	case PointerUp:
		p.position(ev)
		p.release()

	case Wheel:
		p.Wheel = ev.Wheel
	}
}

// Delta returns the movement in desktop coordinates since the button was pressed.
func (p *PointerState) Delta() glm.Vec2i {
	return p.Global.Sub(p.DragStartGlobal)
}

// NextTick resets the per frame state.
func (p *PointerState) NextTick() {
	p.JustPressed = false
	p.JustReleased = false
	p.Wheel = glm.Vec2f{}
}

func (p *PointerState) position(ev Event) {
	p.Local = ev.Local
	p.Global = ev.Global
}

func (p *PointerState) press() {
	p.Pressed = true
	p.JustPressed = true
	p.DragStartLocal = p.Local
	p.DragStartGlobal = p.Global
}

func (p *PointerState) release() {
	p.Pressed = false
	p.JustReleased = true
}
