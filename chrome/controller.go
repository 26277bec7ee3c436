package chrome

import (
	"log/slog"

	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

// Mode is the interaction the controller is currently performing.
type Mode uint8

const (
	Idle Mode = iota
	Resizing
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Resizing:
		return "resizing"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type Options struct {
	// distance in pixels from an edge that still counts as hovering it
	Margin int

	MinWidth  int
	MinHeight int

	// id of the titlebar element, pressing it starts a drag
	TitlebarID string

	// width reserved at the right end of the titlebar for the window controls
	ControlsWidth int

	Controls Controls

	Logger *slog.Logger
}

// Controller moves and resizes a window that has no native decorations.
// It must be fed every pointer event in delivery order through HandleEvent.
type Controller struct {
	opts   Options
	window glimpse.Window
	layout layout.BoundsQuery
	log    *slog.Logger

	pointer glimpse.PointerState

	mode Mode

	// edges hovered by the pointer, as of the last hit test
	hover EdgeMask

	// edges being dragged while Resizing
	edges EdgeMask

	// window bounds at the time the interaction started
	snapshot Bounds

	cursor    glimpse.Cursor
	cursorSet bool

	// control that received the last press, if any
	pressedControl string
}

func NewController(window glimpse.Window, query layout.BoundsQuery, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		opts:   opts,
		window: window,
		layout: query,
		log:    log.With(slog.String("component", "chrome")),
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) Pointer() glimpse.PointerState {
	return c.pointer
}

// HoverEdges returns the edges found by the most recent hit test.
func (c *Controller) HoverEdges() EdgeMask {
	return c.hover
}

// Cursor returns the cursor shape most recently requested.
func (c *Controller) Cursor() glimpse.Cursor {
	return c.cursor
}

// NextTick resets the per frame pointer state. Call once per frame after
// the layout engine has consumed the pointer.
func (c *Controller) NextTick() {
	c.pointer.NextTick()
}

// HandleEvent processes a single event.
func (c *Controller) HandleEvent(ev glimpse.Event) {
	switch ev.Kind {
	case glimpse.PointerMotion:
		c.pointer.Apply(ev)
		c.updateInteraction()
		c.Hover()

	case glimpse.PointerDown:
		c.pointer.Apply(ev)
		c.BeginInteraction()

	case glimpse.PointerUp:
		c.pointer.Apply(ev)
		c.EndInteraction()

	case glimpse.Wheel:
		c.pointer.Apply(ev)

	case glimpse.KeyDown:
		if ev.Key == glimpse.KeyEscape {
			c.log.Info("Close requested by keyboard")
			c.window.RequestClose()
		}

	case glimpse.CloseRequested:
		c.window.RequestClose()
	}
}

// Hover hit tests the pointer against the window edges and updates the cursor.
// Skipped while a resize is in progress so the cursor does not flicker.
func (c *Controller) Hover() {
	if c.mode == Resizing {
		return
	}

	c.hover = ClassifyEdges(c.pointer.Global, c.windowBounds(), c.opts.Margin)
	c.setCursor(CursorForMask(c.hover))
}

// BeginInteraction starts resizing if the press happened on an edge, or dragging
// if it happened in the drag zone of the titlebar. Resizing takes precedence.
func (c *Controller) BeginInteraction() {
	if c.mode != Idle {
		return
	}

	bounds := c.windowBounds()

	edges := ClassifyEdges(c.pointer.DragStartGlobal, bounds, c.opts.Margin)
	if edges != EdgeNone {
		c.mode = Resizing
		c.edges = edges
		c.snapshot = bounds

		c.log.Debug("Start resizing",
			slog.String("edges", edges.String()),
			slog.String("bounds", bounds.String()),
		)

		return
	}

	if c.inDragZone(c.pointer.DragStartLocal) {
		c.mode = Dragging
		c.snapshot = bounds

		c.log.Debug("Start dragging", slog.String("bounds", bounds.String()))
		return
	}

	c.pressedControl = c.controlAt(c.pointer.DragStartLocal)
}

// UpdateResize applies the pointer movement since the press to the window and
// returns the new bounds.
func (c *Controller) UpdateResize(delta glm.Vec2i) Bounds {
	b := ResizeBounds(c.snapshot, c.edges, delta, c.opts.MinWidth, c.opts.MinHeight)

	c.window.SetPosition(b.X, b.Y)
	c.window.SetSize(b.W, b.H)

	return b
}

// UpdateDrag moves the window by the pointer movement since the press.
// The window is not kept within the screen.
func (c *Controller) UpdateDrag(delta glm.Vec2i) glm.Vec2i {
	pos := c.snapshot.Min().Add(delta)
	c.window.SetPosition(pos.XY())
	return pos
}

// EndInteraction returns to Idle, whatever the controller was doing, and
// triggers the window control the press started on, if any.
func (c *Controller) EndInteraction() {
	if c.mode != Idle {
		c.log.Debug("End interaction", slog.String("mode", c.mode.String()))
	}

	c.mode = Idle
	c.edges = EdgeNone

	pressed := c.pressedControl
	c.pressedControl = ""

	if pressed != "" && c.controlAt(c.pointer.Local) == pressed {
		c.activateControl(pressed)
	}
}

func (c *Controller) updateInteraction() {
	if !c.pointer.Pressed {
		return
	}

	switch c.mode {
	case Resizing:
		c.UpdateResize(c.pointer.Delta())

	case Dragging:
		c.UpdateDrag(c.pointer.Delta())
	}
}

func (c *Controller) inDragZone(local glm.Vec2i) bool {
	if c.layout == nil || c.opts.TitlebarID == "" {
		return false
	}

	titlebar, ok := c.layout.ElementBounds(c.opts.TitlebarID)
	if !ok {
		// layout did not run yet, no drag this time
		c.log.Debug("Titlebar not laid out, skip drag detection",
			slog.String("id", c.opts.TitlebarID))

		return false
	}

	zone := titlebar.InsetRight(float32(c.opts.ControlsWidth))
	return zone.Contains(local.ToVec2f())
}

func (c *Controller) setCursor(cursor glimpse.Cursor) {
	if c.cursorSet && c.cursor == cursor {
		return
	}

	c.cursor = cursor
	c.cursorSet = true

	if err := c.window.SetCursor(cursor); err != nil {
		c.log.Warn("Cursor not available, using default",
			slog.String("cursor", cursor.String()),
			slog.String("error", err.Error()),
		)

		if err := c.window.SetCursor(glimpse.CursorDefault); err != nil {
			c.log.Warn("Default cursor not available", slog.String("error", err.Error()))
		}
	}
}

func (c *Controller) windowBounds() Bounds {
	x, y := c.window.Position()
	w, h := c.window.Size()
	return glm.RectFromXYWH(x, y, w, h)
}
