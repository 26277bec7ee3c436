package chrome

import (
	"log/slog"
	"testing"

	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	bounds Bounds

	maximized   bool
	minimized   bool
	closing     bool
	unavailable map[glimpse.Cursor]bool

	cursor       glimpse.Cursor
	cursorCalls  []glimpse.Cursor
	restoreCalls int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{bounds: testBounds}
}

func (w *fakeWindow) Position() (int, int) {
	return w.bounds.X, w.bounds.Y
}

func (w *fakeWindow) Size() (int, int) {
	return w.bounds.W, w.bounds.H
}

func (w *fakeWindow) SetPosition(x, y int) {
	w.bounds.X, w.bounds.Y = x, y
}

func (w *fakeWindow) SetSize(width, height int) {
	w.bounds.W, w.bounds.H = width, height
}

func (w *fakeWindow) SetCursor(cursor glimpse.Cursor) error {
	w.cursorCalls = append(w.cursorCalls, cursor)

	if w.unavailable[cursor] {
		return glimpse.ErrCursorUnavailable
	}

	w.cursor = cursor
	return nil
}

func (w *fakeWindow) Minimize()         { w.minimized = true }
func (w *fakeWindow) Maximize()         { w.maximized = true }
func (w *fakeWindow) Restore()          { w.maximized = false; w.restoreCalls++ }
func (w *fakeWindow) IsMaximized() bool { return w.maximized }
func (w *fakeWindow) RequestClose()     { w.closing = true }
func (w *fakeWindow) ShouldClose() bool { return w.closing }

type fakeLayout map[string]layout.BoundingBox

func (l fakeLayout) ElementBounds(id string) (layout.BoundingBox, bool) {
	box, ok := l[id]
	return box, ok
}

func titlebarLayout() fakeLayout {
	return fakeLayout{
		"titlebar": glm.RectFromXYWH[float32](0, 0, 800, 35),
		"minimize": glm.RectFromXYWH[float32](695, 0, 35, 35),
		"maximize": glm.RectFromXYWH[float32](730, 0, 35, 35),
		"close":    glm.RectFromXYWH[float32](765, 0, 35, 35),
	}
}

func newTestController(window *fakeWindow, query layout.BoundsQuery) *Controller {
	return NewController(window, query, Options{
		Margin:        testMargin,
		MinWidth:      430,
		MinHeight:     270,
		TitlebarID:    "titlebar",
		ControlsWidth: 105,
		Controls: Controls{
			Minimize: "minimize",
			Maximize: "maximize",
			Close:    "close",
		},
		Logger: slog.New(slog.DiscardHandler),
	})
}

// pointerEvent builds an event at a desktop position, deriving the local
// position from where the window currently is.
func pointerEvent(w *fakeWindow, kind glimpse.EventKind, x, y int) glimpse.Event {
	global := glm.Vec2i{x, y}
	return glimpse.Event{
		Kind:   kind,
		Global: global,
		Local:  global.Sub(w.bounds.Min()),
	}
}

func TestResizeFromLeftEdge(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 102, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 102, 400))
	require.Equal(t, Resizing, c.Mode())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 52, 420))
	assert.Equal(t, glm.RectFromXYWH(50, 100, 850, 600), window.bounds)

	// far beyond the minimum size, right edge stays in place
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 852, 420))
	assert.Equal(t, glm.RectFromXYWH(470, 100, 430, 600), window.bounds)

	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 852, 420))
	assert.Equal(t, Idle, c.Mode())
}

func TestDragIsNotClampedToTheScreen(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 400, 110))
	require.Equal(t, Dragging, c.Mode())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 410, 130))
	assert.Equal(t, glm.RectFromXYWH(110, 120, 800, 600), window.bounds)

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, -500, -300))
	assert.Equal(t, glm.RectFromXYWH(-800, -310, 800, 600), window.bounds)

	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, -500, -300))
	assert.Equal(t, Idle, c.Mode())
}

func TestResizeTakesPrecedenceOverDrag(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	// top left corner is inside of the titlebar as well
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 102, 103))
	assert.Equal(t, Resizing, c.Mode())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 92, 93))
	assert.Equal(t, glm.RectFromXYWH(90, 90, 810, 610), window.bounds)
}

func TestNoDragWithoutTitlebar(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, fakeLayout{})

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 400, 110))
	assert.Equal(t, Idle, c.Mode())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 500, 200))
	assert.Equal(t, testBounds, window.bounds)
}

func TestNoDragWithoutLayout(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, nil)

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 400, 110))
	assert.Equal(t, Idle, c.Mode())
}

func TestControlsZoneIsNotADragZone(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, fakeLayout{
		"titlebar": glm.RectFromXYWH[float32](0, 0, 800, 35),
	})

	// local x=700 is within the rightmost 105 pixels of the titlebar
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 800, 110))
	assert.Equal(t, Idle, c.Mode())

	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 800, 110))

	// local x=694 is still draggable
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 794, 110))
	assert.Equal(t, Dragging, c.Mode())
}

func TestMotionAfterReleaseDoesNotChangeBounds(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 102, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 82, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 82, 400))

	released := window.bounds
	assert.Equal(t, glm.RectFromXYWH(80, 100, 820, 600), released)

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 10, 10))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 600, 900))

	assert.Equal(t, released, window.bounds)
	assert.Equal(t, Idle, c.Mode())
}

func TestHoverIsSuspendedWhileResizing(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 102, 400))
	assert.Equal(t, EdgeLeft, c.HoverEdges())
	assert.Equal(t, glimpse.CursorResizeEW, window.cursor)

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 102, 400))
	calls := len(window.cursorCalls)

	// moves the pointer away from every edge of the original bounds
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 300, 300))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 310, 320))

	assert.Equal(t, EdgeLeft, c.HoverEdges())
	assert.Len(t, window.cursorCalls, calls)

	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 310, 320))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 600, 400))

	assert.Equal(t, EdgeNone, c.HoverEdges())
	assert.Equal(t, glimpse.CursorDefault, window.cursor)
}

func TestCursorIsOnlySetOnChange(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 400, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 410, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 420, 400))

	assert.Equal(t, []glimpse.Cursor{glimpse.CursorDefault}, window.cursorCalls)

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 500, 699))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 510, 701))

	assert.Equal(t, []glimpse.Cursor{glimpse.CursorDefault, glimpse.CursorResizeNS}, window.cursorCalls)
}

func TestUnavailableCursorFallsBackToDefault(t *testing.T) {
	window := newFakeWindow()
	window.unavailable = map[glimpse.Cursor]bool{
		glimpse.CursorResizeNWSE: true,
		glimpse.CursorResizeNESW: true,
	}

	c := newTestController(window, titlebarLayout())

	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 899, 699))

	assert.Equal(t, EdgeRight|EdgeBottom, c.HoverEdges())
	assert.Equal(t, glimpse.CursorResizeNWSE, c.Cursor())
	assert.Equal(t, glimpse.CursorDefault, window.cursor)
	assert.Equal(t, []glimpse.Cursor{glimpse.CursorResizeNWSE, glimpse.CursorDefault}, window.cursorCalls)

	// corner resize still works without a matching cursor
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 899, 699))
	c.HandleEvent(pointerEvent(window, glimpse.PointerMotion, 909, 719))
	assert.Equal(t, glm.RectFromXYWH(100, 100, 810, 620), window.bounds)
}

func TestCloseControlNeedsPressAndReleaseOnTheControl(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	// press on close, release somewhere else
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 880, 117))
	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 500, 400))
	assert.False(t, window.closing)

	// press somewhere else, release on close
	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 500, 400))
	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 880, 117))
	assert.False(t, window.closing)

	c.HandleEvent(pointerEvent(window, glimpse.PointerDown, 880, 117))
	assert.Equal(t, Idle, c.Mode())
	c.HandleEvent(pointerEvent(window, glimpse.PointerUp, 882, 118))
	assert.True(t, window.closing)
}

func TestMaximizeControlToggles(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	click := func(x, y int) {
		c.HandleEvent(pointerEvent(window, glimpse.PointerDown, x, y))
		c.HandleEvent(pointerEvent(window, glimpse.PointerUp, x, y))
	}

	click(845, 117)
	assert.True(t, window.maximized)

	click(845, 117)
	assert.False(t, window.maximized)
	assert.Equal(t, 1, window.restoreCalls)

	click(810, 117)
	assert.True(t, window.minimized)
}

func TestEscapeRequestsClose(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(glimpse.Event{Kind: glimpse.KeyDown, Key: glimpse.KeyUnknown})
	assert.False(t, window.ShouldClose())

	c.HandleEvent(glimpse.Event{Kind: glimpse.KeyDown, Key: glimpse.KeyEscape})
	assert.True(t, window.ShouldClose())
}

func TestCloseRequestedEvent(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(glimpse.Event{Kind: glimpse.CloseRequested})
	assert.True(t, window.ShouldClose())
}

func TestWheelIsTrackedUntilNextTick(t *testing.T) {
	window := newFakeWindow()
	c := newTestController(window, titlebarLayout())

	c.HandleEvent(glimpse.Event{Kind: glimpse.Wheel, Wheel: glm.Vec2f{0, -2}})
	assert.Equal(t, glm.Vec2f{0, -2}, c.Pointer().Wheel)

	c.NextTick()
	assert.Equal(t, glm.Vec2f{}, c.Pointer().Wheel)
}
