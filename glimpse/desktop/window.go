package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

func init() {
	// glfw must be driven from the main thread
	runtime.LockOSThread()
}

type Options struct {
	Width, Height       int
	MinWidth, MinHeight int
	Title               string
}

// Window is a borderless glfw window. The native decorations are disabled,
// moving and resizing is done by the application.
type Window struct {
	win     *glfw.Window
	queue   glimpse.EventQueue
	cursors map[glimpse.Cursor]*glfw.Cursor
}

var _ glimpse.Window = (*Window)(nil)

func NewWindow(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.SetSizeLimits(opts.MinWidth, opts.MinHeight, glfw.DontCare, glfw.DontCare)

	w := &Window{
		win: window,

		// glfw 3.3 has no diagonal resize cursors
		cursors: map[glimpse.Cursor]*glfw.Cursor{
			glimpse.CursorDefault:  glfw.CreateStandardCursor(glfw.ArrowCursor),
			glimpse.CursorResizeEW: glfw.CreateStandardCursor(glfw.HResizeCursor),
			glimpse.CursorResizeNS: glfw.CreateStandardCursor(glfw.VResizeCursor),
		},
	}

	w.configureInput()

	return w, nil
}

func (w *Window) Position() (x, y int) {
	return w.win.GetPos()
}

func (w *Window) Size() (width, height int) {
	return w.win.GetSize()
}

func (w *Window) SetPosition(x, y int) {
	w.win.SetPos(x, y)
}

func (w *Window) SetSize(width, height int) {
	w.win.SetSize(width, height)
}

func (w *Window) SetCursor(cursor glimpse.Cursor) error {
	c, ok := w.cursors[cursor]
	if !ok || c == nil {
		return fmt.Errorf("set cursor %s: %w", cursor, glimpse.ErrCursorUnavailable)
	}

	w.win.SetCursor(c)
	return nil
}

func (w *Window) Minimize() {
	w.win.Iconify()
}

func (w *Window) Maximize() {
	w.win.Maximize()
}

func (w *Window) Restore() {
	w.win.Restore()
}

func (w *Window) IsMaximized() bool {
	return w.win.GetAttrib(glfw.Maximized) == glfw.True
}

func (w *Window) RequestClose() {
	w.win.SetShouldClose(true)
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// FramebufferSize returns the size of the drawable surface in pixels.
func (w *Window) FramebufferSize() (uint32, uint32) {
	width, height := w.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) Terminate() {
	for _, cursor := range w.cursors {
		cursor.Destroy()
	}

	w.win.Destroy()
	glfw.Terminate()
}

// Run polls events and calls frame once per iteration with all events
// received since the previous call, in delivery order.
func (w *Window) Run(frame func(events []glimpse.Event) error) error {
	for !w.win.ShouldClose() {
		glfw.PollEvents()

		if err := frame(w.queue.Drain()); err != nil {
			return err
		}
	}

	return nil
}

func (w *Window) configureInput() {
	w.win.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key := keyOf(glfwKey)

		switch action {
		case glfw.Press:
			slog.Debug("Key just pressed", slog.Int("key", int(key)))
			w.queue.Push(glimpse.Event{Kind: glimpse.KeyDown, Key: key})

		case glfw.Release:
			w.queue.Push(glimpse.Event{Kind: glimpse.KeyUp, Key: key})
		}
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		// only the primary button drives the window chrome
		if btn != glfw.MouseButtonLeft {
			return
		}

		ev := w.pointerEvent()

		switch action {
		case glfw.Press:
			ev.Kind = glimpse.PointerDown
		case glfw.Release:
			ev.Kind = glimpse.PointerUp
		default:
			return
		}

		w.queue.Push(ev)
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, xpos float64, ypos float64) {
		ev := w.pointerEventAt(xpos, ypos)
		ev.Kind = glimpse.PointerMotion
		w.queue.Push(ev)
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, xoff float64, yoff float64) {
		ev := w.pointerEvent()
		ev.Kind = glimpse.Wheel
		ev.Wheel = glm.Vec2f{float32(xoff), float32(yoff)}
		w.queue.Push(ev)
	})

	w.win.SetSizeCallback(func(_ *glfw.Window, width int, height int) {
		w.queue.Push(glimpse.Event{
			Kind: glimpse.WindowResized,
			Size: glm.Vec2i{width, height},
		})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.Push(glimpse.Event{Kind: glimpse.CloseRequested})
	})
}

func (w *Window) pointerEvent() glimpse.Event {
	return w.pointerEventAt(w.win.GetCursorPos())
}

// pointerEventAt derives the desktop position from the window position, glfw
// does not report global cursor coordinates.
func (w *Window) pointerEventAt(xpos, ypos float64) glimpse.Event {
	wx, wy := w.win.GetPos()

	local := glm.Vec2i{int(xpos), int(ypos)}

	return glimpse.Event{
		Local:  local,
		Global: local.Add(glm.Vec2i{wx, wy}),
	}
}

func keyOf(glfwKey glfw.Key) glimpse.Key {
	switch glfwKey {
	case glfw.KeyEscape:
		return glimpse.KeyEscape
	case glfw.KeyUnknown:
		return glimpse.KeyUnknown
	default:
		return glimpse.Key(glfwKey)
	}
}
