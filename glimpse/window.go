package glimpse

// Window is the borderless desktop window as seen by the rest of the application.
// All methods must be called from the thread that runs the event loop.
type Window interface {
	Position() (x, y int)
	Size() (width, height int)

	SetPosition(x, y int)
	SetSize(width, height int)

	// SetCursor changes the pointer shape. Returns ErrCursorUnavailable if
	// the system has no cursor of that shape.
	SetCursor(cursor Cursor) error

	Minimize()
	Maximize()
	Restore()
	IsMaximized() bool

	// RequestClose asks the event loop to stop after the current frame.
	RequestClose()
	ShouldClose() bool
}
