package chrome

import (
	"log/slog"
	"testing"

	"github.com/oliverbestmann/frameless/config"
	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawTitlebarFrame(frame *layout.Frame, pointer glimpse.PointerState, maximized bool) (layout.BoundingBox, []layout.Command) {
	frame.Begin(800, 600, pointer)
	content := DrawTitlebar(frame, "frameless", maximized, DefaultTitlebarStyle())
	return content, frame.End()
}

func TestDrawTitlebarPublishesElements(t *testing.T) {
	frame := layout.NewFrame()

	content, _ := drawTitlebarFrame(frame, glimpse.PointerState{}, false)
	assert.Equal(t, glm.RectFromXYWH[float32](0, 35, 800, 565), content)

	expected := map[string]layout.BoundingBox{
		TitlebarID: glm.RectFromXYWH[float32](0, 0, 800, 35),
		MinimizeID: glm.RectFromXYWH[float32](695, 0, 35, 35),
		MaximizeID: glm.RectFromXYWH[float32](730, 0, 35, 35),
		CloseID:    glm.RectFromXYWH[float32](765, 0, 35, 35),
	}

	for id, box := range expected {
		actual, ok := frame.ElementBounds(id)
		require.True(t, ok, id)
		assert.Equal(t, box, actual, id)
	}
}

func TestDrawTitlebarHighlightsHoveredControl(t *testing.T) {
	frame := layout.NewFrame()
	style := DefaultTitlebarStyle()

	pointer := glimpse.PointerState{Local: glm.Vec2i{780, 10}}

	countFills := func(commands []layout.Command, fill layout.Rectangle) int {
		var count int
		for _, cmd := range commands {
			if rect, ok := cmd.(layout.Rectangle); ok && rect == fill {
				count++
			}
		}
		return count
	}

	highlight := layout.Rectangle{
		Box:   glm.RectFromXYWH[float32](765, 0, 35, 35),
		Color: style.CloseHover,
	}

	// hover is evaluated against the previous frame
	_, commands := drawTitlebarFrame(frame, pointer, false)
	assert.Zero(t, countFills(commands, highlight))

	_, commands = drawTitlebarFrame(frame, pointer, false)
	assert.Equal(t, 1, countFills(commands, highlight))
}

func TestDrawTitlebarMaximizedIcon(t *testing.T) {
	countBorders := func(commands []layout.Command) int {
		var count int
		for _, cmd := range commands {
			if _, ok := cmd.(layout.Border); ok {
				count++
			}
		}
		return count
	}

	_, normal := drawTitlebarFrame(layout.NewFrame(), glimpse.PointerState{}, false)
	_, maximized := drawTitlebarFrame(layout.NewFrame(), glimpse.PointerState{}, true)

	assert.Equal(t, 1, countBorders(normal))
	assert.Equal(t, 2, countBorders(maximized))
}

func TestTitlebarDrivesController(t *testing.T) {
	frame := layout.NewFrame()
	drawTitlebarFrame(frame, glimpse.PointerState{}, false)

	w := newFakeWindow()
	style := DefaultTitlebarStyle()

	c := NewController(w, frame, Options{
		Margin:        testMargin,
		MinWidth:      430,
		MinHeight:     270,
		TitlebarID:    TitlebarID,
		ControlsWidth: int(style.ControlsWidth()),
		Controls:      TitlebarControls(),
		Logger:        slog.New(slog.DiscardHandler),
	})

	c.HandleEvent(pointerEvent(w, glimpse.PointerDown, 845, 115))
	c.HandleEvent(pointerEvent(w, glimpse.PointerUp, 845, 115))

	assert.True(t, w.maximized)
	assert.Equal(t, Idle, c.Mode())
}

func TestTitlebarControlsMatchConfiguredReservedWidth(t *testing.T) {
	cfg := config.Default()
	cfg.Titlebar.ControlWidth = 42
	require.NoError(t, cfg.Validate())

	style := DefaultTitlebarStyle()
	style.ControlWidth = float32(cfg.Titlebar.ControlWidth)

	assert.Equal(t, cfg.Titlebar.ReservedWidth(), int(style.ControlsWidth()))

	// the leftmost control starts exactly where the drag zone ends
	frame := layout.NewFrame()
	frame.Begin(800, 600, glimpse.PointerState{})
	DrawTitlebar(frame, "", false, style)
	frame.End()

	minimize, ok := frame.ElementBounds(MinimizeID)
	require.True(t, ok)

	titlebar, ok := frame.ElementBounds(TitlebarID)
	require.True(t, ok)

	zone := titlebar.InsetRight(float32(cfg.Titlebar.ReservedWidth()))
	assert.Equal(t, zone.Right(), minimize.Left())
}
