package chrome

import (
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
)

// Element ids of the titlebar drawn by DrawTitlebar.
const (
	TitlebarID = "titlebar"
	MinimizeID = "titlebar.minimize"
	MaximizeID = "titlebar.maximize"
	CloseID    = "titlebar.close"
)

// TitlebarControls returns the controls drawn by DrawTitlebar.
func TitlebarControls() Controls {
	return Controls{
		Minimize: MinimizeID,
		Maximize: MaximizeID,
		Close:    CloseID,
	}
}

type TitlebarStyle struct {
	Height       float32
	ControlWidth float32
	FontSize     float32

	Background color.NRGBA
	Foreground color.NRGBA
	Hover      color.NRGBA
	CloseHover color.NRGBA
}

func DefaultTitlebarStyle() TitlebarStyle {
	return TitlebarStyle{
		Height:       35,
		ControlWidth: 35,
		FontSize:     13,

		Background: color.NRGBA{R: 0x24, G: 0x27, B: 0x2e, A: 0xff},
		Foreground: color.NRGBA{R: 0xd8, G: 0xdc, B: 0xe3, A: 0xff},
		Hover:      color.NRGBA{R: 0x3a, G: 0x3f, B: 0x4a, A: 0xff},
		CloseHover: color.NRGBA{R: 0xc4, G: 0x2b, B: 0x1c, A: 0xff},
	}
}

// ControlsWidth is the width taken by the window controls.
func (s TitlebarStyle) ControlsWidth() float32 {
	return float32(len(TitlebarControls().ids())) * s.ControlWidth
}

// DrawTitlebar records a titlebar across the top of the frame with the title
// on the left and minimize, maximize and close controls on the right. Returns
// the part of the frame below the titlebar.
func DrawTitlebar(frame *layout.Frame, title string, maximized bool, style TitlebarStyle) layout.BoundingBox {
	size := frame.Size()

	bar := glm.RectFromXYWH(0, 0, size[0], style.Height)
	frame.Rect(TitlebarID, bar, style.Background, layout.CornerRadius{})

	if title != "" {
		textHeight := layout.MeasureText(title, style.FontSize)[1]
		frame.Text(glm.Vec2f{12, (style.Height - textHeight) / 2}, title, 0, style.FontSize, style.Foreground)
	}

	x := size[0] - style.ControlsWidth()

	control := func(id string, hover color.NRGBA) layout.BoundingBox {
		box := glm.RectFromXYWH(x, 0, style.ControlWidth, style.Height)
		x += style.ControlWidth

		if frame.Hovered(id) {
			frame.Rect(id, box, hover, layout.CornerRadius{})
		} else {
			frame.Element(id, box)
		}

		return box
	}

	// square icon area centered in a control
	icon := func(box layout.BoundingBox) layout.BoundingBox {
		extent := style.Height / 2.5
		return glm.RectFromXYWH(
			box.X+(box.W-extent)/2,
			box.Y+(box.H-extent)/2,
			extent, extent,
		)
	}

	minimize := icon(control(MinimizeID, style.Hover))
	frame.Rect("", glm.RectFromXYWH(minimize.X, minimize.Bottom()-1, minimize.W, 1), style.Foreground, layout.CornerRadius{})

	maximize := icon(control(MaximizeID, style.Hover))
	if maximized {
		// two overlapping windows indicate restore
		back := glm.RectFromXYWH(maximize.X+2, maximize.Y, maximize.W-2, maximize.H-2)
		front := glm.RectFromXYWH(maximize.X, maximize.Y+2, maximize.W-2, maximize.H-2)

		frame.Border("", back, style.Foreground, layout.Uniform(1), layout.BorderWidth{Left: 1, Right: 1, Top: 1, Bottom: 1})
		frame.Rect("", front, style.Background, layout.Uniform(1))
		frame.Border("", front, style.Foreground, layout.Uniform(1), layout.BorderWidth{Left: 1, Right: 1, Top: 1, Bottom: 1})
	} else {
		frame.Border("", maximize, style.Foreground, layout.Uniform(1), layout.BorderWidth{Left: 1, Right: 1, Top: 1, Bottom: 1})
	}

	closeBox := icon(control(CloseID, style.CloseHover))
	closeText := layout.MeasureText("x", closeBox.H)
	frame.Text(glm.Vec2f{closeBox.X + (closeBox.W-closeText[0])/2, closeBox.Y}, "x", 0, closeBox.H, style.Foreground)

	return glm.RectFromXYWH(0, style.Height, size[0], max(size[1]-style.Height, 0))
}
