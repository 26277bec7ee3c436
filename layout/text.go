package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/oliverbestmann/frameless/glm"
)

// the built in face has a fixed height of 13 pixels, other sizes are scaled.
var textFace font.Face = basicfont.Face7x13

const textFaceHeight = 13

// MeasureText returns the size of text rendered at the given font size.
func MeasureText(text string, size float32) glm.Vec2f {
	if size <= 0 || text == "" {
		return glm.Vec2f{}
	}

	scale := size / textFaceHeight
	width := float32(font.MeasureString(textFace, text).Ceil())

	return glm.Vec2f{width * scale, size}
}
