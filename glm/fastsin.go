package glm

import (
	"math"

	"golang.org/x/mobile/exp/f32"
)

// Rad is an angle in radians.
type Rad float32

// DegToRad converts degrees to radians.
func DegToRad(deg float32) Rad {
	return Rad(deg * (math.Pi / 180))
}

// Sincos returns the sine and cosine of r.
func Sincos(r Rad) (sin, cos float32) {
	return f32.Sin(float32(r)), f32.Cos(float32(r))
}

// PointOnCircle returns the point at angle r on the circle around center.
// Screen space has y pointing down, so angle 90° is directly below center.
func PointOnCircle(center Vec2f, radius float32, r Rad) Vec2f {
	sin, cos := Sincos(r)
	return Vec2f{center[0] + cos*radius, center[1] + sin*radius}
}
