package glm

import "fmt"

// Rect is an axis aligned rectangle given by its top left corner and its size.
type Rect[T numeric] struct {
	X, Y T
	W, H T
}

func RectFromXYWH[T numeric](x, y, w, h T) Rect[T] {
	return Rect[T]{X: x, Y: y, W: w, H: h}
}

func (r Rect[T]) Left() T {
	return r.X
}

func (r Rect[T]) Top() T {
	return r.Y
}

func (r Rect[T]) Right() T {
	return r.X + r.W
}

func (r Rect[T]) Bottom() T {
	return r.Y + r.H
}

func (r Rect[T]) Min() Vec2[T] {
	return Vec2[T]{r.X, r.Y}
}

func (r Rect[T]) Max() Vec2[T] {
	return Vec2[T]{r.Right(), r.Bottom()}
}

func (r Rect[T]) Size() Vec2[T] {
	return Vec2[T]{r.W, r.H}
}

// Empty reports whether the rectangle covers no area.
func (r Rect[T]) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies within the rectangle, edges included.
func (r Rect[T]) Contains(p Vec2[T]) bool {
	return p[0] >= r.X && p[0] <= r.Right() &&
		p[1] >= r.Y && p[1] <= r.Bottom()
}

// Translate moves the rectangle by offset.
func (r Rect[T]) Translate(offset Vec2[T]) Rect[T] {
	r.X += offset[0]
	r.Y += offset[1]
	return r
}

// InsetRight shrinks the rectangle from the right side by amount. The result
// never has a negative width.
func (r Rect[T]) InsetRight(amount T) Rect[T] {
	r.W = max(r.W-amount, 0)
	return r
}

func (r Rect[T]) XYWH() (T, T, T, T) {
	return r.X, r.Y, r.W, r.H
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("(%v,%v %vx%v)", r.X, r.Y, r.W, r.H)
}

// Intersect returns the area covered by both rectangles. The result is
// empty if they do not overlap.
func (r Rect[T]) Intersect(other Rect[T]) Rect[T] {
	x0 := max(r.Left(), other.Left())
	y0 := max(r.Top(), other.Top())
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())

	if x1 < x0 {
		x1 = x0
	}

	if y1 < y0 {
		y1 = y0
	}

	return Rect[T]{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
