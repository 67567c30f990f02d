package geometry

import "math"

// Point represents a 2D coordinate in screen space.
type Point struct {
	X float64
	Y float64
}

// Size represents a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsZero returns true if either dimension is zero or smaller.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Aspect returns the width/height ratio, or 0 for a degenerate size.
func (s Size) Aspect() float64 {
	if s.Height <= 0 {
		return 0
	}
	return s.Width / s.Height
}

// Min returns the component-wise minimum of two sizes.
func (s Size) Min(other Size) Size {
	return Size{
		Width:  math.Min(s.Width, other.Width),
		Height: math.Min(s.Height, other.Height),
	}
}

// Max returns the component-wise maximum of two sizes.
func (s Size) Max(other Size) Size {
	return Size{
		Width:  math.Max(s.Width, other.Width),
		Height: math.Max(s.Height, other.Height),
	}
}

// Rounded returns the size with both dimensions rounded to the nearest integer.
func (s Size) Rounded() Size {
	return Size{Width: math.Round(s.Width), Height: math.Round(s.Height)}
}

// Rect represents a window or screen rectangle in global screen coordinates.
// The origin is the bottom-left corner and Y grows upward, matching the
// coordinate space the player shell reports window frames in.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFrom builds a Rect from an origin point and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the bottom-left corner of the rect.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// MaxX returns the trailing (right) edge.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the top edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// WithSize returns a copy of the rect resized to the given size,
// keeping the origin fixed.
func (r Rect) WithSize(size Size) Rect {
	return Rect{X: r.X, Y: r.Y, Width: size.Width, Height: size.Height}
}

// CenteredIn returns a copy of the rect centered within container,
// with the origin rounded to whole pixels.
func (r Rect) CenteredIn(container Rect) Rect {
	return Rect{
		X:      math.Round(container.X + (container.Width-r.Width)/2),
		Y:      math.Round(container.Y + (container.Height-r.Height)/2),
		Width:  r.Width,
		Height: r.Height,
	}
}

// ConstrainedTo returns a copy of the rect moved (and shrunk if necessary)
// so that it lies entirely within container.
func (r Rect) ConstrainedTo(container Rect) Rect {
	out := r
	if out.Width > container.Width {
		out.Width = container.Width
	}
	if out.Height > container.Height {
		out.Height = container.Height
	}
	if out.X < container.X {
		out.X = container.X
	} else if out.MaxX() > container.MaxX() {
		out.X = container.MaxX() - out.Width
	}
	if out.Y < container.Y {
		out.Y = container.Y
	} else if out.MaxY() > container.MaxY() {
		out.Y = container.MaxY() - out.Height
	}
	return out
}

// ApproximatelyEqual reports whether two rects are equal within tolerance.
func (r Rect) ApproximatelyEqual(other Rect, tolerance float64) bool {
	return math.Abs(r.X-other.X) <= tolerance &&
		math.Abs(r.Y-other.Y) <= tolerance &&
		math.Abs(r.Width-other.Width) <= tolerance &&
		math.Abs(r.Height-other.Height) <= tolerance
}
