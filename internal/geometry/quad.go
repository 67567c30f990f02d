package geometry

// BoxQuad is an immutable set of four edge insets (margins or bar
// thicknesses) around a rectangle. Leading/trailing follow the window's
// layout direction; for a left-to-right layout leading is the left edge.
type BoxQuad struct {
	Top      float64
	Trailing float64
	Bottom   float64
	Leading  float64
}

// TotalWidth returns the combined horizontal inset.
func (q BoxQuad) TotalWidth() float64 {
	return q.Leading + q.Trailing
}

// TotalHeight returns the combined vertical inset.
func (q BoxQuad) TotalHeight() float64 {
	return q.Top + q.Bottom
}

// TotalSize returns the combined insets as a Size.
func (q BoxQuad) TotalSize() Size {
	return Size{Width: q.TotalWidth(), Height: q.TotalHeight()}
}

// IsZero returns true if all four insets are zero.
func (q BoxQuad) IsZero() bool {
	return q.Top == 0 && q.Trailing == 0 && q.Bottom == 0 && q.Leading == 0
}

// Add returns the edge-wise sum of two quads.
func (q BoxQuad) Add(other BoxQuad) BoxQuad {
	return BoxQuad{
		Top:      q.Top + other.Top,
		Trailing: q.Trailing + other.Trailing,
		Bottom:   q.Bottom + other.Bottom,
		Leading:  q.Leading + other.Leading,
	}
}

// HasNegative returns true if any inset is negative.
func (q BoxQuad) HasNegative() bool {
	return q.Top < 0 || q.Trailing < 0 || q.Bottom < 0 || q.Leading < 0
}
