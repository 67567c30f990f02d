package geometry

// BarUpdate describes a partial change to the window's bars. Nil fields keep
// the current thickness.
type BarUpdate struct {
	OutsideTop      *float64
	OutsideTrailing *float64
	OutsideBottom   *float64
	OutsideLeading  *float64
	InsideTop       *float64
	InsideTrailing  *float64
	InsideBottom    *float64
	InsideLeading   *float64
	TopMarginHeight *float64
}

// WithResizedOutsideBars resizes outside-bar thicknesses, adjusting the
// window frame so the viewport stays visually anchored: each bar grows and
// shrinks the window on its own side only. Growing the top bar raises the
// top edge, growing the leading bar pushes the left edge out, and so on.
func (g WindowGeometry) WithResizedOutsideBars(u BarUpdate) WindowGeometry {
	bars := g.OutsideBars
	frame := g.WindowFrame

	if u.OutsideTop != nil {
		delta := *u.OutsideTop - bars.Top
		bars.Top = *u.OutsideTop
		frame.Height += delta
	}
	if u.OutsideBottom != nil {
		delta := *u.OutsideBottom - bars.Bottom
		bars.Bottom = *u.OutsideBottom
		frame.Y -= delta
		frame.Height += delta
	}
	if u.OutsideLeading != nil {
		delta := *u.OutsideLeading - bars.Leading
		bars.Leading = *u.OutsideLeading
		frame.X -= delta
		frame.Width += delta
	}
	if u.OutsideTrailing != nil {
		delta := *u.OutsideTrailing - bars.Trailing
		bars.Trailing = *u.OutsideTrailing
		frame.Width += delta
	}
	if u.TopMarginHeight != nil {
		delta := *u.TopMarginHeight - g.TopMarginHeight
		frame.Height += delta
	}

	p := g.params()
	p.WindowFrame = frame
	p.OutsideBars = bars
	if u.TopMarginHeight != nil {
		p.TopMarginHeight = *u.TopMarginHeight
	}
	p.ViewportMargins = nil
	return New(p)
}

// WithResizedBars applies a full bar update, outside and inside, then
// re-runs ScaleViewport so margins and video size reconcile with the new
// inside-bar layout.
func (g WindowGeometry) WithResizedBars(u BarUpdate, opt ScaleOptions) WindowGeometry {
	out := g.WithResizedOutsideBars(u)

	inside := out.InsideBars
	if u.InsideTop != nil {
		inside.Top = *u.InsideTop
	}
	if u.InsideBottom != nil {
		inside.Bottom = *u.InsideBottom
	}
	if u.InsideLeading != nil {
		inside.Leading = *u.InsideLeading
	}
	if u.InsideTrailing != nil {
		inside.Trailing = *u.InsideTrailing
	}

	p := out.params()
	p.InsideBars = inside
	p.ViewportMargins = nil
	out = New(p)

	return out.ScaleViewport(out.ViewportSize(), opt)
}

// Float is a convenience for building BarUpdate literals.
func Float(v float64) *float64 {
	return &v
}
