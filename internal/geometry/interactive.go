package geometry

// ToInteractiveMode converts a windowed or full-screen geometry into its
// interactive crop-mode counterpart: fixed-height top and bottom bars for
// the crop controls, no sidebars, and a fixed margin box around the video so
// the drag handles stay visible. The video size is preserved where screen
// constraints allow.
func (g WindowGeometry) ToInteractiveMode(opt ScaleOptions) WindowGeometry {
	if g.Mode.IsInteractive() {
		return g
	}

	newMode := ModeWindowedInteractive
	if g.Mode == ModeFullScreen {
		newMode = ModeFullScreenInteractive
	}

	video := g.VideoSize()

	p := g.params()
	p.Mode = newMode
	p.InsideBars = BoxQuad{}
	p.OutsideBars = BoxQuad{
		Top:    InteractiveModeTopBarHeight,
		Bottom: InteractiveModeBottomBarHeight,
	}
	p.ViewportMargins = nil
	converted := New(p)

	if converted.FitOption.IsFullScreen() {
		// Full screen keeps its frame; margins absorb the difference.
		return converted.Refit(opt)
	}

	margins := newMode.MinViewportMargins()
	desired := Size{
		Width:  video.Width + margins.TotalWidth(),
		Height: video.Height + margins.TotalHeight(),
	}
	return converted.ScaleViewport(desired, opt)
}

// ExitInteractiveMode converts an interactive geometry back to its general
// counterpart, restoring the bar layout the target layout prescribes. The
// video size carries over, re-clamped against normal-mode minimums.
func (g WindowGeometry) ExitInteractiveMode(outsideBars, insideBars BoxQuad, topMarginHeight float64, opt ScaleOptions) WindowGeometry {
	if !g.Mode.IsInteractive() {
		return g
	}

	newMode := ModeWindowed
	if g.Mode == ModeFullScreenInteractive {
		newMode = ModeFullScreen
	}

	video := g.VideoSize()

	p := g.params()
	p.Mode = newMode
	p.OutsideBars = outsideBars
	p.InsideBars = insideBars
	p.TopMarginHeight = topMarginHeight
	p.ViewportMargins = nil
	converted := New(p)

	if converted.FitOption.IsFullScreen() {
		return converted.Refit(opt)
	}
	return converted.ScaleVideo(video, opt)
}
