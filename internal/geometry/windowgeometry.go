package geometry

import (
	"fmt"
	"math"
)

// WindowGeometry is the central value type of the engine: a snapshot of one
// window's frame together with everything needed to derive its viewport and
// video rectangles. Instances are immutable; every operation returns a new
// value and the caller swaps it in wholesale.
//
// Layout anatomy, outermost to innermost:
//
//	windowFrame
//	  ├─ topMarginHeight (camera-housing cover, legacy full screen only)
//	  ├─ outside bars (consume window space additively)
//	  └─ viewport
//	       ├─ inside bars (overlay the viewport, no window growth)
//	       ├─ viewportMargins (letterbox/pillarbox space)
//	       └─ video (always exactly videoAspect)
type WindowGeometry struct {
	// WindowFrame is the window rect in global bottom-left screen
	// coordinates.
	WindowFrame Rect
	// ScreenID identifies the screen this window is associated with.
	ScreenID string
	// FitOption is the screen-containment policy currently in force.
	FitOption ScreenFitOption
	// Mode is the layout mode this geometry was computed for.
	Mode Mode
	// TopMarginHeight reserves extra space above the top bar to cover a
	// camera-housing notch in legacy full screen. Zero everywhere else.
	TopMarginHeight float64
	// OutsideBars are panels outside the viewport (title bar, outside
	// OSC, outside sidebars); they enlarge the window.
	OutsideBars BoxQuad
	// InsideBars are panels overlaid within the viewport bounds.
	InsideBars BoxQuad
	// ViewportMargins is the empty space between viewport edges and the
	// video rect.
	ViewportMargins BoxQuad
	// VideoAspect is the width/height ratio of the video content.
	VideoAspect float64
}

// Params collects the inputs for building a WindowGeometry. ViewportMargins
// may be nil, in which case the best-fit margins are derived.
type Params struct {
	WindowFrame     Rect
	ScreenID        string
	FitOption       ScreenFitOption
	Mode            Mode
	TopMarginHeight float64
	OutsideBars     BoxQuad
	InsideBars      BoxQuad
	ViewportMargins *BoxQuad
	VideoAspect     float64
}

// New builds a WindowGeometry, deriving viewport size, video size, and (when
// not supplied) best-fit viewport margins, in that order. Negative bar or
// margin inputs are programmer errors and panic.
func New(p Params) WindowGeometry {
	if p.OutsideBars.HasNegative() || p.InsideBars.HasNegative() {
		panic(fmt.Sprintf("geometry: negative bar size (outside=%+v inside=%+v)", p.OutsideBars, p.InsideBars))
	}
	if p.TopMarginHeight < 0 {
		panic(fmt.Sprintf("geometry: negative top margin height %v", p.TopMarginHeight))
	}
	if p.ViewportMargins != nil && p.ViewportMargins.HasNegative() {
		panic(fmt.Sprintf("geometry: negative viewport margins %+v", *p.ViewportMargins))
	}
	if p.VideoAspect <= 0 {
		panic(fmt.Sprintf("geometry: non-positive video aspect %v", p.VideoAspect))
	}

	g := WindowGeometry{
		WindowFrame:     p.WindowFrame,
		ScreenID:        p.ScreenID,
		FitOption:       p.FitOption,
		Mode:            p.Mode,
		TopMarginHeight: p.TopMarginHeight,
		OutsideBars:     p.OutsideBars,
		InsideBars:      p.InsideBars,
		VideoAspect:     p.VideoAspect,
	}
	if p.ViewportMargins != nil {
		g.ViewportMargins = *p.ViewportMargins
	} else {
		viewport := g.ViewportSize()
		video := ComputeVideoSize(g.VideoAspect, viewport, g.Mode.MinViewportMargins(), g.Mode)
		g.ViewportMargins = computeBestViewportMargins(viewport, video, g.InsideBars, g.Mode)
	}
	return g
}

// params returns a Params copy of the geometry with the stored margins, so
// operations can tweak individual fields and rebuild.
func (g WindowGeometry) params() Params {
	margins := g.ViewportMargins
	return Params{
		WindowFrame:     g.WindowFrame,
		ScreenID:        g.ScreenID,
		FitOption:       g.FitOption,
		Mode:            g.Mode,
		TopMarginHeight: g.TopMarginHeight,
		OutsideBars:     g.OutsideBars,
		InsideBars:      g.InsideBars,
		ViewportMargins: &margins,
		VideoAspect:     g.VideoAspect,
	}
}

// ViewportSize is the window size minus outside bars and the top margin.
func (g WindowGeometry) ViewportSize() Size {
	w := g.WindowFrame.Width - g.OutsideBars.TotalWidth()
	h := g.WindowFrame.Height - g.OutsideBars.TotalHeight() - g.TopMarginHeight
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Size{Width: w, Height: h}
}

// VideoSize is the viewport size minus the stored viewport margins.
func (g WindowGeometry) VideoSize() Size {
	viewport := g.ViewportSize()
	w := viewport.Width - g.ViewportMargins.TotalWidth()
	h := viewport.Height - g.ViewportMargins.TotalHeight()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Size{Width: w, Height: h}
}

// ViewportFrameInWindow returns the viewport rect relative to the window's
// bottom-left corner.
func (g WindowGeometry) ViewportFrameInWindow() Rect {
	return Rect{
		X:      g.OutsideBars.Leading,
		Y:      g.OutsideBars.Bottom,
		Width:  g.ViewportSize().Width,
		Height: g.ViewportSize().Height,
	}
}

// VideoFrameInWindow returns the video rect relative to the window's
// bottom-left corner.
func (g WindowGeometry) VideoFrameInWindow() Rect {
	viewport := g.ViewportFrameInWindow()
	video := g.VideoSize()
	return Rect{
		X:      viewport.X + g.ViewportMargins.Leading,
		Y:      viewport.Y + g.ViewportMargins.Bottom,
		Width:  video.Width,
		Height: video.Height,
	}
}

// ComputeVideoSize fits a video of the given aspect ratio into the viewport
// after subtracting margins. If the video is relatively taller than the
// usable area, the height fills it and the width is derived; otherwise the
// reverse. The derived dimension snaps to the usable dimension when within
// videoSizeSnapThreshold, else rounds to the nearest pixel. A degenerate
// usable area yields a zero size.
func ComputeVideoSize(aspect float64, viewportSize Size, margins BoxQuad, mode Mode) Size {
	if mode == ModeMusic {
		margins = BoxQuad{}
	}
	usable := Size{
		Width:  viewportSize.Width - margins.TotalWidth(),
		Height: viewportSize.Height - margins.TotalHeight(),
	}
	if usable.IsZero() || aspect <= 0 {
		return Size{}
	}

	if aspect < usable.Aspect() {
		// Relatively taller video: height fills, width derived.
		width := usable.Height * aspect
		return Size{Width: snapOrRound(width, usable.Width), Height: usable.Height}
	}
	height := usable.Width / aspect
	return Size{Width: usable.Width, Height: snapOrRound(height, usable.Height)}
}

// snapOrRound snaps value to limit when within the snap threshold, otherwise
// rounds to the nearest integer.
func snapOrRound(value, limit float64) float64 {
	if math.Abs(limit-value) <= videoSizeSnapThreshold {
		return limit
	}
	return math.Round(value)
}

// computeBestViewportMargins distributes the viewport space not occupied by
// the video. Vertical slack always splits evenly (floor top, ceil bottom).
// Horizontal slack centers the video, except in windowed modes with inside
// sidebars, where the video is kept clear of the sidebars when possible.
// The leading margin always rounds down and the trailing margin takes the
// remainder, so the totals stay pixel-exact across repeated derivations.
func computeBestViewportMargins(viewportSize, videoSize Size, insideBars BoxQuad, mode Mode) BoxQuad {
	if mode == ModeMusic {
		// Music mode keeps viewport == video.
		return BoxQuad{}
	}

	extraW := viewportSize.Width - videoSize.Width
	extraH := viewportSize.Height - videoSize.Height
	if extraW < 0 {
		extraW = 0
	}
	if extraH < 0 {
		extraH = 0
	}

	top := math.Floor(extraH / 2)
	bottom := extraH - top

	var leading float64
	lead, trail := insideBars.Leading, insideBars.Trailing

	switch {
	case extraW == 0:
		// Video fills the width exactly.
	case mode.IsFullScreen() || (lead == 0 && trail == 0):
		leading = math.Floor(extraW / 2)
	default:
		between := viewportSize.Width - lead - trail
		switch {
		case between >= videoSize.Width:
			// Enough room: center the video strictly between the
			// sidebars' inner edges.
			leading = lead + math.Floor((between-videoSize.Width)/2)
		case trail == 0:
			// Single leading sidebar: it gets all the slack.
			leading = extraW
		case lead == 0:
			// Single trailing sidebar: all slack goes trailing.
			leading = 0
		default:
			// Over-constrained: both sidebars present and the video
			// cannot clear both. Split the slack in proportion to
			// each sidebar's demand.
			leading = math.Floor(extraW * lead / (lead + trail))
		}
	}

	return BoxQuad{
		Top:      top,
		Trailing: extraW - leading,
		Bottom:   bottom,
		Leading:  leading,
	}
}
