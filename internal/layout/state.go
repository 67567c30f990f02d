package layout

import (
	"github.com/yourusername/playwin/internal/config"
	"github.com/yourusername/playwin/internal/geometry"
)

// LayoutState is the deterministic expansion of a LayoutSpec: concrete bar
// thicknesses computed from the spec plus preference-driven sizes. It
// carries no window frame; that is WindowGeometry's job.
type LayoutState struct {
	Spec LayoutSpec

	// TopBarHeight / BottomBarHeight are the full bar thicknesses
	// regardless of placement.
	TopBarHeight    float64
	BottomBarHeight float64

	// OutsideBars / InsideBars are the placement-resolved quads a
	// WindowGeometry for this layout must carry.
	OutsideBars geometry.BoxQuad
	InsideBars  geometry.BoxQuad
}

// NewLayoutState derives the layout state from a spec and preferences.
// Interactive and music modes override the spec's bar configuration with
// their fixed chrome.
func NewLayoutState(spec LayoutSpec, cfg *config.Config) *LayoutState {
	st := &LayoutState{Spec: spec}

	switch {
	case spec.Mode.IsInteractive():
		// Fixed chrome; sidebars and the OSC are forced closed.
		st.TopBarHeight = geometry.InteractiveModeTopBarHeight
		st.BottomBarHeight = geometry.InteractiveModeBottomBarHeight
		st.OutsideBars = geometry.BoxQuad{
			Top:    st.TopBarHeight,
			Bottom: st.BottomBarHeight,
		}
		return st

	case spec.Mode == geometry.ModeMusic:
		// The OSC is the window's bottom bar; the playlist extension is
		// tracked by MusicModeGeometry, not here.
		st.BottomBarHeight = geometry.MusicModeOSCHeight
		st.OutsideBars = geometry.BoxQuad{Bottom: st.BottomBarHeight}
		return st
	}

	// Windowed and full-screen modes share the bar derivation; full
	// screen forces everything inside the viewport since the window
	// cannot grow.
	topBar := 0.0
	if spec.Mode.IsWindowed() {
		topBar += cfg.Layout.TitleBarHeight
	}
	bottomBar := 0.0
	if spec.EnableOSC {
		switch spec.OSCPosition {
		case OSCTop:
			topBar += cfg.Layout.OSCHeight
		case OSCBottom:
			bottomBar += cfg.Layout.OSCHeight
		}
	}
	st.TopBarHeight = topBar
	st.BottomBarHeight = bottomBar

	topPlacement := spec.TopBarPlacement
	bottomPlacement := spec.BottomBarPlacement
	leadingPlacement := spec.LeadingSidebar.Placement
	trailingPlacement := spec.TrailingSidebar.Placement
	if spec.Mode.IsFullScreen() {
		topPlacement = PlacementInsideViewport
		bottomPlacement = PlacementInsideViewport
		leadingPlacement = PlacementInsideViewport
		trailingPlacement = PlacementInsideViewport
	}

	placeBar(&st.OutsideBars.Top, &st.InsideBars.Top, topBar, topPlacement)
	placeBar(&st.OutsideBars.Bottom, &st.InsideBars.Bottom, bottomBar, bottomPlacement)
	if spec.LeadingSidebar.Visible {
		placeBar(&st.OutsideBars.Leading, &st.InsideBars.Leading, cfg.Layout.LeadingSidebarWidth, leadingPlacement)
	}
	if spec.TrailingSidebar.Visible {
		placeBar(&st.OutsideBars.Trailing, &st.InsideBars.Trailing, cfg.Layout.TrailingSidebarWidth, trailingPlacement)
	}

	return st
}

func placeBar(outside, inside *float64, size float64, placement BarPlacement) {
	if placement == PlacementOutsideViewport {
		*outside = size
		return
	}
	*inside = size
}

// BarUpdate expresses this layout's bars as a full geometry bar update.
func (st *LayoutState) BarUpdate() geometry.BarUpdate {
	return geometry.BarUpdate{
		OutsideTop:      geometry.Float(st.OutsideBars.Top),
		OutsideTrailing: geometry.Float(st.OutsideBars.Trailing),
		OutsideBottom:   geometry.Float(st.OutsideBars.Bottom),
		OutsideLeading:  geometry.Float(st.OutsideBars.Leading),
		InsideTop:       geometry.Float(st.InsideBars.Top),
		InsideTrailing:  geometry.Float(st.InsideBars.Trailing),
		InsideBottom:    geometry.Float(st.InsideBars.Bottom),
		InsideLeading:   geometry.Float(st.InsideBars.Leading),
	}
}
