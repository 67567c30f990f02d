package layout

import (
	"github.com/yourusername/playwin/internal/config"
	"github.com/yourusername/playwin/internal/geometry"
)

// BarPlacement says whether a bar lives outside the viewport (consuming
// window space) or overlays it from inside.
type BarPlacement int

const (
	PlacementInsideViewport BarPlacement = iota
	PlacementOutsideViewport
)

// String returns the config token for the placement.
func (p BarPlacement) String() string {
	if p == PlacementOutsideViewport {
		return "outside"
	}
	return "inside"
}

// ParseBarPlacement converts a config token to a placement.
func ParseBarPlacement(s string) (BarPlacement, bool) {
	switch s {
	case "inside":
		return PlacementInsideViewport, true
	case "outside":
		return PlacementOutsideViewport, true
	default:
		return 0, false
	}
}

// OSCPosition is where the on-screen controller sits.
type OSCPosition int

const (
	// OSCFloating overlays the viewport center and consumes no bar space.
	OSCFloating OSCPosition = iota
	OSCTop
	OSCBottom
)

// ParseOSCPosition converts a config token to a position.
func ParseOSCPosition(s string) (OSCPosition, bool) {
	switch s {
	case "floating":
		return OSCFloating, true
	case "top":
		return OSCTop, true
	case "bottom":
		return OSCBottom, true
	default:
		return 0, false
	}
}

// SidebarSpec describes one sidebar's requested visibility and placement.
type SidebarSpec struct {
	Visible   bool
	Placement BarPlacement
}

// LayoutSpec is the pure configuration of which panels are visible and
// where, independent of any pixel geometry. LayoutState derives
// deterministically from it.
type LayoutSpec struct {
	Mode geometry.Mode
	// IsLegacyStyle selects legacy full screen (covers the camera
	// housing) and legacy windowed chrome.
	IsLegacyStyle      bool
	TopBarPlacement    BarPlacement
	BottomBarPlacement BarPlacement
	EnableOSC          bool
	OSCPosition        OSCPosition
	LeadingSidebar     SidebarSpec
	TrailingSidebar    SidebarSpec
}

// DefaultLayoutSpec builds the windowed-mode spec the preferences describe.
func DefaultLayoutSpec(cfg *config.Config) LayoutSpec {
	top, _ := ParseBarPlacement(cfg.Layout.TopBarPlacement)
	bottom, _ := ParseBarPlacement(cfg.Layout.BottomBarPlacement)
	osc, _ := ParseOSCPosition(cfg.Layout.OSCPosition)
	return LayoutSpec{
		Mode:               geometry.ModeWindowed,
		IsLegacyStyle:      cfg.Geometry.UseLegacyFullScreen,
		TopBarPlacement:    top,
		BottomBarPlacement: bottom,
		EnableOSC:          true,
		OSCPosition:        osc,
	}
}

// WithMode returns a copy of the spec targeting a different mode. Sidebars
// and bars carry over; mode-specific rules are applied when the LayoutState
// is derived.
func (s LayoutSpec) WithMode(mode geometry.Mode) LayoutSpec {
	out := s
	out.Mode = mode
	return out
}
