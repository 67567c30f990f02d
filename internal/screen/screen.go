package screen

import (
	"github.com/yourusername/playwin/internal/geometry"
)

// Screen describes one attached display in global bottom-left coordinates.
type Screen struct {
	ID string
	// Frame is the full screen rect, including the camera-housing notch
	// area and any menu bar / dock regions.
	Frame geometry.Rect
	// VisibleFrame excludes the menu bar and dock.
	VisibleFrame geometry.Rect
	// CameraHousingHeight is the height of the camera notch strip at the
	// top of the screen, zero on screens without one.
	CameraHousingHeight float64
	IsMain              bool
}

// FrameWithoutCameraHousing is the full frame minus the notch strip, the
// container native full screen windows get.
func (s Screen) FrameWithoutCameraHousing() geometry.Rect {
	f := s.Frame
	f.Height -= s.CameraHousingHeight
	return f
}

// Provider resolves screens by ID. Screen returns ok=false for IDs of
// screens that are no longer attached.
type Provider interface {
	Screen(id string) (Screen, bool)
	Main() (Screen, bool)
}

// Set is a Provider backed by a fixed list of screens, used by the CLI and
// by tests. It also implements geometry.ScreenSource.
type Set struct {
	screens map[string]Screen
	mainID  string
}

// NewSet builds a Set; the first screen flagged IsMain (or the first screen
// overall) becomes the main screen.
func NewSet(screens ...Screen) *Set {
	s := &Set{screens: make(map[string]Screen, len(screens))}
	for _, sc := range screens {
		s.screens[sc.ID] = sc
		if s.mainID == "" || sc.IsMain {
			s.mainID = sc.ID
		}
	}
	return s
}

// Screen looks up a screen by ID.
func (s *Set) Screen(id string) (Screen, bool) {
	sc, ok := s.screens[id]
	return sc, ok
}

// Main returns the main screen.
func (s *Set) Main() (Screen, bool) {
	return s.Screen(s.mainID)
}

// ContainerFrame returns the rect a window with the given fit option must
// stay within on the given screen. Implements geometry.ScreenSource.
func (s *Set) ContainerFrame(screenID string, fit geometry.ScreenFitOption) (geometry.Rect, bool) {
	sc, ok := s.Screen(screenID)
	if !ok {
		return geometry.Rect{}, false
	}
	return ContainerFrame(sc, fit), true
}

// ContainerFrame selects the right container rect on a screen for a fit
// option: the full frame for legacy full screen (it covers the notch), the
// notch-free frame for native full screen, and the visible frame otherwise.
func ContainerFrame(sc Screen, fit geometry.ScreenFitOption) geometry.Rect {
	switch fit {
	case geometry.FitLegacyFullScreen:
		return sc.Frame
	case geometry.FitNativeFullScreen:
		return sc.FrameWithoutCameraHousing()
	default:
		return sc.VisibleFrame
	}
}
