package geometry

// ScreenFitOption describes how a window frame must be constrained to the
// screen it lives on.
type ScreenFitOption int

const (
	// FitNone applies no screen constraint at all.
	FitNone ScreenFitOption = iota
	// FitKeepInVisible keeps the window inside the screen's visible frame.
	FitKeepInVisible
	// FitCenterInVisible keeps the window inside the visible frame and
	// re-centers it after every resize.
	FitCenterInVisible
	// FitLegacyFullScreen sizes the window to the screen's full frame,
	// including any camera-housing notch area.
	FitLegacyFullScreen
	// FitNativeFullScreen sizes the window to the frame the OS grants a
	// native full-screen window (excludes the camera housing).
	FitNativeFullScreen
)

// IsFullScreen returns true for the two full-screen fit options.
func (f ScreenFitOption) IsFullScreen() bool {
	return f == FitLegacyFullScreen || f == FitNativeFullScreen
}

// ShouldMoveWindowToKeepInContainer reports whether a resize is allowed to
// reposition the window to honor the fit. Full-screen fits always may; the
// visible-frame fits only when the user preference allows it.
func (f ScreenFitOption) ShouldMoveWindowToKeepInContainer(movePrefEnabled bool) bool {
	switch f {
	case FitLegacyFullScreen, FitNativeFullScreen:
		return true
	case FitKeepInVisible, FitCenterInVisible:
		return movePrefEnabled
	default:
		return false
	}
}

// String returns the token used in serialized geometry strings.
func (f ScreenFitOption) String() string {
	switch f {
	case FitNone:
		return "none"
	case FitKeepInVisible:
		return "keepInVisible"
	case FitCenterInVisible:
		return "centerInVisible"
	case FitLegacyFullScreen:
		return "legacyFullScreen"
	case FitNativeFullScreen:
		return "nativeFullScreen"
	default:
		return "unknown"
	}
}

// ParseScreenFitOption converts a serialized token back to a fit option.
func ParseScreenFitOption(s string) (ScreenFitOption, bool) {
	switch s {
	case "none":
		return FitNone, true
	case "keepInVisible":
		return FitKeepInVisible, true
	case "centerInVisible":
		return FitCenterInVisible, true
	case "legacyFullScreen":
		return FitLegacyFullScreen, true
	case "nativeFullScreen":
		return FitNativeFullScreen, true
	default:
		return 0, false
	}
}
