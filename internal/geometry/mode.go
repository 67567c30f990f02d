package geometry

// Mode identifies which mutually-exclusive window layout mode a geometry
// belongs to.
type Mode int

const (
	ModeWindowed Mode = iota
	ModeWindowedInteractive
	ModeFullScreen
	ModeFullScreenInteractive
	ModeMusic
)

// IsFullScreen returns true for both full-screen modes.
func (m Mode) IsFullScreen() bool {
	return m == ModeFullScreen || m == ModeFullScreenInteractive
}

// IsInteractive returns true for both crop-selection modes.
func (m Mode) IsInteractive() bool {
	return m == ModeWindowedInteractive || m == ModeFullScreenInteractive
}

// IsWindowed returns true for the two windowed (non-fullscreen,
// non-music) modes.
func (m Mode) IsWindowed() bool {
	return m == ModeWindowed || m == ModeWindowedInteractive
}

// String returns the token used in serialized geometry strings.
func (m Mode) String() string {
	switch m {
	case ModeWindowed:
		return "windowed"
	case ModeWindowedInteractive:
		return "windowedInteractive"
	case ModeFullScreen:
		return "fullScreen"
	case ModeFullScreenInteractive:
		return "fullScreenInteractive"
	case ModeMusic:
		return "musicMode"
	default:
		return "unknown"
	}
}

// ParseMode converts a serialized token back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "windowed":
		return ModeWindowed, true
	case "windowedInteractive":
		return ModeWindowedInteractive, true
	case "fullScreen":
		return ModeFullScreen, true
	case "fullScreenInteractive":
		return ModeFullScreenInteractive, true
	case "musicMode":
		return ModeMusic, true
	default:
		return 0, false
	}
}

// videoSizeSnapThreshold is how close (in pixels) a derived video dimension
// must be to the usable viewport dimension before it is snapped to it
// exactly instead of rounded. Keeps repeated derivations from drifting by
// hairline amounts.
const videoSizeSnapThreshold = 1.0

// Fixed chrome thicknesses for the interactive crop mode. The top bar hosts
// the mode title, the bottom bar the crop controls, and the viewport margins
// keep the drag handles clear of the video edges.
const (
	InteractiveModeTopBarHeight    = 24.0
	InteractiveModeBottomBarHeight = 68.0
)

// InteractiveModeMargins is the fixed viewport margin box enforced while in
// interactive mode.
var InteractiveModeMargins = BoxQuad{Top: 24, Trailing: 24, Bottom: 24, Leading: 24}

// modeParams centralizes the per-mode sizing policy so that every geometry
// operation consults one table instead of repeating mode switches.
type modeParams struct {
	minVideoSize       Size
	minViewportMargins BoxQuad
	// forceLockViewport makes the viewport track the video size exactly
	// regardless of the user preference.
	forceLockViewport bool
	// minWindowWidth is an additional window-level floor beyond what the
	// minimum video size implies.
	minWindowWidth float64
}

var modeTable = map[Mode]modeParams{
	ModeWindowed: {
		minVideoSize: Size{Width: 285, Height: 120},
	},
	ModeFullScreen: {
		minVideoSize: Size{Width: 285, Height: 120},
	},
	ModeWindowedInteractive: {
		minVideoSize:       Size{Width: 200, Height: 112},
		minViewportMargins: InteractiveModeMargins,
		forceLockViewport:  true,
		minWindowWidth:     510,
	},
	ModeFullScreenInteractive: {
		minVideoSize:       Size{Width: 200, Height: 112},
		minViewportMargins: InteractiveModeMargins,
	},
	ModeMusic: {
		minVideoSize:      Size{Width: 280, Height: 120},
		forceLockViewport: true,
	},
}

// MinVideoSize returns the smallest video size permitted in this mode.
func (m Mode) MinVideoSize() Size {
	return modeTable[m].minVideoSize
}

// MinViewportMargins returns the fixed minimum viewport margins for this
// mode. Zero for every mode except the interactive ones.
func (m Mode) MinViewportMargins() BoxQuad {
	return modeTable[m].minViewportMargins
}

// LocksViewportToVideoSize reports whether this mode forces the viewport to
// exactly fit the video plus the mode's minimum margins.
func (m Mode) LocksViewportToVideoSize() bool {
	return modeTable[m].forceLockViewport
}

// MinWindowWidth returns the mode's window-level width floor (0 if none).
func (m Mode) MinWindowWidth() float64 {
	return modeTable[m].minWindowWidth
}

// MinViewportSize returns the smallest viewport this mode allows: the
// minimum video size plus the mode's fixed margins, widened further if the
// given inside bars need room.
func (m Mode) MinViewportSize(insideBars BoxQuad) Size {
	min := m.MinVideoSize()
	margins := m.MinViewportMargins()
	out := Size{
		Width:  min.Width + margins.TotalWidth(),
		Height: min.Height + margins.TotalHeight(),
	}
	// Inside sidebars overlay the viewport; the viewport must be at least
	// wide enough to show them next to the minimum-width video.
	if w := min.Width + insideBars.TotalWidth(); w > out.Width {
		out.Width = w
	}
	return out
}
