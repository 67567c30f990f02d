package geometry

import "math"

// Music ("mini player") mode chrome. The OSC bar sits below the video and
// the playlist, when open, extends below the OSC. The viewport always
// equals the video size exactly in this mode.
const (
	MusicModeOSCHeight         = 72.0
	MusicModeMinPlaylistHeight = 138.0
	MusicModeMaxWidth          = 600.0
)

// MusicModeGeometry is the compact-mode counterpart of WindowGeometry. It
// carries only the state music mode needs; the full geometry is derived on
// demand via ToWindowGeometry.
type MusicModeGeometry struct {
	WindowFrame       Rect
	ScreenID          string
	VideoAspect       float64
	PlaylistHeight    float64
	IsVideoVisible    bool
	IsPlaylistVisible bool
}

// NewMusicModeGeometry builds a music-mode geometry, normalizing the window
// frame so its height exactly matches the visible components: video (if
// shown), OSC bar, and playlist (if shown).
func NewMusicModeGeometry(windowFrame Rect, screenID string, videoAspect float64, playlistHeight float64, videoVisible, playlistVisible bool) MusicModeGeometry {
	m := MusicModeGeometry{
		WindowFrame:       windowFrame,
		ScreenID:          screenID,
		VideoAspect:       videoAspect,
		PlaylistHeight:    playlistHeight,
		IsVideoVisible:    videoVisible,
		IsPlaylistVisible: playlistVisible,
	}
	return m.normalized()
}

// VideoHeight returns the derived video height, zero when hidden.
func (m MusicModeGeometry) VideoHeight() float64 {
	if !m.IsVideoVisible || m.VideoAspect <= 0 {
		return 0
	}
	return math.Round(m.WindowFrame.Width / m.VideoAspect)
}

// VideoSize returns the derived video size; the viewport equals it exactly.
func (m MusicModeGeometry) VideoSize() Size {
	if !m.IsVideoVisible {
		return Size{}
	}
	return Size{Width: m.WindowFrame.Width, Height: m.VideoHeight()}
}

// BottomBarHeight is the OSC plus the playlist when visible.
func (m MusicModeGeometry) BottomBarHeight() float64 {
	h := MusicModeOSCHeight
	if m.IsPlaylistVisible {
		h += m.PlaylistHeight
	}
	return h
}

// normalized clamps the width to the mode's bounds and recomputes the frame
// height from the visible components, keeping the top edge anchored so the
// window shrinks and grows downward the way the mini player does.
func (m MusicModeGeometry) normalized() MusicModeGeometry {
	out := m
	minWidth := ModeMusic.MinVideoSize().Width
	if out.WindowFrame.Width < minWidth {
		out.WindowFrame.Width = minWidth
	}
	if out.WindowFrame.Width > MusicModeMaxWidth {
		out.WindowFrame.Width = MusicModeMaxWidth
	}
	if out.IsPlaylistVisible && out.PlaylistHeight < MusicModeMinPlaylistHeight {
		out.PlaylistHeight = MusicModeMinPlaylistHeight
	}

	oldTop := m.WindowFrame.MaxY()
	height := out.VideoHeight() + out.BottomBarHeight()
	out.WindowFrame.Height = height
	out.WindowFrame.Y = oldTop - height
	return out
}

// WithVideoAspect corrects a cached music-mode geometry for a possibly-stale
// aspect ratio (e.g. after the playing file changed while in another mode).
func (m MusicModeGeometry) WithVideoAspect(aspect float64) MusicModeGeometry {
	if aspect <= 0 || aspect == m.VideoAspect {
		return m
	}
	out := m
	out.VideoAspect = aspect
	return out.normalized()
}

// ToWindowGeometry expands the music-mode geometry to the general form. The
// OSC and playlist become the outside bottom bar and the viewport margins
// are zero by mode invariant.
func (m MusicModeGeometry) ToWindowGeometry() WindowGeometry {
	margins := BoxQuad{}
	aspect := m.VideoAspect
	if aspect <= 0 {
		aspect = 1
	}
	return New(Params{
		WindowFrame:     m.WindowFrame,
		ScreenID:        m.ScreenID,
		FitOption:       FitKeepInVisible,
		Mode:            ModeMusic,
		OutsideBars:     BoxQuad{Bottom: m.BottomBarHeight()},
		ViewportMargins: &margins,
		VideoAspect:     aspect,
	})
}

// MusicModeFromWindowGeometry derives a music-mode geometry from a general
// windowed geometry, typically when first entering music mode.
func MusicModeFromWindowGeometry(g WindowGeometry, playlistHeight float64, videoVisible, playlistVisible bool) MusicModeGeometry {
	return NewMusicModeGeometry(g.WindowFrame, g.ScreenID, g.VideoAspect, playlistHeight, videoVisible, playlistVisible)
}
