package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Geometries persist across launches as flat, versioned, comma-separated
// token strings. Parsing is strict: any token-count, prefix, or version
// mismatch rejects the whole string and the caller falls back to defaults.
const (
	windowGeometryPrefix  = "wingeo"
	musicGeometryPrefix   = "musicgeo"
	geometrySerialVersion = "v1"

	windowGeometryTokenCount = 23
	musicGeometryTokenCount  = 11
)

// Serialize encodes the geometry as a versioned CSV token string.
func (g WindowGeometry) Serialize() string {
	tokens := []string{
		windowGeometryPrefix,
		geometrySerialVersion,
		g.Mode.String(),
		g.FitOption.String(),
		g.ScreenID,
		formatFloat(g.WindowFrame.X),
		formatFloat(g.WindowFrame.Y),
		formatFloat(g.WindowFrame.Width),
		formatFloat(g.WindowFrame.Height),
		formatFloat(g.TopMarginHeight),
		formatFloat(g.OutsideBars.Top),
		formatFloat(g.OutsideBars.Trailing),
		formatFloat(g.OutsideBars.Bottom),
		formatFloat(g.OutsideBars.Leading),
		formatFloat(g.InsideBars.Top),
		formatFloat(g.InsideBars.Trailing),
		formatFloat(g.InsideBars.Bottom),
		formatFloat(g.InsideBars.Leading),
		formatFloat(g.ViewportMargins.Top),
		formatFloat(g.ViewportMargins.Trailing),
		formatFloat(g.ViewportMargins.Bottom),
		formatFloat(g.ViewportMargins.Leading),
		formatFloat(g.VideoAspect),
	}
	return strings.Join(tokens, ",")
}

// DeserializeWindowGeometry parses a string produced by Serialize.
func DeserializeWindowGeometry(s string) (*WindowGeometry, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != windowGeometryTokenCount {
		return nil, fmt.Errorf("window geometry: expected %d tokens, got %d", windowGeometryTokenCount, len(tokens))
	}
	if tokens[0] != windowGeometryPrefix {
		return nil, fmt.Errorf("window geometry: bad prefix %q", tokens[0])
	}
	if tokens[1] != geometrySerialVersion {
		return nil, fmt.Errorf("window geometry: unsupported version %q", tokens[1])
	}
	mode, ok := ParseMode(tokens[2])
	if !ok {
		return nil, fmt.Errorf("window geometry: unknown mode %q", tokens[2])
	}
	fit, ok := ParseScreenFitOption(tokens[3])
	if !ok {
		return nil, fmt.Errorf("window geometry: unknown fit option %q", tokens[3])
	}

	nums, err := parseFloats(tokens[5:])
	if err != nil {
		return nil, fmt.Errorf("window geometry: %w", err)
	}

	margins := BoxQuad{Top: nums[13], Trailing: nums[14], Bottom: nums[15], Leading: nums[16]}
	outsideBars := BoxQuad{Top: nums[5], Trailing: nums[6], Bottom: nums[7], Leading: nums[8]}
	insideBars := BoxQuad{Top: nums[9], Trailing: nums[10], Bottom: nums[11], Leading: nums[12]}
	if margins.HasNegative() || outsideBars.HasNegative() || insideBars.HasNegative() ||
		nums[4] < 0 || nums[17] <= 0 {
		return nil, fmt.Errorf("window geometry: out-of-range values")
	}

	g := New(Params{
		WindowFrame:     Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]},
		ScreenID:        tokens[4],
		FitOption:       fit,
		Mode:            mode,
		TopMarginHeight: nums[4],
		OutsideBars:     outsideBars,
		InsideBars:      insideBars,
		ViewportMargins: &margins,
		VideoAspect:     nums[17],
	})
	return &g, nil
}

// Serialize encodes the music-mode geometry as a versioned CSV token string.
func (m MusicModeGeometry) Serialize() string {
	tokens := []string{
		musicGeometryPrefix,
		geometrySerialVersion,
		m.ScreenID,
		formatFloat(m.WindowFrame.X),
		formatFloat(m.WindowFrame.Y),
		formatFloat(m.WindowFrame.Width),
		formatFloat(m.WindowFrame.Height),
		formatFloat(m.PlaylistHeight),
		strconv.FormatBool(m.IsVideoVisible),
		strconv.FormatBool(m.IsPlaylistVisible),
		formatFloat(m.VideoAspect),
	}
	return strings.Join(tokens, ",")
}

// DeserializeMusicModeGeometry parses a string produced by
// MusicModeGeometry.Serialize.
func DeserializeMusicModeGeometry(s string) (*MusicModeGeometry, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != musicGeometryTokenCount {
		return nil, fmt.Errorf("music geometry: expected %d tokens, got %d", musicGeometryTokenCount, len(tokens))
	}
	if tokens[0] != musicGeometryPrefix {
		return nil, fmt.Errorf("music geometry: bad prefix %q", tokens[0])
	}
	if tokens[1] != geometrySerialVersion {
		return nil, fmt.Errorf("music geometry: unsupported version %q", tokens[1])
	}

	nums, err := parseFloats([]string{tokens[3], tokens[4], tokens[5], tokens[6], tokens[7], tokens[10]})
	if err != nil {
		return nil, fmt.Errorf("music geometry: %w", err)
	}
	videoVisible, err := strconv.ParseBool(tokens[8])
	if err != nil {
		return nil, fmt.Errorf("music geometry: bad bool %q", tokens[8])
	}
	playlistVisible, err := strconv.ParseBool(tokens[9])
	if err != nil {
		return nil, fmt.Errorf("music geometry: bad bool %q", tokens[9])
	}
	if nums[5] <= 0 || nums[4] < 0 {
		return nil, fmt.Errorf("music geometry: out-of-range values")
	}

	m := MusicModeGeometry{
		WindowFrame:       Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]},
		ScreenID:          tokens[2],
		VideoAspect:       nums[5],
		PlaylistHeight:    nums[4],
		IsVideoVisible:    videoVisible,
		IsPlaylistVisible: playlistVisible,
	}
	return &m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloats(tokens []string) ([]float64, error) {
	out := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric token %q", t)
		}
		out[i] = v
	}
	return out, nil
}
