package geometry

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/yourusername/playwin/internal/logging"
)

// GeometryToken is one axis value from an mpv --geometry spec.
type GeometryToken struct {
	Value     float64
	IsPercent bool
	// FromFarEdge is true for '-' signed offsets: the offset is measured
	// from the container's far edge (right / bottom).
	FromFarEdge bool
}

// MPVGeometryDef is a parsed mpv geometry spec of the conventional
// "W[xH][+-X+-Y]" window-geometry mini-language. Any field may be nil.
type MPVGeometryDef struct {
	W *GeometryToken
	H *GeometryToken
	X *GeometryToken
	Y *GeometryToken
}

// HasSize returns true if at least one dimension was specified.
func (d MPVGeometryDef) HasSize() bool {
	return d.W != nil || d.H != nil
}

// HasPosition returns true if at least one offset was specified.
func (d MPVGeometryDef) HasPosition() bool {
	return d.X != nil || d.Y != nil
}

var mpvGeometryRe = regexp.MustCompile(
	`^(?:(\d+)(%)?)?(?:[xX](\d+)(%)?)?(?:([+-])(\d+)(%)?(?:([+-])(\d+)(%)?)?)?$`)

// ParseMPVGeometry parses an mpv geometry string such as "50%x50%",
// "800x600+100-40", or "+10+10". An empty or malformed string is a parse
// error; the caller falls back to defaults.
func ParseMPVGeometry(s string) (*MPVGeometryDef, error) {
	if s == "" {
		return nil, fmt.Errorf("empty geometry string")
	}
	m := mpvGeometryRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("malformed geometry string %q", s)
	}

	def := &MPVGeometryDef{}
	if m[1] != "" {
		v, _ := strconv.ParseFloat(m[1], 64)
		def.W = &GeometryToken{Value: v, IsPercent: m[2] == "%"}
	}
	if m[3] != "" {
		v, _ := strconv.ParseFloat(m[3], 64)
		def.H = &GeometryToken{Value: v, IsPercent: m[4] == "%"}
	}
	if m[5] != "" {
		v, _ := strconv.ParseFloat(m[6], 64)
		def.X = &GeometryToken{Value: v, IsPercent: m[7] == "%", FromFarEdge: m[5] == "-"}
	}
	if m[8] != "" {
		v, _ := strconv.ParseFloat(m[9], 64)
		def.Y = &GeometryToken{Value: v, IsPercent: m[10] == "%", FromFarEdge: m[8] == "-"}
	}
	if !def.HasSize() && !def.HasPosition() {
		return nil, fmt.Errorf("geometry string %q specifies nothing", s)
	}
	return def, nil
}

// ApplyMPVGeometry produces a geometry placed and sized per the parsed spec.
// Width and height are mutually exclusive: when both are given width wins
// and height derives from the video aspect. Offsets anchor the near corner
// for '+' signs and the far corner for '-'. A spec with a size but no
// position centers the window in the container. Without a resolvable
// container the size is applied unplaced.
func (g WindowGeometry) ApplyMPVGeometry(def MPVGeometryDef, desiredVideoSize Size, opt ScaleOptions) WindowGeometry {
	container, haveContainer := g.containerFrame(opt.Screens)

	// Resolve the requested video size.
	video := desiredVideoSize
	switch {
	case def.W != nil:
		if def.H != nil {
			logging.Warn().Msg("mpv geometry: both W and H specified, using W")
		}
		w := def.W.Value
		if def.W.IsPercent && haveContainer {
			w = container.Width * def.W.Value / 100
		}
		video = Size{Width: w, Height: w / g.VideoAspect}
	case def.H != nil:
		h := def.H.Value
		if def.H.IsPercent && haveContainer {
			h = container.Height * def.H.Value / 100
		}
		video = Size{Width: h * g.VideoAspect, Height: h}
	}

	out := g.ScaleVideo(video, opt)
	if !haveContainer {
		return out
	}

	frame := out.WindowFrame
	if def.X != nil {
		offset := def.X.Value
		if def.X.IsPercent {
			offset = container.Width * def.X.Value / 100
		}
		if def.X.FromFarEdge {
			frame.X = container.MaxX() - offset - frame.Width
		} else {
			frame.X = container.X + offset
		}
	}
	if def.Y != nil {
		offset := def.Y.Value
		if def.Y.IsPercent {
			offset = container.Height * def.Y.Value / 100
		}
		// The conventional geometry language measures '+' Y offsets
		// from the top edge.
		if def.Y.FromFarEdge {
			frame.Y = container.Y + offset
		} else {
			frame.Y = container.MaxY() - offset - frame.Height
		}
	}
	if !def.HasPosition() && def.HasSize() {
		frame = frame.CenteredIn(container)
	}

	p := out.params()
	p.WindowFrame = frame
	return New(p)
}
