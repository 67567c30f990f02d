package anim

// Easing identifies a timing curve by name. The engine never interpolates
// frames itself; the executor (or a test) maps the name to a curve via
// Progress.
type Easing string

const (
	EasingDefault   Easing = ""
	EasingLinear    Easing = "linear"
	EasingEaseIn    Easing = "ease-in"
	EasingEaseOut   Easing = "ease-out"
	EasingEaseInOut Easing = "ease-in-out"
)

// Progress maps a linear progress value t in [0..1] through the curve.
// Unknown names fall back to smoothstep.
func (e Easing) Progress(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EasingLinear:
		return t
	case EasingEaseIn:
		return t * t
	case EasingEaseOut:
		return t * (2.0 - t)
	case EasingEaseInOut:
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	default:
		return t * t * (3.0 - 2.0*t)
	}
}
