package geometry

import (
	"math"
	"testing"
)

func cropTestGeometry() WindowGeometry {
	return New(Params{
		WindowFrame: Rect{X: 100, Y: 100, Width: 800, Height: 450},
		ScreenID:    "main",
		Mode:        ModeWindowed,
		VideoAspect: 16.0 / 9.0,
	})
}

func TestCropVideo(t *testing.T) {
	g := cropTestGeometry()

	// Crop the left half of a 1920x1080 source: the window loses the
	// removed width at display scale (800/1920 of 960 = 400).
	unscaled := Size{Width: 1920, Height: 1080}
	cropbox := Rect{X: 0, Y: 0, Width: 960, Height: 1080}

	out := g.CropVideo(unscaled, cropbox)

	wantFrame := Rect{X: 100, Y: 100, Width: 400, Height: 450}
	if out.WindowFrame != wantFrame {
		t.Errorf("frame = %+v, want %+v", out.WindowFrame, wantFrame)
	}
	wantAspect := 960.0 / 1080.0
	if math.Abs(out.VideoAspect-wantAspect) > 0.001 {
		t.Errorf("aspect = %.4f, want %.4f", out.VideoAspect, wantAspect)
	}
	if got := out.VideoSize(); got != (Size{Width: 400, Height: 450}) {
		t.Errorf("VideoSize() = %+v, want 400x450", got)
	}
}

func TestCropVideoRejectsBadCropbox(t *testing.T) {
	g := cropTestGeometry()
	unscaled := Size{Width: 1920, Height: 1080}

	tests := []struct {
		name    string
		cropbox Rect
	}{
		{"outside right edge", Rect{X: 2000, Y: 0, Width: 100, Height: 100}},
		{"outside top edge", Rect{X: 0, Y: 1200, Width: 100, Height: 100}},
		{"entirely left of video", Rect{X: -500, Y: 0, Width: 100, Height: 100}},
		{"zero width", Rect{X: 0, Y: 0, Width: 0, Height: 100}},
		{"zero height", Rect{X: 0, Y: 0, Width: 100, Height: 0}},
	}

	for _, tt := range tests {
		out := g.CropVideo(unscaled, tt.cropbox)
		// A rejected crop returns the geometry unchanged.
		if out.WindowFrame != g.WindowFrame || out.VideoAspect != g.VideoAspect {
			t.Errorf("%s: geometry changed on invalid crop: %+v", tt.name, out.WindowFrame)
		}
	}
}

func TestCropVideoDegenerateVideoIsNoop(t *testing.T) {
	g := cropTestGeometry()
	out := g.CropVideo(Size{}, Rect{X: 0, Y: 0, Width: 100, Height: 100})
	if out.WindowFrame != g.WindowFrame {
		t.Errorf("geometry changed on degenerate source size")
	}
}

func TestCropUncropRoundTrip(t *testing.T) {
	g := cropTestGeometry()
	unscaled := Size{Width: 1920, Height: 1080}
	cropbox := Rect{X: 0, Y: 0, Width: 960, Height: 1080}
	scale := g.VideoSize().Width / unscaled.Width

	cropped := g.CropVideo(unscaled, cropbox)
	restored := cropped.UncropVideo(unscaled, cropbox, scale, ScaleOptions{})

	if !restored.WindowFrame.ApproximatelyEqual(g.WindowFrame, 1.0) {
		t.Errorf("frame after round trip = %+v, want %+v", restored.WindowFrame, g.WindowFrame)
	}
	if math.Abs(restored.VideoAspect-g.VideoAspect) > 0.001 {
		t.Errorf("aspect after round trip = %.4f, want %.4f", restored.VideoAspect, g.VideoAspect)
	}
}

func TestUncropVideoRejectsDegenerateInputs(t *testing.T) {
	g := cropTestGeometry()

	tests := []struct {
		name    string
		full    Size
		cropbox Rect
		scale   float64
	}{
		{"zero full size", Size{}, Rect{Width: 100, Height: 100}, 1},
		{"zero cropbox", Size{Width: 1920, Height: 1080}, Rect{}, 1},
		{"zero scale", Size{Width: 1920, Height: 1080}, Rect{Width: 100, Height: 100}, 0},
	}

	for _, tt := range tests {
		out := g.UncropVideo(tt.full, tt.cropbox, tt.scale, ScaleOptions{})
		if out.WindowFrame != g.WindowFrame {
			t.Errorf("%s: geometry changed on degenerate uncrop", tt.name)
		}
	}
}
