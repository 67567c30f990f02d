package geometry

import (
	"math"
	"testing"
)

func TestComputeVideoSize(t *testing.T) {
	tests := []struct {
		name     string
		aspect   float64
		viewport Size
		margins  BoxQuad
		mode     Mode
		expected Size
	}{
		{
			name:     "exact 16:9 fit",
			aspect:   16.0 / 9.0,
			viewport: Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: Size{Width: 800, Height: 450},
		},
		{
			name:     "16:9 in 4:3 viewport letterboxes",
			aspect:   16.0 / 9.0,
			viewport: Size{Width: 800, Height: 600},
			mode:     ModeWindowed,
			expected: Size{Width: 800, Height: 450},
		},
		{
			name:     "tall video pillarboxes",
			aspect:   0.5,
			viewport: Size{Width: 800, Height: 600},
			mode:     ModeWindowed,
			expected: Size{Width: 300, Height: 600},
		},
		{
			name:     "near-fit height snaps to viewport",
			aspect:   1.0,
			viewport: Size{Width: 100, Height: 100.5},
			mode:     ModeWindowed,
			expected: Size{Width: 100, Height: 100.5},
		},
		{
			name:     "margins shrink the usable area",
			aspect:   16.0 / 9.0,
			viewport: Size{Width: 848, Height: 498},
			margins:  BoxQuad{Top: 24, Trailing: 24, Bottom: 24, Leading: 24},
			mode:     ModeWindowedInteractive,
			expected: Size{Width: 800, Height: 450},
		},
		{
			name:     "music mode ignores margins",
			aspect:   16.0 / 9.0,
			viewport: Size{Width: 800, Height: 450},
			margins:  BoxQuad{Top: 24, Trailing: 24, Bottom: 24, Leading: 24},
			mode:     ModeMusic,
			expected: Size{Width: 800, Height: 450},
		},
		{
			name:     "degenerate viewport yields zero",
			aspect:   16.0 / 9.0,
			viewport: Size{Width: 0, Height: 450},
			mode:     ModeWindowed,
			expected: Size{},
		},
		{
			name:     "zero aspect yields zero",
			aspect:   0,
			viewport: Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: Size{},
		},
	}

	for _, tt := range tests {
		got := ComputeVideoSize(tt.aspect, tt.viewport, tt.margins, tt.mode)
		if got != tt.expected {
			t.Errorf("%s: ComputeVideoSize() = %+v, want %+v", tt.name, got, tt.expected)
		}
	}
}

func TestComputeVideoSizePreservesAspect(t *testing.T) {
	aspects := []float64{16.0 / 9.0, 4.0 / 3.0, 2.35, 1.0, 9.0 / 16.0}
	viewports := []Size{
		{Width: 800, Height: 600},
		{Width: 1920, Height: 1080},
		{Width: 500, Height: 900},
	}

	for _, aspect := range aspects {
		for _, vp := range viewports {
			video := ComputeVideoSize(aspect, vp, BoxQuad{}, ModeWindowed)
			if video.IsZero() {
				t.Errorf("aspect %.3f viewport %+v: unexpected zero video", aspect, vp)
				continue
			}
			if video.Width > vp.Width+0.001 || video.Height > vp.Height+0.001 {
				t.Errorf("aspect %.3f viewport %+v: video %+v exceeds viewport", aspect, vp, video)
			}
			// Rounding and snapping may distort the ratio by up to a pixel
			// in the derived dimension.
			gotAspect := video.Aspect()
			tolerance := aspect / math.Min(video.Width, video.Height) * 2
			if math.Abs(gotAspect-aspect) > tolerance {
				t.Errorf("aspect %.3f viewport %+v: video aspect %.4f drifted too far", aspect, vp, gotAspect)
			}
		}
	}
}

func TestComputeBestViewportMargins(t *testing.T) {
	tests := []struct {
		name     string
		viewport Size
		video    Size
		inside   BoxQuad
		mode     Mode
		expected BoxQuad
	}{
		{
			name:     "no slack",
			viewport: Size{Width: 800, Height: 450},
			video:    Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: BoxQuad{},
		},
		{
			name:     "vertical slack splits evenly",
			viewport: Size{Width: 800, Height: 600},
			video:    Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: BoxQuad{Top: 75, Bottom: 75},
		},
		{
			name:     "odd vertical slack floors top",
			viewport: Size{Width: 800, Height: 451},
			video:    Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: BoxQuad{Top: 0, Bottom: 1},
		},
		{
			name:     "horizontal slack centers without sidebars",
			viewport: Size{Width: 1000, Height: 450},
			video:    Size{Width: 800, Height: 450},
			mode:     ModeWindowed,
			expected: BoxQuad{Leading: 100, Trailing: 100},
		},
		{
			name:     "leading sidebar shifts video clear of it",
			viewport: Size{Width: 1280, Height: 720},
			video:    Size{Width: 720, Height: 720},
			inside:   BoxQuad{Leading: 240},
			mode:     ModeWindowed,
			expected: BoxQuad{Leading: 400, Trailing: 160},
		},
		{
			name:     "trailing sidebar centers video in remaining space",
			viewport: Size{Width: 1280, Height: 720},
			video:    Size{Width: 720, Height: 720},
			inside:   BoxQuad{Trailing: 240},
			mode:     ModeWindowed,
			expected: BoxQuad{Leading: 160, Trailing: 400},
		},
		{
			name:     "over-constrained splits slack proportionally",
			viewport: Size{Width: 1000, Height: 720},
			video:    Size{Width: 720, Height: 720},
			inside:   BoxQuad{Leading: 240, Trailing: 240},
			mode:     ModeWindowed,
			expected: BoxQuad{Leading: 140, Trailing: 140},
		},
		{
			name:     "full screen ignores sidebars and centers",
			viewport: Size{Width: 1280, Height: 720},
			video:    Size{Width: 720, Height: 720},
			inside:   BoxQuad{Leading: 240},
			mode:     ModeFullScreen,
			expected: BoxQuad{Leading: 280, Trailing: 280},
		},
		{
			name:     "music mode always zero",
			viewport: Size{Width: 800, Height: 600},
			video:    Size{Width: 800, Height: 450},
			mode:     ModeMusic,
			expected: BoxQuad{},
		},
	}

	for _, tt := range tests {
		got := computeBestViewportMargins(tt.viewport, tt.video, tt.inside, tt.mode)
		if got != tt.expected {
			t.Errorf("%s: computeBestViewportMargins() = %+v, want %+v", tt.name, got, tt.expected)
		}
		if got.HasNegative() {
			t.Errorf("%s: negative margin in %+v", tt.name, got)
		}
		if tt.mode != ModeMusic {
			wantW := tt.viewport.Width - tt.video.Width
			if wantW < 0 {
				wantW = 0
			}
			if got.TotalWidth() != wantW {
				t.Errorf("%s: margins total width %.1f, want %.1f", tt.name, got.TotalWidth(), wantW)
			}
		}
	}
}

func TestNewDerivesMargins(t *testing.T) {
	g := New(Params{
		WindowFrame: Rect{X: 0, Y: 0, Width: 800, Height: 600},
		ScreenID:    "main",
		Mode:        ModeWindowed,
		VideoAspect: 16.0 / 9.0,
	})

	if got := g.ViewportSize(); got != (Size{Width: 800, Height: 600}) {
		t.Errorf("ViewportSize() = %+v, want 800x600", got)
	}
	if got := g.VideoSize(); got != (Size{Width: 800, Height: 450}) {
		t.Errorf("VideoSize() = %+v, want 800x450", got)
	}
	want := BoxQuad{Top: 75, Bottom: 75}
	if g.ViewportMargins != want {
		t.Errorf("ViewportMargins = %+v, want %+v", g.ViewportMargins, want)
	}
}

func TestNewRespectsSuppliedMargins(t *testing.T) {
	margins := BoxQuad{Top: 100, Bottom: 50}
	g := New(Params{
		WindowFrame:     Rect{Width: 800, Height: 600},
		Mode:            ModeWindowed,
		ViewportMargins: &margins,
		VideoAspect:     16.0 / 9.0,
	})
	if g.ViewportMargins != margins {
		t.Errorf("ViewportMargins = %+v, want the supplied %+v", g.ViewportMargins, margins)
	}
	if got := g.VideoSize(); got != (Size{Width: 800, Height: 450}) {
		t.Errorf("VideoSize() = %+v, want 800x450", got)
	}
}

func TestNewPanicsOnBadInput(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"negative outside bar", Params{OutsideBars: BoxQuad{Top: -1}, VideoAspect: 1}},
		{"negative inside bar", Params{InsideBars: BoxQuad{Leading: -5}, VideoAspect: 1}},
		{"negative top margin", Params{TopMarginHeight: -1, VideoAspect: 1}},
		{"zero aspect", Params{VideoAspect: 0}},
	}

	for _, tt := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: New() did not panic", tt.name)
				}
			}()
			New(tt.p)
		}()
	}
}

func TestViewportAndVideoFrames(t *testing.T) {
	g := New(Params{
		WindowFrame: Rect{X: 100, Y: 200, Width: 840, Height: 560},
		Mode:        ModeWindowed,
		OutsideBars: BoxQuad{Top: 30, Bottom: 80, Leading: 40},
		VideoAspect: 16.0 / 9.0,
	})

	viewport := g.ViewportFrameInWindow()
	wantViewport := Rect{X: 40, Y: 80, Width: 800, Height: 450}
	if viewport != wantViewport {
		t.Errorf("ViewportFrameInWindow() = %+v, want %+v", viewport, wantViewport)
	}

	video := g.VideoFrameInWindow()
	if video.Width != 800 || video.Height != 450 {
		t.Errorf("VideoFrameInWindow() size = %.0fx%.0f, want 800x450", video.Width, video.Height)
	}
	// Video must sit inside the viewport.
	if video.X < viewport.X || video.Y < viewport.Y ||
		video.MaxX() > viewport.MaxX()+0.001 || video.MaxY() > viewport.MaxY()+0.001 {
		t.Errorf("video %+v escapes viewport %+v", video, viewport)
	}
}
