package geometry

import "testing"

func TestWithResizedOutsideBarsAnchoring(t *testing.T) {
	base := Rect{X: 100, Y: 100, Width: 800, Height: 450}

	tests := []struct {
		name      string
		update    BarUpdate
		wantFrame Rect
	}{
		{
			name:      "top bar grows upward",
			update:    BarUpdate{OutsideTop: Float(40)},
			wantFrame: Rect{X: 100, Y: 100, Width: 800, Height: 490},
		},
		{
			name:      "bottom bar grows downward",
			update:    BarUpdate{OutsideBottom: Float(40)},
			wantFrame: Rect{X: 100, Y: 60, Width: 800, Height: 490},
		},
		{
			name:      "leading bar grows leftward",
			update:    BarUpdate{OutsideLeading: Float(240)},
			wantFrame: Rect{X: -140, Y: 100, Width: 1040, Height: 450},
		},
		{
			name:      "trailing bar grows rightward",
			update:    BarUpdate{OutsideTrailing: Float(240)},
			wantFrame: Rect{X: 100, Y: 100, Width: 1040, Height: 450},
		},
		{
			name:      "top margin grows upward",
			update:    BarUpdate{TopMarginHeight: Float(32)},
			wantFrame: Rect{X: 100, Y: 100, Width: 800, Height: 482},
		},
	}

	for _, tt := range tests {
		g := New(Params{
			WindowFrame: base,
			Mode:        ModeWindowed,
			VideoAspect: 16.0 / 9.0,
		})
		out := g.WithResizedOutsideBars(tt.update)

		if out.WindowFrame != tt.wantFrame {
			t.Errorf("%s: frame = %+v, want %+v", tt.name, out.WindowFrame, tt.wantFrame)
		}
		// The viewport never changes size when only outside bars move.
		if out.ViewportSize() != g.ViewportSize() {
			t.Errorf("%s: viewport %+v changed from %+v", tt.name, out.ViewportSize(), g.ViewportSize())
		}
	}
}

func TestWithResizedOutsideBarsShrink(t *testing.T) {
	g := New(Params{
		WindowFrame: Rect{X: 100, Y: 100, Width: 800, Height: 490},
		Mode:        ModeWindowed,
		OutsideBars: BoxQuad{Top: 40},
		VideoAspect: 16.0 / 9.0,
	})

	out := g.WithResizedOutsideBars(BarUpdate{OutsideTop: Float(0)})

	want := Rect{X: 100, Y: 100, Width: 800, Height: 450}
	if out.WindowFrame != want {
		t.Errorf("frame = %+v, want %+v", out.WindowFrame, want)
	}
	if out.OutsideBars.Top != 0 {
		t.Errorf("top bar = %.0f, want 0", out.OutsideBars.Top)
	}
}

func TestWithResizedBarsReconcilesInsideBars(t *testing.T) {
	g := New(Params{
		WindowFrame: Rect{X: 0, Y: 0, Width: 1280, Height: 720},
		Mode:        ModeWindowed,
		VideoAspect: 1.0,
	})

	out := g.WithResizedBars(BarUpdate{InsideLeading: Float(240)}, ScaleOptions{})

	if out.InsideBars.Leading != 240 {
		t.Errorf("inside leading = %.0f, want 240", out.InsideBars.Leading)
	}
	// Inside bars overlay the viewport; the window does not grow.
	if out.WindowFrame.Size() != g.WindowFrame.Size() {
		t.Errorf("window size changed: %+v -> %+v", g.WindowFrame.Size(), out.WindowFrame.Size())
	}
	// The video shifts clear of the sidebar: leading margin covers it.
	if out.ViewportMargins.Leading < 240 {
		t.Errorf("leading margin = %.0f, want >= sidebar width 240", out.ViewportMargins.Leading)
	}
}

func TestWithResizedBarsNilFieldsKeepCurrent(t *testing.T) {
	g := New(Params{
		WindowFrame: Rect{Width: 840, Height: 520},
		Mode:        ModeWindowed,
		OutsideBars: BoxQuad{Top: 30, Leading: 40},
		VideoAspect: 16.0 / 9.0,
	})

	out := g.WithResizedBars(BarUpdate{}, ScaleOptions{})

	if out.OutsideBars != g.OutsideBars {
		t.Errorf("outside bars changed: %+v -> %+v", g.OutsideBars, out.OutsideBars)
	}
	if out.WindowFrame.Size() != g.WindowFrame.Size() {
		t.Errorf("window size changed: %+v -> %+v", g.WindowFrame.Size(), out.WindowFrame.Size())
	}
}
