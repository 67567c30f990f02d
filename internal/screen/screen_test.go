package screen

import (
	"encoding/json"
	"testing"

	"github.com/yourusername/playwin/internal/geometry"
)

func notchedScreen() Screen {
	return Screen{
		ID:                  "built-in",
		Frame:               geometry.Rect{Width: 3024, Height: 1964},
		VisibleFrame:        geometry.Rect{Y: 0, Width: 3024, Height: 1890},
		CameraHousingHeight: 74,
		IsMain:              true,
	}
}

func TestFrameWithoutCameraHousing(t *testing.T) {
	sc := notchedScreen()

	got := sc.FrameWithoutCameraHousing()
	want := geometry.Rect{Width: 3024, Height: 1890}
	if got != want {
		t.Errorf("FrameWithoutCameraHousing() = %+v, want %+v", got, want)
	}

	flat := Screen{Frame: geometry.Rect{Width: 1920, Height: 1080}}
	if flat.FrameWithoutCameraHousing() != flat.Frame {
		t.Error("screen without a notch should keep its full frame")
	}
}

func TestContainerFramePerFitOption(t *testing.T) {
	sc := notchedScreen()

	tests := []struct {
		fit  geometry.ScreenFitOption
		want geometry.Rect
	}{
		{geometry.FitLegacyFullScreen, sc.Frame},
		{geometry.FitNativeFullScreen, sc.FrameWithoutCameraHousing()},
		{geometry.FitKeepInVisible, sc.VisibleFrame},
		{geometry.FitCenterInVisible, sc.VisibleFrame},
		{geometry.FitNone, sc.VisibleFrame},
	}

	for _, tt := range tests {
		if got := ContainerFrame(sc, tt.fit); got != tt.want {
			t.Errorf("ContainerFrame(%v) = %+v, want %+v", tt.fit, got, tt.want)
		}
	}
}

func TestNewSetMainSelection(t *testing.T) {
	ext := Screen{ID: "external", Frame: geometry.Rect{X: 3024, Width: 2560, Height: 1440}}
	builtin := notchedScreen()

	s := NewSet(ext, builtin)

	main, ok := s.Main()
	if !ok || main.ID != "built-in" {
		t.Errorf("Main() = %q, %v; want the IsMain screen", main.ID, ok)
	}

	if _, ok := s.Screen("external"); !ok {
		t.Error("Screen(external) not found")
	}
	if _, ok := s.Screen("ghost"); ok {
		t.Error("Screen(ghost) should not resolve")
	}

	// Without an IsMain flag the first screen wins.
	s2 := NewSet(ext, Screen{ID: "other", Frame: geometry.Rect{Width: 1920, Height: 1080}})
	if main, ok := s2.Main(); !ok || main.ID != "external" {
		t.Errorf("Main() = %q, want first screen when none flagged", main.ID)
	}
}

func TestSetContainerFrame(t *testing.T) {
	s := NewSet(notchedScreen())

	got, ok := s.ContainerFrame("built-in", geometry.FitNativeFullScreen)
	if !ok || got != notchedScreen().FrameWithoutCameraHousing() {
		t.Errorf("ContainerFrame = %+v, %v", got, ok)
	}
	if _, ok := s.ContainerFrame("ghost", geometry.FitKeepInVisible); ok {
		t.Error("missing screen should report ok=false")
	}
}

func TestParseSnapshot(t *testing.T) {
	payload := `{
		"displays": [
			{
				"id": "built-in",
				"frame": {"x": 0, "y": 0, "width": 3024, "height": 1964},
				"visibleFrame": {"x": 0, "y": 0, "width": 3024, "height": 1890},
				"cameraHousingHeight": 74,
				"isMain": true
			},
			{
				"id": "external",
				"frame": {"x": 3024, "y": 0, "width": 2560, "height": 1440}
			},
			{"frame": {"x": 0, "y": 0, "width": 100, "height": 100}},
			{"id": "degenerate", "frame": {"x": 0, "y": 0, "width": 0, "height": 100}}
		]
	}`
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatal(err)
	}

	s, err := ParseSnapshot(raw)
	if err != nil {
		t.Fatal(err)
	}

	main, ok := s.Main()
	if !ok || main.ID != "built-in" || main.CameraHousingHeight != 74 {
		t.Errorf("main = %+v, %v", main, ok)
	}

	ext, ok := s.Screen("external")
	if !ok {
		t.Fatal("external screen dropped")
	}
	// A display without a visibleFrame falls back to its frame.
	if ext.VisibleFrame != ext.Frame {
		t.Errorf("visible frame = %+v, want fallback to frame %+v", ext.VisibleFrame, ext.Frame)
	}

	// The ID-less and degenerate displays are skipped.
	if _, ok := s.Screen("degenerate"); ok {
		t.Error("degenerate display should be skipped")
	}
}

func TestParseSnapshotErrors(t *testing.T) {
	if _, err := ParseSnapshot(map[string]interface{}{}); err == nil {
		t.Error("empty snapshot should fail")
	}
	raw := map[string]interface{}{
		"displays": []interface{}{map[string]interface{}{"id": "x"}},
	}
	if _, err := ParseSnapshot(raw); err == nil {
		t.Error("snapshot with only malformed displays should fail")
	}
}
