package controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/playwin/internal/geometry"
)

func TestSaveAndRestoreRoundTrip(t *testing.T) {
	c := testCoordinator(t)
	c.RememberIntendedViewportSize(geometry.Size{Width: 1280, Height: 720})
	if _, err := c.Transition(c.CurrentLayout().Spec.WithMode(geometry.ModeWindowedInteractive)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "state.json")
	if err := c.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	ps, err := LoadStateFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if ps == nil {
		t.Fatal("state file written but not loaded")
	}
	if ps.Version != StateVersion {
		t.Errorf("version = %d, want %d", ps.Version, StateVersion)
	}
	if ps.Mode != "windowedInteractive" {
		t.Errorf("mode = %q, want windowedInteractive", ps.Mode)
	}

	fresh := testCoordinator(t)
	if err := fresh.Restore(ps); err != nil {
		t.Fatal(err)
	}

	if fresh.WindowedGeometry() != c.WindowedGeometry() {
		t.Errorf("windowed after restore = %+v, want %+v",
			fresh.WindowedGeometry(), c.WindowedGeometry())
	}
	if fresh.MusicGeometry() != c.MusicGeometry() {
		t.Errorf("music after restore = %+v, want %+v",
			fresh.MusicGeometry(), c.MusicGeometry())
	}
	gotI, ok := fresh.InteractiveGeometry()
	wantI, _ := c.InteractiveGeometry()
	if !ok || gotI != wantI {
		t.Errorf("interactive after restore = %+v, %v; want %+v", gotI, ok, wantI)
	}
	intended, ok := fresh.IntendedViewportSize()
	if !ok || intended != (geometry.Size{Width: 1280, Height: 720}) {
		t.Errorf("intended viewport = %+v, %v", intended, ok)
	}
	if got := fresh.CurrentLayout().Spec.Mode; got != geometry.ModeWindowedInteractive {
		t.Errorf("restored mode = %v, want windowedInteractive", got)
	}
}

func TestRestoreUnknownModeKeepsCurrentLayout(t *testing.T) {
	c := testCoordinator(t)

	ps := &PersistedState{Version: StateVersion, Mode: "sideways"}
	if err := c.Restore(ps); err == nil {
		t.Error("unknown mode should surface an error")
	}
	if c.CurrentLayout().Spec.Mode != geometry.ModeWindowed {
		t.Errorf("mode = %v, want untouched windowed", c.CurrentLayout().Spec.Mode)
	}
}

func TestLoadStateFromMissingFile(t *testing.T) {
	ps, err := LoadStateFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing state file should not error: %v", err)
	}
	if ps != nil {
		t.Errorf("ps = %+v, want nil for missing file", ps)
	}
}

func TestLoadStateFromRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStateFrom(path); err == nil {
		t.Error("newer state version should be rejected")
	}
}

func TestLoadStateFromRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStateFrom(path); err == nil {
		t.Error("malformed state file should be rejected")
	}
}

func TestRestoreSkipsBadGeometryStrings(t *testing.T) {
	c := testCoordinator(t)
	base := c.WindowedGeometry()
	music := c.MusicGeometry()

	ps := &PersistedState{
		Version:  StateVersion,
		Windowed: "wingeo,v1,garbage",
		Music:    music.Serialize(),
	}

	err := c.Restore(ps)
	if err == nil {
		t.Error("Restore should surface the first parse failure")
	}
	// The bad entry is skipped; the good one still lands.
	if c.WindowedGeometry() != base {
		t.Error("unparseable windowed string must leave the cache untouched")
	}
	if c.MusicGeometry() != music {
		t.Error("valid music string should restore even after an earlier failure")
	}
}

func TestRestoreNilStateIsNoOp(t *testing.T) {
	c := testCoordinator(t)
	if err := c.Restore(nil); err != nil {
		t.Errorf("Restore(nil) = %v, want nil", err)
	}
}

func TestSaveToCreatesDirectory(t *testing.T) {
	c := testCoordinator(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	if err := c.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("state file not written: %v", err)
	}
	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}
