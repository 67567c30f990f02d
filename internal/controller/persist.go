package controller

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/layout"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/playwin"
	// DefaultStateFile is the state file name
	DefaultStateFile = "state.json"

	// StateVersion is the current state file format version
	StateVersion = 1
)

// PersistedState is the on-disk snapshot of the coordinator's geometries.
// Geometries are stored in their versioned string form so the same codec
// serves the file and the defaults system.
type PersistedState struct {
	Version     int       `json:"version"`
	Mode        string    `json:"mode"`
	Windowed    string    `json:"windowedGeometry"`
	Music       string    `json:"musicGeometry"`
	Interactive string    `json:"interactiveGeometry,omitempty"`
	// IntendedViewportWidth/Height are zero when no explicit resize has
	// been recorded.
	IntendedViewportWidth  float64   `json:"intendedViewportWidth,omitempty"`
	IntendedViewportHeight float64   `json:"intendedViewportHeight,omitempty"`
	LastUpdated            time.Time `json:"lastUpdated"`
}

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// Snapshot captures the coordinator's current geometries for persistence.
func (c *Coordinator) Snapshot() PersistedState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ps := PersistedState{
		Version:     StateVersion,
		Mode:        c.current.Spec.Mode.String(),
		Windowed:    c.windowed.Serialize(),
		Music:       c.music.Serialize(),
		LastUpdated: time.Now(),
	}
	if c.interactive != nil {
		ps.Interactive = c.interactive.Serialize()
	}
	if c.intendedViewport != nil {
		ps.IntendedViewportWidth = c.intendedViewport.Width
		ps.IntendedViewportHeight = c.intendedViewport.Height
	}
	return ps
}

// Save persists the coordinator's state to the default path
func (c *Coordinator) Save() error {
	return c.SaveTo(GetStatePath())
}

// SaveTo persists the coordinator's state to a specific path
func (c *Coordinator) SaveTo(path string) error {
	ps := c.Snapshot()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}

// LoadState loads persisted state from the default path. A missing file
// returns (nil, nil) so callers fall back to defaults.
func LoadState() (*PersistedState, error) {
	return LoadStateFrom(GetStatePath())
}

// LoadStateFrom loads persisted state from a specific path
func LoadStateFrom(path string) (*PersistedState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var ps PersistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if ps.Version > StateVersion {
		return nil, fmt.Errorf("state file version %d is newer than supported %d", ps.Version, StateVersion)
	}
	// Version migrations would go here (v1 is the first format).
	return &ps, nil
}

// Restore applies a persisted state to the coordinator. Geometry strings
// that fail to parse are skipped individually; a stale entry must not block
// startup.
func (c *Coordinator) Restore(ps *PersistedState) error {
	if ps == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	if ps.Windowed != "" {
		if g, err := geometry.DeserializeWindowGeometry(ps.Windowed); err == nil {
			c.windowed = *g
		} else if firstErr == nil {
			firstErr = fmt.Errorf("windowed geometry: %w", err)
		}
	}
	if ps.Music != "" {
		if m, err := geometry.DeserializeMusicModeGeometry(ps.Music); err == nil {
			c.music = *m
		} else if firstErr == nil {
			firstErr = fmt.Errorf("music geometry: %w", err)
		}
	}
	if ps.Interactive != "" {
		if g, err := geometry.DeserializeWindowGeometry(ps.Interactive); err == nil {
			c.interactive = g
		} else if firstErr == nil {
			firstErr = fmt.Errorf("interactive geometry: %w", err)
		}
	}
	if ps.IntendedViewportWidth > 0 && ps.IntendedViewportHeight > 0 {
		c.intendedViewport = &geometry.Size{
			Width:  ps.IntendedViewportWidth,
			Height: ps.IntendedViewportHeight,
		}
	}
	if ps.Mode != "" {
		if mode, ok := geometry.ParseMode(ps.Mode); ok {
			c.current = layout.NewLayoutState(layout.DefaultLayoutSpec(c.cfg).WithMode(mode), c.cfg)
		} else if firstErr == nil {
			firstErr = fmt.Errorf("layout mode: unknown %q", ps.Mode)
		}
	}
	return firstErr
}
