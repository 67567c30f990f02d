package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/playwin"
	DefaultConfigFile = "config.yaml"
)

// Config is the user preference set the geometry engine consults. All of it
// is optional; zero values are replaced by defaults in ApplyDefaults.
type Config struct {
	Geometry  GeometrySettings  `yaml:"geometry" json:"geometry"`
	Layout    LayoutSettings    `yaml:"layout" json:"layout"`
	Animation AnimationSettings `yaml:"animation" json:"animation"`
}

// GeometrySettings controls window sizing policy.
type GeometrySettings struct {
	// LockViewportToVideoSize keeps the viewport exactly the video size
	// (no letterbox space) in windowed mode.
	LockViewportToVideoSize bool `yaml:"lock_viewport_to_video_size" json:"lockViewportToVideoSize"`
	// MoveWindowIntoVisibleScreen lets resizes reposition the window to
	// keep it on screen.
	MoveWindowIntoVisibleScreen bool `yaml:"move_window_into_visible_screen" json:"moveWindowIntoVisibleScreen"`
	// PreserveIntendedViewportSize restores the remembered viewport size
	// when bars close again, preventing the shrink ratchet.
	PreserveIntendedViewportSize bool `yaml:"preserve_intended_viewport_size" json:"preserveIntendedViewportSize"`
	// UseLegacyFullScreen selects legacy full screen (covers the camera
	// housing) over native full screen.
	UseLegacyFullScreen bool `yaml:"use_legacy_full_screen" json:"useLegacyFullScreen"`
}

// LayoutSettings controls the bar/panel layout fed into LayoutState.
type LayoutSettings struct {
	// OSCPosition is "floating", "top", or "bottom".
	OSCPosition string `yaml:"osc_position" json:"oscPosition"`
	// OSCHeight is the on-screen controller bar height in pixels.
	OSCHeight float64 `yaml:"osc_height" json:"oscHeight"`
	// TitleBarHeight is the windowed-mode title bar height.
	TitleBarHeight float64 `yaml:"title_bar_height" json:"titleBarHeight"`
	// LeadingSidebarWidth / TrailingSidebarWidth are the sidebar panel
	// widths when open.
	LeadingSidebarWidth  float64 `yaml:"leading_sidebar_width" json:"leadingSidebarWidth"`
	TrailingSidebarWidth float64 `yaml:"trailing_sidebar_width" json:"trailingSidebarWidth"`
	// TopBarPlacement / BottomBarPlacement are "inside" or "outside".
	TopBarPlacement    string `yaml:"top_bar_placement" json:"topBarPlacement"`
	BottomBarPlacement string `yaml:"bottom_bar_placement" json:"bottomBarPlacement"`
}

// AnimationSettings controls transition timing.
type AnimationSettings struct {
	// BaseDurationMs is the full transition duration in milliseconds;
	// individual tasks receive fractions of it.
	BaseDurationMs int `yaml:"base_duration_ms" json:"baseDurationMs"`
	// DisableAnimations runs every task with zero duration.
	DisableAnimations bool `yaml:"disable_animations" json:"disableAnimations"`
}

// Default returns a fully-populated default config.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.Layout.OSCPosition == "" {
		c.Layout.OSCPosition = "floating"
	}
	if c.Layout.OSCHeight == 0 {
		c.Layout.OSCHeight = 44
	}
	if c.Layout.TitleBarHeight == 0 {
		c.Layout.TitleBarHeight = 28
	}
	if c.Layout.LeadingSidebarWidth == 0 {
		c.Layout.LeadingSidebarWidth = 240
	}
	if c.Layout.TrailingSidebarWidth == 0 {
		c.Layout.TrailingSidebarWidth = 240
	}
	if c.Layout.TopBarPlacement == "" {
		c.Layout.TopBarPlacement = "inside"
	}
	if c.Layout.BottomBarPlacement == "" {
		c.Layout.BottomBarPlacement = "inside"
	}
	if c.Animation.BaseDurationMs == 0 {
		c.Animation.BaseDurationMs = 250
	}
}

// Validate rejects out-of-range or unknown settings.
func (c *Config) Validate() error {
	switch c.Layout.OSCPosition {
	case "floating", "top", "bottom":
	default:
		return fmt.Errorf("layout.osc_position must be floating, top, or bottom (got %q)", c.Layout.OSCPosition)
	}
	for name, v := range map[string]string{
		"layout.top_bar_placement":    c.Layout.TopBarPlacement,
		"layout.bottom_bar_placement": c.Layout.BottomBarPlacement,
	} {
		if v != "inside" && v != "outside" {
			return fmt.Errorf("%s must be inside or outside (got %q)", name, v)
		}
	}
	if c.Layout.OSCHeight < 0 || c.Layout.TitleBarHeight < 0 ||
		c.Layout.LeadingSidebarWidth < 0 || c.Layout.TrailingSidebarWidth < 0 {
		return fmt.Errorf("layout sizes must be non-negative")
	}
	if c.Animation.BaseDurationMs < 0 {
		return fmt.Errorf("animation.base_duration_ms must be non-negative")
	}
	return nil
}

// LoadConfig loads configuration from the specified path or default
// location. If path is empty, uses ~/.config/playwin/config.yaml and falls
// back to built-in defaults when no file exists. Supports both .yaml and
// .json extensions.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	format := "yaml"
	if ext == ".json" {
		format = "json"
	}
	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes loads configuration from raw bytes; format should be
// "yaml" or "json".
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
