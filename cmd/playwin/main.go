package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/playwin/internal/config"
	"github.com/yourusername/playwin/internal/controller"
	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/layout"
	"github.com/yourusername/playwin/internal/logging"
	"github.com/yourusername/playwin/internal/output"
	"github.com/yourusername/playwin/internal/player"
	"github.com/yourusername/playwin/internal/screen"
)

var (
	configPath  string
	statePath   string
	screensPath string
	socketPath  string
	timeout     time.Duration
	jsonOutput  bool
	noColor     bool
	debugMode   bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "playwin",
	Short: "Window geometry engine for mpv",
	Long: `Playwin computes and applies window geometry for an mpv-based player:
viewport and video sizing, bar layout, mode transitions (windowed, full
screen, music mode, crop mode), and crop filters over mpv's JSON IPC.`,
	Version: "0.1.0",
}

// geometryCmd is the parent command for geometry subcommands
var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Inspect and resize the current window geometry",
}

// geometryShowCmd prints the current windowed geometry
var geometryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current window geometry",
	Long:  `Prints the window, viewport, and video rectangles of the current geometry along with bars and margins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadCoordinator()
		if err != nil {
			return err
		}

		music, _ := cmd.Flags().GetBool("music")
		if music {
			m := c.MusicGeometry()
			if jsonOutput {
				return printJSON(map[string]interface{}{"serialized": m.Serialize()})
			}
			output.PrintMusicGeometryTable(m)
			return nil
		}

		g := c.WindowedGeometry()
		if jsonOutput {
			return printJSON(map[string]interface{}{"serialized": g.Serialize()})
		}
		output.PrintGeometryTable(g)
		return nil
	},
}

// geometryResizeCmd resizes the viewport or video
var geometryResizeCmd = &cobra.Command{
	Use:   "resize <WxH>",
	Short: "Resize the viewport (or video) to the given size",
	Long: `Resizes the current windowed geometry so the viewport approximates the
given size, honoring mode minimums and screen limits. With --video the size
is interpreted as a video size instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desired, err := parseSize(args[0])
		if err != nil {
			return err
		}

		c, screens, err := loadCoordinator()
		if err != nil {
			return err
		}
		cfg := mustConfig()
		opt := geometry.ScaleOptions{
			LockViewportToVideoSize:     cfg.Geometry.LockViewportToVideoSize,
			MoveWindowIntoVisibleScreen: cfg.Geometry.MoveWindowIntoVisibleScreen,
			Screens:                     screens,
		}

		var g geometry.WindowGeometry
		asVideo, _ := cmd.Flags().GetBool("video")
		if asVideo {
			g = c.WindowedGeometry().ScaleVideo(desired, opt)
			c.SetWindowedGeometry(g)
			c.RememberIntendedViewportSize(g.ViewportSize())
		} else {
			g = c.ResizeViewport(desired, opt)
		}

		if err := saveState(c); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(map[string]interface{}{"serialized": g.Serialize()})
		}
		output.PrintGeometryTable(g)
		return nil
	},
}

// geometryMpvCmd applies an mpv geometry specification string
var geometryMpvCmd = &cobra.Command{
	Use:   "mpv <spec>",
	Short: "Apply an mpv geometry string (e.g. 50%x50%+100-200)",
	Long: `Parses an mpv --geometry specification and applies it to the current
windowed geometry: W[xH][+-X+-Y], with % meaning percent of the screen and a
leading - anchoring the offset to the far edge.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := geometry.ParseMPVGeometry(args[0])
		if err != nil {
			printError(fmt.Sprintf("Invalid geometry spec: %v", err))
			return err
		}

		c, screens, err := loadCoordinator()
		if err != nil {
			return err
		}
		cfg := mustConfig()
		opt := geometry.ScaleOptions{
			LockViewportToVideoSize:     cfg.Geometry.LockViewportToVideoSize,
			MoveWindowIntoVisibleScreen: cfg.Geometry.MoveWindowIntoVisibleScreen,
			Screens:                     screens,
		}

		g := c.WindowedGeometry()
		if _, ok := screens.Screen(g.ScreenID); !ok {
			return fmt.Errorf("screen %s not found in snapshot", g.ScreenID)
		}

		g = g.ApplyMPVGeometry(*def, g.VideoSize(), opt)
		c.SetWindowedGeometry(g)
		if err := saveState(c); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{"serialized": g.Serialize()})
		}
		output.PrintGeometryTable(g)
		return nil
	},
}

// geometryParseCmd round-trips a serialized geometry string
var geometryParseCmd = &cobra.Command{
	Use:   "parse <serialized>",
	Short: "Parse a serialized geometry string and show its components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := args[0]
		if strings.HasPrefix(s, "musicgeo,") {
			m, err := geometry.DeserializeMusicModeGeometry(s)
			if err != nil {
				printError(fmt.Sprintf("Parse failed: %v", err))
				return err
			}
			if jsonOutput {
				return printJSON(m)
			}
			output.PrintMusicGeometryTable(*m)
			return nil
		}

		g, err := geometry.DeserializeWindowGeometry(s)
		if err != nil {
			printError(fmt.Sprintf("Parse failed: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(g)
		}
		output.PrintGeometryTable(*g)
		return nil
	},
}

// showCmd visualizes the current geometry on its screen
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Visualize the current geometry on its screen",
	Long:  `Displays an ASCII/Unicode rendering of the window, viewport, and video boxes positioned on the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, screens, err := loadCoordinator()
		if err != nil {
			return err
		}

		g := c.WindowedGeometry()
		sc, ok := screens.Screen(g.ScreenID)
		if !ok {
			return fmt.Errorf("screen %s not found in snapshot", g.ScreenID)
		}

		opts := output.DefaultVisualizationOptions()
		if showASCII {
			opts.UseUnicode = false
		}
		if showUnicode {
			opts.UseUnicode = true
		}
		if showWidth > 0 {
			opts.MaxWidth = showWidth
		}
		if showHeight > 0 {
			opts.MaxHeight = showHeight
		}

		if noColor {
			fmt.Print(output.VisualizeGeometry(g, sc, opts))
			return nil
		}
		output.PrintVisualization(g, sc, opts)
		return nil
	},
}

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showWidth   int
	showHeight  int
)

// transitionCmd is the parent command for transition subcommands
var transitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Plan and run layout transitions",
}

// transitionPlanCmd builds a transition without running it
var transitionPlanCmd = &cobra.Command{
	Use:   "plan <mode>",
	Short: "Show the task plan for a transition to the given mode",
	Long: `Builds the transition from the current layout to the target mode and
prints its ordered task list, durations, and intermediate geometries.
Modes: windowed, fullscreen, music, interactive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseCLIMode(args[0])
		if err != nil {
			return err
		}

		c, _, err := loadCoordinator()
		if err != nil {
			return err
		}

		spec := c.CurrentLayout().Spec.WithMode(mode)
		t, err := c.Plan(spec)
		if err != nil {
			printError(fmt.Sprintf("Planning failed: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(transitionSummary(t))
		}
		output.PrintTransitionTable(t)
		return nil
	},
}

// transitionRunCmd builds and executes a transition
var transitionRunCmd = &cobra.Command{
	Use:   "run <mode>",
	Short: "Run a transition to the given mode and persist the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseCLIMode(args[0])
		if err != nil {
			return err
		}

		c, _, err := loadCoordinator()
		if err != nil {
			return err
		}
		// The CLI has no window to animate; run the plan instantly.
		c.Pipeline().SetInstant(true)

		spec := c.CurrentLayout().Spec.WithMode(mode)
		t, err := c.Transition(spec)
		if err != nil {
			printError(fmt.Sprintf("Transition failed: %v", err))
			return err
		}
		if err := saveState(c); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(transitionSummary(t))
		}
		successColor.Printf("✓ Transitioned to %s\n", t.ToLayout.Spec.Mode)
		output.PrintGeometryTable(t.ToGeometry)
		return nil
	},
}

// stateCmd is the parent command for state subcommands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset persisted geometry state",
}

// stateShowCmd shows the persisted state file
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted geometry state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := controller.LoadStateFrom(resolveStatePath())
		if err != nil {
			printError(fmt.Sprintf("Failed to load state: %v", err))
			return err
		}
		if ps == nil {
			fmt.Println("No persisted state (using defaults)")
			return nil
		}
		return printJSON(ps)
	},
}

// stateResetCmd deletes the persisted state file
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the persisted geometry state",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveStatePath()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove state file: %w", err)
		}
		successColor.Println("✓ State reset")
		return nil
	},
}

// playerCmd is the parent command for mpv IPC subcommands
var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Talk to a running mpv over its IPC socket",
}

// playerPingCmd checks mpv connectivity
var playerPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to mpv",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := player.NewClient(socketPath, timeout)
		defer c.Close()

		start := time.Now()
		v, err := c.GetProperty(context.Background(), "mpv-version")
		elapsed := time.Since(start)
		if err != nil {
			printError(fmt.Sprintf("Ping failed: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{"version": v, "elapsedMs": elapsed.Milliseconds()})
		}
		successColor.Println("✓ mpv reachable")
		keyColor.Print("Version: ")
		fmt.Println(v)
		fmt.Printf("Response time: %v\n", elapsed)
		return nil
	},
}

// playerCropCmd applies a crop to the running player and the geometry
var playerCropCmd = &cobra.Command{
	Use:   "crop <w:h:x:y>",
	Short: "Apply a crop filter and shrink the window to match",
	Long: `Installs a crop video filter in mpv (dimensions in unscaled video
pixels, x:y is the crop's top-left corner) and shrinks the stored window
geometry by the cropped amount.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.Split(args[0], ":")
		if len(parts) != 4 {
			return fmt.Errorf("crop must be w:h:x:y, got %q", args[0])
		}
		nums := make([]int, 4)
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("invalid crop component %q: %w", p, err)
			}
			nums[i] = n
		}
		w, h, x, y := nums[0], nums[1], nums[2], nums[3]

		pc := player.NewClient(socketPath, timeout)
		defer pc.Close()

		params, err := pc.GetVideoParams(context.Background())
		if err != nil {
			printError(fmt.Sprintf("Cannot read video size: %v", err))
			return err
		}

		c, _, err := loadCoordinator()
		if err != nil {
			return err
		}

		g := c.WindowedGeometry()
		// mpv's crop origin is top-left; the geometry engine works in
		// bottom-left coordinates.
		cropbox := geometry.Rect{
			X:      float64(x),
			Y:      params.Height - float64(y) - float64(h),
			Width:  float64(w),
			Height: float64(h),
		}
		cropped := g.CropVideo(geometry.Size{Width: params.Width, Height: params.Height}, cropbox)
		if cropped.WindowFrame == g.WindowFrame && cropped.VideoAspect == g.VideoAspect {
			printError("Crop rejected (outside video bounds or degenerate)")
			return fmt.Errorf("crop %s rejected", args[0])
		}

		if err := pc.SetCropFilter(context.Background(), w, h, x, y); err != nil {
			printError(fmt.Sprintf("mpv crop failed: %v", err))
			return err
		}

		c.SetWindowedGeometry(cropped)
		if err := saveState(c); err != nil {
			return err
		}
		successColor.Printf("✓ Cropped to %dx%d\n", w, h)
		output.PrintGeometryTable(cropped)
		return nil
	},
}

// playerUncropCmd removes the crop filter
var playerUncropCmd = &cobra.Command{
	Use:   "uncrop",
	Short: "Remove the crop filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		pc := player.NewClient(socketPath, timeout)
		defer pc.Close()

		if err := pc.RemoveCropFilter(context.Background()); err != nil {
			printError(fmt.Sprintf("mpv uncrop failed: %v", err))
			return err
		}
		successColor.Println("✓ Crop removed")
		return nil
	},
}

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			printError(fmt.Sprintf("Failed to load config: %v", err))
			return err
		}
		return printJSON(cfg)
	},
}

// configValidateCmd validates a configuration file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := config.LoadConfig(path); err != nil {
			printError(fmt.Sprintf("Invalid: %v", err))
			return err
		}
		successColor.Println("✓ Configuration valid")
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "State file path")
	rootCmd.PersistentFlags().StringVar(&screensPath, "screens", "", "Screen snapshot JSON path")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", player.DefaultSocketPath, "mpv IPC socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", player.DefaultTimeout, "IPC request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(geometryCmd)
	geometryCmd.AddCommand(geometryShowCmd)
	geometryCmd.AddCommand(geometryResizeCmd)
	geometryCmd.AddCommand(geometryMpvCmd)
	geometryCmd.AddCommand(geometryParseCmd)
	geometryShowCmd.Flags().Bool("music", false, "Show the music-mode geometry instead")
	geometryResizeCmd.Flags().Bool("video", false, "Interpret the size as a video size")

	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	rootCmd.AddCommand(transitionCmd)
	transitionCmd.AddCommand(transitionPlanCmd)
	transitionCmd.AddCommand(transitionRunCmd)

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	rootCmd.AddCommand(playerCmd)
	playerCmd.AddCommand(playerPingCmd)
	playerCmd.AddCommand(playerCropCmd)
	playerCmd.AddCommand(playerUncropCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug()
		}
	})
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func mustConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		printError(fmt.Sprintf("Config error, using defaults: %v", err))
		return config.Default()
	}
	return cfg
}

func resolveStatePath() string {
	if statePath != "" {
		return statePath
	}
	return controller.GetStatePath()
}

// loadScreens reads the screen snapshot file, or synthesizes a single
// 1920x1080 main screen when none is given.
func loadScreens() (*screen.Set, error) {
	if screensPath == "" {
		return screen.NewSet(screen.Screen{
			ID:           "main",
			Frame:        geometry.Rect{Width: 1920, Height: 1080},
			VisibleFrame: geometry.Rect{Y: 0, Width: 1920, Height: 1055},
			IsMain:       true,
		}), nil
	}

	data, err := os.ReadFile(screensPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen snapshot: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse screen snapshot: %w", err)
	}
	return screen.ParseSnapshot(raw)
}

// loadCoordinator builds a coordinator from config, screens, and persisted
// state, falling back to a default centered geometry on the main screen.
func loadCoordinator() (*controller.Coordinator, *screen.Set, error) {
	cfg := mustConfig()
	screens, err := loadScreens()
	if err != nil {
		return nil, nil, err
	}

	main, ok := screens.Main()
	if !ok {
		return nil, nil, fmt.Errorf("screen snapshot has no screens")
	}

	initial := geometry.New(geometry.Params{
		WindowFrame: geometry.Rect{Width: 960, Height: 540}.CenteredIn(main.VisibleFrame),
		ScreenID:    main.ID,
		FitOption:   geometry.FitKeepInVisible,
		Mode:        geometry.ModeWindowed,
		VideoAspect: 16.0 / 9.0,
	})

	c := controller.New(controller.Options{
		Cfg:             cfg,
		Screens:         screens,
		InitialWindowed: initial,
	})

	ps, err := controller.LoadStateFrom(resolveStatePath())
	if err != nil {
		return nil, nil, err
	}
	if err := c.Restore(ps); err != nil {
		logging.Warn().Err(err).Msg("partial state restore")
	}
	return c, screens, nil
}

func saveState(c *controller.Coordinator) error {
	if err := c.SaveTo(resolveStatePath()); err != nil {
		printError(fmt.Sprintf("Failed to save state: %v", err))
		return err
	}
	return nil
}

func parseSize(s string) (geometry.Size, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return geometry.Size{}, fmt.Errorf("size must be WxH, got %q", s)
	}
	w, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid width %q: %w", parts[0], err)
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid height %q: %w", parts[1], err)
	}
	return geometry.Size{Width: w, Height: h}, nil
}

func parseCLIMode(s string) (geometry.Mode, error) {
	switch strings.ToLower(s) {
	case "windowed":
		return geometry.ModeWindowed, nil
	case "fullscreen", "full-screen":
		return geometry.ModeFullScreen, nil
	case "music", "music-mode":
		return geometry.ModeMusic, nil
	case "interactive", "crop":
		return geometry.ModeWindowedInteractive, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (windowed, fullscreen, music, interactive)", s)
	}
}

func transitionSummary(t *layout.Transition) map[string]interface{} {
	tasks := make([]map[string]interface{}, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		tasks = append(tasks, map[string]interface{}{
			"name":       task.Name,
			"durationMs": task.Duration.Milliseconds(),
			"easing":     string(task.Easing),
		})
	}
	return map[string]interface{}{
		"name":      t.Name,
		"from":      t.FromLayout.Spec.Mode.String(),
		"to":        t.ToLayout.Spec.Mode.String(),
		"hasMiddle": t.MiddleGeometry != nil,
		"tasks":     tasks,
	}
}
