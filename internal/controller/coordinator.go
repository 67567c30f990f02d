package controller

import (
	"fmt"
	"sync"

	"github.com/yourusername/playwin/internal/anim"
	"github.com/yourusername/playwin/internal/config"
	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/layout"
	"github.com/yourusername/playwin/internal/logging"
)

// Coordinator owns the per-mode geometries and the current layout, and runs
// transitions through the animation pipeline. Geometry values are immutable;
// every change computes a complete replacement and swaps it in under the
// lock. It implements layout.GeometryStore for the transition factory and
// layout.Host to observe transition completion.
type Coordinator struct {
	mu sync.RWMutex

	windowed    geometry.WindowGeometry
	music       geometry.MusicModeGeometry
	interactive *geometry.WindowGeometry
	// intendedViewport remembers the size the user explicitly asked for,
	// so bar-driven shrinks can be undone later.
	intendedViewport *geometry.Size

	current *layout.LayoutState

	cfg      *config.Config
	factory  *layout.Factory
	pipeline *anim.Pipeline
	host     layout.Host
}

// Options configures a new Coordinator. Host may be nil.
type Options struct {
	Cfg     *config.Config
	Screens layout.ScreenInfo
	Host    layout.Host
	// InitialWindowed seeds the windowed geometry; required.
	InitialWindowed geometry.WindowGeometry
	// InitialMusic seeds the music geometry; a zero value derives one from
	// the windowed geometry on first use.
	InitialMusic geometry.MusicModeGeometry
}

// New builds a coordinator starting in windowed mode.
func New(o Options) *Coordinator {
	c := &Coordinator{
		windowed: o.InitialWindowed,
		music:    o.InitialMusic,
		cfg:      o.Cfg,
		pipeline: anim.NewPipeline(),
		host:     o.Host,
	}
	if c.host == nil {
		c.host = layout.NoopHost{}
	}
	if c.music.WindowFrame.Width == 0 {
		c.music = geometry.MusicModeFromWindowGeometry(o.InitialWindowed, 0, true, false)
	}
	c.current = layout.NewLayoutState(layout.DefaultLayoutSpec(o.Cfg), o.Cfg)
	// The coordinator sits between the factory and the real host so it can
	// swap geometries in when a transition completes.
	c.factory = layout.NewFactory(o.Cfg, o.Screens, c, c)
	if o.Cfg.Animation.DisableAnimations {
		c.pipeline.SetInstant(true)
	}
	return c
}

// CurrentLayout returns the active layout state.
func (c *Coordinator) CurrentLayout() *layout.LayoutState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// WindowedGeometry implements layout.GeometryStore.
func (c *Coordinator) WindowedGeometry() geometry.WindowGeometry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.windowed
}

// MusicGeometry implements layout.GeometryStore.
func (c *Coordinator) MusicGeometry() geometry.MusicModeGeometry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.music
}

// InteractiveGeometry implements layout.GeometryStore.
func (c *Coordinator) InteractiveGeometry() (geometry.WindowGeometry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.interactive == nil {
		return geometry.WindowGeometry{}, false
	}
	return *c.interactive, true
}

// IntendedViewportSize implements layout.GeometryStore.
func (c *Coordinator) IntendedViewportSize() (geometry.Size, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.intendedViewport == nil {
		return geometry.Size{}, false
	}
	return *c.intendedViewport, true
}

// SetWindowedGeometry swaps in a replacement windowed geometry, e.g. after a
// user drag-resize reported by the shell.
func (c *Coordinator) SetWindowedGeometry(g geometry.WindowGeometry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windowed = g
}

// SetMusicGeometry swaps in a replacement music-mode geometry.
func (c *Coordinator) SetMusicGeometry(m geometry.MusicModeGeometry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.music = m
}

// RememberIntendedViewportSize records a user-requested viewport size.
// Called on explicit resizes, never on bar-driven ones.
func (c *Coordinator) RememberIntendedViewportSize(s geometry.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.intendedViewport = &s
}

// ResizeViewport performs a user-requested viewport resize of the current
// windowed geometry and remembers the request.
func (c *Coordinator) ResizeViewport(desired geometry.Size, opt geometry.ScaleOptions) geometry.WindowGeometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windowed = c.windowed.ScaleViewport(desired, opt)
	s := c.windowed.ViewportSize()
	c.intendedViewport = &s
	return c.windowed
}

// Transition builds and runs a transition to the given spec, blocking until
// the pipeline drains. The geometry swap happens inside the completion task,
// so partial states are never observable through the store.
func (c *Coordinator) Transition(toSpec layout.LayoutSpec) (*layout.Transition, error) {
	c.mu.RLock()
	from := c.current
	c.mu.RUnlock()

	t, err := c.factory.Build(from, toSpec)
	if err != nil {
		return nil, fmt.Errorf("building transition: %w", err)
	}
	c.pipeline.Submit(t.Tasks...)
	c.pipeline.Wait()
	return t, nil
}

// Plan builds a transition without executing it, for inspection.
func (c *Coordinator) Plan(toSpec layout.LayoutSpec) (*layout.Transition, error) {
	c.mu.RLock()
	from := c.current
	c.mu.RUnlock()
	return c.factory.Build(from, toSpec)
}

// Pipeline exposes the animation pipeline, mainly for the instant override.
func (c *Coordinator) Pipeline() *anim.Pipeline { return c.pipeline }

// Host interface. All hooks forward to the wrapped host; DidCompleteTransition
// additionally commits the transition's output geometry.

func (c *Coordinator) WillBeginTransition(t *layout.Transition) { c.host.WillBeginTransition(t) }
func (c *Coordinator) ShowFadeableViews(t *layout.Transition)   { c.host.ShowFadeableViews(t) }
func (c *Coordinator) FadeOutOldViews(t *layout.Transition)     { c.host.FadeOutOldViews(t) }
func (c *Coordinator) PrepareCameraHousingCover(t *layout.Transition) {
	c.host.PrepareCameraHousingCover(t)
}
func (c *Coordinator) CloseOldPanels(t *layout.Transition, mid geometry.WindowGeometry) {
	c.host.CloseOldPanels(t, mid)
}
func (c *Coordinator) UpdateHiddenViewsAndConstraints(t *layout.Transition) {
	c.host.UpdateHiddenViewsAndConstraints(t)
}
func (c *Coordinator) MoveWindowForMusicMode(t *layout.Transition, g geometry.WindowGeometry) {
	c.host.MoveWindowForMusicMode(t, g)
}
func (c *Coordinator) OpenNewPanels(t *layout.Transition, g geometry.WindowGeometry) {
	c.host.OpenNewPanels(t, g)
}
func (c *Coordinator) FadeInNewViews(t *layout.Transition) { c.host.FadeInNewViews(t) }
func (c *Coordinator) FinishCameraHousingCover(t *layout.Transition) {
	c.host.FinishCameraHousingCover(t)
}

// DidCompleteTransition commits the transition: the output geometry replaces
// the cache for its mode, wholesale.
func (c *Coordinator) DidCompleteTransition(t *layout.Transition) {
	c.mu.Lock()
	out := t.ToGeometry
	switch {
	case t.ToLayout.Spec.Mode == geometry.ModeMusic:
		c.music = geometry.MusicModeFromWindowGeometry(out,
			c.music.PlaylistHeight, c.music.IsVideoVisible, c.music.IsPlaylistVisible)
	case t.ToLayout.Spec.Mode.IsInteractive():
		g := out
		c.interactive = &g
	case t.ToLayout.Spec.Mode.IsFullScreen():
		// The windowed geometry is kept untouched so leaving full screen
		// restores it exactly.
	default:
		c.windowed = out
		c.interactive = nil
	}
	c.current = t.ToLayout
	c.mu.Unlock()

	logging.Debug().
		Str("transition", t.Name).
		Str("mode", t.ToLayout.Spec.Mode.String()).
		Msg("transition committed")
	c.host.DidCompleteTransition(t)
}
