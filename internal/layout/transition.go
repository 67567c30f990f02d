package layout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/playwin/internal/anim"
	"github.com/yourusername/playwin/internal/config"
	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/logging"
	"github.com/yourusername/playwin/internal/screen"
)

// GeometryStore supplies the cached "current" geometries a transition
// starts from. The coordinator owns them; the factory only reads.
type GeometryStore interface {
	WindowedGeometry() geometry.WindowGeometry
	MusicGeometry() geometry.MusicModeGeometry
	// InteractiveGeometry returns the cached crop-mode geometry, if one
	// was stashed when interactive mode was last active.
	InteractiveGeometry() (geometry.WindowGeometry, bool)
	// IntendedViewportSize is the viewport size the user last asked for
	// explicitly, used to undo the sidebar shrink ratchet.
	IntendedViewportSize() (geometry.Size, bool)
}

// Host receives the transition's timed callbacks. The shell implements this
// against its real window and views; tests and the planning CLI use NoopHost.
type Host interface {
	WillBeginTransition(*Transition)
	ShowFadeableViews(*Transition)
	FadeOutOldViews(*Transition)
	// PrepareCameraHousingCover runs before the frame change when
	// entering legacy full screen on a notched screen.
	PrepareCameraHousingCover(*Transition)
	// CloseOldPanels applies the middle geometry: every shrinking bar
	// collapses before the window frame changes shape.
	CloseOldPanels(*Transition, geometry.WindowGeometry)
	UpdateHiddenViewsAndConstraints(*Transition)
	// MoveWindowForMusicMode repositions/resizes for the mini player
	// before its panels open.
	MoveWindowForMusicMode(*Transition, geometry.WindowGeometry)
	// OpenNewPanels applies the output geometry.
	OpenNewPanels(*Transition, geometry.WindowGeometry)
	FadeInNewViews(*Transition)
	// FinishCameraHousingCover runs after the frame change when leaving
	// legacy full screen on a notched screen.
	FinishCameraHousingCover(*Transition)
	DidCompleteTransition(*Transition)
}

// NoopHost implements Host with no-ops.
type NoopHost struct{}

func (NoopHost) WillBeginTransition(*Transition)                            {}
func (NoopHost) ShowFadeableViews(*Transition)                              {}
func (NoopHost) FadeOutOldViews(*Transition)                                {}
func (NoopHost) PrepareCameraHousingCover(*Transition)                      {}
func (NoopHost) CloseOldPanels(*Transition, geometry.WindowGeometry)        {}
func (NoopHost) UpdateHiddenViewsAndConstraints(*Transition)                {}
func (NoopHost) MoveWindowForMusicMode(*Transition, geometry.WindowGeometry) {}
func (NoopHost) OpenNewPanels(*Transition, geometry.WindowGeometry)         {}
func (NoopHost) FadeInNewViews(*Transition)                                 {}
func (NoopHost) FinishCameraHousingCover(*Transition)                       {}
func (NoopHost) DidCompleteTransition(*Transition)                          {}

// Transition is the ephemeral plan for one layout change: input and output
// layout/geometry pairs, an optional staged middle geometry, and the ordered
// task list the animation pipeline executes. Created, executed, discarded.
type Transition struct {
	Name string

	FromLayout   *LayoutState
	FromGeometry geometry.WindowGeometry
	ToLayout     *LayoutState
	ToGeometry   geometry.WindowGeometry
	// MiddleGeometry, when present, is applied after closing animations
	// and before opening ones.
	MiddleGeometry *geometry.WindowGeometry

	Tasks []anim.Task
}

// IsEnteringFullScreen reports a windowed/music → full screen change.
func (t *Transition) IsEnteringFullScreen() bool {
	return !t.FromLayout.Spec.Mode.IsFullScreen() && t.ToLayout.Spec.Mode.IsFullScreen()
}

// IsExitingFullScreen reports a full screen → anything-else change.
func (t *Transition) IsExitingFullScreen() bool {
	return t.FromLayout.Spec.Mode.IsFullScreen() && !t.ToLayout.Spec.Mode.IsFullScreen()
}

// IsTogglingFullScreen reports a change of full-screen membership.
func (t *Transition) IsTogglingFullScreen() bool {
	return t.IsEnteringFullScreen() || t.IsExitingFullScreen()
}

// IsEnteringMusicMode reports a change into the mini player.
func (t *Transition) IsEnteringMusicMode() bool {
	return t.FromLayout.Spec.Mode != geometry.ModeMusic && t.ToLayout.Spec.Mode == geometry.ModeMusic
}

// IsTogglingInteractiveMode reports a change of crop-mode membership.
func (t *Transition) IsTogglingInteractiveMode() bool {
	return t.FromLayout.Spec.Mode.IsInteractive() != t.ToLayout.Spec.Mode.IsInteractive()
}

// ScreenInfo is what the factory needs to know about screens: containment
// rects for geometry math plus notch metadata for legacy full screen.
type ScreenInfo interface {
	geometry.ScreenSource
	Screen(id string) (screen.Screen, bool)
}

// Factory builds Transitions. It holds the collaborators every build needs;
// each Build call is pure computation over them.
type Factory struct {
	Cfg     *config.Config
	Screens ScreenInfo
	Store   GeometryStore
	Host    Host
}

// NewFactory wires a transition factory.
func NewFactory(cfg *config.Config, screens ScreenInfo, store GeometryStore, host Host) *Factory {
	if host == nil {
		host = NoopHost{}
	}
	return &Factory{Cfg: cfg, Screens: screens, Store: store, Host: host}
}

func (f *Factory) scaleOptions() geometry.ScaleOptions {
	return geometry.ScaleOptions{
		LockViewportToVideoSize:     f.Cfg.Geometry.LockViewportToVideoSize,
		MoveWindowIntoVisibleScreen: f.Cfg.Geometry.MoveWindowIntoVisibleScreen,
		Screens:                     f.Screens,
	}
}

// Build computes the full transition plan from the current layout state to
// the target spec. Any mode may transition to any other; mode-specific
// geometry rules stand in for guard conditions.
func (f *Factory) Build(from *LayoutState, toSpec LayoutSpec) (*Transition, error) {
	if from == nil {
		return nil, fmt.Errorf("transition: nil input layout")
	}

	t := &Transition{
		Name: fmt.Sprintf("%s-to-%s-%s", from.Spec.Mode, toSpec.Mode,
			uuid.New().String()[:8]),
		FromLayout: from,
		ToLayout:   NewLayoutState(toSpec, f.Cfg),
	}

	t.FromGeometry = f.inputGeometry(from)
	out, err := f.outputGeometry(t)
	if err != nil {
		return nil, err
	}
	t.ToGeometry = out
	t.MiddleGeometry = f.middleGeometry(t)

	f.buildTasks(t)

	logging.Info().
		Str("transition", t.Name).
		Int("tasks", len(t.Tasks)).
		Bool("hasMiddle", t.MiddleGeometry != nil).
		Msg("built layout transition")
	return t, nil
}

// inputGeometry resolves the geometry the transition starts from, pulling
// the mode-appropriate cached geometry and converting as needed.
func (f *Factory) inputGeometry(from *LayoutState) geometry.WindowGeometry {
	opt := f.scaleOptions()
	switch {
	case from.Spec.Mode == geometry.ModeMusic:
		return f.Store.MusicGeometry().ToWindowGeometry()
	case from.Spec.Mode.IsInteractive():
		if g, ok := f.Store.InteractiveGeometry(); ok {
			return g
		}
		return f.Store.WindowedGeometry().ToInteractiveMode(opt)
	case from.Spec.Mode == geometry.ModeFullScreen:
		g := f.Store.WindowedGeometry()
		return geometry.New(f.fullScreenParams(g, from)).Refit(opt)
	default:
		return f.Store.WindowedGeometry()
	}
}

// outputGeometry computes where the transition lands, per the target mode's
// rules.
func (f *Factory) outputGeometry(t *Transition) (geometry.WindowGeometry, error) {
	opt := f.scaleOptions()
	to := t.ToLayout

	switch {
	case to.Spec.Mode.IsFullScreen():
		// Always recomputed against the windowed-mode screen, so full
		// screen lands on the screen the window lives on.
		// The params already carry the target mode and the layout state's
		// bars; Refit pins the frame to the screen container for both the
		// plain and the interactive full-screen modes.
		g := f.Store.WindowedGeometry()
		return geometry.New(f.fullScreenParams(g, to)).Refit(opt), nil

	case to.Spec.Mode == geometry.ModeMusic:
		// Reuse the cached music geometry, corrected for a possibly
		// stale aspect ratio.
		music := f.Store.MusicGeometry().WithVideoAspect(t.FromGeometry.VideoAspect)
		return music.ToWindowGeometry(), nil

	case to.Spec.Mode == geometry.ModeWindowedInteractive:
		if cached, ok := f.Store.InteractiveGeometry(); ok {
			return cached.Refit(opt), nil
		}
		return f.Store.WindowedGeometry().ToInteractiveMode(opt), nil

	default: // windowed
		g := f.Store.WindowedGeometry()
		if t.FromLayout.Spec.Mode.IsInteractive() {
			g = t.FromGeometry.ExitInteractiveMode(to.OutsideBars, to.InsideBars, 0, opt)
		} else {
			g = g.WithResizedBars(to.BarUpdate(), opt)
		}
		// Shrinking the window because a bar closed must not ratchet
		// the viewport down permanently; restore the remembered size.
		if f.Cfg.Geometry.LockViewportToVideoSize && f.Cfg.Geometry.PreserveIntendedViewportSize {
			if intended, ok := f.Store.IntendedViewportSize(); ok {
				cur := g.ViewportSize()
				if cur.Width < intended.Width || cur.Height < intended.Height {
					g = g.ScaleViewport(intended, opt)
				}
			}
		}
		return g, nil
	}
}

// fullScreenParams rebuilds a windowed geometry's params for full screen on
// the same screen: full-screen fit, bars from the target layout, and a top
// margin covering the camera housing in legacy style.
func (f *Factory) fullScreenParams(g geometry.WindowGeometry, st *LayoutState) geometry.Params {
	p := geometry.Params{
		WindowFrame: g.WindowFrame,
		ScreenID:    g.ScreenID,
		Mode:        st.Spec.Mode,
		OutsideBars: st.OutsideBars,
		InsideBars:  st.InsideBars,
		VideoAspect: g.VideoAspect,
	}
	if st.Spec.IsLegacyStyle {
		p.FitOption = geometry.FitLegacyFullScreen
		// Legacy full screen covers the notch with an opaque top margin
		// instead of letting video render under it.
		if f.Screens != nil {
			if sc, ok := f.Screens.Screen(g.ScreenID); ok {
				p.TopMarginHeight = sc.CameraHousingHeight
			}
		}
	} else {
		p.FitOption = geometry.FitNativeFullScreen
	}
	return p
}

// middleGeometry builds the staged intermediate applied between closing and
// opening animations: every bar keeps only the space it retains in both the
// input and output layouts, so panels fully close before the frame changes
// shape. Nil when nothing closes.
func (f *Factory) middleGeometry(t *Transition) *geometry.WindowGeometry {
	fromOut := t.FromGeometry.OutsideBars
	toOut := t.ToGeometry.OutsideBars
	fromIn := t.FromGeometry.InsideBars
	toIn := t.ToGeometry.InsideBars

	midOut := quadMin(fromOut, toOut)
	midIn := quadMin(fromIn, toIn)
	if midOut == fromOut && midIn == fromIn {
		return nil
	}

	u := geometry.BarUpdate{
		OutsideTop:      geometry.Float(midOut.Top),
		OutsideTrailing: geometry.Float(midOut.Trailing),
		OutsideBottom:   geometry.Float(midOut.Bottom),
		OutsideLeading:  geometry.Float(midOut.Leading),
		InsideTop:       geometry.Float(midIn.Top),
		InsideTrailing:  geometry.Float(midIn.Trailing),
		InsideBottom:    geometry.Float(midIn.Bottom),
		InsideLeading:   geometry.Float(midIn.Leading),
	}
	mid := t.FromGeometry.WithResizedBars(u, f.scaleOptions())
	return &mid
}

func quadMin(a, b geometry.BoxQuad) geometry.BoxQuad {
	m := func(x, y float64) float64 {
		if x < y {
			return x
		}
		return y
	}
	return geometry.BoxQuad{
		Top:      m(a.Top, b.Top),
		Trailing: m(a.Trailing, b.Trailing),
		Bottom:   m(a.Bottom, b.Bottom),
		Leading:  m(a.Leading, b.Leading),
	}
}

// Duration split fractions per transition type. Full-screen toggles spend
// nearly everything on the frame change; music-mode entry reserves time for
// the fade; everything else splits evenly between close and open.
const (
	fullScreenCloseFraction = 0.6
	fullScreenOpenFraction  = 0.4
	musicFadeFraction       = 0.3
	musicMoveFraction       = 0.35
	musicOpenFraction       = 0.35
	defaultFadeFraction     = 0.2
)

// buildTasks emits the fixed ordered task sequence. The order is the core
// contract: panels fully close before the window frame changes shape, and
// reopen only after the frame change completes.
func (f *Factory) buildTasks(t *Transition) {
	base := time.Duration(f.Cfg.Animation.BaseDurationMs) * time.Millisecond
	if f.Cfg.Animation.DisableAnimations {
		base = 0
	}

	var fadeDur, closeDur, openDur time.Duration
	easing := anim.EasingEaseInOut
	fuseFadeIn := false

	switch {
	case t.IsTogglingFullScreen():
		// Near-zero setup; the frame change gets nearly everything and
		// the fade-in is fused into the open step to fit.
		fadeDur = 0
		closeDur = time.Duration(float64(base) * fullScreenCloseFraction)
		openDur = time.Duration(float64(base) * fullScreenOpenFraction)
		fuseFadeIn = true
	case t.IsEnteringMusicMode():
		fadeDur = time.Duration(float64(base) * musicFadeFraction)
		closeDur = time.Duration(float64(base) * musicMoveFraction)
		openDur = time.Duration(float64(base) * musicOpenFraction)
	default:
		// Sidebar and bar toggles ease in.
		easing = anim.EasingEaseIn
		fadeDur = time.Duration(float64(base) * defaultFadeFraction)
		closeDur = (base - fadeDur) / 2
		openDur = base - fadeDur - closeDur
	}

	legacyNotch := f.legacyNotchScreen(t)

	tasks := []anim.Task{
		anim.InstantTask("pre-transition", func() { f.Host.WillBeginTransition(t) }),
		anim.InstantTask("show-fadeable-views", func() { f.Host.ShowFadeableViews(t) }),
		{Name: "fade-out-old-views", Duration: fadeDur, Easing: anim.EasingLinear,
			Body: func() { f.Host.FadeOutOldViews(t) }},
	}

	if legacyNotch && t.IsEnteringFullScreen() {
		tasks = append(tasks, anim.InstantTask("prepare-camera-housing-cover",
			func() { f.Host.PrepareCameraHousingCover(t) }))
	}

	if t.MiddleGeometry != nil {
		mid := *t.MiddleGeometry
		tasks = append(tasks, anim.Task{Name: "close-old-panels", Duration: closeDur, Easing: easing,
			Body: func() { f.Host.CloseOldPanels(t, mid) }})
	}

	tasks = append(tasks, anim.InstantTask("update-hidden-views-and-constraints",
		func() { f.Host.UpdateHiddenViewsAndConstraints(t) }))

	if t.IsEnteringMusicMode() {
		tasks = append(tasks, anim.Task{Name: "move-window-for-music-mode", Duration: closeDur, Easing: easing,
			Body: func() { f.Host.MoveWindowForMusicMode(t, t.ToGeometry) }})
	}

	openBody := func() { f.Host.OpenNewPanels(t, t.ToGeometry) }
	if fuseFadeIn {
		openBody = func() {
			f.Host.OpenNewPanels(t, t.ToGeometry)
			f.Host.FadeInNewViews(t)
		}
	}
	tasks = append(tasks, anim.Task{Name: "open-new-panels", Duration: openDur, Easing: easing, Body: openBody})

	if !fuseFadeIn {
		tasks = append(tasks, anim.Task{Name: "fade-in-new-views", Duration: fadeDur, Easing: anim.EasingLinear,
			Body: func() { f.Host.FadeInNewViews(t) }})
	}

	if legacyNotch && t.IsExitingFullScreen() {
		tasks = append(tasks, anim.InstantTask("finish-camera-housing-cover",
			func() { f.Host.FinishCameraHousingCover(t) }))
	}

	tasks = append(tasks, anim.InstantTask("post-transition", func() { f.Host.DidCompleteTransition(t) }))
	t.Tasks = tasks
}

// legacyNotchScreen reports whether the transition touches legacy full
// screen on a screen with a camera housing.
func (f *Factory) legacyNotchScreen(t *Transition) bool {
	var st *LayoutState
	switch {
	case t.IsEnteringFullScreen():
		st = t.ToLayout
	case t.IsExitingFullScreen():
		st = t.FromLayout
	default:
		return false
	}
	if !st.Spec.IsLegacyStyle || f.Screens == nil {
		return false
	}
	sc, ok := f.Screens.Screen(t.FromGeometry.ScreenID)
	return ok && sc.CameraHousingHeight > 0
}
