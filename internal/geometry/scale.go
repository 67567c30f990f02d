package geometry

import (
	"math"

	"github.com/yourusername/playwin/internal/logging"
)

// ScreenSource resolves the container rect for a screen and fit option.
// Implementations return ok=false when the screen is no longer attached;
// callers skip containment in that case rather than failing.
type ScreenSource interface {
	ContainerFrame(screenID string, fit ScreenFitOption) (Rect, bool)
}

// ScaleOptions carries the preferences and environment a resize operation
// needs. Screens may be nil, which disables all containment.
type ScaleOptions struct {
	// LockViewportToVideoSize forces the viewport to exactly fit the
	// video plus the mode's minimum margins. Some modes force this on
	// regardless of the preference.
	LockViewportToVideoSize bool
	// MoveWindowIntoVisibleScreen allows the keep/center fit options to
	// reposition the window during a resize.
	MoveWindowIntoVisibleScreen bool
	Screens                     ScreenSource
}

// ScaleViewport resizes the window so its viewport approximates the desired
// size, honoring the mode's minimums, the container's maximums, and the
// lock-viewport policy. The window stays visually centered on its previous
// position. With no desired size change this is the identity up to margin
// re-derivation, so it doubles as Refit.
func (g WindowGeometry) ScaleViewport(desired Size, opt ScaleOptions) WindowGeometry {
	lock := opt.LockViewportToVideoSize || g.Mode.LocksViewportToVideoSize()
	minMargins := g.Mode.MinViewportMargins()
	minVideo := g.Mode.MinVideoSize()

	container, haveContainer := g.containerFrame(opt.Screens)

	// Full-screen geometries are pinned to the container outright.
	if g.FitOption.IsFullScreen() && haveContainer {
		p := g.params()
		p.WindowFrame = container
		p.ViewportMargins = nil
		return New(p)
	}

	// Desired viewport can never be smaller than the minimum video size.
	desired = desired.Max(minVideo)

	var maxViewport Size
	if haveContainer {
		maxViewport = Size{
			Width:  container.Width - g.OutsideBars.TotalWidth(),
			Height: container.Height - g.OutsideBars.TotalHeight() - g.TopMarginHeight,
		}
	}

	var viewport Size
	if lock {
		// Clamp before deriving the video size so the derivation can't
		// overshoot the screen, then rebuild the viewport around the
		// video plus the mode's fixed margins.
		if haveContainer {
			desired = desired.Min(maxViewport)
		}
		video := ComputeVideoSize(g.VideoAspect, desired, minMargins, g.Mode)
		viewport = Size{
			Width:  video.Width + minMargins.TotalWidth(),
			Height: video.Height + minMargins.TotalHeight(),
		}
	} else {
		viewport = desired
	}

	// Re-clamp: mode minimum (with room for inside sidebars), mode window
	// width floor, then the container maximum.
	viewport = viewport.Max(g.Mode.MinViewportSize(g.InsideBars))
	if floor := g.Mode.MinWindowWidth() - g.OutsideBars.TotalWidth(); viewport.Width < floor {
		viewport.Width = floor
	}
	if haveContainer {
		viewport = viewport.Min(maxViewport)
	}
	viewport = viewport.Rounded()

	newSize := Size{
		Width:  viewport.Width + g.OutsideBars.TotalWidth(),
		Height: viewport.Height + g.OutsideBars.TotalHeight() + g.TopMarginHeight,
	}
	// Shift the origin by half the size delta so the window grows and
	// shrinks around its center rather than a corner.
	newFrame := Rect{
		X:      math.Round(g.WindowFrame.X - (newSize.Width-g.WindowFrame.Width)/2),
		Y:      math.Round(g.WindowFrame.Y - (newSize.Height-g.WindowFrame.Height)/2),
		Width:  newSize.Width,
		Height: newSize.Height,
	}

	if haveContainer && g.FitOption.ShouldMoveWindowToKeepInContainer(opt.MoveWindowIntoVisibleScreen) {
		newFrame = newFrame.ConstrainedTo(container)
		if g.FitOption == FitCenterInVisible {
			newFrame = newFrame.CenteredIn(container)
		}
	}

	p := g.params()
	p.WindowFrame = newFrame
	p.ViewportMargins = nil
	return New(p)
}

// ScaleVideo resizes the window so the video approximates the desired size.
// The request is first corrected to the geometry's aspect ratio (width
// wins), clamped to the container's maximum video size, then converted into
// a viewport request and delegated to ScaleViewport.
func (g WindowGeometry) ScaleVideo(desiredVideo Size, opt ScaleOptions) WindowGeometry {
	minMargins := g.Mode.MinViewportMargins()

	// Enforce aspect ratio on the request; the width drives.
	video := Size{Width: desiredVideo.Width, Height: desiredVideo.Width / g.VideoAspect}
	if video.Width <= 0 {
		video = Size{Width: desiredVideo.Height * g.VideoAspect, Height: desiredVideo.Height}
	}

	if container, ok := g.containerFrame(opt.Screens); ok {
		maxVideo := Size{
			Width:  container.Width - g.OutsideBars.TotalWidth() - minMargins.TotalWidth(),
			Height: container.Height - g.OutsideBars.TotalHeight() - g.TopMarginHeight - minMargins.TotalHeight(),
		}
		if video.Width > maxVideo.Width {
			video = Size{Width: maxVideo.Width, Height: maxVideo.Width / g.VideoAspect}
		}
		if video.Height > maxVideo.Height {
			video = Size{Width: maxVideo.Height * g.VideoAspect, Height: maxVideo.Height}
		}
	}

	desired := Size{
		Width:  video.Width + minMargins.TotalWidth(),
		Height: video.Height + minMargins.TotalHeight(),
	}
	return g.ScaleViewport(desired, opt)
}

// Refit re-runs ScaleViewport with the current viewport size, reconciling
// the geometry against current screen constraints.
func (g WindowGeometry) Refit(opt ScaleOptions) WindowGeometry {
	return g.ScaleViewport(g.ViewportSize(), opt)
}

// containerFrame resolves the containment rect for this geometry's screen
// and fit option. A missing screen logs at debug level and reports ok=false;
// the caller then skips containment, which is recoverable once the window is
// reassociated with an attached screen.
func (g WindowGeometry) containerFrame(screens ScreenSource) (Rect, bool) {
	if screens == nil || g.FitOption == FitNone {
		return Rect{}, false
	}
	container, ok := screens.ContainerFrame(g.ScreenID, g.FitOption)
	if !ok {
		logging.Debug().
			Str("screenId", g.ScreenID).
			Str("fitOption", g.FitOption.String()).
			Msg("screen not attached, skipping containment")
		return Rect{}, false
	}
	return container, true
}
