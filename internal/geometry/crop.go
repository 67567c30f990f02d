package geometry

import (
	"github.com/yourusername/playwin/internal/logging"
)

// CropVideo shrinks the geometry to show only the cropbox region of the
// video. The cropbox is expressed at unscaledVideoSize scale (typically the
// raw video resolution) and is rescaled to the window's current video scale
// first. A cropbox entirely outside the current video bounds is rejected:
// the geometry is returned unchanged and an error is logged, since a broken
// geometry mid-playback is worse than a stale one.
func (g WindowGeometry) CropVideo(unscaledVideoSize Size, cropbox Rect) WindowGeometry {
	video := g.VideoSize()
	if unscaledVideoSize.Width <= 0 || video.Width <= 0 {
		logging.Error().
			Float64("videoWidth", video.Width).
			Float64("unscaledWidth", unscaledVideoSize.Width).
			Msg("cropVideo: degenerate video size, returning geometry unchanged")
		return g
	}

	scale := video.Width / unscaledVideoSize.Width
	scaled := Rect{
		X:      cropbox.X * scale,
		Y:      cropbox.Y * scale,
		Width:  cropbox.Width * scale,
		Height: cropbox.Height * scale,
	}

	// The scaled cropbox must intersect the current video bounds.
	if scaled.X >= video.Width || scaled.Y >= video.Height ||
		scaled.MaxX() <= 0 || scaled.MaxY() <= 0 {
		logging.Error().
			Float64("cropX", scaled.X).
			Float64("cropY", scaled.Y).
			Float64("videoWidth", video.Width).
			Float64("videoHeight", video.Height).
			Msg("cropVideo: cropbox outside video bounds, returning geometry unchanged")
		return g
	}
	if scaled.Width <= 0 || scaled.Height <= 0 {
		logging.Error().
			Float64("cropWidth", scaled.Width).
			Float64("cropHeight", scaled.Height).
			Msg("cropVideo: degenerate cropbox, returning geometry unchanged")
		return g
	}

	removedW := video.Width - scaled.Width
	removedH := video.Height - scaled.Height

	p := g.params()
	p.WindowFrame = Rect{
		X:      g.WindowFrame.X,
		Y:      g.WindowFrame.Y,
		Width:  g.WindowFrame.Width - removedW,
		Height: g.WindowFrame.Height - removedH,
	}
	p.VideoAspect = scaled.Width / scaled.Height
	p.ViewportMargins = nil
	return New(p)
}

// UncropVideo is the inverse of CropVideo: it grows the window frame by the
// region the crop removed, restores the full video's aspect ratio, then
// refits against current screen constraints. videoDisplayRotatedSize is the
// full (uncropped) video size at raw scale, cropbox the same rect passed to
// CropVideo, and videoScale the display scale the crop was applied at.
func (g WindowGeometry) UncropVideo(videoDisplayRotatedSize Size, cropbox Rect, videoScale float64, opt ScaleOptions) WindowGeometry {
	if videoDisplayRotatedSize.IsZero() || cropbox.Width <= 0 || cropbox.Height <= 0 || videoScale <= 0 {
		logging.Error().
			Float64("fullWidth", videoDisplayRotatedSize.Width).
			Float64("cropWidth", cropbox.Width).
			Float64("videoScale", videoScale).
			Msg("uncropVideo: degenerate inputs, returning geometry unchanged")
		return g
	}

	restoredW := (videoDisplayRotatedSize.Width - cropbox.Width) * videoScale
	restoredH := (videoDisplayRotatedSize.Height - cropbox.Height) * videoScale

	p := g.params()
	p.WindowFrame = Rect{
		X:      g.WindowFrame.X,
		Y:      g.WindowFrame.Y,
		Width:  g.WindowFrame.Width + restoredW,
		Height: g.WindowFrame.Height + restoredH,
	}
	p.VideoAspect = videoDisplayRotatedSize.Aspect()
	p.ViewportMargins = nil
	return New(p).Refit(opt)
}
