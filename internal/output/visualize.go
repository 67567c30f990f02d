package output

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/screen"
)

// VisualizationOptions controls the geometry visualization rendering
type VisualizationOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// scaling maps pixel space (bottom-left, Y up) to canvas space (top-left,
// Y down), compressing Y by 2 since terminal cells are roughly 2:1.
type scaling struct {
	bounds geometry.Rect
	scaleX float64
	scaleY float64
}

func newScaling(bounds geometry.Rect, termWidth, termHeight int) scaling {
	availWidth := termWidth - 4
	availHeight := termHeight - 4
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}
	return scaling{
		bounds: bounds,
		scaleX: float64(availWidth) / bounds.Width,
		scaleY: float64(availHeight) / bounds.Height / 2.0,
	}
}

// rectToCanvas converts a pixel rect to canvas coordinates, flipping Y so
// the screen's top edge is the canvas's first row.
func (s scaling) rectToCanvas(r geometry.Rect) (x, y, w, h int) {
	x = 2 + int((r.X-s.bounds.X)*s.scaleX)
	w = int(math.Round(r.Width * s.scaleX))
	h = int(math.Round(r.Height * s.scaleY))
	topFromBounds := s.bounds.MaxY() - r.MaxY()
	y = 2 + int(topFromBounds*s.scaleY)
	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}
	return
}

// VisualizeGeometry renders the window, viewport, and video rects of a
// geometry on its screen as nested boxes.
func VisualizeGeometry(g geometry.WindowGeometry, sc screen.Screen, opts VisualizationOptions) string {
	s := newScaling(sc.Frame, opts.MaxWidth, opts.MaxHeight)
	canvasH := 4 + int(sc.Frame.Height*s.scaleY)
	canvas := NewCanvas(opts.MaxWidth, canvasH, opts.UseUnicode)

	// Screen boundary, then visible frame, then the window's nesting.
	sx, sy, sw, sh := s.rectToCanvas(sc.Frame)
	canvas.DrawBox(sx, sy, sw, sh)
	canvas.DrawTextCentered(sx, sy, sw, fmt.Sprintf(" screen %s ", g.ScreenID))

	windowRect := g.WindowFrame
	viewportRect := g.ViewportFrameInWindow()
	viewportRect.X += windowRect.X
	viewportRect.Y += windowRect.Y
	videoRect := g.VideoFrameInWindow()
	videoRect.X += windowRect.X
	videoRect.Y += windowRect.Y

	wx, wy, ww, wh := s.rectToCanvas(windowRect)
	canvas.DrawBox(wx, wy, ww, wh)
	canvas.DrawTextCentered(wx, wy, ww, " window ")

	px, py, pw, ph := s.rectToCanvas(viewportRect)
	canvas.DrawBox(px, py, pw, ph)

	vx, vy, vw, vh := s.rectToCanvas(videoRect)
	canvas.FillRect(vx+1, vy+1, vw-2, vh-2, '▒')
	canvas.DrawBox(vx, vy, vw, vh)
	canvas.DrawTextCentered(vx, vy+vh/2, vw, " video ")

	header := fmt.Sprintf("%s  window=%s  viewport=%.0fx%.0f  video=%.0fx%.0f\n",
		g.Mode, formatRect(g.WindowFrame),
		g.ViewportSize().Width, g.ViewportSize().Height,
		g.VideoSize().Width, g.VideoSize().Height)
	return header + canvas.String() + "\n"
}

// PrintVisualization prints a colored visualization to stdout
func PrintVisualization(g geometry.WindowGeometry, sc screen.Screen, opts VisualizationOptions) {
	header := color.New(color.FgCyan, color.Bold)
	header.Printf("Geometry on screen %s\n", sc.ID)
	fmt.Print(VisualizeGeometry(g, sc, opts))
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("(%.0f,%.0f %.0fx%.0f)", r.X, r.Y, r.Width, r.Height)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")
	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
