package output

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/playwin/internal/geometry"
	"github.com/yourusername/playwin/internal/layout"
)

// PrintGeometryTable prints the derived rectangles of a geometry
func PrintGeometryTable(g geometry.WindowGeometry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Component", "X", "Y", "Width", "Height")

	viewport := g.ViewportFrameInWindow()
	video := g.VideoFrameInWindow()

	table.Append("window",
		fmt.Sprintf("%.1f", g.WindowFrame.X),
		fmt.Sprintf("%.1f", g.WindowFrame.Y),
		fmt.Sprintf("%.1f", g.WindowFrame.Width),
		fmt.Sprintf("%.1f", g.WindowFrame.Height),
	)
	table.Append("viewport",
		fmt.Sprintf("%.1f", viewport.X),
		fmt.Sprintf("%.1f", viewport.Y),
		fmt.Sprintf("%.1f", viewport.Width),
		fmt.Sprintf("%.1f", viewport.Height),
	)
	table.Append("video",
		fmt.Sprintf("%.1f", video.X),
		fmt.Sprintf("%.1f", video.Y),
		fmt.Sprintf("%.1f", video.Width),
		fmt.Sprintf("%.1f", video.Height),
	)

	table.Render()

	fmt.Printf("mode=%s  fit=%s  screen=%s  aspect=%.4f\n",
		g.Mode, g.FitOption, g.ScreenID, g.VideoAspect)
	fmt.Printf("outside bars: %s\n", formatQuad(g.OutsideBars))
	fmt.Printf("inside bars:  %s\n", formatQuad(g.InsideBars))
	fmt.Printf("margins:      %s\n", formatQuad(g.ViewportMargins))
}

// PrintMusicGeometryTable prints the components of a music-mode geometry
func PrintMusicGeometryTable(m geometry.MusicModeGeometry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Component", "Value")

	table.Append("window", formatRect(m.WindowFrame))
	video := m.VideoSize()
	table.Append("video", fmt.Sprintf("%.0fx%.0f (visible: %v)", video.Width, video.Height, m.IsVideoVisible))
	table.Append("osc height", fmt.Sprintf("%.0f", geometry.MusicModeOSCHeight))
	table.Append("playlist", fmt.Sprintf("%.0f (visible: %v)", m.PlaylistHeight, m.IsPlaylistVisible))
	table.Append("aspect", fmt.Sprintf("%.4f", m.VideoAspect))

	table.Render()
}

// PrintTransitionTable prints a transition's task plan
func PrintTransitionTable(t *layout.Transition) {
	fmt.Printf("Transition: %s\n", t.Name)
	fmt.Printf("  from: %s %s\n", t.FromLayout.Spec.Mode, formatRect(t.FromGeometry.WindowFrame))
	fmt.Printf("  to:   %s %s\n", t.ToLayout.Spec.Mode, formatRect(t.ToGeometry.WindowFrame))
	if t.MiddleGeometry != nil {
		fmt.Printf("  via:  %s\n", formatRect(t.MiddleGeometry.WindowFrame))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Task", "Duration", "Easing")

	for i, task := range t.Tasks {
		dur := "instant"
		if task.Duration > 0 {
			dur = task.Duration.String()
		}
		easing := string(task.Easing)
		if easing == "" {
			easing = "-"
		}
		table.Append(fmt.Sprintf("%d", i+1), task.Name, dur, easing)
	}

	table.Render()
}

func formatQuad(q geometry.BoxQuad) string {
	return fmt.Sprintf("top=%.1f trailing=%.1f bottom=%.1f leading=%.1f",
		q.Top, q.Trailing, q.Bottom, q.Leading)
}
