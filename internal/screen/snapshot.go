package screen

import (
	"fmt"

	"github.com/yourusername/playwin/internal/geometry"
)

// ParseSnapshot extracts the attached screens from the player shell's dump
// payload. The shell reports each display as
//
//	{"id": "...", "frame": {...}, "visibleFrame": {...},
//	 "cameraHousingHeight": 0, "isMain": true}
//
// Displays missing an ID or a frame are skipped; an empty display list is
// an error since the engine cannot fit anything without a screen.
func ParseSnapshot(raw map[string]interface{}) (*Set, error) {
	displays, ok := raw["displays"].([]interface{})
	if !ok || len(displays) == 0 {
		return nil, fmt.Errorf("snapshot has no displays")
	}

	var screens []Screen
	for _, d := range displays {
		display, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := display["id"].(string)
		if !ok || id == "" {
			continue
		}

		sc := Screen{
			ID:                  id,
			IsMain:              toBool(display["isMain"]),
			CameraHousingHeight: toFloat64(display["cameraHousingHeight"]),
		}
		frame, ok := parseFrame(display["frame"])
		if !ok {
			continue
		}
		sc.Frame = frame
		if visible, ok := parseFrame(display["visibleFrame"]); ok {
			sc.VisibleFrame = visible
		} else {
			sc.VisibleFrame = frame
		}
		screens = append(screens, sc)
	}

	if len(screens) == 0 {
		return nil, fmt.Errorf("snapshot displays all malformed")
	}
	return NewSet(screens...), nil
}

func parseFrame(v interface{}) (geometry.Rect, bool) {
	frame, ok := v.(map[string]interface{})
	if !ok {
		return geometry.Rect{}, false
	}
	r := geometry.Rect{
		X:      toFloat64(frame["x"]),
		Y:      toFloat64(frame["y"]),
		Width:  toFloat64(frame["width"]),
		Height: toFloat64(frame["height"]),
	}
	if r.Width <= 0 || r.Height <= 0 {
		return geometry.Rect{}, false
	}
	return r, true
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
