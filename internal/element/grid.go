package element

import "log/slog"

// GridPosition is one of nine symbolic zones partitioning a slide by thirds
// on each axis.
type GridPosition string

const (
	TopLeft     GridPosition = "top_left"
	Top         GridPosition = "top"
	TopRight    GridPosition = "top_right"
	Left        GridPosition = "left"
	Center      GridPosition = "center"
	Right       GridPosition = "right"
	BottomLeft  GridPosition = "bottom_left"
	Bottom      GridPosition = "bottom"
	BottomRight GridPosition = "bottom_right"
)

// GridPositions lists every valid grid zone.
var GridPositions = []GridPosition{
	TopLeft, Top, TopRight,
	Left, Center, Right,
	BottomLeft, Bottom, BottomRight,
}

// ParseGridPosition maps a label string onto a known grid zone.
// Unknown labels fall back to Center; the composition in Classify cannot
// produce one, but downstream matching relies on the label set being closed.
func ParseGridPosition(label string) GridPosition {
	for _, p := range GridPositions {
		if string(p) == label {
			return p
		}
	}
	slog.Debug("unknown grid label, defaulting to center", "label", label)
	return Center
}

// Bands partitioning each normalized axis into thirds.
const (
	lowBand  = 0.33
	highBand = 0.66
)

// Classify maps an element rectangle onto a grid zone using the element's
// center point, normalized by the slide dimensions:
//
//	top_left     top     top_right
//	left         center  right
//	bottom_left  bottom  bottom_right
//
// The vertical band comes first in composite labels and "center" never
// appears in a composite: a centered row or column collapses to the other
// axis's label alone. Elements overflowing the canvas are not clamped; the
// same thresholds apply to out-of-range fractions.
func Classify(x, y, width, height, slideWidth, slideHeight float64) GridPosition {
	cx := (x + width/2) / slideWidth
	cy := (y + height/2) / slideHeight

	var h string
	switch {
	case cx <= lowBand:
		h = "left"
	case cx >= highBand:
		h = "right"
	default:
		h = "center"
	}

	var v string
	switch {
	case cy <= lowBand:
		v = "top"
	case cy >= highBand:
		v = "bottom"
	default:
		v = "center"
	}

	var label string
	switch {
	case v == "center" && h == "center":
		label = "center"
	case v == "center":
		label = h
	case h == "center":
		label = v
	default:
		label = v + "_" + h
	}

	slog.Debug("classified element", "center_x", cx, "center_y", cy, "grid", label)
	return ParseGridPosition(label)
}

// GridPoint returns the canvas coordinate an element should be moved to when
// the user names a grid zone, in EMU. Edge zones keep a small margin so the
// element does not sit flush against the canvas boundary.
func GridPoint(pos GridPosition, slideWidth, slideHeight float64) Point {
	const margin = 100000.0
	switch pos {
	case Top:
		return Point{X: slideWidth / 2, Y: margin}
	case Bottom:
		return Point{X: slideWidth / 2, Y: slideHeight - 500000}
	case Left:
		return Point{X: margin, Y: slideHeight / 2}
	case Right:
		return Point{X: slideWidth - margin, Y: slideHeight / 2}
	case TopLeft:
		return Point{X: margin, Y: margin}
	case TopRight:
		return Point{X: slideWidth - margin, Y: margin}
	case BottomLeft:
		return Point{X: margin, Y: slideHeight - margin}
	case BottomRight:
		return Point{X: slideWidth - margin, Y: slideHeight - margin}
	default:
		return Point{X: slideWidth / 2, Y: slideHeight / 2}
	}
}
