package element

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	const w, h = DefaultSlideWidth, DefaultSlideHeight

	tests := []struct {
		name string
		x, y float64
		want GridPosition
	}{
		{"top left corner", 0, 0, TopLeft},
		{"top middle", w * 0.45, 0, Top},
		{"top right corner", w * 0.9, 0, TopRight},
		{"left middle", 0, h * 0.45, Left},
		{"dead center", w * 0.45, h * 0.45, Center},
		{"right middle", w * 0.9, h * 0.45, Right},
		{"bottom left corner", 0, h * 0.9, BottomLeft},
		{"bottom middle", w * 0.45, h * 0.9, Bottom},
		{"bottom right corner", w * 0.9, h * 0.9, BottomRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.x, tt.y, w*0.05, h*0.05, w, h)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyCenterBand(t *testing.T) {
	// Any rectangle whose center fractions both land strictly between the
	// band thresholds is center.
	const w, h = DefaultSlideWidth, DefaultSlideHeight
	for _, fx := range []float64{0.34, 0.45, 0.5, 0.6, 0.65} {
		for _, fy := range []float64{0.34, 0.45, 0.5, 0.6, 0.65} {
			got := Classify(w*fx, h*fy, 0, 0, w, h)
			assert.Equal(t, Center, got, "center fractions (%v, %v)", fx, fy)
		}
	}
}

func TestClassifyScaleInvariant(t *testing.T) {
	// Scaling the rectangle and the canvas by the same factor cannot change
	// the zone.
	rects := []struct{ x, y, w, h float64 }{
		{0, 0, 100, 50},
		{800, 450, 100, 50},
		{50, 900, 300, 80},
		{700, 100, 150, 150},
	}
	for _, r := range rects {
		base := Classify(r.x, r.y, r.w, r.h, 1000, 1000)
		for _, k := range []float64{0.5, 3, 9144, 1e6} {
			scaled := Classify(r.x*k, r.y*k, r.w*k, r.h*k, 1000*k, 1000*k)
			assert.Equal(t, base, scaled, "rect %+v scaled by %v", r, k)
		}
	}
}

func TestClassifyNeverComposesCenter(t *testing.T) {
	// Sweep the canvas, including overflow beyond the slide bounds: every
	// label must be one of the nine zones and "center" never appears joined
	// to another band.
	const w, h = DefaultSlideWidth, DefaultSlideHeight
	for fx := -0.5; fx <= 1.5; fx += 0.1 {
		for fy := -0.5; fy <= 1.5; fy += 0.1 {
			got := Classify(w*fx, h*fy, w*0.1, h*0.1, w, h)
			assert.Contains(t, GridPositions, got)
			if got != Center {
				assert.False(t, strings.Contains(string(got), "center"),
					"composite label %q contains center", got)
			}
		}
	}
}

func TestClassifyOverflowDegradesGracefully(t *testing.T) {
	const w, h = DefaultSlideWidth, DefaultSlideHeight
	assert.Equal(t, TopLeft, Classify(-w, -h, w*0.1, h*0.1, w, h))
	assert.Equal(t, BottomRight, Classify(w*2, h*2, w*0.1, h*0.1, w, h))
}

func TestParseGridPosition(t *testing.T) {
	for _, p := range GridPositions {
		assert.Equal(t, p, ParseGridPosition(string(p)))
	}

	// Unknown labels collapse to center.
	assert.Equal(t, Center, ParseGridPosition("right_top"))
	assert.Equal(t, Center, ParseGridPosition("left_top"))
	assert.Equal(t, Center, ParseGridPosition(""))
	assert.Equal(t, Center, ParseGridPosition("bottom_center_left"))
}

func TestGridPoint(t *testing.T) {
	const w, h = DefaultSlideWidth, DefaultSlideHeight

	center := GridPoint(Center, w, h)
	assert.Equal(t, Point{X: w / 2, Y: h / 2}, center)

	topRight := GridPoint(TopRight, w, h)
	assert.Greater(t, topRight.X, w/2)
	assert.Less(t, topRight.Y, h/2)

	// Edge zones keep a margin inside the canvas on the anchored axis.
	for _, pos := range GridPositions {
		pt := GridPoint(pos, w, h)
		assert.GreaterOrEqual(t, pt.X, 0.0, "zone %s", pos)
		assert.LessOrEqual(t, pt.X, w, "zone %s", pos)
		assert.GreaterOrEqual(t, pt.Y, 0.0, "zone %s", pos)
		assert.LessOrEqual(t, pt.Y, h, "zone %s", pos)
	}
}
