package game

import (
	"math"

	"github.com/oakmound/oak/v4/alg/floatgeom"
)

// slider is a horizontal bar mapping a pointer x onto [min, max].
type slider struct {
	bar      floatgeom.Rect2
	min, max float64
}

// newGapSlider places the gap slider in the top-right corner of a screen width wide.
func newGapSlider(width, min, max float64) slider {
	const (
		w      = 220.0
		h      = 14.0
		margin = 20.0
	)
	return slider{
		bar: floatgeom.Rect2{
			Min: floatgeom.Point2{width - margin - w, margin + 18},
			Max: floatgeom.Point2{width - margin, margin + 18 + h},
		},
		min: min,
		max: max,
	}
}

// hit reports whether p grabs the bar. The grab area extends a few pixels around it.
func (s slider) hit(p floatgeom.Point2) bool {
	const pad = 6
	return p.X() >= s.bar.Min.X()-pad && p.X() <= s.bar.Max.X()+pad &&
		p.Y() >= s.bar.Min.Y()-pad && p.Y() <= s.bar.Max.Y()+pad
}

// value maps x to the slider range, clamped at both ends.
func (s slider) value(x float64) float64 {
	w := s.bar.Max.X() - s.bar.Min.X()
	if w <= 0 {
		return s.min
	}
	f := math.Max(0, math.Min(1, (x-s.bar.Min.X())/w))
	return s.min + f*(s.max-s.min)
}

// fraction is how far along the bar v sits.
func (s slider) fraction(v float64) float64 {
	if s.max <= s.min {
		return 1
	}
	return math.Max(0, math.Min(1, (v-s.min)/(s.max-s.min)))
}
