package lot

import "math"

// Bounds is the drawable area. Cars wrap horizontally and are held inside a margin
// band vertically.
type Bounds struct {
	Width  float64
	Height float64
	Margin float64
}

// Wrap applies the edge rules to a car centre: leaving one side reappears on the other,
// offset by halfWidth so the car slides in rather than popping, and y is clamped to the
// margin band.
func (b Bounds) Wrap(x, y, halfWidth float64) (float64, float64) {
	switch {
	case x < -halfWidth:
		x = b.Width + halfWidth
	case x > b.Width+halfWidth:
		x = -halfWidth
	}
	return x, b.clampY(y)
}

// Clamp holds a point inside the canvas and the vertical margin band. Used for drags,
// which never wrap.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return math.Max(0, math.Min(x, b.Width)), b.clampY(y)
}

func (b Bounds) clampY(y float64) float64 {
	return math.Max(b.Margin, math.Min(y, b.Height-b.Margin))
}
