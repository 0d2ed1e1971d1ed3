package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/oakmound/oak/v4/alg/floatgeom"
)

// Epsilon guards divisions by near-zero lengths and denominators.
const Epsilon = 1e-9

// Polygon is an ordered list of vertices. The last vertex connects back to the first.
type Polygon []floatgeom.Point2

// RectangleCorners returns the four corners of a width x height rectangle centred on
// center and rotated by angle radians. Corners are ordered top-left, top-right,
// bottom-right, bottom-left in the unrotated frame (clockwise on a y-down screen).
func RectangleCorners(center floatgeom.Point2, width, height, angle float64) Polygon {
	hw, hh := width/2, height/2
	local := [4]floatgeom.Point2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}

	poly := make(Polygon, 0, len(local))
	for _, p := range local {
		poly = append(poly, center.Add(Rotate(p, angle)))
	}
	return poly
}

// ChamferedPolygon returns an octagon approximating a rounded rectangle: the same
// rectangle as RectangleCorners with every corner cut insetX along the width and
// insetY along the height. Insets are clamped to [0, half-extent-1].
//
// With zero insets the octagon keeps eight vertices where each corner appears twice.
// The duplicated vertices produce zero-length edges, which Axes skips.
func ChamferedPolygon(center floatgeom.Point2, width, height, angle, insetX, insetY float64) Polygon {
	hw, hh := width/2, height/2
	ix := ClampInset(insetX, hw)
	iy := ClampInset(insetY, hh)

	local := [8]floatgeom.Point2{
		{-hw + ix, -hh},
		{hw - ix, -hh},
		{hw, -hh + iy},
		{hw, hh - iy},
		{hw - ix, hh},
		{-hw + ix, hh},
		{-hw, hh - iy},
		{-hw, -hh + iy},
	}

	poly := make(Polygon, 0, len(local))
	for _, p := range local {
		poly = append(poly, center.Add(Rotate(p, angle)))
	}
	return poly
}

// ClampInset limits a corner inset to [0, half-1]. Extents of two pixels or less
// leave no room for a cut and always clamp to zero.
func ClampInset(inset, half float64) float64 {
	limit := half - 1
	if limit < 0 {
		limit = 0
	}
	return clamp(inset, 0, limit)
}

// Rotate rotates p about the origin by angle radians.
func Rotate(p floatgeom.Point2, angle float64) floatgeom.Point2 {
	sin, cos := math.Sincos(angle)
	return floatgeom.Point2{
		p.X()*cos - p.Y()*sin,
		p.X()*sin + p.Y()*cos,
	}
}

// Axes returns one outward unit normal per edge. Edges shorter than Epsilon carry no
// direction and are skipped.
func Axes(p Polygon) []floatgeom.Point2 {
	axes := make([]floatgeom.Point2, 0, len(p))
	for i := range p {
		edge := p[(i+1)%len(p)].Sub(p[i])
		length := math.Hypot(edge.X(), edge.Y())
		if length < Epsilon {
			continue
		}
		axes = append(axes, floatgeom.Point2{edge.Y() / length, -edge.X() / length})
	}
	return axes
}

// Project returns the interval covered by p on axis.
func Project(p Polygon, axis floatgeom.Point2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p {
		d := Dot(v, axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Overlap runs the separating axis test on two convex polygons. When they intersect it
// returns the minimum translation vector: the axis of least overlap, pointing from a's
// centroid towards b's, scaled by the overlap depth. Touching edges do not collide.
func Overlap(a, b Polygon) (mtv floatgeom.Point2, collides bool) {
	if len(a) == 0 || len(b) == 0 {
		return floatgeom.Point2{}, false
	}

	axes := append(Axes(a), Axes(b)...)
	if len(axes) == 0 {
		return floatgeom.Point2{}, false
	}

	minOverlap := math.Inf(1)
	var best floatgeom.Point2
	for _, axis := range axes {
		loA, hiA := Project(a, axis)
		loB, hiB := Project(b, axis)
		overlap := math.Min(hiA, hiB) - math.Max(loA, loB)
		if overlap <= 0 {
			return floatgeom.Point2{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			best = axis
		}
	}

	if Dot(Centroid(b).Sub(Centroid(a)), best) < 0 {
		best = best.MulConst(-1)
	}
	return best.MulConst(minOverlap), true
}

// Collides reports whether a and b overlap.
func Collides(a, b Polygon) bool {
	_, hit := Overlap(a, b)
	return hit
}

// ContainsPoint is an even-odd ray crossing test.
func ContainsPoint(p Polygon, pt floatgeom.Point2) bool {
	inside := false
	x, y := pt.X(), pt.Y()
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		xi, yi := p[i].X(), p[i].Y()
		xj, yj := p[j].X(), p[j].Y()
		if (yi > y) == (yj > y) {
			continue
		}
		denom := yj - yi
		if math.Abs(denom) < Epsilon {
			denom = Epsilon
		}
		if x < (xj-xi)*(y-yi)/denom+xi {
			inside = !inside
		}
	}
	return inside
}

// Centroid is the arithmetic mean of the vertices.
func Centroid(p Polygon) floatgeom.Point2 {
	if len(p) == 0 {
		return floatgeom.Point2{}
	}
	var sum floatgeom.Point2
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.MulConst(1 / float64(len(p)))
}

// Bounds returns the axis-aligned box enclosing p.
func Bounds(p Polygon) floatgeom.Rect2 {
	if len(p) == 0 {
		return floatgeom.Rect2{}
	}
	r := floatgeom.Rect2{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r.Min = floatgeom.Point2{math.Min(r.Min.X(), v.X()), math.Min(r.Min.Y(), v.Y())}
		r.Max = floatgeom.Point2{math.Max(r.Max.X(), v.X()), math.Max(r.Max.Y(), v.Y())}
	}
	return r
}

// Dot is the scalar product of a and b.
func Dot(a, b floatgeom.Point2) float64 {
	return a.X()*b.X() + a.Y()*b.Y()
}

// Length is the euclidean length of v.
func Length(v floatgeom.Point2) float64 {
	return math.Hypot(v.X(), v.Y())
}

// Normalize scales v to unit length. Vectors shorter than Epsilon are returned as zero.
func Normalize(v floatgeom.Point2) floatgeom.Point2 {
	l := Length(v)
	if l < Epsilon {
		return floatgeom.Point2{}
	}
	return v.MulConst(1 / l)
}

// String renders the polygon for debug overlays and logs.
func (p Polygon) String() string {
	parts := make([]string, 0, len(p))
	for _, v := range p {
		parts = append(parts, fmt.Sprintf("(%.1f,%.1f)", v.X(), v.Y()))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
