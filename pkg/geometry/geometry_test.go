package geometry

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/oakmound/oak/v4/alg/floatgeom"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func pt(x, y float64) floatgeom.Point2 {
	return floatgeom.Point2{x, y}
}

// toGeometry converts a polygon to a simplefeatures geometry through WKT.
func toGeometry(t *testing.T, p Polygon) geom.Geometry {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("POLYGON((")
	ring := make(Polygon, 0, len(p)+1)
	ring = append(ring, p...)
	ring = append(ring, p[0])
	for i, v := range ring {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%.12f %.12f", v.X(), v.Y())
	}
	sb.WriteString("))")

	g, err := geom.UnmarshalWKT(sb.String())
	require.NoError(t, err)
	return g
}

func TestRectangleCorners_RoundTrip(t *testing.T) {
	for _, size := range [][2]float64{{90, 44}, {1, 1}, {300, 20}} {
		poly := RectangleCorners(pt(120, -35), size[0], size[1], 0)
		require.Len(t, poly, 4)

		b := Bounds(poly)
		assert.InDelta(t, size[0], b.Max.X()-b.Min.X(), tolerance)
		assert.InDelta(t, size[1], b.Max.Y()-b.Min.Y(), tolerance)
	}
}

func TestRectangleCorners_Order(t *testing.T) {
	poly := RectangleCorners(pt(0, 0), 4, 2, 0)

	assert.Equal(t, Polygon{pt(-2, -1), pt(2, -1), pt(2, 1), pt(-2, 1)}, poly)
}

func TestRectangleCorners_QuarterTurnSwapsExtents(t *testing.T) {
	poly := RectangleCorners(pt(10, 10), 90, 44, math.Pi/2)

	b := Bounds(poly)
	assert.InDelta(t, 44, b.Max.X()-b.Min.X(), 1e-6)
	assert.InDelta(t, 90, b.Max.Y()-b.Min.Y(), 1e-6)
	assert.InDelta(t, 10, Centroid(poly).X(), 1e-6)
	assert.InDelta(t, 10, Centroid(poly).Y(), 1e-6)
}

func TestChamferedPolygon_Shape(t *testing.T) {
	poly := ChamferedPolygon(pt(0, 0), 20, 10, 0, 3, 2)

	require.Len(t, poly, 8)
	assert.Equal(t, pt(-7, -5), poly[0])
	assert.Equal(t, pt(7, -5), poly[1])
	assert.Equal(t, pt(10, -3), poly[2])
	assert.Equal(t, pt(10, 3), poly[3])
	assert.Equal(t, pt(7, 5), poly[4])
	assert.Equal(t, pt(-7, 5), poly[5])
	assert.Equal(t, pt(-10, 3), poly[6])
	assert.Equal(t, pt(-10, -3), poly[7])
}

func TestChamferedPolygon_ClampsInsets(t *testing.T) {
	poly := ChamferedPolygon(pt(0, 0), 10, 6, 0, 100, -4)

	// insetX clamps to half-1 = 4, insetY to 0
	assert.Equal(t, pt(-1, -3), poly[0])
	assert.Equal(t, pt(1, -3), poly[1])
	assert.Equal(t, pt(5, -3), poly[2])
	assert.Equal(t, pt(5, 3), poly[3])
}

func TestClampInset(t *testing.T) {
	tests := []struct {
		inset, half, want float64
	}{
		{inset: 3, half: 10, want: 3},
		{inset: 12, half: 10, want: 9},
		{inset: -1, half: 10, want: 0},
		{inset: 5, half: 0.5, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampInset(tt.inset, tt.half), "inset=%v half=%v", tt.inset, tt.half)
	}
}

func TestAxes_SkipsDegenerateEdges(t *testing.T) {
	full := ChamferedPolygon(pt(0, 0), 40, 20, 0.3, 0, 0)
	assert.Len(t, Axes(full), 4)

	cut := ChamferedPolygon(pt(0, 0), 40, 20, 0.3, 4, 4)
	axes := Axes(cut)
	assert.Len(t, axes, 8)
	for _, a := range axes {
		assert.InDelta(t, 1, Length(a), tolerance)
	}
}

func TestAxes_PointOutward(t *testing.T) {
	poly := RectangleCorners(pt(0, 0), 4, 2, 0)
	axes := Axes(poly)
	require.Len(t, axes, 4)

	for i, a := range axes {
		mid := poly[i].Add(poly[(i+1)%len(poly)]).MulConst(0.5)
		assert.Greater(t, Dot(mid, a), 0.0, "axis %d points inward", i)
	}
}

func TestProject(t *testing.T) {
	poly := RectangleCorners(pt(5, 0), 4, 2, 0)

	lo, hi := Project(poly, pt(1, 0))
	assert.InDelta(t, 3, lo, tolerance)
	assert.InDelta(t, 7, hi, tolerance)

	lo, hi = Project(poly, pt(0, 1))
	assert.InDelta(t, -1, lo, tolerance)
	assert.InDelta(t, 1, hi, tolerance)
}

func TestOverlap_MTVPointsFromAToB(t *testing.T) {
	a := RectangleCorners(pt(0, 0), 60, 40, 0)
	b := RectangleCorners(pt(50, 5), 60, 40, 0)

	mtv, hit := Overlap(a, b)
	require.True(t, hit)
	assert.InDelta(t, 10, mtv.X(), tolerance)
	assert.InDelta(t, 0, mtv.Y(), tolerance)

	mtv, hit = Overlap(b, a)
	require.True(t, hit)
	assert.InDelta(t, -10, mtv.X(), tolerance)
}

func TestOverlap_TouchingDoesNotCollide(t *testing.T) {
	a := RectangleCorners(pt(0, 0), 60, 40, 0)
	b := RectangleCorners(pt(60, 0), 60, 40, 0)

	mtv, hit := Overlap(a, b)
	assert.False(t, hit)
	assert.Equal(t, floatgeom.Point2{}, mtv)
}

func TestOverlap_EmptyPolygon(t *testing.T) {
	a := RectangleCorners(pt(0, 0), 60, 40, 0)

	assert.False(t, Collides(a, nil))
	assert.False(t, Collides(nil, a))
}

func TestOverlap_Symmetric(t *testing.T) {
	for i := 0; i < 60; i++ {
		fi := float64(i)
		a := ChamferedPolygon(pt(0, 0), 90, 44, 0.1*fi, 8, 6)
		b := ChamferedPolygon(pt(fi*2.5-40, fi*1.5-30), 80, 40, -0.07*fi, 4, 4)

		mtvAB, hitAB := Overlap(a, b)
		mtvBA, hitBA := Overlap(b, a)
		assert.Equal(t, hitAB, hitBA, "case %d", i)
		if hitAB {
			assert.InDelta(t, Length(mtvAB), Length(mtvBA), 1e-6, "case %d", i)
		}
	}
}

func TestOverlap_SeparatedAlongXNeverCollide(t *testing.T) {
	const wa, ha, wb, hb = 90.0, 44.0, 60.0, 30.0
	minSep := (wa + wb) / 2

	for _, extra := range []float64{0.001, 0.5, 3, 40, 500} {
		for _, dy := range []float64{-40, -10, 0, 7, 35} {
			for _, sign := range []float64{-1, 1} {
				a := RectangleCorners(pt(100, 200), wa, ha, 0)
				b := RectangleCorners(pt(100+sign*(minSep+extra), 200+dy), wb, hb, 0)
				assert.False(t, Collides(a, b), "extra=%v dy=%v sign=%v", extra, dy, sign)
			}
		}
	}
}

func TestOverlap_ZeroInsetChamferMatchesRectangle(t *testing.T) {
	for i := 0; i < 80; i++ {
		fi := float64(i)
		centerA, centerB := pt(0, 0), pt(fi*1.7-60, 25*math.Sin(fi))
		angleA, angleB := 0.05*fi, 1.3-0.04*fi

		rectA := RectangleCorners(centerA, 90, 44, angleA)
		rectB := RectangleCorners(centerB, 70, 30, angleB)
		octA := ChamferedPolygon(centerA, 90, 44, angleA, 0, 0)
		octB := ChamferedPolygon(centerB, 70, 30, angleB, 0, 0)

		mtvRect, hitRect := Overlap(rectA, rectB)
		mtvOct, hitOct := Overlap(octA, octB)
		require.Equal(t, hitRect, hitOct, "case %d", i)
		assert.InDelta(t, Length(mtvRect), Length(mtvOct), 1e-6, "case %d", i)
	}
}

func TestOverlap_AgreesWithSimplefeatures(t *testing.T) {
	tests := []struct {
		name string
		a, b Polygon
	}{
		{
			name: "parked cars nose to tail",
			a:    ChamferedPolygon(pt(0, 0), 90, 44, 0, 8, 6),
			b:    ChamferedPolygon(pt(70, 0), 90, 44, 0, 8, 6),
		},
		{
			name: "well apart",
			a:    ChamferedPolygon(pt(0, 0), 90, 44, 0, 8, 6),
			b:    ChamferedPolygon(pt(200, 10), 90, 44, 0, 8, 6),
		},
		{
			name: "rotated into corner",
			a:    ChamferedPolygon(pt(0, 0), 90, 44, 0.6, 8, 6),
			b:    ChamferedPolygon(pt(60, 30), 90, 44, 0, 8, 6),
		},
		{
			name: "corners cut apart",
			// bounding boxes overlap, but the chamfers leave clearance
			a: ChamferedPolygon(pt(0, 0), 40, 40, 0, 15, 15),
			b: ChamferedPolygon(pt(38, 38), 40, 40, 0, 15, 15),
		},
		{
			name: "car against curb",
			a:    ChamferedPolygon(pt(300, 540), 90, 44, -0.2, 8, 6),
			b:    RectangleCorners(pt(512, 560), 1024, 20, 0),
		},
		{
			name: "car above curb",
			a:    ChamferedPolygon(pt(300, 500), 90, 44, 0, 8, 6),
			b:    RectangleCorners(pt(512, 560), 1024, 20, 0),
		},
		{
			name: "contained",
			a:    RectangleCorners(pt(0, 0), 200, 200, 0.25),
			b:    ChamferedPolygon(pt(5, -5), 20, 10, 1, 2, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := geom.Intersects(toGeometry(t, tt.a), toGeometry(t, tt.b))
			assert.Equal(t, want, Collides(tt.a, tt.b))
			assert.Equal(t, want, Collides(tt.b, tt.a))
		})
	}
}

func TestContainsPoint(t *testing.T) {
	rect := RectangleCorners(pt(50, 50), 40, 20, 0)
	rotated := RectangleCorners(pt(0, 0), 40, 4, math.Pi/4)

	tests := []struct {
		name  string
		poly  Polygon
		point floatgeom.Point2
		want  bool
	}{
		{name: "centre", poly: rect, point: pt(50, 50), want: true},
		{name: "outside left", poly: rect, point: pt(20, 50), want: false},
		{name: "outside below", poly: rect, point: pt(50, 61), want: false},
		{name: "level with horizontal edge", poly: rect, point: pt(10, 40), want: false},
		{name: "rotated diagonal", poly: rotated, point: pt(10, 10), want: true},
		{name: "rotated off diagonal", poly: rotated, point: pt(10, -10), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPoint(tt.poly, tt.point))
		})
	}
}

func TestCentroid(t *testing.T) {
	poly := ChamferedPolygon(pt(-12, 7), 90, 44, 0.9, 8, 6)

	c := Centroid(poly)
	assert.InDelta(t, -12, c.X(), 1e-9)
	assert.InDelta(t, 7, c.Y(), 1e-9)
	assert.Equal(t, floatgeom.Point2{}, Centroid(nil))
}

func TestNormalize(t *testing.T) {
	n := Normalize(pt(3, 4))
	assert.InDelta(t, 0.6, n.X(), tolerance)
	assert.InDelta(t, 0.8, n.Y(), tolerance)

	assert.Equal(t, floatgeom.Point2{}, Normalize(pt(0, 0)))
}
