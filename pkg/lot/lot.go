package lot

import (
	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/oakmound/oak/v4/alg/floatgeom"
)

const (
	// CurbClearance is the strip of road left between the parking box and the curb.
	CurbClearance = 4.0
	// SpawnClearance separates the spawn lane from the parked row.
	SpawnClearance = 20.0
)

// Obstacle labels, reported in collision diagnostics.
const (
	LabelRearCar  = "rear car"
	LabelFrontCar = "front car"
	LabelCurb     = "curb"
)

// Obstacle is a parked car. Obstacles never move within a level.
type Obstacle struct {
	Label  string
	X, Y   float64 // Centre
	Width  float64 // Along the angle
	Height float64
	Angle  float64
	InsetX float64
	InsetY float64
}

// Position returns the obstacle centre.
func (o Obstacle) Position() floatgeom.Point2 {
	return floatgeom.Point2{o.X, o.Y}
}

// Polygon is the chamfered collision footprint.
func (o Obstacle) Polygon() geometry.Polygon {
	return geometry.ChamferedPolygon(o.Position(), o.Width, o.Height, o.Angle, o.InsetX, o.InsetY)
}

// Curb is the axis-aligned kerb strip along the bottom of the road.
type Curb struct {
	X, Y   float64 // Centre
	Width  float64
	Height float64
}

// Polygon returns the plain rectangle, no chamfer.
func (c Curb) Polygon() geometry.Polygon {
	return geometry.RectangleCorners(floatgeom.Point2{c.X, c.Y}, c.Width, c.Height, 0)
}

// Top is the y coordinate of the road-facing edge.
func (c Curb) Top() float64 {
	return c.Y - c.Height/2
}

// Dimensions are the fixed sizes a layout is derived from.
type Dimensions struct {
	Canvas         Bounds
	CurbHeight     float64
	TargetHeight   float64
	ObstacleWidth  float64
	ObstacleHeight float64
	ObstacleInsetX float64
	ObstacleInsetY float64
	VehicleHeight  float64
}

// DefaultDimensions matches the default vehicle and a 1024x600 canvas.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Canvas:         Bounds{Width: 1024, Height: 600, Margin: 30},
		CurbHeight:     20,
		TargetHeight:   52,
		ObstacleWidth:  90,
		ObstacleHeight: 44,
		ObstacleInsetX: 8,
		ObstacleInsetY: 6,
		VehicleHeight:  44,
	}
}

// Layout is everything placed on the road for one gap value.
type Layout struct {
	Gap       float64
	Curb      Curb
	Target    floatgeom.Rect2
	Obstacles []Obstacle
	Spawn     vehicle.Pose
}

// Compute places the curb, the parking box and the two parked cars for gap. The box is
// centred between the curb ends and the cars sit either side of it, their inner
// bumpers gap apart. The spawn pose is in the lane above, level with the front car.
func Compute(d Dimensions, gap float64) Layout {
	canvas := d.Canvas
	curb := Curb{
		X:      canvas.Width / 2,
		Y:      canvas.Height - canvas.Margin - d.CurbHeight/2,
		Width:  canvas.Width,
		Height: d.CurbHeight,
	}

	cx := curb.X
	cy := curb.Top() - CurbClearance - d.TargetHeight/2
	target := floatgeom.Rect2{
		Min: floatgeom.Point2{cx - gap/2, cy - d.TargetHeight/2},
		Max: floatgeom.Point2{cx + gap/2, cy + d.TargetHeight/2},
	}

	offset := gap/2 + d.ObstacleWidth/2
	parked := func(label string, x float64) Obstacle {
		return Obstacle{
			Label:  label,
			X:      x,
			Y:      cy,
			Width:  d.ObstacleWidth,
			Height: d.ObstacleHeight,
			InsetX: d.ObstacleInsetX,
			InsetY: d.ObstacleInsetY,
		}
	}

	return Layout{
		Gap:    gap,
		Curb:   curb,
		Target: target,
		Obstacles: []Obstacle{
			parked(LabelRearCar, cx-offset),
			parked(LabelFrontCar, cx+offset),
		},
		Spawn: vehicle.Pose{
			X: cx + offset,
			Y: target.Min.Y() - SpawnClearance - d.VehicleHeight/2,
		},
	}
}

// TargetCenter returns the centre of the parking box.
func (l Layout) TargetCenter() floatgeom.Point2 {
	return floatgeom.Point2{
		(l.Target.Min.X() + l.Target.Max.X()) / 2,
		(l.Target.Min.Y() + l.Target.Max.Y()) / 2,
	}
}

// InTarget reports whether p lies inside the parking box, edges included.
func (l Layout) InTarget(p floatgeom.Point2) bool {
	return p.X() >= l.Target.Min.X() && p.X() <= l.Target.Max.X() &&
		p.Y() >= l.Target.Min.Y() && p.Y() <= l.Target.Max.Y()
}

// Overlaps reports whether poly touches any obstacle or the curb.
func (l Layout) Overlaps(poly geometry.Polygon) bool {
	for _, o := range l.Obstacles {
		if geometry.Collides(poly, o.Polygon()) {
			return true
		}
	}
	return geometry.Collides(poly, l.Curb.Polygon())
}
