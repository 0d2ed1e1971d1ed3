package vehicle

import (
	"math"

	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/oakmound/oak/v4/alg/floatgeom"
)

const (
	// MinTurnSpeed is the speed below which the heading is not integrated.
	MinTurnSpeed = 0.05
	// MinTurnSteer is the steer angle below which the car drives straight.
	MinTurnSteer = 0.01
)

// Vehicle is the player's car, integrated with a kinematic bicycle model.
type Vehicle struct {
	X, Y          float64 // Centre position in pixels
	Heading       float64 // Radians, 0 faces +x
	Speed         float64 // Signed px/s, positive is forward
	SteerAngle    float64 // Front wheel angle, radians
	Collided      bool    // Contact during the last tick
	LastDirection int     // +1 or -1, the last throttle direction used

	Params Params
}

// New creates a vehicle at rest at the given pose.
func New(params Params, pose Pose) *Vehicle {
	v := &Vehicle{Params: params}
	v.Reset(pose)
	return v
}

// Reset puts the car at pose, at rest, with the wheels straight.
func (v *Vehicle) Reset(pose Pose) {
	v.X = pose.X
	v.Y = pose.Y
	v.Heading = pose.Heading
	v.Speed = 0
	v.SteerAngle = 0
	v.Collided = false
	v.LastDirection = 1
}

// Pose returns the current position and heading.
func (v *Vehicle) Pose() Pose {
	return Pose{X: v.X, Y: v.Y, Heading: v.Heading}
}

// Position returns the centre of the car.
func (v *Vehicle) Position() floatgeom.Point2 {
	return floatgeom.Point2{v.X, v.Y}
}

// Integrate advances the car by dt seconds: throttle, steering, heading, then position.
func (v *Vehicle) Integrate(dt float64, c Controls) {
	if dt <= 0 {
		return
	}
	p := v.Params

	switch {
	case c.Forward:
		v.Speed = math.Min(v.Speed+p.Acceleration*dt, p.MaxSpeed)
		v.LastDirection = 1
	case c.Reverse:
		v.Speed = math.Max(v.Speed-p.Acceleration*dt, -p.MaxSpeed)
		v.LastDirection = -1
	default:
		v.coast(dt)
	}

	switch {
	case c.Left:
		v.SteerAngle = math.Max(v.SteerAngle-p.SteerRate*dt, -p.MaxSteer)
	case c.Right:
		v.SteerAngle = math.Min(v.SteerAngle+p.SteerRate*dt, p.MaxSteer)
	}

	if w, ok := v.AngularVelocity(); ok {
		v.Heading += w * dt
	}

	v.X += math.Cos(v.Heading) * v.Speed * dt
	v.Y += math.Sin(v.Heading) * v.Speed * dt
}

// coast applies friction towards zero without crossing it.
func (v *Vehicle) coast(dt float64) {
	drop := v.Params.Friction * dt
	switch {
	case v.Speed > 0:
		v.Speed = math.Max(v.Speed-drop, 0)
	case v.Speed < 0:
		v.Speed = math.Min(v.Speed+drop, 0)
	}
}

// TurnRadius is wheelbase / tan(|steer|). It reports false while the wheels are
// straight enough to drive in a line.
func (v *Vehicle) TurnRadius() (float64, bool) {
	steer := math.Abs(v.SteerAngle)
	if steer <= MinTurnSteer {
		return math.Inf(1), false
	}
	return v.Params.Wheelbase / math.Tan(steer), true
}

// AngularVelocity is the heading rate in rad/s: speed over turn radius, signed by the
// steer direction. It reports false when the car is too slow or the wheels too
// straight to turn.
func (v *Vehicle) AngularVelocity() (float64, bool) {
	if math.Abs(v.Speed) <= MinTurnSpeed {
		return 0, false
	}
	radius, ok := v.TurnRadius()
	if !ok {
		return 0, false
	}
	w := v.Speed / radius
	if v.SteerAngle < 0 {
		w = -w
	}
	return w, true
}

// Polygon is the chamfered collision footprint.
func (v *Vehicle) Polygon() geometry.Polygon {
	return geometry.ChamferedPolygon(v.Position(), v.Params.Width, v.Params.Height, v.Heading, v.Params.InsetX, v.Params.InsetY)
}

// Footprint is the full visual rectangle.
func (v *Vehicle) Footprint() geometry.Polygon {
	return geometry.RectangleCorners(v.Position(), v.Params.Width, v.Params.Height, v.Heading)
}
