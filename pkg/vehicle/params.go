package vehicle

// Params holds the tuning values of a car. They do not change during a session.
type Params struct {
	Width     float64 // Footprint length along the heading, in pixels
	Height    float64 // Footprint width across the heading, in pixels
	Wheelbase float64 // Distance between the axles, in pixels
	InsetX    float64 // Collision chamfer along Width
	InsetY    float64 // Collision chamfer along Height

	MaxSpeed     float64 // px/s, applies forward and in reverse
	Acceleration float64 // px/s² while a throttle key is held
	Friction     float64 // px/s² deceleration while coasting
	SteerRate    float64 // rad/s
	MaxSteer     float64 // rad
}

// DefaultParams returns the tuning used by the shipped game.
func DefaultParams() Params {
	return Params{
		Width:        90,
		Height:       44,
		Wheelbase:    56,
		InsetX:       8,
		InsetY:       6,
		MaxSpeed:     220,
		Acceleration: 260,
		Friction:     180,
		SteerRate:    1.8,
		MaxSteer:     0.6,
	}
}

// Controls is the driver intent for one tick. Within an axis the first flag wins:
// Forward over Reverse, Left over Right.
type Controls struct {
	Forward bool
	Reverse bool
	Left    bool
	Right   bool
}

// Pose is a position and heading. Heading 0 faces +x.
type Pose struct {
	X, Y    float64
	Heading float64
}
