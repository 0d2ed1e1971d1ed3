package sim

import (
	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/level"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/oakmound/oak/v4/alg/floatgeom"
)

// Snapshot is the read-only view the renderer draws each frame.
type Snapshot struct {
	Vehicle    vehicle.Pose
	Speed      float64
	SteerAngle float64
	MaxSteer   float64
	MaxSpeed   float64
	Collided   bool
	Width      float64
	Height     float64

	Obstacles []lot.Obstacle
	Curb      lot.Curb
	Target    floatgeom.Rect2

	Wins   int
	Gap    float64
	MinGap float64
	MaxGap float64
	Phase  level.Phase

	ShowWinOverlay     bool
	ShowCollisionFlash bool
	Dragging           bool

	Debug *DebugInfo // nil unless the debug overlay is on
}

// Level is the 1-based number of the level being played.
func (s Snapshot) Level() int {
	return s.Wins + 1
}

// DebugInfo exposes the collision shapes and the most recent contact.
type DebugInfo struct {
	Vehicle     geometry.Polygon
	Obstacles   []geometry.Polygon
	Curb        geometry.Polygon
	LastContact string
	Bouncing    bool
	BounceDir   floatgeom.Point2
}

// Snapshot captures the current state. Slices are copies.
func (s *Session) Snapshot() Snapshot {
	v := s.vehicle
	layout := s.levels.Layout()

	snap := Snapshot{
		Vehicle:    v.Pose(),
		Speed:      v.Speed,
		SteerAngle: v.SteerAngle,
		MaxSteer:   v.Params.MaxSteer,
		MaxSpeed:   v.Params.MaxSpeed,
		Collided:   v.Collided,
		Width:      v.Params.Width,
		Height:     v.Params.Height,

		Obstacles: append([]lot.Obstacle(nil), layout.Obstacles...),
		Curb:      layout.Curb,
		Target:    layout.Target,

		Wins:   s.levels.Wins(),
		Gap:    s.levels.Gap(),
		MinGap: s.levels.Config().MinGap,
		MaxGap: s.levels.Config().MaxGap,
		Phase:  s.levels.Phase(),

		ShowWinOverlay:     s.levels.Phase() == level.PhaseWinning,
		ShowCollisionFlash: s.resolver.Flashing(),
		Dragging:           s.dragging,
	}

	if s.debug {
		info := &DebugInfo{
			Vehicle: v.Polygon(),
			Curb:    layout.Curb.Polygon(),
		}
		for _, o := range layout.Obstacles {
			info.Obstacles = append(info.Obstacles, o.Polygon())
		}
		if c, ok := s.resolver.LastContact(); ok {
			info.LastContact = c.String()
		}
		info.BounceDir, info.Bouncing = s.resolver.BounceDirection()
		snap.Debug = info
	}
	return snap
}
