package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/collision"
	"github.com/golangdaddy/parallelpark/pkg/config"
	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/level"
	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/oakmound/oak/v4/alg/floatgeom"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultMaxDelta caps a tick when the settings carry no usable limit.
const DefaultMaxDelta = 0.05

// Input is one tick of player intent. A non-nil Drag replaces the controls: the car is
// placed at the pointer and neither kinematics nor collision run.
type Input struct {
	vehicle.Controls
	Drag *floatgeom.Point2
}

// TickResult reports what happened during a tick.
type TickResult struct {
	Contact      collision.Contact
	Hit          bool // Contact this tick
	NewCollision bool // Contact this tick but not the previous one
	Event        level.Event
}

// Session owns the car, the level manager and the collision resolver, and steps them
// once per host frame.
type Session struct {
	bounds   lot.Bounds
	maxDelta float64
	debug    bool
	dragging bool

	vehicle  *vehicle.Vehicle
	levels   *level.Manager
	resolver *collision.Resolver
	log      zerolog.Logger

	collisions metric.Int64Counter
	completed  metric.Int64Counter
}

// NewSession builds a session from settings and spawns the car for the first level.
func NewSession(s config.Settings, clk clock.Clock, log zerolog.Logger) (*Session, error) {
	if s.Dimensions.VehicleHeight == 0 {
		s.Dimensions.VehicleHeight = s.Vehicle.Height
	}

	sess := &Session{
		bounds:   s.Dimensions.Canvas,
		maxDelta: s.MaxDelta,
		debug:    s.Debug,
		levels:   level.NewManager(s.Level, s.Dimensions, clk, log),
		resolver: collision.NewResolver(s.Collision, clk, log),
		log:      logging.Component(log, "session"),
	}
	if sess.maxDelta <= 0 {
		sess.maxDelta = DefaultMaxDelta
	}
	sess.vehicle = vehicle.New(s.Vehicle, sess.levels.Layout().Spawn)

	m := meter()

	var err error
	sess.collisions, err = m.Int64Counter(
		"parking.collisions",
		metric.WithDescription("Collisions started, by obstacle"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	sess.completed, err = m.Int64Counter(
		"parking.levels_completed",
		metric.WithDescription("Levels completed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating levels counter: %w", err)
	}

	sess.log.Info().
		Float64("gap", sess.levels.Gap()).
		Float64("x", sess.vehicle.X).
		Float64("y", sess.vehicle.Y).
		Msg("session started")
	return sess, nil
}

// Tick advances the simulation by dt seconds. dt is clamped to [0, maxDelta].
func (s *Session) Tick(dt float64, in Input) TickResult {
	dt = s.clampDelta(dt)
	wasCollided := s.vehicle.Collided

	var res TickResult
	switch {
	case in.Drag != nil:
		s.drag(*in.Drag)
	case s.levels.Frozen():
		// the level manager holds the car until the next level
	default:
		res.Contact, res.Hit = s.step(dt, in.Controls)
	}
	s.dragging = in.Drag != nil

	if res.Hit && !wasCollided {
		res.NewCollision = true
		s.collisions.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("obstacle", res.Contact.Label)))
	}

	res.Event = s.levels.Update(s.vehicle)
	if res.Event == level.EventLevelReset {
		s.resolver.Reset()
		s.completed.Add(context.Background(), 1)
	}
	return res
}

func (s *Session) step(dt float64, c vehicle.Controls) (collision.Contact, bool) {
	prev := s.vehicle.Position()

	s.vehicle.Integrate(dt, c)
	s.vehicle.X, s.vehicle.Y = s.bounds.Wrap(s.vehicle.X, s.vehicle.Y, s.vehicle.Params.Width/2)
	contact, hit := s.resolver.Resolve(s.vehicle, prev, s.levels.Layout())

	// the bounce is not rolled back, so a car left overlapping by a drag works its way out
	s.resolver.ApplyBounce(s.vehicle, dt, s.bounds)
	return contact, hit
}

func (s *Session) drag(p floatgeom.Point2) {
	s.vehicle.X, s.vehicle.Y = s.bounds.Clamp(p.X(), p.Y())
	s.vehicle.Speed = 0
	s.vehicle.Collided = false
	s.resolver.Reset()
}

func (s *Session) clampDelta(dt float64) float64 {
	if dt <= 0 || math.IsNaN(dt) {
		return 0
	}
	return math.Min(dt, s.maxDelta)
}

// SetGap changes the parking box width. The car is respawned when the new layout
// lands a parked car or the curb on top of it.
func (s *Session) SetGap(g float64) float64 {
	applied := s.levels.SetGap(g)
	if s.levels.Layout().Overlaps(s.vehicle.Polygon()) {
		s.log.Debug().Float64("gap", applied).Msg("gap change overlaps car, respawning")
		s.Respawn()
	}
	return applied
}

// Respawn returns the car to the spawn pose of the current layout. Wins and gap are kept.
func (s *Session) Respawn() {
	s.vehicle.Reset(s.levels.Layout().Spawn)
	s.resolver.Reset()
}

// ToggleDebug flips the debug overlay and returns the new state.
func (s *Session) ToggleDebug() bool {
	s.debug = !s.debug
	s.log.Debug().Bool("debug", s.debug).Msg("debug overlay")
	return s.debug
}

// Debug reports whether the debug overlay is on.
func (s *Session) Debug() bool {
	return s.debug
}

// Gap is the current parking box width.
func (s *Session) Gap() float64 {
	return s.levels.Gap()
}

// Contains reports whether p is over the car's footprint.
func (s *Session) Contains(p floatgeom.Point2) bool {
	return geometry.ContainsPoint(s.vehicle.Footprint(), p)
}
