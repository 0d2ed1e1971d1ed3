package collision

import (
	"math"
	"testing"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/oakmound/oak/v4/alg/floatgeom"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Resolver, *clock.Fake, lot.Layout) {
	t.Helper()
	clk := clock.NewFake(epoch)
	return NewResolver(DefaultConfig(), clk, zerolog.Nop()), clk, lot.Compute(lot.DefaultDimensions(), 200)
}

// nudgeInto places a car just left of the front parked car, overlapping by depth.
func nudgeInto(l lot.Layout, depth float64) *vehicle.Vehicle {
	front := l.Obstacles[1]
	params := vehicle.DefaultParams()
	x := front.X - front.Width/2 - params.Width/2 + depth
	v := vehicle.New(params, vehicle.Pose{X: x, Y: front.Y})
	return v
}

func TestResolve_RollsBackOnContact(t *testing.T) {
	r, _, l := setup(t)
	v := nudgeInto(l, 3)
	prev := floatgeom.Point2{v.X - 5, v.Y}
	v.Speed = 90
	v.Heading = 0.05
	v.SteerAngle = -0.3

	contact, hit := r.Resolve(v, prev, l)

	require.True(t, hit)
	assert.Equal(t, KindObstacle, contact.Kind)
	assert.Equal(t, 1, contact.Index)
	assert.Equal(t, lot.LabelFrontCar, contact.Label)
	assert.Equal(t, prev.X(), v.X)
	assert.Equal(t, prev.Y(), v.Y)
	assert.Zero(t, v.Speed)
	assert.True(t, v.Collided)
	assert.Equal(t, 0.05, v.Heading, "heading is not rolled back")
	assert.Equal(t, -0.3, v.SteerAngle, "steer is not rolled back")
}

func TestResolve_ClearsCollidedWithoutContact(t *testing.T) {
	r, _, l := setup(t)
	v := vehicle.New(vehicle.DefaultParams(), l.Spawn)
	v.Collided = true
	v.Speed = 40

	_, hit := r.Resolve(v, floatgeom.Point2{0, 0}, l)

	assert.False(t, hit)
	assert.False(t, v.Collided)
	assert.Equal(t, l.Spawn.X, v.X)
	assert.Equal(t, 40.0, v.Speed)
}

func TestResolve_BouncesAwayFromObstacle(t *testing.T) {
	r, _, l := setup(t)
	v := nudgeInto(l, 4)

	contact, hit := r.Resolve(v, v.Position(), l)
	require.True(t, hit)
	assert.Greater(t, contact.MTV.X(), 0.0, "mtv points from the car into the obstacle")

	dir, ok := r.BounceDirection()
	require.True(t, ok)
	assert.InDelta(t, -1, dir.X(), 1e-9)
	assert.InDelta(t, 0, dir.Y(), 1e-9)
}

func TestStartBounce_FallsBackToReversedHeading(t *testing.T) {
	r, _, _ := setup(t)
	heading := 0.7

	r.startBounce(Contact{Kind: KindObstacle, MTV: floatgeom.Point2{1e-12, 0}}, heading)

	dir, ok := r.BounceDirection()
	require.True(t, ok)
	assert.InDelta(t, -math.Cos(heading), dir.X(), 1e-9)
	assert.InDelta(t, -math.Sin(heading), dir.Y(), 1e-9)
	assert.True(t, r.Flashing())
}

func TestResolve_CurbContact(t *testing.T) {
	r, _, l := setup(t)
	v := vehicle.New(vehicle.DefaultParams(), vehicle.Pose{X: 100, Y: l.Curb.Top()})

	contact, hit := r.Resolve(v, floatgeom.Point2{100, 400}, l)

	require.True(t, hit)
	assert.Equal(t, KindCurb, contact.Kind)
	assert.Equal(t, -1, contact.Index)
	assert.Equal(t, "curb", contact.String())

	dir, _ := r.BounceDirection()
	assert.InDelta(t, -1, dir.Y(), 1e-9, "pushed up, away from the curb")
}

func TestDetect_ObstaclesBeforeCurb(t *testing.T) {
	l := lot.Compute(lot.DefaultDimensions(), 200)
	rear := l.Obstacles[0]
	v := vehicle.New(vehicle.DefaultParams(), vehicle.Pose{X: rear.X, Y: l.Curb.Top() - 10})

	contact, hit := Detect(v.Polygon(), l)

	require.True(t, hit)
	assert.Equal(t, KindObstacle, contact.Kind)
	assert.Equal(t, 0, contact.Index)
	assert.Equal(t, "obstacle #0 (rear car)", contact.String())
}

func TestBounceFactor_QuadraticEaseOut(t *testing.T) {
	r, clk, l := setup(t)
	assert.Zero(t, r.BounceFactor())

	_, hit := r.Resolve(nudgeInto(l, 2), floatgeom.Point2{0, 0}, l)
	require.True(t, hit)
	assert.InDelta(t, 1, r.BounceFactor(), 1e-9)

	clk.Advance(125 * time.Millisecond)
	assert.InDelta(t, 0.25, r.BounceFactor(), 1e-9)

	clk.Advance(125 * time.Millisecond)
	assert.Zero(t, r.BounceFactor())
}

func TestApplyBounce(t *testing.T) {
	r, clk, l := setup(t)
	v := nudgeInto(l, 2)
	_, hit := r.Resolve(v, v.Position(), l)
	require.True(t, hit)

	clk.Advance(125 * time.Millisecond)
	x, y := v.X, v.Y
	r.ApplyBounce(v, 0.02, lot.DefaultDimensions().Canvas)

	step := DefaultConfig().BounceStrength * 0.25 * 0.02
	assert.InDelta(t, x-step, v.X, 1e-9)
	assert.InDelta(t, y, v.Y, 1e-9)

	clk.Advance(time.Second)
	x = v.X
	r.ApplyBounce(v, 0.02, lot.DefaultDimensions().Canvas)
	assert.Equal(t, x, v.X)
	_, bouncing := r.BounceDirection()
	assert.False(t, bouncing)
}

func TestApplyBounce_RespectsBounds(t *testing.T) {
	r, _, l := setup(t)
	v := vehicle.New(vehicle.DefaultParams(), vehicle.Pose{X: 100, Y: l.Curb.Top()})
	_, hit := r.Resolve(v, floatgeom.Point2{100, 31}, l)
	require.True(t, hit)

	r.ApplyBounce(v, 0.05, lot.Bounds{Width: 1024, Height: 600, Margin: 30})

	assert.Equal(t, 30.0, v.Y)
}

func TestFlashing(t *testing.T) {
	r, clk, l := setup(t)
	assert.False(t, r.Flashing())

	_, hit := r.Resolve(nudgeInto(l, 2), floatgeom.Point2{0, 0}, l)
	require.True(t, hit)
	assert.True(t, r.Flashing())

	clk.Advance(349 * time.Millisecond)
	assert.True(t, r.Flashing())

	clk.Advance(time.Millisecond)
	assert.False(t, r.Flashing())
}

func TestLastContactSurvivesClearTicks(t *testing.T) {
	r, _, l := setup(t)
	_, ok := r.LastContact()
	assert.False(t, ok)

	_, hit := r.Resolve(nudgeInto(l, 2), floatgeom.Point2{0, 0}, l)
	require.True(t, hit)
	_, hit = r.Resolve(vehicle.New(vehicle.DefaultParams(), l.Spawn), floatgeom.Point2{0, 0}, l)
	require.False(t, hit)

	last, ok := r.LastContact()
	require.True(t, ok)
	assert.Equal(t, lot.LabelFrontCar, last.Label)
}

func TestReset(t *testing.T) {
	r, _, l := setup(t)
	_, hit := r.Resolve(nudgeInto(l, 2), floatgeom.Point2{0, 0}, l)
	require.True(t, hit)

	r.Reset()

	assert.False(t, r.Flashing())
	assert.Zero(t, r.BounceFactor())
	assert.False(t, math.IsNaN(r.BounceFactor()))
}
