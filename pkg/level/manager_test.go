package level

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newManager(cfg Config) (*Manager, *clock.Fake) {
	clk := clock.NewFake(epoch)
	return NewManager(cfg, lot.DefaultDimensions(), clk, zerolog.Nop()), clk
}

// parkedVehicle returns a car at rest, centred in the box, facing heading.
func parkedVehicle(m *Manager, heading float64) *vehicle.Vehicle {
	c := m.Layout().TargetCenter()
	return vehicle.New(vehicle.DefaultParams(), vehicle.Pose{X: c.X(), Y: c.Y(), Heading: heading})
}

func TestNewManager_StartsWide(t *testing.T) {
	m, _ := newManager(DefaultConfig())

	assert.Equal(t, 0, m.Wins())
	assert.Equal(t, 240.0, m.Gap())
	assert.Equal(t, 240.0, m.Layout().Gap)
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.False(t, m.Latched())
}

func TestParked(t *testing.T) {
	m, _ := newManager(DefaultConfig())

	tests := []struct {
		name    string
		heading float64
		speed   float64
		dx, dy  float64
		want    bool
	}{
		{name: "centred at rest", want: true},
		{name: "reversed", heading: math.Pi, want: false},
		{name: "full turn", heading: 2 * math.Pi, want: true},
		{name: "negative full turn plus tolerance", heading: -2*math.Pi + 0.1, want: true},
		{name: "slightly left", heading: -0.1, want: true},
		{name: "outside tolerance", heading: 0.13, want: false},
		{name: "rolling", speed: 10, want: false},
		{name: "creeping", speed: -3.9, want: true},
		{name: "diagonal inside box", dx: 100, dy: 20, want: true},
		{name: "centre outside box", dx: 121, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := parkedVehicle(m, tt.heading)
			v.Speed = tt.speed
			v.X += tt.dx
			v.Y += tt.dy
			assert.Equal(t, tt.want, m.Parked(v))
		})
	}
}

func TestUpdate_WinLingerReset(t *testing.T) {
	m, clk := newManager(DefaultConfig())
	v := parkedVehicle(m, 0)

	require.Equal(t, EventWinLatched, m.Update(v))
	assert.Equal(t, PhaseWinning, m.Phase())
	assert.True(t, m.Latched())
	assert.True(t, m.Frozen())

	clk.Advance(1199 * time.Millisecond)
	assert.Equal(t, EventNone, m.Update(v))
	assert.Equal(t, 0, m.Wins())

	clk.Advance(time.Millisecond)
	require.Equal(t, EventLevelReset, m.Update(v))

	assert.Equal(t, 1, m.Wins())
	assert.Equal(t, 225.0, m.Gap())
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.False(t, m.Latched())
	assert.Equal(t, m.Layout().Spawn, v.Pose())
	assert.Zero(t, v.Speed)
	assert.Zero(t, v.SteerAngle)
	assert.Equal(t, 1, v.LastDirection)
}

func TestUpdate_LatchPreventsDoubleTrigger(t *testing.T) {
	cfg := DefaultConfig()
	m, clk := newManager(cfg)
	v := parkedVehicle(m, 0)

	require.Equal(t, EventWinLatched, m.Update(v))
	for i := 0; i < 10; i++ {
		clk.Advance(100 * time.Millisecond)
		assert.Equal(t, EventNone, m.Update(v))
	}
	assert.Equal(t, 0, m.Wins())
}

func TestUpdate_LeavingDoesNotCancelPendingReset(t *testing.T) {
	m, clk := newManager(DefaultConfig())
	v := parkedVehicle(m, 0)
	require.Equal(t, EventWinLatched, m.Update(v))

	// dragged out of the box
	v.X = 50
	clk.Advance(600 * time.Millisecond)
	assert.Equal(t, EventNone, m.Update(v))
	assert.Equal(t, PhaseWinning, m.Phase())

	clk.Advance(600 * time.Millisecond)
	assert.Equal(t, EventLevelReset, m.Update(v))
	assert.Equal(t, 1, m.Wins())
}

func TestUpdate_FreezesWhileWinning(t *testing.T) {
	m, _ := newManager(DefaultConfig())
	v := parkedVehicle(m, 0)
	v.Speed = 2

	require.Equal(t, EventWinLatched, m.Update(v))
	assert.Zero(t, v.Speed)

	v.Speed = 50
	m.Update(v)
	assert.Zero(t, v.Speed)
}

func TestUpdate_NotParkedStaysPlaying(t *testing.T) {
	m, _ := newManager(DefaultConfig())
	v := parkedVehicle(m, math.Pi)

	assert.Equal(t, EventNone, m.Update(v))
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.False(t, m.Latched())
}

func TestGapFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxGap, cfg.GapStep, cfg.MinGap = 200, 20, 60
	m, clk := newManager(cfg)

	win := func() {
		t.Helper()
		v := parkedVehicle(m, 0)
		require.Equal(t, EventWinLatched, m.Update(v))
		clk.Advance(cfg.Linger)
		require.Equal(t, EventLevelReset, m.Update(v))
	}

	for i := 1; i <= 10; i++ {
		win()
		assert.GreaterOrEqual(t, m.Gap(), cfg.MinGap)
	}
	assert.Equal(t, 10, m.Wins())
	assert.Equal(t, 60.0, m.Gap())

	win()
	assert.Equal(t, 11, m.Wins())
	assert.Equal(t, 60.0, m.Gap())
}

func TestSetGap_Clamps(t *testing.T) {
	m, _ := newManager(DefaultConfig())

	assert.Equal(t, 130.0, m.SetGap(10))
	assert.Equal(t, 130.0, m.Layout().Target.Max.X()-m.Layout().Target.Min.X())
	assert.Equal(t, 240.0, m.SetGap(1000))
	assert.Equal(t, 180.0, m.SetGap(180))
	assert.Equal(t, 0, m.Wins())
}

func TestHeadingAligned(t *testing.T) {
	assert.True(t, HeadingAligned(0, 0.1))
	assert.True(t, HeadingAligned(4*math.Pi+0.05, 0.1))
	assert.True(t, HeadingAligned(-0.1, 0.1))
	assert.False(t, HeadingAligned(math.Pi, 0.1))
	assert.False(t, HeadingAligned(-math.Pi/2, 0.1))
}

func TestSetGap_LogsOnlyWhenGapChanges(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(DefaultConfig(), lot.DefaultDimensions(), clock.NewFake(epoch), zerolog.New(&buf))

	m.SetGap(200)
	m.SetGap(200)
	m.SetGap(1000)
	m.SetGap(1000)

	assert.Equal(t, 2, strings.Count(buf.String(), "gap changed"))
}

func TestConfig_ClampsInvertedRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinGap = cfg.MaxGap + 50
	m, _ := newManager(cfg)

	assert.Equal(t, cfg.MaxGap, m.Config().MinGap)
	assert.Equal(t, cfg.MaxGap, m.Gap())
}
