package level

import (
	"math"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/rs/zerolog"
)

// Phase is the level state machine position. Resetting is instantaneous and is only
// ever observed as an EventLevelReset.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWinning
	PhaseResetting
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWinning:
		return "winning"
	case PhaseResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Event is what an Update did.
type Event int

const (
	EventNone Event = iota
	EventWinLatched
	EventLevelReset
)

// Config holds the progression and win tuning.
type Config struct {
	MaxGap         float64       // Starting gap, px
	MinGap         float64       // Floor the gap never shrinks below
	GapStep        float64       // Shrink per completed level
	Linger         time.Duration // Time the win overlay shows before the next level
	AngleTolerance float64       // Max |heading| mod 2π, radians
	SpeedThreshold float64       // Max |speed| that counts as stopped, px/s
}

// DefaultConfig returns the shipped progression.
func DefaultConfig() Config {
	return Config{
		MaxGap:         240,
		MinGap:         130,
		GapStep:        15,
		Linger:         1200 * time.Millisecond,
		AngleTolerance: 0.12,
		SpeedThreshold: 4,
	}
}

// Manager owns the layout and runs the Playing -> Winning -> Resetting -> Playing cycle.
type Manager struct {
	cfg   Config
	dims  lot.Dimensions
	clock clock.Clock
	log   zerolog.Logger

	wins    int
	gap     float64
	layout  lot.Layout
	latched bool
	pending bool
	resetAt time.Time
}

// NewManager creates a manager at level zero with the widest gap.
func NewManager(cfg Config, dims lot.Dimensions, clk clock.Clock, log zerolog.Logger) *Manager {
	if cfg.MinGap > cfg.MaxGap {
		cfg.MinGap = cfg.MaxGap
	}
	m := &Manager{
		cfg:   cfg,
		dims:  dims,
		clock: clk,
		log:   logging.Component(log, "level"),
	}
	m.setGap(cfg.MaxGap)
	return m
}

// Config is the tuning in effect, after MinGap was clamped to MaxGap.
func (m *Manager) Config() Config {
	return m.cfg
}

// Wins is the number of completed levels.
func (m *Manager) Wins() int {
	return m.wins
}

// Gap is the current parking box width.
func (m *Manager) Gap() float64 {
	return m.gap
}

// Layout is the current road layout.
func (m *Manager) Layout() lot.Layout {
	return m.layout
}

// Phase is PhaseWinning while a reset is pending, PhasePlaying otherwise.
func (m *Manager) Phase() Phase {
	if m.pending {
		return PhaseWinning
	}
	return PhasePlaying
}

// Frozen reports whether the car must not be integrated this tick.
func (m *Manager) Frozen() bool {
	return m.pending
}

// Latched reports whether a win has been taken for the current occupancy.
func (m *Manager) Latched() bool {
	return m.latched
}

// SetGap clamps g to [MinGap, MaxGap] and rebuilds the layout. It returns the gap
// actually applied.
func (m *Manager) SetGap(g float64) float64 {
	old := m.gap
	m.setGap(g)
	if m.gap != old {
		m.log.Info().Float64("from", old).Float64("gap", m.gap).Msg("gap changed")
	}
	return m.gap
}

func (m *Manager) setGap(g float64) {
	m.gap = math.Max(m.cfg.MinGap, math.Min(g, m.cfg.MaxGap))
	m.layout = lot.Compute(m.dims, m.gap)
}

// Parked reports whether v satisfies every win condition: centre in the box, heading
// within tolerance of 0 mod 2π, and stopped. Only the centre is tested against the box.
func (m *Manager) Parked(v *vehicle.Vehicle) bool {
	return m.layout.InTarget(v.Position()) &&
		HeadingAligned(v.Heading, m.cfg.AngleTolerance) &&
		math.Abs(v.Speed) < m.cfg.SpeedThreshold
}

// Update advances the state machine once per tick. While a reset is pending the car is
// held at zero speed; when it fires the level is completed, the gap shrinks and v is
// returned to the spawn pose.
func (m *Manager) Update(v *vehicle.Vehicle) Event {
	now := m.clock.Now()

	if m.pending {
		v.Speed = 0
		if now.Before(m.resetAt) {
			return EventNone
		}
		m.advance(v)
		return EventLevelReset
	}

	if !m.Parked(v) {
		m.latched = false
		return EventNone
	}
	if m.latched {
		return EventNone
	}

	m.latched = true
	m.pending = true
	m.resetAt = now.Add(m.cfg.Linger)
	v.Speed = 0
	m.log.Info().
		Int("level", m.wins+1).
		Float64("gap", m.gap).
		Float64("x", v.X).
		Float64("y", v.Y).
		Msg("parked")
	return EventWinLatched
}

func (m *Manager) advance(v *vehicle.Vehicle) {
	m.wins++
	m.setGap(m.gap - m.cfg.GapStep)
	v.Reset(m.layout.Spawn)
	m.latched = false
	m.pending = false
	m.resetAt = time.Time{}
	m.log.Info().Int("wins", m.wins).Float64("gap", m.gap).Msg("level complete")
}

// HeadingAligned reports whether heading is within tol of 0, modulo 2π.
func HeadingAligned(heading, tol float64) bool {
	return math.Abs(math.Remainder(heading, 2*math.Pi)) <= tol
}
