package collision

import (
	"math"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/oakmound/oak/v4/alg/floatgeom"
	"github.com/rs/zerolog"
)

// Config tunes the collision response.
type Config struct {
	BounceDuration time.Duration // How long the push-back lasts
	BounceStrength float64       // Push-back speed in px/s when the bounce starts
	FlashDuration  time.Duration // How long the collision overlay stays up
}

// DefaultConfig returns the shipped collision response.
func DefaultConfig() Config {
	return Config{
		BounceDuration: 250 * time.Millisecond,
		BounceStrength: 140,
		FlashDuration:  350 * time.Millisecond,
	}
}

// Resolver rolls the car back on contact and drives the bounce and flash timers.
type Resolver struct {
	cfg   Config
	clock clock.Clock
	log   zerolog.Logger

	bouncing    bool
	bounceDir   floatgeom.Point2
	bounceStart time.Time
	flashUntil  time.Time

	last    Contact
	hasLast bool
}

// NewResolver creates a resolver reading time from clk.
func NewResolver(cfg Config, clk clock.Clock, log zerolog.Logger) *Resolver {
	return &Resolver{
		cfg:   cfg,
		clock: clk,
		log:   logging.Component(log, "collision"),
	}
}

// Resolve checks the car after it moved from prev. On contact the car goes back to
// prev with zero speed, keeping its heading and steer angle, and a bounce away from
// the obstacle is started. Without contact the collided flag is cleared.
func (r *Resolver) Resolve(v *vehicle.Vehicle, prev floatgeom.Point2, l lot.Layout) (Contact, bool) {
	contact, hit := Detect(v.Polygon(), l)
	if !hit {
		v.Collided = false
		return Contact{}, false
	}

	v.X, v.Y = prev.X(), prev.Y()
	v.Speed = 0
	v.Collided = true
	r.startBounce(contact, v.Heading)

	r.log.Debug().
		Str("with", contact.String()).
		Float64("mtvX", contact.MTV.X()).
		Float64("mtvY", contact.MTV.Y()).
		Msg("contact")
	return contact, true
}

// startBounce pushes away along the reversed MTV, or straight back along the heading
// when the contact carries no usable MTV.
func (r *Resolver) startBounce(contact Contact, heading float64) {
	now := r.clock.Now()
	r.flashUntil = now.Add(r.cfg.FlashDuration)
	r.bouncing = true
	r.bounceStart = now
	r.bounceDir = geometry.Normalize(contact.MTV.MulConst(-1))
	if r.bounceDir == (floatgeom.Point2{}) {
		r.bounceDir = floatgeom.Point2{-math.Cos(heading), -math.Sin(heading)}
	}
	r.last, r.hasLast = contact, true
}

// BounceFactor is the remaining impulse fraction, (remaining/duration)², or 0 once the
// bounce has expired.
func (r *Resolver) BounceFactor() float64 {
	if !r.bouncing || r.cfg.BounceDuration <= 0 {
		return 0
	}
	remaining := r.cfg.BounceDuration - r.clock.Now().Sub(r.bounceStart)
	if remaining <= 0 {
		return 0
	}
	f := float64(remaining) / float64(r.cfg.BounceDuration)
	return f * f
}

// ApplyBounce moves the car along the bounce direction for dt seconds, then applies
// the bounds. It does nothing once the bounce has expired.
func (r *Resolver) ApplyBounce(v *vehicle.Vehicle, dt float64, b lot.Bounds) {
	f := r.BounceFactor()
	if f == 0 {
		r.bouncing = false
		return
	}
	step := r.cfg.BounceStrength * f * dt
	v.X += r.bounceDir.X() * step
	v.Y += r.bounceDir.Y() * step
	v.X, v.Y = b.Wrap(v.X, v.Y, v.Params.Width/2)
}

// BounceDirection is the unit push-back direction of the current bounce.
func (r *Resolver) BounceDirection() (floatgeom.Point2, bool) {
	return r.bounceDir, r.bouncing
}

// Flashing reports whether the collision overlay should show.
func (r *Resolver) Flashing() bool {
	return r.clock.Now().Before(r.flashUntil)
}

// LastContact returns the most recent contact, kept for diagnostics.
func (r *Resolver) LastContact() (Contact, bool) {
	return r.last, r.hasLast
}

// Reset drops any running bounce and flash.
func (r *Resolver) Reset() {
	r.bouncing = false
	r.bounceDir = floatgeom.Point2{}
	r.flashUntil = time.Time{}
}
