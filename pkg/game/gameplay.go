package game

import (
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/level"
	"github.com/golangdaddy/parallelpark/pkg/sim"
	"github.com/golangdaddy/parallelpark/pkg/sound"
	"github.com/golangdaddy/parallelpark/pkg/ui"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oakmound/oak/v4/alg/floatgeom"
)

// GapKeyStep is how far one press of [ or ] moves the gap, px.
const GapKeyStep = 5.0

// ParkingScreen represents the main parking gameplay
type ParkingScreen struct {
	session  *sim.Session
	clock    clock.Clock
	sound    *sound.Player
	backdrop *ebiten.Image
	sprites  *spriteCache
	gap      slider
	pause    *ui.PauseMenu

	lastTick   time.Time
	dragging   bool
	dragOffset floatgeom.Point2
	sliding    bool

	screenWidth  int
	screenHeight int
	onExit       func() // Callback when the player leaves
}

// NewParkingScreen creates a new gameplay screen around session.
func NewParkingScreen(session *sim.Session, clk clock.Clock, snd *sound.Player, backdrop *ebiten.Image, onExit func()) *ParkingScreen {
	snap := session.Snapshot()
	w, h := ebitenSize(backdrop, 1024, 600)
	return &ParkingScreen{
		session:      session,
		clock:        clk,
		sound:        snd,
		backdrop:     backdrop,
		sprites:      newSpriteCache(),
		gap:          newGapSlider(float64(w), snap.MinGap, snap.MaxGap),
		screenWidth:  w,
		screenHeight: h,
		onExit:       onExit,
	}
}

// Update handles gameplay input and steps the simulation once.
func (ps *ParkingScreen) Update() error {
	if ps.pause != nil {
		return ps.pause.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ps.pause = ui.NewPauseMenu(ps.onPauseChoice)
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		ps.session.ToggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ps.session.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		ps.session.SetGap(ps.session.Gap() - GapKeyStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		ps.session.SetGap(ps.session.Gap() + GapKeyStep)
	}

	in := sim.Input{Controls: controlsFrom(ebiten.IsKeyPressed)}
	if drag, ok := ps.updatePointer(); ok {
		in.Drag = &drag
	}

	res := ps.session.Tick(ps.delta(), in)
	if res.NewCollision {
		ps.sound.Play(sound.Bump)
	}
	if res.Event == level.EventWinLatched {
		ps.sound.Play(sound.Chime)
	}
	return nil
}

func (ps *ParkingScreen) onPauseChoice(c ui.PauseChoice) {
	ps.pause = nil
	// the clock kept running while paused
	ps.lastTick = time.Time{}
	ps.dragging, ps.sliding = false, false

	switch c {
	case ui.ChoiceRespawn:
		ps.session.Respawn()
	case ui.ChoiceQuit:
		if ps.onExit != nil {
			ps.onExit()
		}
	}
}

// delta is the wall time since the previous tick. The first tick uses one TPS period.
func (ps *ParkingScreen) delta() float64 {
	now := ps.clock.Now()
	defer func() { ps.lastTick = now }()
	if ps.lastTick.IsZero() {
		return 1 / float64(ebiten.TPS())
	}
	return now.Sub(ps.lastTick).Seconds()
}

// updatePointer handles the gap slider and dragging the car. It returns the drag
// target while the car is held.
func (ps *ParkingScreen) updatePointer() (floatgeom.Point2, bool) {
	mx, my := ebiten.CursorPosition()
	cursor := floatgeom.Point2{float64(mx), float64(my)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case ps.gap.hit(cursor):
			ps.sliding = true
		case ps.session.Contains(cursor):
			snap := ps.session.Snapshot()
			ps.dragging = true
			ps.dragOffset = floatgeom.Point2{snap.Vehicle.X, snap.Vehicle.Y}.Sub(cursor)
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		ps.dragging = false
		ps.sliding = false
	}

	if ps.sliding {
		ps.session.SetGap(ps.gap.value(cursor.X()))
	}
	if ps.dragging {
		return cursor.Add(ps.dragOffset), true
	}
	return floatgeom.Point2{}, false
}

// controlsFrom maps the arrow keys and WASD onto driving intent.
func controlsFrom(pressed func(ebiten.Key) bool) vehicle.Controls {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return vehicle.Controls{
		Forward: held(ebiten.KeyArrowUp, ebiten.KeyW),
		Reverse: held(ebiten.KeyArrowDown, ebiten.KeyS),
		Left:    held(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   held(ebiten.KeyArrowRight, ebiten.KeyD),
	}
}

// Draw renders the gameplay screen
func (ps *ParkingScreen) Draw(screen *ebiten.Image) {
	snap := ps.session.Snapshot()

	ps.drawLot(screen, snap)
	ps.drawPlayer(screen, snap)
	if snap.Debug != nil {
		drawDebug(screen, snap.Debug)
	}
	ps.drawUI(screen, snap)
	if ps.pause != nil {
		ps.pause.Draw(screen)
	}
}

func ebitenSize(img *ebiten.Image, fallbackW, fallbackH int) (int, int) {
	if img == nil {
		return fallbackW, fallbackH
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
