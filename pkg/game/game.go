package game

import (
	"github.com/golangdaddy/parallelpark/pkg/background"
	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/config"
	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/golangdaddy/parallelpark/pkg/sim"
	"github.com/golangdaddy/parallelpark/pkg/sound"
	"github.com/golangdaddy/parallelpark/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	settings      config.Settings
	clock         clock.Clock
	sound         *sound.Player
	log           zerolog.Logger
	backdrop      *ebiten.Image
	currentScreen Screen
}

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// NewGame creates a new game instance showing the title screen. snd may be nil.
func NewGame(settings config.Settings, clk clock.Clock, snd *sound.Player, log zerolog.Logger) *Game {
	g := &Game{
		settings: settings,
		clock:    clk,
		sound:    snd,
		log:      logging.Component(log, "game"),
	}
	g.showTitle()
	return g
}

func (g *Game) showTitle() {
	g.currentScreen = ui.NewTitleScreen(g.clock, func() {
		g.sound.Play(sound.Click)
		if err := g.startParking(); err != nil {
			g.log.Error().Err(err).Msg("failed to start session")
		}
	})
}

// startParking transitions to the actual gameplay
func (g *Game) startParking() error {
	session, err := sim.NewSession(g.settings, g.clock, g.log)
	if err != nil {
		return err
	}
	if g.backdrop == nil {
		canvas := g.settings.Dimensions.Canvas
		gen := background.NewGenerator(int(canvas.Width), int(canvas.Height))
		g.backdrop = gen.GenerateAsphalt(1, session.Snapshot().Curb)
	}
	g.currentScreen = NewParkingScreen(session, g.clock, g.sound, g.backdrop, func() {
		// back to the title when the player quits
		g.showTitle()
	})
	g.log.Info().Msg("parking started")
	return nil
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	canvas := g.settings.Dimensions.Canvas
	return int(canvas.Width), int(canvas.Height)
}
