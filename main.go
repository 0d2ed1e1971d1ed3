package main

import (
	"os"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/golangdaddy/parallelpark/pkg/config"
	"github.com/golangdaddy/parallelpark/pkg/game"
	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/golangdaddy/parallelpark/pkg/sound"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

// sfxVolume is the playback volume of every effect.
const sfxVolume = 0.6

func main() {
	// .env is optional; real environment variables still apply without it
	envErr := godotenv.Load()

	configDir := os.Getenv("PARKING_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	cfgErr := config.Load(configDir)
	settings := config.Physics()
	if cfgErr != nil {
		settings = config.Default()
	}

	log := logging.Setup(settings.LogLevel, os.Stdout)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default settings")
	}

	var snd *sound.Player
	if settings.Sound {
		p, err := sound.New(sfxVolume, log)
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			snd = p
		}
	}

	g := game.NewGame(settings, clock.System{}, snd, log)

	canvas := settings.Dimensions.Canvas
	ebiten.SetWindowSize(int(canvas.Width), int(canvas.Height))
	ebiten.SetWindowTitle("Parallel Park")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game loop stopped")
	}
}
