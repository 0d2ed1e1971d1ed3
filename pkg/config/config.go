package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/collision"
	"github.com/golangdaddy/parallelpark/pkg/level"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/vehicle"
	"github.com/spf13/viper"
)

// FileName is the optional tuning file looked up in the config directory.
// Viper appends the ".json" extension when searching.
const FileName = "parking.cfg"

// EnvPrefix prefixes environment overrides, e.g. PARKING_LEVEL_MINGAP.
const EnvPrefix = "PARKING"

// Settings is the typed view of the configuration.
type Settings struct {
	LogLevel   string
	Sound      bool
	Debug      bool
	MaxDelta   float64 // Largest tick delta in seconds
	Dimensions lot.Dimensions
	Vehicle    vehicle.Params
	Level      level.Config
	Collision  collision.Config
}

// Default returns the built-in settings without consulting viper.
func Default() Settings {
	params := vehicle.DefaultParams()
	dims := lot.DefaultDimensions()
	dims.VehicleHeight = params.Height
	return Settings{
		LogLevel:   "info",
		Sound:      true,
		MaxDelta:   0.05,
		Dimensions: dims,
		Vehicle:    params,
		Level:      level.DefaultConfig(),
		Collision:  collision.DefaultConfig(),
	}
}

// Load registers defaults and environment overrides, then reads FileName from
// configDir as JSON. A missing file is not an error; the defaults apply.
func Load(configDir string) error {
	setDefaults(Default())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func setDefaults(d Settings) {
	viper.SetDefault("logLevel", d.LogLevel)
	viper.SetDefault("sound", d.Sound)
	viper.SetDefault("debug", d.Debug)

	viper.SetDefault("canvas.width", d.Dimensions.Canvas.Width)
	viper.SetDefault("canvas.height", d.Dimensions.Canvas.Height)
	viper.SetDefault("canvas.margin", d.Dimensions.Canvas.Margin)

	viper.SetDefault("vehicle.width", d.Vehicle.Width)
	viper.SetDefault("vehicle.height", d.Vehicle.Height)
	viper.SetDefault("vehicle.wheelbase", d.Vehicle.Wheelbase)
	viper.SetDefault("vehicle.insetX", d.Vehicle.InsetX)
	viper.SetDefault("vehicle.insetY", d.Vehicle.InsetY)
	viper.SetDefault("vehicle.maxSpeed", d.Vehicle.MaxSpeed)
	viper.SetDefault("vehicle.acceleration", d.Vehicle.Acceleration)
	viper.SetDefault("vehicle.friction", d.Vehicle.Friction)
	viper.SetDefault("vehicle.steerRate", d.Vehicle.SteerRate)
	viper.SetDefault("vehicle.maxSteer", d.Vehicle.MaxSteer)

	viper.SetDefault("obstacle.width", d.Dimensions.ObstacleWidth)
	viper.SetDefault("obstacle.height", d.Dimensions.ObstacleHeight)
	viper.SetDefault("obstacle.insetX", d.Dimensions.ObstacleInsetX)
	viper.SetDefault("obstacle.insetY", d.Dimensions.ObstacleInsetY)
	viper.SetDefault("curb.height", d.Dimensions.CurbHeight)
	viper.SetDefault("target.height", d.Dimensions.TargetHeight)

	viper.SetDefault("level.maxGap", d.Level.MaxGap)
	viper.SetDefault("level.minGap", d.Level.MinGap)
	viper.SetDefault("level.gapStep", d.Level.GapStep)
	viper.SetDefault("level.lingerMs", d.Level.Linger.Milliseconds())
	viper.SetDefault("level.angleTolerance", d.Level.AngleTolerance)
	viper.SetDefault("level.speedThreshold", d.Level.SpeedThreshold)

	viper.SetDefault("collision.bounceDuration", d.Collision.BounceDuration.Seconds())
	viper.SetDefault("collision.bounceStrength", d.Collision.BounceStrength)
	viper.SetDefault("collision.flashDuration", d.Collision.FlashDuration.Seconds())

	viper.SetDefault("tick.maxDelta", d.MaxDelta)
}

// Physics assembles Settings from the loaded configuration.
func Physics() Settings {
	params := vehicle.Params{
		Width:        viper.GetFloat64("vehicle.width"),
		Height:       viper.GetFloat64("vehicle.height"),
		Wheelbase:    viper.GetFloat64("vehicle.wheelbase"),
		InsetX:       viper.GetFloat64("vehicle.insetX"),
		InsetY:       viper.GetFloat64("vehicle.insetY"),
		MaxSpeed:     viper.GetFloat64("vehicle.maxSpeed"),
		Acceleration: viper.GetFloat64("vehicle.acceleration"),
		Friction:     viper.GetFloat64("vehicle.friction"),
		SteerRate:    viper.GetFloat64("vehicle.steerRate"),
		MaxSteer:     viper.GetFloat64("vehicle.maxSteer"),
	}

	return Settings{
		LogLevel: viper.GetString("logLevel"),
		Sound:    viper.GetBool("sound"),
		Debug:    viper.GetBool("debug"),
		MaxDelta: viper.GetFloat64("tick.maxDelta"),
		Dimensions: lot.Dimensions{
			Canvas: lot.Bounds{
				Width:  viper.GetFloat64("canvas.width"),
				Height: viper.GetFloat64("canvas.height"),
				Margin: viper.GetFloat64("canvas.margin"),
			},
			CurbHeight:     viper.GetFloat64("curb.height"),
			TargetHeight:   viper.GetFloat64("target.height"),
			ObstacleWidth:  viper.GetFloat64("obstacle.width"),
			ObstacleHeight: viper.GetFloat64("obstacle.height"),
			ObstacleInsetX: viper.GetFloat64("obstacle.insetX"),
			ObstacleInsetY: viper.GetFloat64("obstacle.insetY"),
			VehicleHeight:  params.Height,
		},
		Vehicle: params,
		Level: level.Config{
			MaxGap:         viper.GetFloat64("level.maxGap"),
			MinGap:         viper.GetFloat64("level.minGap"),
			GapStep:        viper.GetFloat64("level.gapStep"),
			Linger:         time.Duration(viper.GetInt64("level.lingerMs")) * time.Millisecond,
			AngleTolerance: viper.GetFloat64("level.angleTolerance"),
			SpeedThreshold: viper.GetFloat64("level.speedThreshold"),
		},
		Collision: collision.Config{
			BounceDuration: seconds(viper.GetFloat64("collision.bounceDuration")),
			BounceStrength: viper.GetFloat64("collision.bounceStrength"),
			FlashDuration:  seconds(viper.GetFloat64("collision.flashDuration")),
		},
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
