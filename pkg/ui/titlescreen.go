package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/clock"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Controls lists the key bindings shown under the title.
var Controls = []string{
	"ARROWS / WASD   drive and steer",
	"MOUSE           drag the car, slide the gap",
	"[ ]             narrow or widen the gap",
	"R               back to the start",
	"F3              collision outlines",
	"ESC             pause menu",
}

// TitleScreen represents the main title screen
type TitleScreen struct {
	clock          clock.Clock
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen
func NewTitleScreen(clk clock.Clock, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		clock:          clk,
		startTime:      clk.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	// Any key or mouse click to start
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := ts.clock.Now().Sub(ts.startTime).Seconds()

	face := text.NewGoXFace(bitmapfont.Face)
	centerX := float64(width) / 2
	centerY := float64(height) / 4

	// Pulsing scale effect (1.0 to 1.1)
	titleText := "PARALLEL PARK"
	titleScale := 6.0 * (1.0 + 0.1*pulse(elapsed, 2.0))
	drawCentered(screen, face, titleText, centerX, centerY-8, titleScale, titleColor(elapsed))

	drawCentered(screen, face, "Squeeze in. Mind the bumpers.", centerX, centerY+80, 2,
		color.RGBA{180, 180, 200, 255})

	y := centerY + 140
	for _, line := range Controls {
		drawCentered(screen, face, line, centerX, y, 1.25, color.RGBA{140, 150, 170, 255})
		y += 24
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		drawCentered(screen, face, "Press ENTER or SPACE to Start", centerX, float64(height)-100, 1.5,
			color.RGBA{150, 200, 255, 255})
	}

	drawDecorativeElements(screen, width, height)
}

// titleColor is gold with a slight pulsing brightness.
func titleColor(elapsed float64) color.RGBA {
	brightness := math.Min(1.0, 1.0+0.2*pulse(elapsed, 1.5))
	return color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	}
}

// pulse returns a sine wave value between -1 and 1
func pulse(t, rate float64) float64 {
	return math.Sin(t * rate)
}

func drawCentered(screen *ebiten.Image, face text.Face, s string, cx, y, scale float64, c color.Color) {
	w := text.Advance(s, face) * scale
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-w/2, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawDecorativeElements draws parking bay lines across the top and bottom.
func drawDecorativeElements(screen *ebiten.Image, width, height int) {
	lineColor := color.RGBA{50, 60, 80, 100}
	top := float32(height) / 8
	bottom := float32(height) * 7 / 8

	vector.DrawFilledRect(screen, 0, top, float32(width), 2, lineColor, false)
	vector.DrawFilledRect(screen, 0, bottom, float32(width), 2, lineColor, false)

	// bay separators
	for x := float32(40); x < float32(width); x += 120 {
		vector.DrawFilledRect(screen, x, top-30, 2, 30, lineColor, false)
		vector.DrawFilledRect(screen, x, bottom+2, 2, 30, lineColor, false)
	}
}
