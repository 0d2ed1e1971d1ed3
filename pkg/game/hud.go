package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/sim"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var face = text.NewGoXFace(bitmapfont.Face)

// drawUI renders the game UI overlay
func (ps *ParkingScreen) drawUI(screen *ebiten.Image, snap sim.Snapshot) {
	ps.drawSpeedometer(screen, snap)
	ps.drawSteeringIndicator(screen, snap)
	ps.drawGapSlider(screen, snap)

	drawText(screen, fmt.Sprintf("LEVEL %d", snap.Level()), 220, 24, 2, color.RGBA{240, 240, 240, 255})
	drawText(screen, fmt.Sprintf("PARKED: %d", snap.Wins), 220, 56, 1.5, color.RGBA{180, 180, 200, 255})

	if snap.ShowCollisionFlash {
		vector.DrawFilledRect(screen, 0, 0, float32(ps.screenWidth), float32(ps.screenHeight),
			color.RGBA{255, 0, 0, 70}, false)
	}
	if snap.ShowWinOverlay {
		ps.drawWinOverlay(screen)
	}

	help := "ARROWS/WASD drive  [ ] gap  R respawn  F3 debug  ESC pause"
	ebitenutil.DebugPrintAt(screen, help, 20, ps.screenHeight-18)
}

// drawText draws s with its top-left corner at (x, y), scaled.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawCentered draws s horizontally centred on cx.
func drawCentered(screen *ebiten.Image, s string, cx, y, scale float64, c color.Color) {
	w := text.Advance(s, face) * scale
	drawText(screen, s, cx-w/2, y, scale, c)
}

func (ps *ParkingScreen) drawWinOverlay(screen *ebiten.Image) {
	w, h := float32(ps.screenWidth), float32(ps.screenHeight)
	vector.DrawFilledRect(screen, 0, h/2-60, w, 120, color.RGBA{10, 40, 20, 190}, false)
	drawCentered(screen, "PARKED!", float64(w)/2, float64(h)/2-40, 6, color.RGBA{120, 255, 140, 255})
}

// drawSpeedometer draws the speed readout in the top-left corner.
func (ps *ParkingScreen) drawSpeedometer(screen *ebiten.Image, snap sim.Snapshot) {
	x, y := float32(20), float32(20)
	width, height := float32(180), float32(120)

	vector.DrawFilledRect(screen, x, y, width, height, color.RGBA{20, 20, 30, 200}, false)
	vector.StrokeRect(screen, x, y, width, height, 2, color.RGBA{100, 100, 120, 255}, false)

	speed := math.Abs(snap.Speed)
	ratio := 0.0
	if snap.MaxSpeed > 0 {
		ratio = math.Min(speed/snap.MaxSpeed, 1)
	}

	// Color based on speed (green for crawling, yellow for brisk, red near the limit)
	var speedColor color.RGBA
	switch {
	case ratio < 0.5:
		speedColor = color.RGBA{100, 255, 100, 255}
	case ratio < 0.8:
		speedColor = color.RGBA{255, 255, 100, 255}
	default:
		speedColor = color.RGBA{255, 100, 100, 255}
	}

	speedText := fmt.Sprintf("%.0f", speed)
	if snap.Speed < -0.5 {
		speedText = "R " + speedText
	}
	cx := float64(x + width/2)
	drawCentered(screen, speedText, cx, float64(y)+20, 3, speedColor)
	drawCentered(screen, "PX/S", cx, float64(y)+70, 1.5, color.RGBA{200, 200, 200, 255})

	// Gauge bar
	gx, gy := x+10, y+height-25
	gw, gh := width-20, float32(15)
	vector.DrawFilledRect(screen, gx, gy, gw, gh, color.RGBA{40, 40, 40, 255}, false)
	if fill := gw * float32(ratio); fill > 0 {
		vector.DrawFilledRect(screen, gx, gy, fill, gh, gaugeColor(ratio), false)
	}
	vector.StrokeRect(screen, gx, gy, gw, gh, 1, color.RGBA{150, 150, 150, 255}, false)
}

// gaugeColor fades green -> yellow -> red.
func gaugeColor(ratio float64) color.RGBA {
	if ratio < 0.5 {
		r := ratio / 0.5
		return color.RGBA{uint8(100 + r*155), 255, 100, 255}
	}
	r := (ratio - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - r*155), uint8(100 - r*100), 255}
}

// drawSteeringIndicator draws a steering wheel in the bottom-right corner.
func (ps *ParkingScreen) drawSteeringIndicator(screen *ebiten.Image, snap sim.Snapshot) {
	cx := float32(ps.screenWidth - 80)
	cy := float32(ps.screenHeight - 90)
	radius := float32(30)

	vector.StrokeCircle(screen, cx, cy, radius, 4, color.RGBA{100, 100, 100, 255}, true)
	vector.DrawFilledCircle(screen, cx, cy, 4, color.RGBA{200, 200, 200, 255}, true)

	turn := 0.0
	if snap.MaxSteer > 0 {
		turn = snap.SteerAngle / snap.MaxSteer
	}

	// red when turned, green when centred
	indicator := color.RGBA{50, 255, 50, 255}
	if math.Abs(turn) > 0.1 {
		indicator = color.RGBA{255, 50, 50, 255}
	}

	lineAngle := turn * math.Pi / 2
	length := float64(radius - 5)
	ex := cx + float32(length*math.Sin(lineAngle))
	ey := cy - float32(length*math.Cos(lineAngle))
	vector.StrokeLine(screen, cx, cy, ex, ey, 4, indicator, true)

	label := fmt.Sprintf("Steering: %.2f", snap.SteerAngle)
	ebitenutil.DebugPrintAt(screen, label, ps.screenWidth-150, ps.screenHeight-50)
}

func (ps *ParkingScreen) drawGapSlider(screen *ebiten.Image, snap sim.Snapshot) {
	b := ps.gap.bar
	x, y := float32(b.Min.X()), float32(b.Min.Y())
	w, h := float32(b.Max.X()-b.Min.X()), float32(b.Max.Y()-b.Min.Y())

	drawText(screen, fmt.Sprintf("GAP %.0f", snap.Gap), float64(x), float64(y)-18, 1, color.RGBA{220, 220, 220, 255})

	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{30, 30, 40, 220}, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{150, 150, 150, 255}, false)

	kx := x + w*float32(ps.gap.fraction(snap.Gap))
	knob := color.RGBA{240, 240, 240, 255}
	if ps.sliding {
		knob = color.RGBA{255, 220, 80, 255}
	}
	vector.DrawFilledRect(screen, kx-4, y-3, 8, h+6, knob, false)
}

// drawDebug outlines every collision polygon and prints the last contact.
func drawDebug(screen *ebiten.Image, d *sim.DebugInfo) {
	outline := color.RGBA{0, 255, 255, 255}
	strokePolygon(screen, d.Vehicle, color.RGBA{255, 0, 255, 255})
	for _, p := range d.Obstacles {
		strokePolygon(screen, p, outline)
	}
	strokePolygon(screen, d.Curb, outline)

	if d.Bouncing && len(d.Vehicle) > 0 {
		c := geometry.Centroid(d.Vehicle)
		end := c.Add(d.BounceDir.MulConst(40))
		vector.StrokeLine(screen, float32(c.X()), float32(c.Y()), float32(end.X()), float32(end.Y()),
			2, color.RGBA{255, 255, 0, 255}, true)
	}

	last := d.LastContact
	if last == "" {
		last = "none"
	}
	ebitenutil.DebugPrintAt(screen, "last collision: "+last, 20, 150)
}

func strokePolygon(screen *ebiten.Image, p geometry.Polygon, c color.Color) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		vector.StrokeLine(screen, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), 1, c, true)
	}
}
