package game

import (
	"image/color"

	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/golangdaddy/parallelpark/pkg/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	asphaltColor = color.RGBA{52, 54, 58, 255}
	playerColor  = color.RGBA{220, 20, 20, 255}
	rearColor    = color.RGBA{40, 90, 200, 255}
	frontColor   = color.RGBA{230, 180, 30, 255}
	curbColor    = color.RGBA{170, 170, 160, 255}
	curbStripe   = color.RGBA{230, 200, 40, 255}
	targetFill   = color.RGBA{40, 200, 80, 60}
	targetLine   = color.RGBA{240, 240, 240, 255}
)

// carSprite is a top-down car facing +x, keyed by size and colour.
type carSprite struct {
	w, h int
	c    color.RGBA
}

type spriteCache struct {
	cars map[carSprite]*ebiten.Image
}

func newSpriteCache() *spriteCache {
	return &spriteCache{cars: make(map[carSprite]*ebiten.Image)}
}

func (sc *spriteCache) car(width, height float64, c color.RGBA) *ebiten.Image {
	key := carSprite{w: int(width), h: int(height), c: c}
	if img, ok := sc.cars[key]; ok {
		return img
	}
	img := renderCar(key.w, key.h, c)
	sc.cars[key] = img
	return img
}

// renderCar draws the car body once. The bonnet is on the right so that heading 0
// needs no extra rotation.
func renderCar(w, h int, body color.RGBA) *ebiten.Image {
	carImg := ebiten.NewImage(w, h)
	fw, fh := float32(w), float32(h)

	// Body
	vector.DrawFilledRect(carImg, 0, 0, fw, fh, body, false)

	// Outline
	vector.StrokeRect(carImg, 1, 1, fw-2, fh-2, 2, color.RGBA{20, 20, 20, 255}, false)

	// Roof
	roof := color.RGBA{shade(body.R), shade(body.G), shade(body.B), 255}
	vector.DrawFilledRect(carImg, fw*0.3, fh*0.18, fw*0.4, fh*0.64, roof, false)

	// Windshield towards the front
	vector.DrawFilledRect(carImg, fw*0.62, fh*0.2, fw*0.1, fh*0.6, color.RGBA{150, 200, 255, 220}, false)

	// Rear window
	vector.DrawFilledRect(carImg, fw*0.24, fh*0.24, fw*0.06, fh*0.52, color.RGBA{120, 160, 200, 220}, false)

	// Wheels
	wheel := color.RGBA{30, 30, 30, 255}
	ww, wh := fw*0.16, float32(4)
	for _, x := range []float32{fw * 0.12, fw * 0.72} {
		vector.DrawFilledRect(carImg, x, 0, ww, wh, wheel, false)
		vector.DrawFilledRect(carImg, x, fh-wh, ww, wh, wheel, false)
	}

	// Headlights and taillights
	vector.DrawFilledRect(carImg, fw-4, fh*0.15, 3, fh*0.15, color.RGBA{255, 255, 100, 255}, false)
	vector.DrawFilledRect(carImg, fw-4, fh*0.7, 3, fh*0.15, color.RGBA{255, 255, 100, 255}, false)
	vector.DrawFilledRect(carImg, 1, fh*0.15, 3, fh*0.15, color.RGBA{255, 0, 0, 255}, false)
	vector.DrawFilledRect(carImg, 1, fh*0.7, 3, fh*0.15, color.RGBA{255, 0, 0, 255}, false)

	return carImg
}

// shade darkens a channel by a fifth.
func shade(c uint8) uint8 {
	return uint8(int(c) * 4 / 5)
}

// drawCar renders a car sprite centred on (x, y) and rotated by heading.
func drawCar(screen, sprite *ebiten.Image, x, y, heading float64) {
	b := sprite.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(heading)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// drawLot renders the road, the parking box, the curb and the parked cars.
func (ps *ParkingScreen) drawLot(screen *ebiten.Image, snap sim.Snapshot) {
	if ps.backdrop != nil {
		screen.DrawImage(ps.backdrop, nil)
	} else {
		screen.Fill(asphaltColor)
	}

	t := snap.Target
	x, y := float32(t.Min.X()), float32(t.Min.Y())
	w, h := float32(t.Max.X()-t.Min.X()), float32(t.Max.Y()-t.Min.Y())
	vector.DrawFilledRect(screen, x, y, w, h, targetFill, false)
	vector.StrokeRect(screen, x, y, w, h, 2, targetLine, false)

	drawCurb(screen, snap.Curb)

	for _, o := range snap.Obstacles {
		c := rearColor
		if o.Label == lot.LabelFrontCar {
			c = frontColor
		}
		drawCar(screen, ps.sprites.car(o.Width, o.Height, c), o.X, o.Y, o.Angle)
	}
}

func drawCurb(screen *ebiten.Image, c lot.Curb) {
	x := float32(c.X - c.Width/2)
	y := float32(c.Y - c.Height/2)
	w, h := float32(c.Width), float32(c.Height)
	vector.DrawFilledRect(screen, x, y, w, h, curbColor, false)

	// painted stripe along the kerb edge
	for sx := x; sx < x+w; sx += 40 {
		vector.DrawFilledRect(screen, sx, y, 20, 3, curbStripe, false)
	}
}

func (ps *ParkingScreen) drawPlayer(screen *ebiten.Image, snap sim.Snapshot) {
	sprite := ps.sprites.car(snap.Width, snap.Height, playerColor)
	drawCar(screen, sprite, snap.Vehicle.X, snap.Vehicle.Y, snap.Vehicle.Heading)
}
