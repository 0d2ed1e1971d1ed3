package background

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/hajimehoshi/ebiten/v2"
)

// Generator creates street backdrop textures
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// GenerateAsphalt creates a street backdrop: speckled asphalt, a dashed centre line,
// oil stains and a paved sidewalk below the curb.
func (g *Generator) GenerateAsphalt(seed int64, curb lot.Curb) *ebiten.Image {
	return ebiten.NewImageFromImage(g.Paint(seed, curb))
}

// Paint renders the backdrop into a plain RGBA image.
func (g *Generator) Paint(seed int64, curb lot.Curb) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	g.fill(img, 0, g.Height, color.RGBA{52, 54, 58, 255})

	// Add noise/texture to the asphalt
	for i := 0; i < g.Width*g.Height/10; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(40 + rng.Intn(30))
		img.Set(x, y, color.RGBA{shade, shade, shade + 4, 255})
	}

	for i := 0; i < 12; i++ {
		g.drawStain(img, rng.Intn(g.Width), rng.Intn(g.Height), rng)
	}

	// Dashed centre line halfway up the driving lane
	lineY := int(curb.Top()) / 3
	for x := 0; x < g.Width; x += 60 {
		for dx := 0; dx < 30 && x+dx < g.Width; dx++ {
			for dy := 0; dy < 3; dy++ {
				img.Set(x+dx, lineY+dy, color.RGBA{230, 230, 230, 255})
			}
		}
	}

	// Sidewalk slabs below the curb
	bottom := int(curb.Y + curb.Height/2)
	if bottom < g.Height {
		g.fill(img, bottom, g.Height, color.RGBA{150, 148, 140, 255})
		for x := 0; x < g.Width; x += 48 {
			for y := bottom; y < g.Height; y++ {
				img.Set(x, y, color.RGBA{120, 118, 110, 255})
			}
		}
	}

	return img
}

func (g *Generator) fill(img *image.RGBA, fromY, toY int, c color.RGBA) {
	for y := fromY; y < toY; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawStain draws a round, darker patch
func (g *Generator) drawStain(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 5 + rng.Intn(14)
	shade := uint8(30 + rng.Intn(15))
	c := color.RGBA{shade, shade, shade + 3, 255}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				px, py := x+dx, y+dy
				if px >= 0 && px < g.Width && py >= 0 && py < g.Height {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
}
