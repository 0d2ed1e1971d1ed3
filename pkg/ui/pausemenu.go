package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseChoice is an entry of the pause menu.
type PauseChoice int

const (
	ChoiceResume PauseChoice = iota
	ChoiceRespawn
	ChoiceQuit
)

var pauseLabels = [...]string{
	ChoiceResume:  "Resume",
	ChoiceRespawn: "Back to start",
	ChoiceQuit:    "Quit to title",
}

func (c PauseChoice) String() string {
	if c < 0 || int(c) >= len(pauseLabels) {
		return "unknown"
	}
	return pauseLabels[c]
}

// PauseMenu is drawn over a frozen parking screen.
type PauseMenu struct {
	selected PauseChoice
	onChoose func(PauseChoice)
}

// NewPauseMenu creates a menu with Resume highlighted.
func NewPauseMenu(onChoose func(PauseChoice)) *PauseMenu {
	return &PauseMenu{onChoose: onChoose}
}

// Selected is the highlighted entry.
func (pm *PauseMenu) Selected() PauseChoice {
	return pm.selected
}

// Move shifts the highlight by delta entries, wrapping at both ends.
func (pm *PauseMenu) Move(delta int) {
	n := len(pauseLabels)
	pm.selected = PauseChoice(((int(pm.selected)+delta)%n + n) % n)
}

// Choose fires the callback for the highlighted entry.
func (pm *PauseMenu) Choose() {
	if pm.onChoose != nil {
		pm.onChoose(pm.selected)
	}
}

// Update handles keyboard navigation. ESC resumes.
func (pm *PauseMenu) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		pm.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		pm.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		pm.selected = ChoiceResume
		pm.Choose()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		pm.Choose()
	}
	return nil
}

// Draw dims the screen and renders the menu buttons
func (pm *PauseMenu) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), color.RGBA{0, 0, 0, 150}, false)

	face := text.NewGoXFace(bitmapfont.Face)
	drawCentered(screen, face, "PAUSED", float64(width)/2, float64(height)/4, 5, color.RGBA{255, 200, 50, 255})

	buttonWidth := 300.0
	buttonHeight := 50.0
	optionSpacing := 70.0
	buttonX := float64(width)/2 - buttonWidth/2
	y := float64(height) / 2.5

	for i, label := range pauseLabels {
		bg := color.RGBA{40, 40, 60, 255}
		fg := color.RGBA{255, 255, 255, 255}
		if PauseChoice(i) == pm.selected {
			bg = color.RGBA{60, 100, 140, 255}
			fg = color.RGBA{200, 240, 255, 255}
		}
		drawButton(screen, face, label, buttonX, y, buttonWidth, buttonHeight, bg, fg)
		y += optionSpacing
	}

	drawCentered(screen, face, "Arrow Keys: Navigate | Enter: Select | Esc: Resume",
		float64(width)/2, float64(height)-60, 1, color.RGBA{150, 150, 150, 255})
}

// drawButton draws a button with background and text
func drawButton(screen *ebiten.Image, face text.Face, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	fx, fy, fw, fh := float32(x), float32(y), float32(width), float32(height)
	vector.DrawFilledRect(screen, fx, fy, fw, fh, bgColor, false)
	vector.StrokeRect(screen, fx, fy, fw, fh, 2, color.RGBA{80, 80, 100, 255}, false)

	// bitmap font is 16px tall, so its centre sits 8px below the top
	drawCentered(screen, face, label, x+width/2, y+height/2-8, 1, textColor)
}
