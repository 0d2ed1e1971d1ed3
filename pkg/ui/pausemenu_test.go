package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPauseMenu_MoveWraps(t *testing.T) {
	pm := NewPauseMenu(nil)
	assert.Equal(t, ChoiceResume, pm.Selected())

	pm.Move(1)
	assert.Equal(t, ChoiceRespawn, pm.Selected())
	pm.Move(1)
	assert.Equal(t, ChoiceQuit, pm.Selected())
	pm.Move(1)
	assert.Equal(t, ChoiceResume, pm.Selected())
	pm.Move(-1)
	assert.Equal(t, ChoiceQuit, pm.Selected())
}

func TestPauseMenu_Choose(t *testing.T) {
	var got []PauseChoice
	pm := NewPauseMenu(func(c PauseChoice) { got = append(got, c) })

	pm.Choose()
	pm.Move(2)
	pm.Choose()
	assert.Equal(t, []PauseChoice{ChoiceResume, ChoiceQuit}, got)
}

func TestPauseChoice_String(t *testing.T) {
	assert.Equal(t, "Resume", ChoiceResume.String())
	assert.Equal(t, "Quit to title", ChoiceQuit.String())
	assert.Equal(t, "unknown", PauseChoice(9).String())
}
