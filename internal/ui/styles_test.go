package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/dayplan/models"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := Icon("X", StyleError)
	assert.Contains(t, out, "X")
	assert.NotEqual(t, "X", out)
}

func TestTierStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	assert.Equal(t, ColorError, TierStyle(models.TierUrgent).GetForeground())
	assert.Equal(t, ColorWarning, TierStyle(models.TierWarning).GetForeground())
	assert.Equal(t, ColorSuccess, TierStyle(models.TierSafe).GetForeground())
	assert.Equal(t, ColorSuccess, TierStyle("").GetForeground())
	assert.Contains(t, TierDot(models.TierUrgent), "●")
}
