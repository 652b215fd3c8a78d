package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func entriesOf(scores ...int) []models.ScoreEntry {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	entries := make([]models.ScoreEntry, len(scores))
	for i, score := range scores {
		ts := base.AddDate(0, 0, i)
		entries[i] = models.ScoreEntry{Timestamp: ts, Score: score, Label: ts.Format("02/01")}
	}
	return entries
}

func TestRenderer_RendersPNG(t *testing.T) {
	renderer := NewRenderer("#003399")

	png, err := renderer.Render(entriesOf(65, 72, 80, 74))
	require.NoError(t, err)
	require.True(t, len(png) > 4)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderer_RequiresTwoPoints(t *testing.T) {
	renderer := NewRenderer("#003399")

	_, err := renderer.Render(entriesOf(70))
	assert.Error(t, err)

	_, err = renderer.Render(nil)
	assert.Error(t, err)
}

func TestRenderer_BadColorFallsBack(t *testing.T) {
	renderer := NewRenderer("blue")

	png, err := renderer.Render(entriesOf(60, 61))
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}
