package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// Renderer draws the Brand Health Index trend as a PNG line chart.
type Renderer struct {
	lineColor drawing.Color
}

// NewRenderer creates a renderer using the brand's primary color for the
// trend line. Falls back to the default corporate blue on a bad hex value.
func NewRenderer(primaryColorHex string) *Renderer {
	color := drawing.ColorFromHex("003399")
	if len(primaryColorHex) == 7 && primaryColorHex[0] == '#' {
		color = drawing.ColorFromHex(primaryColorHex[1:])
	}
	return &Renderer{lineColor: color}
}

// Render plots the entries oldest to newest, left to right. At least two
// points are required; callers treat a shorter series as "no chart", not
// as an error worth aborting for.
func (r *Renderer) Render(entries []models.ScoreEntry) ([]byte, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("need at least 2 score entries to render a trend, got %d", len(entries))
	}

	xs := make([]float64, len(entries))
	ys := make([]float64, len(entries))
	ticks := make([]chart.Tick, len(entries))
	for i, entry := range entries {
		xs[i] = float64(i)
		ys[i] = float64(entry.Score)
		label := entry.Label
		if label == "" {
			label = entry.Timestamp.Format("02/01")
		}
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	graph := chart.Chart{
		Title:  "Evolución Brand Health Index",
		Width:  800,
		Height: 300,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
			GridLines: []chart.GridLine{
				{Value: 50},
				{Value: 80},
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.ColorFromHex("cccccc"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{4, 4},
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Brand Health",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: r.lineColor,
					StrokeWidth: 2,
					DotColor:    r.lineColor,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
