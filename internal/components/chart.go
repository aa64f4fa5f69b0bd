package components

import (
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

// Chart renders the score-over-time series as an inline SVG polyline.
type Chart struct {
	unit
	width  int
	height int
}

func NewChart() *Chart {
	return &Chart{
		width:  720,
		height: 140,
		unit: unit{
			name: "chart",
			css: `
:scope { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 12px 18px; }
h2 { margin: 0 0 8px; font-size: 14px; color: #8b949e; font-weight: 500; }
.empty { color: #8b949e; font-size: 13px; padding: 24px 0; }
svg polyline { fill: none; stroke: #58a6ff; stroke-width: 2; }
svg circle { fill: #58a6ff; }
`,
		},
	}
}

// SetSize adjusts the drawing area and re-renders with the last state seen.
// Setting the same size twice renders identically.
func (c *Chart) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.Render(c.last)
}

func (c *Chart) Render(state models.AppState) {
	c.begin(state)
	points := selectors.TimeSeriesAvgScore(state.Entries())

	c.printf(`<section class="%s"><h2>Score over time</h2>`, ScopeClass(c.name))
	if len(points) == 0 {
		c.write(`<div class="empty">No data points yet.</div></section>`)
		return
	}

	const pad = 8
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	w, h := float64(c.width-2*pad), float64(c.height-2*pad)
	px := func(p selectors.Point) (float64, float64) {
		x := 0.5
		if maxX > minX {
			x = float64(p.X-minX) / float64(maxX-minX)
		}
		y := 0.5
		if maxY > minY {
			y = (p.Y - minY) / (maxY - minY)
		}
		return pad + x*w, pad + (1-y)*h
	}

	c.printf(`<svg viewBox="0 0 %d %d" width="%d" height="%d" role="img">`, c.width, c.height, c.width, c.height)
	c.write(`<polyline points="`)
	for i, p := range points {
		if i > 0 {
			c.write(" ")
		}
		x, y := px(p)
		c.printf("%.1f,%.1f", x, y)
	}
	c.write(`"/>`)
	for _, p := range points {
		x, y := px(p)
		c.printf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>`, x, y)
	}
	c.write(`</svg></section>`)
}
