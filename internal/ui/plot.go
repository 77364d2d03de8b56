package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/catalog"
	"github.com/litescript/ls-skycat/internal/encode"
)

const (
	// Star glyphs by magnitude
	glyphBright  = '✶' // mag < 1.5
	glyphMedium  = '✸' // mag 1.5-3.0
	glyphDim     = '·' // mag >= 3.0
	glyphLine    = '∙'
	glyphFocused = '◆'

	colorBright     = "255" // bright white
	colorMedium     = "250" // medium gray
	colorDim        = "244" // dim gray
	colorLine       = "60"  // muted purple
	colorFocused    = "229" // bright gold
	colorBackground = "236"
)

// plotCell maps a written RA (0-360, inclusive after inversion) and Dec onto
// a width x height grid. North is up.
func plotCell(raOut, dec float64, width, height int) (x, y int) {
	if raOut > 360 {
		raOut = 360
	}
	if raOut < 0 {
		raOut = 0
	}
	x = int(raOut / 360 * float64(width-1))
	y = int((90 - dec) / 180 * float64(height-1))
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}

func magnitudeGlyph(mag float64) (rune, string) {
	switch {
	case mag < 1.5:
		return glyphBright, colorBright
	case mag < 3.0:
		return glyphMedium, colorMedium
	default:
		return glyphDim, colorDim
	}
}

// renderSkyPlot draws every record and highlights the focused one.
func renderSkyPlot(records []catalog.Record, focus int, opts encode.Options, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}

	canvas := make([][]rune, height)
	colors := make([][]string, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]string, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorBackground
		}
	}

	// Celestial equator
	_, eqY := plotCell(0, 0, width, height)
	for x := 0; x < width; x++ {
		canvas[eqY][x] = '─'
	}

	set := func(p astro.Position, glyph rune, color string) {
		x, y := plotCell(opts.RA(p.RAdeg), p.DecDeg, width, height)
		canvas[y][x] = glyph
		colors[y][x] = color
	}

	draw := func(r catalog.Record, focused bool) {
		switch r.Kind {
		case catalog.KindObject:
			glyph, color := magnitudeGlyph(r.Object.Magnitude)
			if focused {
				glyph, color = glyphFocused, colorFocused
			}
			set(astro.Position{RAdeg: r.Object.RAdeg, DecDeg: r.Object.DecDeg}, glyph, color)
		case catalog.KindConstellation:
			color := colorLine
			if focused {
				color = colorFocused
			}
			for _, l := range r.Constellation.Lines {
				for _, p := range l.Positions {
					set(p, glyphLine, color)
				}
			}
		}
	}

	for i, r := range records {
		if i != focus {
			draw(r, false)
		}
	}
	// Focused record last so it is never hidden
	if focus >= 0 && focus < len(records) {
		draw(records[focus], true)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[y][x]))
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
