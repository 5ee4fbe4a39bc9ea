// Package glyph holds the fixed block-letter library used for debossed
// text. Letters are hand-authored polygon outlines (bold geometric
// sans-serif forms that survive shallow debossing), not rendered from
// font files. The set covers exactly the characters of the brand
// wordmark.
package glyph

import (
	"errors"
	"fmt"
	"math"

	"github.com/trailcurrentoss/reliefkit/pkg/shape"
)

// Design units.
const (
	CapHeight = 10.0 // capital height
	XHeight   = 7.0  // lowercase body height
	Spacing   = 1.0  // inter-character gap
)

// ErrUnsupportedChar reports a character outside the glyph table.
var ErrUnsupportedChar = errors.New("unsupported character")

// Glyph is one block letter: outer outlines (a glyph may have several,
// like the stem and dot of 'i') and hole outlines for counters.
// Coordinates are in design units with the origin at the bottom-left.
type Glyph struct {
	Advance float64
	Outers  [][][2]float64
	Holes   [][][2]float64
}

// glyphs is the fixed character table. Stroke width is 1.8 design units.
var glyphs = map[rune]Glyph{
	// Capitals.
	'T': {
		Advance: 7.0,
		Outers: [][][2]float64{{
			{0, 10}, {7, 10}, {7, 8.2}, {4.4, 8.2},
			{4.4, 0}, {2.6, 0}, {2.6, 8.2}, {0, 8.2},
		}},
	},
	'C': {
		Advance: 5.4,
		Outers: [][][2]float64{{
			{0, 0}, {5.4, 0}, {5.4, 1.8}, {1.8, 1.8},
			{1.8, 8.2}, {5.4, 8.2}, {5.4, 10}, {0, 10},
		}},
	},

	// Lowercase.
	'r': {
		Advance: 3.8,
		Outers: [][][2]float64{{
			{0, 0}, {1.8, 0}, {1.8, 5.2}, {3.8, 5.2},
			{3.8, 7}, {0, 7},
		}},
	},
	'a': {
		Advance: 5.4,
		Outers: [][][2]float64{{
			{0, 0}, {5.4, 0}, {5.4, 7}, {0, 7},
		}},
		Holes: [][][2]float64{{
			{1.8, 1.8}, {3.6, 1.8}, {3.6, 5.2}, {1.8, 5.2},
		}},
	},
	'i': {
		Advance: 1.8,
		Outers: [][][2]float64{
			{{0, 0}, {1.8, 0}, {1.8, 7}, {0, 7}},
			{{0, 8.2}, {1.8, 8.2}, {1.8, 10}, {0, 10}},
		},
	},
	'l': {
		Advance: 1.8,
		Outers: [][][2]float64{{
			{0, 0}, {1.8, 0}, {1.8, 10}, {0, 10},
		}},
	},
	'u': {
		Advance: 5.4,
		Outers: [][][2]float64{{
			{0, 0}, {5.4, 0}, {5.4, 7}, {3.6, 7},
			{3.6, 1.8}, {1.8, 1.8}, {1.8, 7}, {0, 7},
		}},
	},
	'e': {
		Advance: 5.4,
		Outers: [][][2]float64{{
			{0, 0}, {5.4, 0}, {5.4, 2.6}, {1.8, 2.6},
			{1.8, 4.4}, {5.4, 4.4}, {5.4, 7}, {0, 7},
		}},
	},
	'n': {
		Advance: 5.4,
		Outers: [][][2]float64{{
			{0, 0}, {1.8, 0}, {1.8, 5.2}, {3.6, 5.2},
			{3.6, 0}, {5.4, 0}, {5.4, 7}, {0, 7},
		}},
	},
	't': {
		Advance: 4.2,
		Outers: [][][2]float64{{
			{0, 0}, {1.8, 0}, {1.8, 5.2}, {4.2, 5.2},
			{4.2, 7}, {1.8, 7}, {1.8, 10}, {0, 10},
		}},
	},
}

// Supported reports whether the character has a glyph.
func Supported(ch rune) bool {
	_, ok := glyphs[ch]
	return ok
}

// Metrics describes the extent of an assembled string in output units.
type Metrics struct {
	Width float64 // total advance including trailing gap removal
	YMin  float64
	YMax  float64
}

// buildGlyph returns one character as a shape, scaled and shifted to
// the cursor position. Holes are cut per glyph, before the global
// fuse, so a counter never merges across glyph boundaries.
func buildGlyph(g Glyph, xOffset, scale float64) (shape.Shape, error) {
	var result shape.Shape
	for i, poly := range g.Outers {
		pts := placePoints(poly, xOffset, scale)
		s, err := shape.Polygon(pts)
		if err != nil {
			return shape.Shape{}, err
		}
		if i == 0 {
			result = s
		} else {
			result, err = result.Union(s)
			if err != nil {
				return shape.Shape{}, err
			}
		}
	}
	for _, poly := range g.Holes {
		pts := placePoints(poly, xOffset, scale)
		hole, err := shape.Polygon(pts)
		if err != nil {
			return shape.Shape{}, err
		}
		result, err = result.Difference(hole)
		if err != nil {
			return shape.Shape{}, err
		}
	}
	return result, nil
}

func placePoints(poly [][2]float64, xOffset, scale float64) [][2]float64 {
	pts := make([][2]float64, len(poly))
	for i, p := range poly {
		pts[i] = [2]float64{p[0]*scale + xOffset, p[1] * scale}
	}
	return pts
}

// Assemble builds the text into one fused shape at the given cap
// height. The result sits on the baseline (y=0) with its left edge at
// x=0. A character outside the glyph table is a hard error naming the
// character; nothing is silently skipped or substituted.
func Assemble(text string, capHeight float64) (shape.Shape, Metrics, error) {
	if capHeight <= 0 {
		return shape.Shape{}, Metrics{}, fmt.Errorf("cap height must be positive, got %g", capHeight)
	}

	scale := capHeight / CapHeight
	cursorX := 0.0
	var result shape.Shape
	m := Metrics{YMin: math.Inf(1), YMax: math.Inf(-1)}
	count := 0

	for _, ch := range text {
		g, ok := glyphs[ch]
		if !ok {
			return shape.Shape{}, Metrics{}, fmt.Errorf("%w: %q", ErrUnsupportedChar, ch)
		}

		s, err := buildGlyph(g, cursorX, scale)
		if err != nil {
			return shape.Shape{}, Metrics{}, fmt.Errorf("glyph %q: %w", ch, err)
		}
		if count == 0 {
			result = s
		} else {
			result, err = result.Union(s)
			if err != nil {
				return shape.Shape{}, Metrics{}, fmt.Errorf("glyph %q: %w", ch, err)
			}
		}

		for _, poly := range g.Outers {
			for _, p := range poly {
				m.YMin = math.Min(m.YMin, p[1]*scale)
				m.YMax = math.Max(m.YMax, p[1]*scale)
			}
		}

		cursorX += (g.Advance + Spacing) * scale
		count++
	}

	if count == 0 {
		return shape.Shape{}, Metrics{}, fmt.Errorf("no characters produced geometry")
	}

	m.Width = cursorX - Spacing*scale
	return result, m, nil
}
