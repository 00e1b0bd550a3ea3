package display

import (
	"image/color"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille is a grid of terminal cells, each holding 2x4 sub-pixels and the
// colour of the last dot set in it.
type Braille struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewBraille(w, h int) *Braille {
	c := &Braille{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid for w x h cells and clears it.
func (c *Braille) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
}

// SubSize is the canvas size in sub-pixels.
func (c *Braille) SubSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set lights the sub-pixel at (x, y). Points outside the canvas are ignored.
func (c *Braille) Set(x, y int, col color.RGBA) bool {
	if x < 0 || y < 0 {
		return false
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return false
	}

	c.Grid[row][cx] |= pixelMap[y%4][x%2]
	c.Colors[row][cx] = col
	return true
}

// Lit reports whether the cell at (col, row) has any dot set.
func (c *Braille) Lit(col, row int) bool {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col] != brailleBlank
}

func (c *Braille) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

func (c *Braille) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
