package tui

import (
	"strings"

	"github.com/lox/pong/internal/pong"
)

const (
	paddleRune = '█'
	ballRune   = '●'
	netRune    = '┊'
)

// RenderField draws the playfield onto a cols x rows character grid, scaling
// from pixel coordinates. The result has no styling and no border.
func RenderField(s pong.Snapshot, cols, rows int) string {
	if cols < 3 || rows < 1 || s.FieldWidth <= 0 || s.FieldHeight <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cols))
		if y%2 == 0 {
			grid[y][cols/2] = netRune
		}
	}

	drawPaddle := func(p pong.Paddle, col int) {
		top := scale(p.Y, s.FieldHeight, rows)
		bottom := scale(p.Y+p.Height-1, s.FieldHeight, rows)
		for y := top; y <= bottom; y++ {
			grid[y][col] = paddleRune
		}
	}
	drawPaddle(s.Left, 0)
	drawPaddle(s.Right, cols-1)

	bx := scale(s.Ball.X+s.Ball.Size/2, s.FieldWidth, cols)
	by := scale(s.Ball.Y+s.Ball.Size/2, s.FieldHeight, rows)
	grid[by][bx] = ballRune

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

// scale maps a pixel coordinate in [0, extent) to a cell in [0, cells).
func scale(v, extent, cells int) int {
	c := v * cells / extent
	if c < 0 {
		return 0
	}
	if c >= cells {
		return cells - 1
	}
	return c
}
