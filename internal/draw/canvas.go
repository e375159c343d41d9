package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tomz197/vecteroids/internal/physics"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps world coordinates onto the terminal, preserving aspect ratio and
// centering the play field.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	world   physics.Bounds
	scale   float64 // pixels per world unit, same on both axes
	offsetX float64 // pixel offset of the world's left edge
	offsetY float64 // pixel offset of the world's top edge

	renderBuf strings.Builder // Buffer for batching render output
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for the given terminal dimensions showing world.
func NewCanvas(termWidth, termHeight int, world physics.Bounds) *Canvas {
	c := &Canvas{world: world}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	// A half-block sub-pixel is roughly square, so one scale fits both axes.
	c.scale = math.Min(float64(termWidth)/c.world.Width(), float64(subPixelHeight)/c.world.Height())
	c.offsetX = (float64(termWidth) - c.world.Width()*c.scale) / 2
	c.offsetY = (float64(subPixelHeight) - c.world.Height()*c.scale) / 2
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// toPixel converts a world position to sub-pixel coordinates (y down).
func (c *Canvas) toPixel(p physics.Vector2) (int, int) {
	x := (p.X-c.world.Left)*c.scale + c.offsetX
	y := (c.world.Top-p.Y)*c.scale + c.offsetY
	return int(math.Round(x)), int(math.Round(y))
}

// setPixel sets a pixel at sub-pixel coordinates, ignoring anything off canvas.
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p0, p1 physics.Vector2) {
	if !p0.IsFinite() || !p1.IsFinite() {
		return
	}
	x1, y1 := c.toPixel(p0)
	x2, y2 := c.toPixel(p1)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawShape draws the outline of a closed polygon.
func (c *Canvas) DrawShape(points []physics.Vector2) {
	n := len(points)
	switch n {
	case 0:
		return
	case 1:
		c.DrawLine(points[0], points[0])
		return
	}
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 2)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1, col+1, ch)
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// WorldToTerminal converts a world position to a 1-based terminal position (col, row).
// Useful for placing text overlays next to canvas-drawn objects.
func (c *Canvas) WorldToTerminal(p physics.Vector2) (col, row int) {
	x, y := c.toPixel(p)
	return x + 1, y/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
