package render

import (
	"image/color"
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			topColor := fb.GetPixel(col, topY)
			botColor := fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalRenderer adapts a framebuffer to a terminal screen using
// half-block cells.
type TerminalRenderer struct {
	term  *uv.Terminal
	width int
	rows  int
}

// NewTerminalRenderer creates a renderer for a terminal of the given size
// (in character cells).
func NewTerminalRenderer(term *uv.Terminal, width, rows int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, rows: rows}
}

// FramebufferSize returns the pixel dimensions a framebuffer should have to
// fill this terminal: every row holds two pixel rows.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.width, r.rows * 2
}

// Render draws the framebuffer onto the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.term, uv.Rect(0, 0, r.width, r.rows))
}

// Flush presents the cell buffer.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// LinearRGB quantizes a tone-mapped color in [0,1] to 8-bit RGBA.
func LinearRGB(c math3d.Vec3) color.RGBA {
	c = c.Clamp01()
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}
