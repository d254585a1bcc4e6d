package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw writes the framebuffer into area of scr, two pixels per cell: the
// upper half block takes the top pixel as foreground and the bottom pixel
// as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top, bot := row*2, row*2+1
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, top)),
					Bg: cellColor(fb.GetPixel(col, bot)),
				},
			})
		}
	}
}

func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents framebuffers on a terminal.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int
}

// NewTerminalRenderer creates a renderer for a terminal of width columns
// and height rows.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	Logger().Info("terminal renderer", "cols", width, "rows", height)
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel size that fills the terminal.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.width, r.height * 2
}

// Resize records new terminal dimensions.
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	Logger().Info("terminal resized", "cols", width, "rows", height)
}

// Render draws fb into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.term, r.term.Bounds())
}

// Flush sends the pending cell changes to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

// Color is shorthand for color.RGBA.
type Color = color.RGBA

// RGB creates an opaque colour.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
