package render

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// headingSymbols are indexed clockwise from screen up in 45 degree steps.
var headingSymbols = []rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}

// TerminalRenderer provides a simple top-down ASCII view. World X maps to
// columns and world Z to rows, so a scooter with zero yaw points up.
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D

	displayWidth  int
	displayHeight int

	// ClearScreen emits an ANSI clear before every frame.
	ClearScreen bool
}

// NewTerminalRenderer creates a renderer with width x height cells, each
// covering scale world units. Text positions are mapped from an 800x600
// display until SetDisplaySize says otherwise.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:           out,
		width:         width,
		height:        height,
		buffer:        buffer,
		scale:         scale,
		displayWidth:  800,
		displayHeight: 600,
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetDisplaySize sets the pixel size text positions refer to.
func (r *TerminalRenderer) SetDisplaySize(width, height int) {
	if width > 0 && height > 0 {
		r.displayWidth, r.displayHeight = width, height
	}
}

// worldToScreen converts ground-plane coordinates to cell coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := math.Floor((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return int(screenX), int(screenY)
}

func (r *TerminalRenderer) set(x, y int, c rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = c
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	if r.ClearScreen {
		w.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	w.WriteString(border)
	for y := range r.buffer {
		w.WriteString("|")
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|\n")
	}
	w.WriteString(border)
	w.Flush()
}

// RenderVehicle implements entity.Renderer
func (r *TerminalRenderer) RenderVehicle(vehicle *entity.Vehicle) {
	x, y := r.worldToScreen(vehicle.GetPosition())
	r.set(x, y, HeadingSymbol(vehicle.Yaw()))
}

// RenderMarker implements entity.Renderer
func (r *TerminalRenderer) RenderMarker(area physics.Circle) {
	// One sample per cell of circumference is enough to close the outline.
	samples := int(2*math.Pi*area.Radius/r.scale) + 8
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(samples)
		x, y := r.worldToScreen(physics.Vector2D{
			X: area.Center.X + area.Radius*math.Cos(angle),
			Y: area.Center.Y + area.Radius*math.Sin(angle),
		})
		r.set(x, y, 'o')
	}
	cx, cy := r.worldToScreen(area.Center)
	r.set(cx, cy, '+')
}

// RenderText implements entity.Renderer
func (r *TerminalRenderer) RenderText(x, y int, text string) {
	col := x * r.width / r.displayWidth
	row := y * r.height / r.displayHeight
	for i, c := range []rune(text) {
		r.set(col+i, row, c)
	}
}

// HeadingSymbol picks an arrow for a yaw. Zero yaw faces -Z, which is up.
func HeadingSymbol(yaw float64) rune {
	// Positive yaw turns toward -X, which is counter-clockwise on screen.
	turns := -yaw / (2 * math.Pi)
	turns -= math.Floor(turns)
	return headingSymbols[int(math.Round(turns*8))%8]
}
