package engine

import (
	"context"

	"github.com/opd-ai/go-ssorf/pkg/config"
	"github.com/opd-ai/go-ssorf/pkg/entity"
)

// LineHeight is the pixel spacing of text lines on every screen.
const LineHeight = 24

// textLine returns the pixel position of a text line inside bounds.
func textLine(bounds config.Rect, line int) (x, y int) {
	return bounds.X, bounds.Y + line*LineHeight
}

// Title is the splash screen shown at start-up.
type Title struct {
	Heading string
	bounds  config.Rect
	active  bool
	elapsed float64
}

// NewTitle creates an active title screen.
func NewTitle(heading string, bounds config.Rect) *Title {
	return &Title{Heading: heading, bounds: bounds, active: true}
}

// Update dismisses the title on confirm.
func (t *Title) Update(ctx context.Context, deltaTime float64, in Input) {
	t.elapsed += deltaTime
	if in.Confirm {
		t.Dismiss()
	}
}

// Dismiss makes the title inactive.
func (t *Title) Dismiss() {
	t.active = false
}

// Active reports whether the title is still showing.
func (t *Title) Active() bool {
	return t.active
}

// Draw renders the heading and a blinking prompt.
func (t *Title) Draw(r entity.Renderer) {
	x, y := textLine(t.bounds, 0)
	r.RenderText(x, y, t.Heading)
	if int(t.elapsed*2)%2 == 0 {
		x, y = textLine(t.bounds, 2)
		r.RenderText(x, y, "Press Enter")
	}
}
