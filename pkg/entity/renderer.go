package entity

import "github.com/opd-ai/go-ssorf/pkg/physics"

// Renderer draws one frame. Text positions are screen pixels in the
// configured display size.
type Renderer interface {
	Clear()
	RenderVehicle(vehicle *Vehicle)
	RenderMarker(area physics.Circle)
	RenderText(x, y int, text string)
	Present()
}
