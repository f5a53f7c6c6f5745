// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-ssorf/pkg/entity"
	"github.com/opd-ai/go-ssorf/pkg/logging"
	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// NullRenderer is an entity.Renderer that only logs at debug level.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer. A nil logger uses the default.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}

// RenderVehicle implements entity.Renderer.
func (d *NullRenderer) RenderVehicle(vehicle *entity.Vehicle) {
	ctx := context.Background()
	if vehicle == nil {
		d.logger.Debug(ctx, "RenderVehicle called with nil vehicle")
		return
	}
	pos := vehicle.GetPosition()
	d.logger.Debug(ctx, "RenderVehicle called",
		"scooter", vehicle.Name,
		"x", pos.X,
		"z", pos.Y,
		"yaw", vehicle.Yaw(),
		"speed", vehicle.Speed(),
	)
}

// RenderMarker implements entity.Renderer.
func (d *NullRenderer) RenderMarker(area physics.Circle) {
	d.logger.Debug(context.Background(), "RenderMarker called",
		"x", area.Center.X,
		"z", area.Center.Y,
		"radius", area.Radius,
	)
}

// RenderText implements entity.Renderer.
func (d *NullRenderer) RenderText(x, y int, text string) {
	d.logger.Debug(context.Background(), "RenderText called", "x", x, "y", y, "text", text)
}
