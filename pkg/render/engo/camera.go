// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// CameraSystem follows the player's scooter and maps world positions onto
// the screen. World X runs right and world Z runs down the screen.
type CameraSystem struct {
	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32
	// pixelsPerUnit is the screen scale at zoom 1.
	pixelsPerUnit float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	viewport engo.Point
	buttons  ButtonReader

	// Current camera state
	currentPos physics.Vector2D
}

// NewCameraSystem creates a camera for a viewport of the given size in pixels.
func NewCameraSystem(width, height float32) *CameraSystem {
	return &CameraSystem{
		zoom:          1.0,
		minZoom:       0.1,
		maxZoom:       3.0,
		pixelsPerUnit: 0.5,
		followSpeed:   4.0,
		smoothing:     true,
		viewport:      engo.Point{X: width, Y: height},
		buttons:       engoButtons{},
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update handles zoom keys and moves toward the target.
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

func (cs *CameraSystem) handleZoomInput() {
	if cs.buttons.Down(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down(ButtonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed(ButtonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition smoothly moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}

	step := float64(cs.followSpeed * dt)
	if step > 1 {
		step = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(step))
}

// SetTarget sets the position to follow. The first target snaps the camera.
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true

	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget stops following. The next SetTarget snaps again.
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// SetFollowSpeed sets the fraction of the remaining distance closed per second.
func (cs *CameraSystem) SetFollowSpeed(speed float32) {
	cs.followSpeed = speed
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}

// Scale returns screen pixels per world unit at the current zoom.
func (cs *CameraSystem) Scale() float32 {
	return cs.pixelsPerUnit * cs.zoom
}

// WorldToScreen converts world coordinates to screen pixels.
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) engo.Point {
	scale := float64(cs.Scale())
	return engo.Point{
		X: float32((worldPos.X-cs.currentPos.X)*scale) + cs.viewport.X/2,
		Y: float32((worldPos.Y-cs.currentPos.Y)*scale) + cs.viewport.Y/2,
	}
}

// ScreenToWorld converts screen pixels to world coordinates.
func (cs *CameraSystem) ScreenToWorld(screenPos engo.Point) physics.Vector2D {
	scale := float64(cs.Scale())
	return physics.Vector2D{
		X: float64(screenPos.X-cs.viewport.X/2)/scale + cs.currentPos.X,
		Y: float64(screenPos.Y-cs.viewport.Y/2)/scale + cs.currentPos.Y,
	}
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}
