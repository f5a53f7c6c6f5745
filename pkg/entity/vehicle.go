// pkg/entity/vehicle.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-ssorf/pkg/physics"
)

// AudioFeedback receives the throttle and speed after every step.
type AudioFeedback interface {
	Update(throttle, speed float64) error
}

// Vehicle is a drivable scooter.
type Vehicle struct {
	BaseEntity
	ScooterID int
	Name      string

	specs      physics.Specs
	state      physics.State
	integrator physics.Integrator
	controls   physics.Controls

	normal      mgl64.Vec3
	roll, pitch float64

	audio AudioFeedback
}

// NewVehicle creates a vehicle from base specs. Upgrades are folded into the
// specs here and never again.
func NewVehicle(id ID, scooterID int, name string, specs physics.Specs, integrator physics.Integrator, upgrades ...physics.Upgrades) *Vehicle {
	for _, u := range upgrades {
		specs = specs.WithUpgrades(u)
	}
	return &Vehicle{
		BaseEntity: BaseEntity{
			ID:     id,
			Radius: specs.WheelBaseLength / 2 * integrator.UnitScale,
			Active: true,
		},
		ScooterID:  scooterID,
		Name:       name,
		specs:      specs,
		integrator: integrator,
		normal:     mgl64.Vec3{0, 1, 0},
	}
}

// SetAudio attaches the sound that follows this vehicle. nil detaches it.
func (v *Vehicle) SetAudio(audio AudioFeedback) {
	v.audio = audio
}

// SetStartingPosition places the vehicle at rest.
func (v *Vehicle) SetStartingPosition(yaw float64, position mgl64.Vec3) {
	v.state = physics.State{Position: position, Yaw: yaw}
	v.controls = physics.Controls{}
}

// SetGroundNormal puts the vehicle on the ground at height and tilts it to
// the surface normal.
func (v *Vehicle) SetGroundNormal(height float64, normal mgl64.Vec3) {
	v.state.Position[1] = height
	v.normal = normal
	v.roll, v.pitch = physics.Tilt(v.state.Yaw, normal)
}

// Update advances the vehicle and feeds the sound. Only the audio can fail.
func (v *Vehicle) Update(deltaTime float64, controls physics.Controls) error {
	v.integrator.Step(v.specs, &v.state, controls, deltaTime)
	v.controls = controls
	v.roll, v.pitch = physics.Tilt(v.state.Yaw, v.normal)

	if v.audio == nil {
		return nil
	}
	return v.audio.Update(controls.Throttle, v.state.Speed)
}

// Specs returns the upgraded specs.
func (v *Vehicle) Specs() physics.Specs {
	return v.specs
}

// State returns a copy of the dynamic state.
func (v *Vehicle) State() physics.State {
	return v.state
}

// Controls returns the inputs of the last update.
func (v *Vehicle) Controls() physics.Controls {
	return v.controls
}

// Speed in m/s.
func (v *Vehicle) Speed() float64 {
	return v.state.Speed
}

// Yaw in radians.
func (v *Vehicle) Yaw() float64 {
	return v.state.Yaw
}

// Position in world units.
func (v *Vehicle) Position() mgl64.Vec3 {
	return v.state.Position
}

// GetPosition returns the position on the ground plane.
func (v *Vehicle) GetPosition() physics.Vector2D {
	return physics.Planar(v.state.Position)
}

// GetCollider returns the vehicle footprint.
func (v *Vehicle) GetCollider() physics.Circle {
	return physics.Circle{Center: v.GetPosition(), Radius: v.Radius}
}

// Tilt returns the current roll and pitch.
func (v *Vehicle) Tilt() (roll, pitch float64) {
	return v.roll, v.pitch
}

// Orientation returns the rotation of the vehicle model.
func (v *Vehicle) Orientation() mgl64.Mat4 {
	return physics.Orientation(v.state.Yaw, v.roll, v.pitch)
}

// Transform returns the world matrix of the vehicle model.
func (v *Vehicle) Transform() mgl64.Mat4 {
	return physics.Transform(v.state.Position, v.Orientation())
}

// Render draws the vehicle.
func (v *Vehicle) Render(r Renderer) {
	r.RenderVehicle(v)
}
