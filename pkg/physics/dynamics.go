// pkg/physics/dynamics.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulation units: torque N·m, force N, weight kg, speed m/s, distance m,
// angles rad, grip m/s².
const (
	// MetersToWorldUnits converts simulated meters into world (model) units.
	MetersToWorldUnits = 39.37
	// AmpToNewtonMeter converts motor current ratings into output torque.
	AmpToNewtonMeter = 0.0222
)

// Specs holds the tunable constants of one vehicle. All fields except
// RollingResistance must be positive; the integrator does not check.
type Specs struct {
	WheelBaseLength   float64 `json:"wheelBaseLength"`
	WheelMaxAngle     float64 `json:"wheelMaxAngle"`
	WheelRadius       float64 `json:"wheelRadius"`
	GripRating        float64 `json:"gripRating"`
	CoefficientDrag   float64 `json:"coefficientDrag"`
	FrontalArea       float64 `json:"frontalArea"`
	OutputPower       float64 `json:"outputPower"`
	BrakePower        float64 `json:"brakePower"`
	Weight            float64 `json:"weight"`
	RollingResistance float64 `json:"rollingResistance"`
}

// Upgrades are purchased modifications. Power is a motor current in amps.
type Upgrades struct {
	Power  float64 `json:"power"`
	Weight float64 `json:"weight"`
}

// WithUpgrades returns specs with the upgrades folded in. It is meant to run
// once when a vehicle is loaded.
func (s Specs) WithUpgrades(u Upgrades) Specs {
	s.OutputPower += u.Power * AmpToNewtonMeter
	s.Weight += u.Weight
	return s
}

// State is the per-tick mutable state of a vehicle.
type State struct {
	Position mgl64.Vec3
	Yaw      float64
	// Speed is never negative.
	Speed float64
	// WheelAngle is the steering angle captured on the previous tick.
	WheelAngle float64
}

// Controls are the per-tick driver inputs. Steer is in [-1,1], Throttle and
// Brake in [0,1]; out-of-range values are used as given.
type Controls struct {
	Steer    float64
	Throttle float64
	Brake    float64
}

// Integrator advances vehicle state. UnitScale converts meters into world
// units for the position update.
type Integrator struct {
	UnitScale float64
}

// DefaultIntegrator uses MetersToWorldUnits.
var DefaultIntegrator = Integrator{UnitScale: MetersToWorldUnits}

// Step advances s by dt seconds using DefaultIntegrator.
func Step(specs Specs, s *State, c Controls, dt float64) {
	DefaultIntegrator.Step(specs, s, c, dt)
}

// Step advances s by dt seconds. The wheel angle used for turning is the one
// captured on the previous call; c.Steer only takes effect on the next call.
func (in Integrator) Step(specs Specs, s *State, c Controls, dt float64) {
	distance := s.Speed * dt

	deltaYaw := 0.0
	if radius, turning := TurnRadius(specs, s.WheelAngle, s.Speed); turning {
		deltaYaw = distance / radius
	}

	// Displacement is measured from the heading at the start of the tick.
	forward, left := HeadingBasis(s.Yaw)
	s.Yaw += deltaYaw
	s.Position = s.Position.
		Add(forward.Mul(distance * math.Cos(deltaYaw) * in.UnitScale)).
		Add(left.Mul(distance * math.Sin(deltaYaw) * in.UnitScale))

	s.WheelAngle = c.Steer * specs.WheelMaxAngle

	s.Speed += LongitudinalForce(specs, s.Speed, c) / specs.Weight * dt
	if s.Speed < 0 {
		s.Speed = 0
	}
}

// TurnRadius returns the signed turning radius for a wheel angle at speed,
// clamped so the centripetal demand never exceeds the grip rating. A straight
// wheel reports turning == false and an infinite radius.
func TurnRadius(specs Specs, wheelAngle, speed float64) (radius float64, turning bool) {
	tan := math.Tan(wheelAngle)
	if tan == 0 {
		return math.Inf(1), false
	}
	radius = specs.WheelBaseLength / tan
	if CentripetalDemand(speed, radius) > specs.GripRating {
		radius = math.Copysign(speed*speed/specs.GripRating, radius)
	}
	return radius, true
}

// CentripetalDemand is the lateral acceleration needed to hold radius at speed.
func CentripetalDemand(speed, radius float64) float64 {
	return speed * speed / math.Abs(radius)
}

// DragForce is aerodynamic drag plus rolling resistance at speed.
func DragForce(specs Specs, speed float64) float64 {
	return specs.CoefficientDrag*specs.FrontalArea*0.5*speed*speed + specs.RollingResistance
}

// LongitudinalForce is the net force along the heading.
func LongitudinalForce(specs Specs, speed float64, c Controls) float64 {
	force := specs.OutputPower / specs.WheelRadius * c.Throttle
	force -= specs.BrakePower / specs.WheelRadius * c.Brake
	return force - DragForce(specs, speed)
}
