// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2D is a point on the ground plane. X maps to world X and Y to world Z.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Planar projects a world position onto the ground plane.
func Planar(v mgl64.Vec3) Vector2D {
	return Vector2D{X: v.X(), Y: v.Z()}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// HeadingBasis returns the forward and left unit axes of a vehicle facing yaw.
// Yaw rotates about +Y; yaw 0 faces -Z.
func HeadingBasis(yaw float64) (forward, left mgl64.Vec3) {
	rot := mgl64.Rotate3DY(yaw)
	forward = rot.Mul3x1(mgl64.Vec3{0, 0, -1})
	left = rot.Mul3x1(mgl64.Vec3{-1, 0, 0})
	return forward, left
}

// Tilt derives roll and pitch from the ground normal under a vehicle facing yaw.
func Tilt(yaw float64, normal mgl64.Vec3) (roll, pitch float64) {
	sin, cos := math.Sincos(yaw)
	roll = -normal.X()*cos + normal.Z()*sin
	pitch = normal.Z()*cos + normal.X()*sin
	return roll, pitch
}

// Orientation composes roll, then pitch, then yaw into a rotation matrix.
func Orientation(yaw, roll, pitch float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(yaw).
		Mul4(mgl64.HomogRotate3DX(pitch)).
		Mul4(mgl64.HomogRotate3DZ(roll))
}

// Transform returns the model matrix for a body at position with the given orientation.
func Transform(position mgl64.Vec3, orientation mgl64.Mat4) mgl64.Mat4 {
	return mgl64.Translate3D(position.X(), position.Y(), position.Z()).Mul4(orientation)
}
