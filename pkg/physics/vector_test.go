// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVector2D_Arithmetic(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: 1, Y: 2}

	if got := a.Add(b); got != (Vector2D{X: 4, Y: 6}) {
		t.Errorf("Add: expected (4, 6), got %v", got)
	}
	if got := a.Sub(b); got != (Vector2D{X: 2, Y: 2}) {
		t.Errorf("Sub: expected (2, 2), got %v", got)
	}
	if got := b.Scale(-2); got != (Vector2D{X: -2, Y: -4}) {
		t.Errorf("Scale: expected (-2, -4), got %v", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length: expected 5, got %f", got)
	}
	if got := a.Distance(Vector2D{}); got != 5 {
		t.Errorf("Distance: expected 5, got %f", got)
	}
}

func TestPlanar(t *testing.T) {
	got := Planar(mgl64.Vec3{7, 100, -3})
	if got != (Vector2D{X: 7, Y: -3}) {
		t.Errorf("Expected (7, -3), got %v", got)
	}
}

// vecNear compares components with an absolute tolerance; sin and cos of
// multiples of π/2 leave residues next to exact zeros.
func vecNear(got, want mgl64.Vec3) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tolerance {
			return false
		}
	}
	return true
}

func TestHeadingBasis(t *testing.T) {
	tests := []struct {
		name    string
		yaw     float64
		forward mgl64.Vec3
		left    mgl64.Vec3
	}{
		{"facing -Z", 0, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}},
		{"quarter turn", math.Pi / 2, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{"half turn", math.Pi, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward, left := HeadingBasis(tt.yaw)
			if !vecNear(forward, tt.forward) {
				t.Errorf("Expected forward %v, got %v", tt.forward, forward)
			}
			if !vecNear(left, tt.left) {
				t.Errorf("Expected left %v, got %v", tt.left, left)
			}
		})
	}
}

func TestTilt_FlatGround(t *testing.T) {
	roll, pitch := Tilt(1.2, mgl64.Vec3{0, 1, 0})
	if roll != 0 || pitch != 0 {
		t.Errorf("Expected no tilt on flat ground, got roll %f pitch %f", roll, pitch)
	}
	if !Orientation(1.2, roll, pitch).ApproxEqualThreshold(mgl64.HomogRotate3DY(1.2), 1e-9) {
		t.Error("Expected flat orientation to be a pure yaw rotation")
	}
}

func TestTilt_Slope(t *testing.T) {
	normal := mgl64.Vec3{0.2, 0.96, 0}
	roll, pitch := Tilt(0, normal)
	if math.Abs(roll+0.2) > 1e-9 {
		t.Errorf("Expected roll -0.2, got %f", roll)
	}
	if math.Abs(pitch) > 1e-9 {
		t.Errorf("Expected pitch 0, got %f", pitch)
	}
}

func TestTransform(t *testing.T) {
	m := Transform(mgl64.Vec3{1, 2, 3}, mgl64.Ident4())
	origin := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if !origin.Vec3().ApproxEqual(mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Expected origin at (1, 2, 3), got %v", origin)
	}
}

func TestCircle(t *testing.T) {
	finish := Circle{Center: Vector2D{X: 10, Y: 0}, Radius: 2}

	if !finish.Contains(Vector2D{X: 11, Y: 1}) {
		t.Error("Expected point inside the circle")
	}
	if !finish.Contains(Vector2D{X: 12, Y: 0}) {
		t.Error("Expected point on the edge to count as inside")
	}
	if finish.Contains(Vector2D{X: 0, Y: 0}) {
		t.Error("Expected point outside the circle")
	}
	if !finish.Collides(Circle{Center: Vector2D{X: 13, Y: 0}, Radius: 1.5}) {
		t.Error("Expected overlapping circles to collide")
	}
}
