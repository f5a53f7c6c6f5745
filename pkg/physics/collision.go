// pkg/physics/collision.go
package physics

// Circle is a circular zone on the ground plane.
type Circle struct {
	Center Vector2D `json:"center"`
	Radius float64  `json:"radius"`
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contains reports whether point lies inside the circle or on its edge.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) <= c.Radius
}
