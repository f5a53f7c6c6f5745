package engine

import "github.com/go-gl/mathgl/mgl64"

// TerrainSampler reports ground height and surface normal at a point on the
// ground plane, in world units.
type TerrainSampler interface {
	Sample(x, z float64) (height float64, normal mgl64.Vec3)
}

// FlatTerrain is level ground at a fixed height.
type FlatTerrain struct {
	Height float64
}

// Sample implements TerrainSampler.
func (f FlatTerrain) Sample(x, z float64) (float64, mgl64.Vec3) {
	return f.Height, mgl64.Vec3{0, 1, 0}
}

// SlopeTerrain is an inclined plane through the origin. Gradient is the rise
// per world unit along X and Z.
type SlopeTerrain struct {
	GradientX float64
	GradientZ float64
}

// Sample implements TerrainSampler.
func (s SlopeTerrain) Sample(x, z float64) (float64, mgl64.Vec3) {
	height := s.GradientX*x + s.GradientZ*z
	normal := mgl64.Vec3{-s.GradientX, 1, -s.GradientZ}.Normalize()
	return height, normal
}
