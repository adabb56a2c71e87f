package traj

import "github.com/san-kum/ballistics/internal/geom"

// Sample is one point of a computed trajectory. Position axes: X downrange,
// Y height over the sight line, Z windage. Velocity is the ground-relative
// velocity vector.
type Sample struct {
	Time     float64
	Position geom.Vector
	Velocity geom.Vector
	// Mach is the ratio of projectile speed to the local speed of sound.
	Mach float64
	// Density is the local air density over sea-level density.
	Density float64
	// Drag is the drag factor applied at this point.
	Drag  float64
	Flags Flag
}

func (s Sample) Range() float64   { return s.Position.X }
func (s Sample) Height() float64  { return s.Position.Y }
func (s Sample) Windage() float64 { return s.Position.Z }
func (s Sample) Speed() float64   { return s.Velocity.Magnitude() }
