package orbit

import (
	"math"

	"github.com/san-kum/orbs/internal/raster"
)

const (
	DefaultG     = 0.000000011
	DefaultMass  = 32000000.0
	DefaultSpeed = 100.0

	// MinRadius replaces a zero distance to the centre before it is used as a divisor.
	MinRadius = 1e-10
)

// Orb is one orbiting body. Circle is computed when the orb is created and is
// only ever translated afterwards.
type Orb struct {
	X, Y   float64
	VX, VY float64
	R      int
	Circle []raster.Offset
}

// Field is the fixed central mass every orb falls toward.
type Field struct {
	CX, CY float64
	G      float64
	Mass   float64
	Speed  float64
}

func NewField(cx, cy, g, mass, speed float64) Field {
	return Field{CX: cx, CY: cy, G: g, Mass: mass, Speed: speed}
}

func (f Field) radius(o *Orb) (dx, dy, r float64) {
	dx = o.X - f.CX
	dy = o.Y - f.CY
	r = math.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		r = MinRadius
	}
	return dx, dy, r
}

// Step advances o by one simulation step in place.
func (f Field) Step(o *Orb) {
	dx, dy, r := f.radius(o)

	g := f.G * f.Mass * f.Speed / (r * r)
	theta := math.Atan2(dy, dx)
	o.VX -= g * math.Cos(theta)
	o.VY -= g * math.Sin(theta)

	o.X += o.VX * f.Speed
	o.Y += o.VY * f.Speed
}

// Launch sets o's velocity to the circular-orbit speed for its current
// distance, perpendicular to the radius vector.
func (f Field) Launch(o *Orb) {
	dx, dy, r := f.radius(o)

	v := math.Sqrt(f.G * f.Mass / r)
	theta := math.Atan2(dy, dx) + math.Pi/2
	o.VX = v * math.Cos(theta)
	o.VY = v * math.Sin(theta)
}

// StepAll advances every orb once.
func (f Field) StepAll(orbs []Orb) {
	for i := range orbs {
		f.Step(&orbs[i])
	}
}
