package orbit

import "github.com/san-kum/orbs/internal/raster"

// Rand supplies pseudo-random bits for initial placement. *rand.Rand from
// math/rand and math/rand/v2 both satisfy it.
type Rand interface {
	Uint32() uint32
}

// NewOrb places an orb at (x, y) with the given outline radius and launches it.
func (f Field) NewOrb(x, y float64, radius int) Orb {
	o := Orb{X: x, Y: y, R: radius, Circle: raster.Circle(0, 0, radius)}
	f.Launch(&o)
	return o
}

// Spawn creates n orbs scattered around a width x height screen.
//
// Coordinates come from signed 32-bit remainders, so x falls in (-width, width)
// and y in (-2.5*height, 1.5*height): most orbs start off screen and drift in.
func (f Field) Spawn(n, radius, width, height int, rng Rand) []Orb {
	orbs := make([]Orb, 0, n)
	if n <= 0 || width <= 0 || height <= 0 {
		return orbs
	}

	circle := raster.Circle(0, 0, radius)
	for i := 0; i < n; i++ {
		x := float64(signed(rng) % int32(width))
		y := float64(signed(rng)%int32(height*2)) - float64(height)/2

		o := Orb{X: x, Y: y, R: radius, Circle: circle}
		f.Launch(&o)
		orbs = append(orbs, o)
	}
	return orbs
}

func signed(rng Rand) int32 {
	return int32(rng.Uint32())
}
