// Package orbit advances orbs around a single fixed attractor.
//
// The model is intentionally not physically consistent: every orb starts on
// the instantaneous circular-orbit velocity for its radius and is then pushed
// forward with explicit Euler steps scaled by a large speed factor. Orbs that
// pass close to the centre can be flung out of view; that is expected.
//
//	field := orbit.NewField(960, 540, orbit.DefaultG, orbit.DefaultMass, orbit.DefaultSpeed)
//	orbs := field.Spawn(5000, 10, 1920, 1080, rng)
//	for i := range orbs {
//		field.Step(&orbs[i])
//	}
package orbit
