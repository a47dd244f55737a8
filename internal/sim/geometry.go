package sim

import "math"

// Contact is the result of testing a ball against the boundary.
type Contact struct {
	Distance  float64 // ball centre to boundary centre
	WallLimit float64 // largest distance at which the ball still fits
	Hit       bool
}

// Evaluate tests a ball of the given size centred at (x, y) against a
// boundary of the given radius whose centre sits at (radius, radius).
// A ball at least as wide as the boundary collides everywhere.
func Evaluate(x, y, radius, size float64) Contact {
	cx := x - radius
	cy := y - radius
	dist := math.Sqrt(cx*cx + cy*cy)
	limit := radius - size/2
	return Contact{
		Distance:  dist,
		WallLimit: limit,
		Hit:       dist >= limit,
	}
}
