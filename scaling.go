package orrery

const (
	// DefaultDistanceScale is the number of display units per AU.
	DefaultDistanceScale = 10.
	// DefaultPlanetSizeScale is the number of display units per km of body radius.
	DefaultPlanetSizeScale = 1e-4
)

// Scaling converts physical quantities to display units. Distances and body
// radii are scaled independently so that bodies remain visible at
// solar-system distances.
type Scaling struct {
	Distance   float64 // display units per AU
	PlanetSize float64 // display units per km of radius
}

// DefaultScaling returns the scaling used when no configuration is supplied.
func DefaultScaling() Scaling {
	return Scaling{Distance: DefaultDistanceScale, PlanetSize: DefaultPlanetSizeScale}
}

// Position scales all three axes of a position in AU.
func (s Scaling) Position(R []float64) []float64 {
	return scaled(R, s.Distance)
}

// Unscale returns the position in AU of a display position.
func (s Scaling) Unscale(P []float64) []float64 {
	return scaled(P, 1/s.Distance)
}

// BodyRadius scales a body radius in km.
func (s Scaling) BodyRadius(km float64) float64 {
	return km * s.PlanetSize
}
