package orrery

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/soniakeys/unit"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 1e-9                         // in AU
	// DaysPerYear converts the period in years (a^1.5) into days.
	DaysPerYear = 365.
)

// KeplerianElements defines an elliptical heliocentric orbit with the five
// elements used by the display: semi-major axis (AU), eccentricity,
// inclination, longitude of perihelion and longitude of the ascending node
// (all angles in radians).
// The longitude of perihelion is folded directly into the true anomaly; there
// is no separate argument of periapsis.
type KeplerianElements struct {
	a, e, i, ϖ, Ω float64
}

// NewKeplerianElements returns validated elements. Angles must be in radians.
func NewKeplerianElements(a, e, i, longPeri, longNode float64) (KeplerianElements, error) {
	el := KeplerianElements{a, e, i, longPeri, longNode}
	if err := el.Validate(); err != nil {
		return KeplerianElements{}, err
	}
	return el, nil
}

// NewKeplerianElementsDeg is NewKeplerianElements for catalogs which list
// angles in degrees.
func NewKeplerianElementsDeg(a, e, iDeg, longPeriDeg, longNodeDeg float64) (KeplerianElements, error) {
	return NewKeplerianElements(a, e,
		unit.AngleFromDeg(iDeg).Rad(),
		unit.AngleFromDeg(longPeriDeg).Rad(),
		unit.AngleFromDeg(longNodeDeg).Rad())
}

// Validate returns an error wrapping ErrInvalidElements if the elements do
// not describe an ellipse. The zero value is invalid.
func (o KeplerianElements) Validate() error {
	for _, v := range []float64{o.a, o.e, o.i, o.ϖ, o.Ω} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite element in %s", ErrInvalidElements, o)
		}
	}
	if o.a <= 0 {
		return fmt.Errorf("%w: semi-major axis a=%g must be positive", ErrInvalidElements, o.a)
	}
	if o.e < 0 || o.e >= 1 {
		return fmt.Errorf("%w: eccentricity e=%g must be in [0, 1)", ErrInvalidElements, o.e)
	}
	return nil
}

// A returns the semi-major axis in AU.
func (o KeplerianElements) A() float64 { return o.a }

// E returns the eccentricity.
func (o KeplerianElements) E() float64 { return o.e }

// I returns the inclination.
func (o KeplerianElements) I() float64 { return o.i }

// LongPeri returns the longitude of perihelion ϖ.
func (o KeplerianElements) LongPeri() float64 { return o.ϖ }

// LongNode returns the longitude of the ascending node Ω.
func (o KeplerianElements) LongNode() float64 { return o.Ω }

// MeanMotion returns n with the gravitational parameter set to one.
func (o KeplerianElements) MeanMotion() float64 {
	return math.Sqrt(1 / (o.a * o.a * o.a))
}

// Period returns the period in kernel time units, i.e. 2π/n.
func (o KeplerianElements) Period() float64 {
	return twoπ / o.MeanMotion()
}

// PeriodDays returns the orbital period in days.
func (o KeplerianElements) PeriodDays() float64 {
	return math.Pow(o.a, 1.5) * DaysPerYear
}

// SemiParameter returns the semi parameter p.
func (o KeplerianElements) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the aphelion distance in AU.
func (o KeplerianElements) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the perihelion distance in AU.
func (o KeplerianElements) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// String implements the stringer interface (hence the value receiver)
func (o KeplerianElements) String() string {
	return fmt.Sprintf("a=%.4f e=%.4f i=%.3f ϖ=%.3f Ω=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.ϖ), Rad2deg(o.Ω))
}

// Equals returns whether two sets of elements are identical within tolerance.
func (o KeplerianElements) Equals(o1 KeplerianElements) (bool, error) {
	if !floats.EqualWithinAbs(o.a, o1.a, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(o.i, o1.i, angleε) {
		return false, errors.New("inclination invalid")
	}
	if !floats.EqualWithinAbs(wrapπ(o.ϖ-o1.ϖ), 0, angleε) {
		return false, errors.New("longitude of perihelion invalid")
	}
	if !floats.EqualWithinAbs(wrapπ(o.Ω-o1.Ω), 0, angleε) {
		return false, errors.New("longitude of node invalid")
	}
	return true, nil
}
